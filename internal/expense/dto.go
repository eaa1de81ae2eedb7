package expense

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ardiputra/expense-portal/internal"
)

// DateOnly unmarshals either a bare business date ("2024-01-01") or a full
// RFC 3339 timestamp, since both arrive from API and assistant callers.
type DateOnly struct {
	time.Time
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", s)
	}
	d.Time = t
	return nil
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

// CreateExpenseRequest carries everything needed to create a Draft expense.
// The store computes minor units from Amount; callers never send them.
type CreateExpenseRequest struct {
	UserID      int64           `json:"user_id"`
	CategoryID  int64           `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	ExpenseDate DateOnly        `json:"expense_date"`
	Description *string         `json:"description,omitempty"`
	ReceiptFile *string         `json:"receipt_file,omitempty"`
}

func (r *CreateExpenseRequest) Validate() error {
	if r.UserID <= 0 {
		return internal.NewValidationError("user_id is required", internal.ErrCodeValidationFailed)
	}
	if r.CategoryID <= 0 {
		return internal.NewValidationError("category_id is required", internal.ErrCodeInvalidCategory)
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return internal.NewValidationError("amount must be greater than 0", internal.ErrCodeInvalidAmount)
	}
	if r.ExpenseDate.IsZero() {
		return internal.NewValidationError("expense_date is required", internal.ErrCodeInvalidDate)
	}
	if r.Currency == "" {
		r.Currency = DefaultCurrency
	}
	if len(r.Currency) != 3 {
		return internal.NewValidationError("currency must be a 3-letter code", internal.ErrCodeInvalidCurrency)
	}
	r.Currency = strings.ToUpper(r.Currency)
	return nil
}

// UpdateExpenseRequest carries the expense id plus every mutable field;
// updates replace them wholesale.
type UpdateExpenseRequest struct {
	ExpenseID   int64           `json:"expense_id"`
	CategoryID  int64           `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	ExpenseDate DateOnly        `json:"expense_date"`
	Description *string         `json:"description,omitempty"`
	ReceiptFile *string         `json:"receipt_file,omitempty"`
}

func (r *UpdateExpenseRequest) Validate() error {
	if r.ExpenseID <= 0 {
		return internal.NewValidationError("expense_id is required", internal.ErrCodeValidationFailed)
	}
	if r.CategoryID <= 0 {
		return internal.NewValidationError("category_id is required", internal.ErrCodeInvalidCategory)
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return internal.NewValidationError("amount must be greater than 0", internal.ErrCodeInvalidAmount)
	}
	if r.ExpenseDate.IsZero() {
		return internal.NewValidationError("expense_date is required", internal.ErrCodeInvalidDate)
	}
	if r.Currency == "" {
		r.Currency = DefaultCurrency
	}
	if len(r.Currency) != 3 {
		return internal.NewValidationError("currency must be a 3-letter code", internal.ErrCodeInvalidCurrency)
	}
	r.Currency = strings.ToUpper(r.Currency)
	return nil
}
