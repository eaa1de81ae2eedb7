package expense

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status ids form a closed set with a fixed ordering; transitions only move
// forward along Draft -> Submitted -> Approved|Rejected.
const (
	StatusDraft     int64 = 1
	StatusSubmitted int64 = 2
	StatusApproved  int64 = 3
	StatusRejected  int64 = 4
)

const (
	StatusNameDraft     = "Draft"
	StatusNameSubmitted = "Submitted"
	StatusNameApproved  = "Approved"
	StatusNameRejected  = "Rejected"
)

const DefaultCurrency = "GBP"

// Expense is the read projection the store returns: the expense row joined
// with the owning user, category and status. The *_name fields are display
// conveniences copied from the referenced entities at read time; the
// referenced rows stay authoritative.
type Expense struct {
	ExpenseID     int64           `json:"expense_id"`
	UserID        int64           `json:"user_id"`
	UserName      string          `json:"user_name"`
	Email         string          `json:"email"`
	CategoryID    int64           `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	StatusID      int64           `json:"status_id"`
	StatusName    string          `json:"status_name"`
	AmountMinor   int64           `json:"amount_minor"`
	AmountDecimal decimal.Decimal `json:"amount_decimal"`
	Currency      string          `json:"currency"`
	ExpenseDate   time.Time       `json:"expense_date"`
	Description   *string         `json:"description,omitempty"`
	ReceiptFile   *string         `json:"receipt_file,omitempty"`
	SubmittedAt   *time.Time      `json:"submitted_at,omitempty"`
	ReviewedBy    *int64          `json:"reviewed_by,omitempty"`
	ReviewerName  *string         `json:"reviewer_name,omitempty"`
	ReviewedAt    *time.Time      `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (e *Expense) CanBeSubmitted() bool {
	return e.StatusID == StatusDraft
}

func (e *Expense) CanBeReviewed() bool {
	return e.StatusID == StatusSubmitted
}

func (e *Expense) IsFinal() bool {
	return e.StatusID == StatusApproved || e.StatusID == StatusRejected
}

// Status is one entry of the fixed lifecycle enumeration.
type Status struct {
	StatusID   int64  `json:"status_id"`
	StatusName string `json:"status_name"`
}

// Statuses returns the closed status set in ordinal order.
func Statuses() []*Status {
	return []*Status{
		{StatusID: StatusDraft, StatusName: StatusNameDraft},
		{StatusID: StatusSubmitted, StatusName: StatusNameSubmitted},
		{StatusID: StatusApproved, StatusName: StatusNameApproved},
		{StatusID: StatusRejected, StatusName: StatusNameRejected},
	}
}

// StatusIDByName resolves a status name case-insensitively; 0 means unknown.
func StatusIDByName(name string) int64 {
	for _, s := range Statuses() {
		if strings.EqualFold(s.StatusName, name) {
			return s.StatusID
		}
	}
	return 0
}

// Summary is the per-category aggregation view.
type Summary struct {
	CategoryName     string          `json:"category_name"`
	ExpenseCount     int64           `json:"expense_count"`
	TotalAmountMinor int64           `json:"total_amount_minor"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Currency         string          `json:"currency"`
}
