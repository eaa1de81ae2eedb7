package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the write model. Denormalized display names (user, category,
// status) live only in the read projection built by the store's joined reads.
type Expense struct {
	ID            int64           `gorm:"primaryKey"`
	UserID        int64           `gorm:"column:user_id;not null"`
	CategoryID    int64           `gorm:"column:category_id;not null"`
	StatusID      int64           `gorm:"column:status_id;not null;default:1"`
	AmountMinor   int64           `gorm:"column:amount_minor;not null"`
	AmountDecimal decimal.Decimal `gorm:"column:amount_decimal;type:numeric(12,2);not null"`
	Currency      string          `gorm:"column:currency;not null;default:GBP"`
	ExpenseDate   time.Time       `gorm:"column:expense_date;type:date;not null"`
	Description   *string         `gorm:"column:description"`
	ReceiptFile   *string         `gorm:"column:receipt_file"`
	SubmittedAt   *time.Time      `gorm:"column:submitted_at"`
	ReviewedBy    *int64          `gorm:"column:reviewed_by"`
	ReviewedAt    *time.Time      `gorm:"column:reviewed_at"`
	CreatedAt     time.Time       `gorm:"column:created_at;not null"`
}

func (Expense) TableName() string {
	return "expenses"
}

type ExpenseStatus struct {
	ID   int64  `gorm:"primaryKey;column:id"`
	Name string `gorm:"column:name;uniqueIndex;not null"`
}

func (ExpenseStatus) TableName() string {
	return "expense_statuses"
}
