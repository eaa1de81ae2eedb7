package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/ardiputra/expense-portal/internal"
	expenseDatamodel "github.com/ardiputra/expense-portal/internal/core/datamodel/expense"
	"github.com/ardiputra/expense-portal/internal/expense"
	"github.com/ardiputra/expense-portal/internal/money"
)

// expenseSelect is the joined read projection. The store is the only place
// the denormalized display names are assembled.
const expenseSelect = `
SELECT e.id AS expense_id,
       e.user_id,
       u.name AS user_name,
       u.email,
       e.category_id,
       c.name AS category_name,
       e.status_id,
       s.name AS status_name,
       e.amount_minor,
       e.amount_decimal,
       e.currency,
       e.expense_date,
       e.description,
       e.receipt_file,
       e.submitted_at,
       e.reviewed_by,
       rv.name AS reviewer_name,
       e.reviewed_at,
       e.created_at
FROM expenses e
JOIN users u ON u.id = e.user_id
JOIN expense_categories c ON c.id = e.category_id
JOIN expense_statuses s ON s.id = e.status_id
LEFT JOIN users rv ON rv.id = e.reviewed_by`

// ExpenseRepository implements expense.Repository. Every operation is a
// single statement; transition guards live in the WHERE clause so the store
// itself resolves conflicting concurrent transitions.
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.Repository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) GetExpenses() ([]*expense.Expense, error) {
	var expenses []*expense.Expense
	err := r.db.Raw(expenseSelect + " ORDER BY e.id").Scan(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) GetExpensesByStatus(statusName string) ([]*expense.Expense, error) {
	var expenses []*expense.Expense
	err := r.db.Raw(expenseSelect+" WHERE LOWER(s.name) = LOWER(?) ORDER BY e.id", statusName).
		Scan(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) GetExpenseByID(id int64) (*expense.Expense, error) {
	var exp expense.Expense
	tx := r.db.Raw(expenseSelect+" WHERE e.id = ?", id).Scan(&exp)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, internal.ErrExpenseNotFound
	}
	return &exp, nil
}

// CreateExpense computes minor units from the decimal amount and creates the
// record in Draft state. Both amount legs are stored; the minor-unit value is
// the value of record.
func (r *ExpenseRepository) CreateExpense(req *expense.CreateExpenseRequest) (int64, error) {
	record := &expenseDatamodel.Expense{
		UserID:        req.UserID,
		CategoryID:    req.CategoryID,
		StatusID:      expense.StatusDraft,
		AmountMinor:   money.ToMinorUnits(req.Amount),
		AmountDecimal: req.Amount,
		Currency:      req.Currency,
		ExpenseDate:   req.ExpenseDate.Time,
		Description:   req.Description,
		ReceiptFile:   req.ReceiptFile,
		CreatedAt:     time.Now().UTC(),
	}
	if err := r.db.Create(record).Error; err != nil {
		return 0, err
	}
	return record.ID, nil
}

// UpdateExpense replaces the mutable fields while the expense is still in
// Draft. Zero rows affected covers both "no such expense" and "already left
// Draft"; the caller interprets it.
func (r *ExpenseRepository) UpdateExpense(req *expense.UpdateExpenseRequest) (int64, error) {
	tx := r.db.Exec(`UPDATE expenses
		SET category_id = ?, amount_minor = ?, amount_decimal = ?, currency = ?,
		    expense_date = ?, description = ?, receipt_file = ?
		WHERE id = ? AND status_id = ?`,
		req.CategoryID, money.ToMinorUnits(req.Amount), req.Amount, req.Currency,
		req.ExpenseDate.Time, req.Description, req.ReceiptFile,
		req.ExpenseID, expense.StatusDraft)
	return tx.RowsAffected, tx.Error
}

// SubmitExpense stamps submitted_at exactly once: the Draft guard means a
// second submit matches no rows and leaves the original stamp untouched.
func (r *ExpenseRepository) SubmitExpense(id int64) (int64, error) {
	tx := r.db.Exec(`UPDATE expenses
		SET status_id = ?, submitted_at = ?
		WHERE id = ? AND status_id = ?`,
		expense.StatusSubmitted, time.Now().UTC(), id, expense.StatusDraft)
	return tx.RowsAffected, tx.Error
}

func (r *ExpenseRepository) ApproveExpense(id, reviewerID int64) (int64, error) {
	return r.reviewExpense(id, reviewerID, expense.StatusApproved)
}

func (r *ExpenseRepository) RejectExpense(id, reviewerID int64) (int64, error) {
	return r.reviewExpense(id, reviewerID, expense.StatusRejected)
}

// reviewExpense moves Submitted to a terminal status, stamping reviewer and
// review time together. The Submitted guard blocks backward transitions and
// double reviews.
func (r *ExpenseRepository) reviewExpense(id, reviewerID, statusID int64) (int64, error) {
	tx := r.db.Exec(`UPDATE expenses
		SET status_id = ?, reviewed_by = ?, reviewed_at = ?
		WHERE id = ? AND status_id = ?`,
		statusID, reviewerID, time.Now().UTC(), id, expense.StatusSubmitted)
	return tx.RowsAffected, tx.Error
}

func (r *ExpenseRepository) DeleteExpense(id int64) (int64, error) {
	tx := r.db.Exec(`DELETE FROM expenses WHERE id = ?`, id)
	return tx.RowsAffected, tx.Error
}

func (r *ExpenseRepository) GetStatuses() ([]*expense.Status, error) {
	var statuses []*expense.Status
	err := r.db.Raw(`SELECT id AS status_id, name AS status_name FROM expense_statuses ORDER BY id`).
		Scan(&statuses).Error
	return statuses, err
}

func (r *ExpenseRepository) GetExpenseSummary() ([]*expense.Summary, error) {
	var summary []*expense.Summary
	err := r.db.Raw(`
		SELECT c.name AS category_name,
		       COUNT(*) AS expense_count,
		       SUM(e.amount_minor) AS total_amount_minor,
		       SUM(e.amount_decimal) AS total_amount,
		       MAX(e.currency) AS currency
		FROM expenses e
		JOIN expense_categories c ON c.id = e.category_id
		GROUP BY c.name
		ORDER BY c.name`).
		Scan(&summary).Error
	return summary, err
}
