package expense

import (
	"log/slog"

	"github.com/ardiputra/expense-portal/internal"
	"github.com/ardiputra/expense-portal/internal/health"
	"github.com/ardiputra/expense-portal/internal/money"
)

// Repository is the store contract. Operation names mirror the store's named
// operations; transitions return rows-affected, and zero means "not found or
// not eligible" rather than an error.
type Repository interface {
	GetExpenses() ([]*Expense, error)
	GetExpensesByStatus(statusName string) ([]*Expense, error)
	GetExpenseByID(id int64) (*Expense, error)
	CreateExpense(req *CreateExpenseRequest) (int64, error)
	UpdateExpense(req *UpdateExpenseRequest) (int64, error)
	SubmitExpense(id int64) (int64, error)
	ApproveExpense(id, reviewerID int64) (int64, error)
	RejectExpense(id, reviewerID int64) (int64, error)
	DeleteExpense(id int64) (int64, error)
	GetStatuses() ([]*Status, error)
	GetExpenseSummary() ([]*Summary, error)
}

// SampleData is the read-only subset served when the store is unreachable.
type SampleData interface {
	Expenses() []*Expense
	ExpensesByStatus(statusName string) []*Expense
	Statuses() []*Status
}

// Service fronts the store and the fallback data set. Reads degrade to the
// sample set when the store is down; writes fail fast instead, since the
// sample set is shared and must never be mutated.
type Service struct {
	repo   Repository
	sample SampleData
	health *health.State
	logger *slog.Logger
}

func NewService(repo Repository, sample SampleData, state *health.State, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		sample: sample,
		health: state,
		logger: logger,
	}
}

// ListExpenses returns all expenses. The bool reports fallback sourcing.
func (s *Service) ListExpenses() ([]*Expense, bool, error) {
	if !s.health.Connected() {
		return s.sample.Expenses(), true, nil
	}
	expenses, err := s.repo.GetExpenses()
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err)
		return nil, false, internal.NewInternalError("failed to list expenses", err)
	}
	return expenses, false, nil
}

// ListExpensesByStatus filters by status name, case-insensitively. An unknown
// status yields an empty list, not an error.
func (s *Service) ListExpensesByStatus(statusName string) ([]*Expense, bool, error) {
	if !s.health.Connected() {
		return s.sample.ExpensesByStatus(statusName), true, nil
	}
	expenses, err := s.repo.GetExpensesByStatus(statusName)
	if err != nil {
		s.logger.Error("failed to list expenses by status", "error", err, "status", statusName)
		return nil, false, internal.NewInternalError("failed to list expenses", err)
	}
	return expenses, false, nil
}

// GetExpenseByID looks up a single expense. The sample set only mirrors the
// list-style reads, so this is a store-only operation.
func (s *Service) GetExpenseByID(id int64) (*Expense, error) {
	if !s.health.Connected() {
		return nil, internal.ErrStoreUnavailable
	}
	exp, err := s.repo.GetExpenseByID(id)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to get expense", "error", err, "expense_id", id)
		return nil, internal.NewInternalError("failed to get expense", err)
	}
	return exp, nil
}

// CreateExpense creates a Draft expense and returns its id.
func (s *Service) CreateExpense(req *CreateExpenseRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		s.logger.Warn("create expense validation failed", "error", err, "user_id", req.UserID)
		return 0, err
	}
	if !s.health.Connected() {
		return 0, internal.ErrStoreUnavailable
	}

	id, err := s.repo.CreateExpense(req)
	if err != nil {
		s.logger.Error("failed to create expense", "error", err, "user_id", req.UserID)
		return 0, internal.NewInternalError("failed to create expense", err)
	}

	s.logger.Info("expense created",
		"expense_id", id,
		"user_id", req.UserID,
		"category_id", req.CategoryID,
		"amount_minor", money.ToMinorUnits(req.Amount),
		"currency", req.Currency)
	return id, nil
}

// UpdateExpense replaces the mutable fields of a Draft expense. Zero rows
// affected means the expense does not exist or has left Draft; callers treat
// that as not-found, not as success.
func (s *Service) UpdateExpense(req *UpdateExpenseRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		s.logger.Warn("update expense validation failed", "error", err, "expense_id", req.ExpenseID)
		return 0, err
	}
	if !s.health.Connected() {
		return 0, internal.ErrStoreUnavailable
	}

	rows, err := s.repo.UpdateExpense(req)
	if err != nil {
		s.logger.Error("failed to update expense", "error", err, "expense_id", req.ExpenseID)
		return 0, internal.NewInternalError("failed to update expense", err)
	}
	if rows > 0 {
		s.logger.Info("expense updated", "expense_id", req.ExpenseID)
	}
	return rows, nil
}

// SubmitExpense transitions Draft -> Submitted and stamps submitted_at once.
func (s *Service) SubmitExpense(id int64) (int64, error) {
	if id <= 0 {
		return 0, internal.NewValidationError("expense id is required", internal.ErrCodeValidationFailed)
	}
	if !s.health.Connected() {
		return 0, internal.ErrStoreUnavailable
	}

	rows, err := s.repo.SubmitExpense(id)
	if err != nil {
		s.logger.Error("failed to submit expense", "error", err, "expense_id", id)
		return 0, internal.NewInternalError("failed to submit expense", err)
	}
	if rows > 0 {
		s.logger.Info("expense submitted", "expense_id", id)
	} else {
		s.logger.Warn("submit affected no rows", "expense_id", id)
	}
	return rows, nil
}

// ApproveExpense transitions Submitted -> Approved and stamps the reviewer.
func (s *Service) ApproveExpense(id, reviewerID int64) (int64, error) {
	return s.review(id, reviewerID, StatusApproved)
}

// RejectExpense transitions Submitted -> Rejected and stamps the reviewer.
func (s *Service) RejectExpense(id, reviewerID int64) (int64, error) {
	return s.review(id, reviewerID, StatusRejected)
}

func (s *Service) review(id, reviewerID, target int64) (int64, error) {
	if id <= 0 {
		return 0, internal.NewValidationError("expense id is required", internal.ErrCodeValidationFailed)
	}
	if reviewerID <= 0 {
		return 0, internal.NewValidationError("reviewerId is required", internal.ErrCodeValidationFailed)
	}
	if !s.health.Connected() {
		return 0, internal.ErrStoreUnavailable
	}

	var (
		rows int64
		err  error
	)
	if target == StatusApproved {
		rows, err = s.repo.ApproveExpense(id, reviewerID)
	} else {
		rows, err = s.repo.RejectExpense(id, reviewerID)
	}
	if err != nil {
		s.logger.Error("failed to review expense", "error", err, "expense_id", id, "reviewer_id", reviewerID)
		return 0, internal.NewInternalError("failed to review expense", err)
	}
	if rows > 0 {
		s.logger.Info("expense reviewed", "expense_id", id, "reviewer_id", reviewerID, "status_id", target)
	} else {
		s.logger.Warn("review affected no rows", "expense_id", id, "status_id", target)
	}
	return rows, nil
}

// DeleteExpense hard-deletes; zero rows means the id did not exist.
func (s *Service) DeleteExpense(id int64) (int64, error) {
	if id <= 0 {
		return 0, internal.NewValidationError("expense id is required", internal.ErrCodeValidationFailed)
	}
	if !s.health.Connected() {
		return 0, internal.ErrStoreUnavailable
	}

	rows, err := s.repo.DeleteExpense(id)
	if err != nil {
		s.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return 0, internal.NewInternalError("failed to delete expense", err)
	}
	if rows > 0 {
		s.logger.Info("expense deleted", "expense_id", id)
	}
	return rows, nil
}

// ListStatuses returns the lifecycle enumeration.
func (s *Service) ListStatuses() ([]*Status, bool, error) {
	if !s.health.Connected() {
		return s.sample.Statuses(), true, nil
	}
	statuses, err := s.repo.GetStatuses()
	if err != nil {
		s.logger.Error("failed to list statuses", "error", err)
		return nil, false, internal.NewInternalError("failed to list statuses", err)
	}
	return statuses, false, nil
}

// Summary aggregates count and totals per category. In fallback mode it is
// computed from the sample expenses so the view stays browsable.
func (s *Service) Summary() ([]*Summary, bool, error) {
	if !s.health.Connected() {
		return summarize(s.sample.Expenses()), true, nil
	}
	summary, err := s.repo.GetExpenseSummary()
	if err != nil {
		s.logger.Error("failed to summarize expenses", "error", err)
		return nil, false, internal.NewInternalError("failed to summarize expenses", err)
	}
	return summary, false, nil
}

func summarize(expenses []*Expense) []*Summary {
	byCategory := make(map[string]*Summary)
	var order []string
	for _, e := range expenses {
		entry, ok := byCategory[e.CategoryName]
		if !ok {
			entry = &Summary{CategoryName: e.CategoryName, Currency: e.Currency}
			byCategory[e.CategoryName] = entry
			order = append(order, e.CategoryName)
		}
		entry.ExpenseCount++
		entry.TotalAmountMinor += e.AmountMinor
		entry.TotalAmount = entry.TotalAmount.Add(e.AmountDecimal)
	}

	result := make([]*Summary, 0, len(order))
	for _, name := range order {
		result = append(result, byCategory[name])
	}
	return result
}
