// Package fallback holds the fixed sample data set served while the expense
// store is unreachable. It is read-only: the provider exposes no mutators,
// and the facade rejects writes before they could ever reach it.
package fallback

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ardiputra/expense-portal/internal/category"
	"github.com/ardiputra/expense-portal/internal/expense"
	"github.com/ardiputra/expense-portal/internal/user"
)

type Provider struct {
	expenses   []*expense.Expense
	categories []*category.Category
	users      []*user.User
	statuses   []*expense.Status
}

func ptr[T any](v T) *T { return &v }

// NewProvider builds the sample set: two users, five categories, the four
// lifecycle statuses, and four expenses spread across the lifecycle so every
// status view has something to show.
func NewProvider() *Provider {
	now := time.Now()
	aliceEmail := "alice@example.co.uk"

	return &Provider{
		statuses: expense.Statuses(),
		categories: []*category.Category{
			{CategoryID: 1, CategoryName: "Travel", IsActive: true},
			{CategoryID: 2, CategoryName: "Meals", IsActive: true},
			{CategoryID: 3, CategoryName: "Supplies", IsActive: true},
			{CategoryID: 4, CategoryName: "Accommodation", IsActive: true},
			{CategoryID: 5, CategoryName: "Other", IsActive: true},
		},
		users: []*user.User{
			{
				UserID:      1,
				UserName:    "Alice Example",
				Email:       aliceEmail,
				RoleID:      user.RoleEmployee,
				RoleName:    "Employee",
				ManagerID:   ptr(int64(2)),
				ManagerName: ptr("Bob Manager"),
				IsActive:    true,
				CreatedAt:   now.AddDate(0, -6, 0),
			},
			{
				UserID:    2,
				UserName:  "Bob Manager",
				Email:     "bob.manager@example.co.uk",
				RoleID:    user.RoleManager,
				RoleName:  "Manager",
				IsActive:  true,
				CreatedAt: now.AddDate(-1, 0, 0),
			},
		},
		expenses: []*expense.Expense{
			{
				ExpenseID:     1,
				UserID:        1,
				UserName:      "Alice Example",
				Email:         aliceEmail,
				CategoryID:    1,
				CategoryName:  "Travel",
				StatusID:      expense.StatusSubmitted,
				StatusName:    expense.StatusNameSubmitted,
				AmountMinor:   2540,
				AmountDecimal: decimal.RequireFromString("25.40"),
				Currency:      expense.DefaultCurrency,
				ExpenseDate:   now.AddDate(0, 0, -10),
				Description:   ptr("Taxi from airport to client site"),
				SubmittedAt:   ptr(now.AddDate(0, 0, -9)),
				CreatedAt:     now.AddDate(0, 0, -10),
			},
			{
				ExpenseID:     2,
				UserID:        1,
				UserName:      "Alice Example",
				Email:         aliceEmail,
				CategoryID:    2,
				CategoryName:  "Meals",
				StatusID:      expense.StatusApproved,
				StatusName:    expense.StatusNameApproved,
				AmountMinor:   1425,
				AmountDecimal: decimal.RequireFromString("14.25"),
				Currency:      expense.DefaultCurrency,
				ExpenseDate:   now.AddDate(0, 0, -30),
				Description:   ptr("Client lunch meeting"),
				SubmittedAt:   ptr(now.AddDate(0, 0, -29)),
				ReviewedBy:    ptr(int64(2)),
				ReviewerName:  ptr("Bob Manager"),
				ReviewedAt:    ptr(now.AddDate(0, 0, -28)),
				CreatedAt:     now.AddDate(0, 0, -30),
			},
			{
				ExpenseID:     3,
				UserID:        1,
				UserName:      "Alice Example",
				Email:         aliceEmail,
				CategoryID:    3,
				CategoryName:  "Supplies",
				StatusID:      expense.StatusDraft,
				StatusName:    expense.StatusNameDraft,
				AmountMinor:   799,
				AmountDecimal: decimal.RequireFromString("7.99"),
				Currency:      expense.DefaultCurrency,
				ExpenseDate:   now.AddDate(0, 0, -2),
				Description:   ptr("Office stationery"),
				CreatedAt:     now.AddDate(0, 0, -2),
			},
			{
				ExpenseID:     4,
				UserID:        1,
				UserName:      "Alice Example",
				Email:         aliceEmail,
				CategoryID:    4,
				CategoryName:  "Accommodation",
				StatusID:      expense.StatusApproved,
				StatusName:    expense.StatusNameApproved,
				AmountMinor:   12300,
				AmountDecimal: decimal.RequireFromString("123.00"),
				Currency:      expense.DefaultCurrency,
				ExpenseDate:   now.AddDate(0, 0, -45),
				Description:   ptr("Hotel during client visit"),
				SubmittedAt:   ptr(now.AddDate(0, 0, -44)),
				ReviewedBy:    ptr(int64(2)),
				ReviewerName:  ptr("Bob Manager"),
				ReviewedAt:    ptr(now.AddDate(0, 0, -43)),
				CreatedAt:     now.AddDate(0, 0, -45),
			},
		},
	}
}

func (p *Provider) Expenses() []*expense.Expense {
	out := make([]*expense.Expense, len(p.expenses))
	copy(out, p.expenses)
	return out
}

func (p *Provider) ExpensesByStatus(statusName string) []*expense.Expense {
	out := make([]*expense.Expense, 0)
	for _, e := range p.expenses {
		if strings.EqualFold(e.StatusName, statusName) {
			out = append(out, e)
		}
	}
	return out
}

func (p *Provider) Categories() []*category.Category {
	out := make([]*category.Category, len(p.categories))
	copy(out, p.categories)
	return out
}

func (p *Provider) Users() []*user.User {
	out := make([]*user.User, len(p.users))
	copy(out, p.users)
	return out
}

func (p *Provider) Statuses() []*expense.Status {
	out := make([]*expense.Status, len(p.statuses))
	copy(out, p.statuses)
	return out
}
