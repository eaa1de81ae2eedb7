package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ardiputra/expense-portal/internal"
	"github.com/ardiputra/expense-portal/internal/expense"
	"github.com/ardiputra/expense-portal/internal/expense/postgres"
)

func TestExpenseRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Expense Repository Suite")
}

var schema = []string{
	`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		role_id INTEGER NOT NULL,
		role_name TEXT NOT NULL,
		manager_id INTEGER,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME
	)`,
	`CREATE TABLE expense_statuses (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE expense_categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME
	)`,
	`CREATE TABLE expenses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		category_id INTEGER NOT NULL,
		status_id INTEGER NOT NULL DEFAULT 1,
		amount_minor INTEGER NOT NULL,
		amount_decimal NUMERIC NOT NULL,
		currency TEXT NOT NULL DEFAULT 'GBP',
		expense_date DATETIME NOT NULL,
		description TEXT,
		receipt_file TEXT,
		submitted_at DATETIME,
		reviewed_by INTEGER,
		reviewed_at DATETIME,
		created_at DATETIME
	)`,
}

var seed = []string{
	`INSERT INTO expense_statuses (id, name) VALUES (1, 'Draft'), (2, 'Submitted'), (3, 'Approved'), (4, 'Rejected')`,
	`INSERT INTO expense_categories (name) VALUES ('Travel'), ('Meals'), ('Supplies')`,
	`INSERT INTO users (id, name, email, role_id, role_name, manager_id) VALUES
		(1, 'Alice Example', 'alice@example.co.uk', 1, 'Employee', 2),
		(2, 'Bob Manager', 'bob.manager@example.co.uk', 2, 'Manager', NULL)`,
}

func openTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	Expect(err).NotTo(HaveOccurred())

	for _, stmt := range append(schema, seed...) {
		Expect(db.Exec(stmt).Error).NotTo(HaveOccurred())
	}
	return db
}

var _ = Describe("ExpenseRepository", func() {
	var (
		db   *gorm.DB
		repo expense.Repository
	)

	newCreate := func(amount string) *expense.CreateExpenseRequest {
		desc := "Taxi from airport to client site"
		req := &expense.CreateExpenseRequest{
			UserID:      1,
			CategoryID:  1,
			Amount:      decimal.RequireFromString(amount),
			Currency:    "GBP",
			Description: &desc,
		}
		req.ExpenseDate.Time = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		return req
	}

	BeforeEach(func() {
		db = openTestDB()
		repo = postgres.NewExpenseRepository(db)
	})

	Describe("CreateExpense", func() {
		It("creates a draft with both amount legs", func() {
			id, err := repo.CreateExpense(newCreate("25.40"))
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(BeNumerically(">", 0))

			exp, err := repo.GetExpenseByID(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(exp.StatusID).To(Equal(expense.StatusDraft))
			Expect(exp.StatusName).To(Equal("Draft"))
			Expect(exp.AmountMinor).To(Equal(int64(2540)))
			Expect(exp.AmountDecimal.Equal(decimal.RequireFromString("25.4"))).To(BeTrue())
			Expect(exp.UserName).To(Equal("Alice Example"))
			Expect(exp.CategoryName).To(Equal("Travel"))
			Expect(exp.SubmittedAt).To(BeNil())
			Expect(exp.ReviewedBy).To(BeNil())
			Expect(exp.ReviewerName).To(BeNil())
		})

		It("truncates fractional minor units instead of rounding", func() {
			id, err := repo.CreateExpense(newCreate("4.359"))
			Expect(err).NotTo(HaveOccurred())

			exp, err := repo.GetExpenseByID(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(exp.AmountMinor).To(Equal(int64(435)))
		})
	})

	Describe("GetExpenseByID", func() {
		It("returns the not-found sentinel for a missing id", func() {
			_, err := repo.GetExpenseByID(999)
			Expect(err).To(MatchError(internal.ErrExpenseNotFound))
		})
	})

	Describe("UpdateExpense", func() {
		It("updates a draft and recomputes minor units", func() {
			id, _ := repo.CreateExpense(newCreate("25.40"))

			req := &expense.UpdateExpenseRequest{
				ExpenseID:  id,
				CategoryID: 2,
				Amount:     decimal.RequireFromString("9.99"),
				Currency:   "GBP",
			}
			req.ExpenseDate.Time = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

			rows, err := repo.UpdateExpense(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(Equal(int64(1)))

			exp, _ := repo.GetExpenseByID(id)
			Expect(exp.CategoryID).To(Equal(int64(2)))
			Expect(exp.AmountMinor).To(Equal(int64(999)))
		})

		It("affects no rows once the expense leaves draft", func() {
			id, _ := repo.CreateExpense(newCreate("25.40"))
			_, err := repo.SubmitExpense(id)
			Expect(err).NotTo(HaveOccurred())

			req := &expense.UpdateExpenseRequest{
				ExpenseID:  id,
				CategoryID: 2,
				Amount:     decimal.RequireFromString("9.99"),
				Currency:   "GBP",
			}
			req.ExpenseDate.Time = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

			rows, err := repo.UpdateExpense(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeZero())

			exp, _ := repo.GetExpenseByID(id)
			Expect(exp.AmountMinor).To(Equal(int64(2540)))
		})
	})

	Describe("SubmitExpense", func() {
		It("moves a draft to submitted and stamps submitted_at once", func() {
			id, _ := repo.CreateExpense(newCreate("25.40"))

			rows, err := repo.SubmitExpense(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(Equal(int64(1)))

			exp, _ := repo.GetExpenseByID(id)
			Expect(exp.StatusID).To(Equal(expense.StatusSubmitted))
			Expect(exp.SubmittedAt).NotTo(BeNil())
			firstStamp := *exp.SubmittedAt

			rows, err = repo.SubmitExpense(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeZero())

			exp, _ = repo.GetExpenseByID(id)
			Expect(exp.SubmittedAt.Equal(firstStamp)).To(BeTrue())
		})

		It("affects no rows for a missing expense", func() {
			rows, err := repo.SubmitExpense(999)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeZero())
		})
	})

	Describe("ApproveExpense", func() {
		It("refuses a draft", func() {
			id, _ := repo.CreateExpense(newCreate("25.40"))

			rows, err := repo.ApproveExpense(id, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeZero())
		})

		It("moves a submitted expense to approved with the reviewer stamped", func() {
			id, _ := repo.CreateExpense(newCreate("25.40"))
			repo.SubmitExpense(id)

			rows, err := repo.ApproveExpense(id, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(Equal(int64(1)))

			exp, _ := repo.GetExpenseByID(id)
			Expect(exp.StatusID).To(Equal(expense.StatusApproved))
			Expect(exp.ReviewedBy).To(HaveValue(Equal(int64(2))))
			Expect(exp.ReviewerName).To(HaveValue(Equal("Bob Manager")))
			Expect(exp.ReviewedAt).NotTo(BeNil())
		})

		It("leaves a terminal expense untouched", func() {
			id, _ := repo.CreateExpense(newCreate("25.40"))
			repo.SubmitExpense(id)
			repo.ApproveExpense(id, 2)

			rows, err := repo.RejectExpense(id, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeZero())

			exp, _ := repo.GetExpenseByID(id)
			Expect(exp.StatusID).To(Equal(expense.StatusApproved))
		})
	})

	Describe("RejectExpense", func() {
		It("moves a submitted expense to rejected", func() {
			id, _ := repo.CreateExpense(newCreate("25.40"))
			repo.SubmitExpense(id)

			rows, err := repo.RejectExpense(id, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(Equal(int64(1)))

			exp, _ := repo.GetExpenseByID(id)
			Expect(exp.StatusID).To(Equal(expense.StatusRejected))
			Expect(exp.StatusName).To(Equal("Rejected"))
		})
	})

	Describe("GetExpensesByStatus", func() {
		It("matches status names case-insensitively", func() {
			id, _ := repo.CreateExpense(newCreate("25.40"))
			repo.CreateExpense(newCreate("7.99"))
			repo.SubmitExpense(id)

			submitted, err := repo.GetExpensesByStatus("SUBMITTED")
			Expect(err).NotTo(HaveOccurred())
			Expect(submitted).To(HaveLen(1))
			Expect(submitted[0].ExpenseID).To(Equal(id))

			drafts, err := repo.GetExpensesByStatus("draft")
			Expect(err).NotTo(HaveOccurred())
			Expect(drafts).To(HaveLen(1))
		})

		It("returns an empty list for an unknown status", func() {
			repo.CreateExpense(newCreate("25.40"))

			expenses, err := repo.GetExpensesByStatus("Archived")
			Expect(err).NotTo(HaveOccurred())
			Expect(expenses).To(BeEmpty())
		})
	})

	Describe("DeleteExpense", func() {
		It("removes the row and reports it", func() {
			id, _ := repo.CreateExpense(newCreate("25.40"))

			rows, err := repo.DeleteExpense(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(Equal(int64(1)))

			_, err = repo.GetExpenseByID(id)
			Expect(err).To(MatchError(internal.ErrExpenseNotFound))
		})
	})

	Describe("GetStatuses", func() {
		It("returns the lifecycle in ordinal order", func() {
			statuses, err := repo.GetStatuses()
			Expect(err).NotTo(HaveOccurred())
			Expect(statuses).To(HaveLen(4))
			Expect(statuses[0].StatusName).To(Equal("Draft"))
			Expect(statuses[3].StatusName).To(Equal("Rejected"))
		})
	})

	Describe("GetExpenseSummary", func() {
		It("aggregates counts and totals per category", func() {
			repo.CreateExpense(newCreate("25.40"))
			repo.CreateExpense(newCreate("14.25"))

			other := newCreate("7.99")
			other.CategoryID = 2
			repo.CreateExpense(other)

			summary, err := repo.GetExpenseSummary()
			Expect(err).NotTo(HaveOccurred())
			Expect(summary).To(HaveLen(2))

			Expect(summary[0].CategoryName).To(Equal("Meals"))
			Expect(summary[0].ExpenseCount).To(Equal(int64(1)))
			Expect(summary[0].TotalAmountMinor).To(Equal(int64(799)))

			Expect(summary[1].CategoryName).To(Equal("Travel"))
			Expect(summary[1].ExpenseCount).To(Equal(int64(2)))
			Expect(summary[1].TotalAmountMinor).To(Equal(int64(3965)))
			Expect(summary[1].Currency).To(Equal("GBP"))
		})
	})
})
