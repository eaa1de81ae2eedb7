package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	categorymodel "github.com/ardiputra/expense-portal/internal/core/datamodel/category"
	expensemodel "github.com/ardiputra/expense-portal/internal/core/datamodel/expense"
	usermodel "github.com/ardiputra/expense-portal/internal/core/datamodel/user"
	"github.com/ardiputra/expense-portal/internal/expense"
	"github.com/ardiputra/expense-portal/internal/money"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		_, db, err := openDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to open db: %v", err)
		}

		if clearData {
			if err := db.Exec("DELETE FROM expenses").Error; err != nil {
				log.Fatalf("failed to clear expenses: %v", err)
			}
			fmt.Println("Cleared existing expenses")
		}

		seedStatuses(db)
		seedCategories(db)
		seedUsers(db)
		seedExpenses(db)
	},
}

// seedStatuses backfills the lifecycle enumeration if the migration seed is
// missing, since every expense row references it.
func seedStatuses(db *gorm.DB) {
	for _, s := range expense.Statuses() {
		var exists int
		row := db.Raw("SELECT 1 FROM expense_statuses WHERE id = ?", s.StatusID).Row()
		if err := row.Scan(&exists); err == nil {
			continue
		}
		record := expensemodel.ExpenseStatus{ID: s.StatusID, Name: s.StatusName}
		if err := db.Create(&record).Error; err != nil {
			log.Fatalf("failed to seed status %s: %v", s.StatusName, err)
		}
		fmt.Println("Seeded status:", s.StatusName)
	}
}

// seedCategories backfills any reference categories missing from the
// migration seed, so a partially provisioned database still works.
func seedCategories(db *gorm.DB) {
	for _, name := range []string{"Travel", "Meals", "Supplies", "Accommodation", "Other"} {
		var exists int
		row := db.Raw("SELECT 1 FROM expense_categories WHERE name = ?", name).Row()
		if err := row.Scan(&exists); err == nil {
			continue
		}
		c := categorymodel.ExpenseCategory{Name: name, IsActive: true}
		if err := db.Create(&c).Error; err != nil {
			log.Fatalf("failed to seed category %s: %v", name, err)
		}
		fmt.Println("Seeded category:", name)
	}
}

func seedUsers(db *gorm.DB) {
	managerID := int64(2)
	users := []usermodel.User{
		{ID: 2, Name: "Bob Manager", Email: "bob.manager@example.co.uk", RoleID: 2, RoleName: "Manager", IsActive: true},
		{ID: 1, Name: "Alice Example", Email: "alice@example.co.uk", RoleID: 1, RoleName: "Employee", ManagerID: &managerID, IsActive: true},
	}

	for _, u := range users {
		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Printf("user %s already exists, skipping\n", u.Email)
			continue
		}
		if err := db.Create(&u).Error; err != nil {
			log.Fatalf("failed to seed user %s: %v", u.Email, err)
		}
		fmt.Println("Seeded user:", u.Email)
	}
}

func seedExpenses(db *gorm.DB) {
	var count int64
	if err := db.Raw("SELECT COUNT(*) FROM expenses").Scan(&count).Error; err != nil {
		log.Fatalf("failed to count expenses: %v", err)
	}
	if count > 0 {
		fmt.Println("expenses already present, skipping sample expenses")
		return
	}

	now := time.Now().UTC()
	reviewer := int64(2)

	samples := []expensemodel.Expense{
		{
			UserID: 1, CategoryID: 1, StatusID: expense.StatusSubmitted,
			AmountMinor: money.ToMinorUnits(decimal.RequireFromString("25.40")), AmountDecimal: decimal.RequireFromString("25.40"),
			Currency: expense.DefaultCurrency, ExpenseDate: now.AddDate(0, 0, -10),
			Description: strptr("Taxi from airport to client site"),
			SubmittedAt: timeptr(now.AddDate(0, 0, -9)), CreatedAt: now.AddDate(0, 0, -10),
		},
		{
			UserID: 1, CategoryID: 2, StatusID: expense.StatusApproved,
			AmountMinor: money.ToMinorUnits(decimal.RequireFromString("14.25")), AmountDecimal: decimal.RequireFromString("14.25"),
			Currency: expense.DefaultCurrency, ExpenseDate: now.AddDate(0, 0, -30),
			Description: strptr("Client lunch meeting"),
			SubmittedAt: timeptr(now.AddDate(0, 0, -29)),
			ReviewedBy:  &reviewer, ReviewedAt: timeptr(now.AddDate(0, 0, -28)),
			CreatedAt: now.AddDate(0, 0, -30),
		},
		{
			UserID: 1, CategoryID: 3, StatusID: expense.StatusDraft,
			AmountMinor: money.ToMinorUnits(decimal.RequireFromString("7.99")), AmountDecimal: decimal.RequireFromString("7.99"),
			Currency: expense.DefaultCurrency, ExpenseDate: now.AddDate(0, 0, -2),
			Description: strptr("Office stationery"),
			CreatedAt:   now.AddDate(0, 0, -2),
		},
		{
			UserID: 1, CategoryID: 4, StatusID: expense.StatusApproved,
			AmountMinor: money.ToMinorUnits(decimal.RequireFromString("123.00")), AmountDecimal: decimal.RequireFromString("123.00"),
			Currency: expense.DefaultCurrency, ExpenseDate: now.AddDate(0, 0, -45),
			Description: strptr("Hotel during client visit"),
			SubmittedAt: timeptr(now.AddDate(0, 0, -44)),
			ReviewedBy:  &reviewer, ReviewedAt: timeptr(now.AddDate(0, 0, -43)),
			CreatedAt: now.AddDate(0, 0, -45),
		},
	}

	for i := range samples {
		if err := db.Create(&samples[i]).Error; err != nil {
			log.Fatalf("failed to seed expense: %v", err)
		}
	}
	fmt.Printf("Seeded %d sample expenses\n", len(samples))
}

func strptr(s string) *string        { return &s }
func timeptr(t time.Time) *time.Time { return &t }
