package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory is the closed set of manually tracked expense categories.
type ExpenseCategory string

const (
	ExpenseCategoryMarketing   ExpenseCategory = "Marketing"
	ExpenseCategoryAdvertising ExpenseCategory = "Advertising"
	ExpenseCategoryShipping    ExpenseCategory = "Shipping"
	ExpenseCategorySoftware    ExpenseCategory = "Software"
	ExpenseCategoryOperations  ExpenseCategory = "Operations"
	ExpenseCategorySalaries    ExpenseCategory = "Salaries"
	ExpenseCategoryRent        ExpenseCategory = "Rent"
	ExpenseCategoryUtilities   ExpenseCategory = "Utilities"
	ExpenseCategoryOther       ExpenseCategory = "Other"
)

var ValidExpenseCategories = map[ExpenseCategory]bool{
	ExpenseCategoryMarketing:   true,
	ExpenseCategoryAdvertising: true,
	ExpenseCategoryShipping:    true,
	ExpenseCategorySoftware:    true,
	ExpenseCategoryOperations:  true,
	ExpenseCategorySalaries:    true,
	ExpenseCategoryRent:        true,
	ExpenseCategoryUtilities:   true,
	ExpenseCategoryOther:       true,
}

// Expense represents the expense table. The analytics engine only ever reads
// a snapshot; writes go through the expense store.
type Expense struct {
	ID                string          `db:"id"`
	Date              time.Time       `db:"expense_date"`
	Amount            decimal.Decimal `db:"amount"`
	Category          ExpenseCategory `db:"category"`
	Description       string          `db:"description"`
	Source            string          `db:"source"`
	Vendor            string          `db:"vendor"`
	PaymentMethod     string          `db:"payment_method"`
	Recurring         bool            `db:"recurring"`
	RecurringInterval string          `db:"recurring_interval"`
	CreatedAt         time.Time       `db:"created_at"`
	Modified          time.Time       `db:"modified"`
}

type ExpenseInsert struct {
	Date              time.Time       `db:"expense_date" valid:"required"`
	Amount            decimal.Decimal `db:"amount" valid:"required"`
	Category          ExpenseCategory `db:"category" valid:"required"`
	Description       string          `db:"description" valid:"required"`
	Source            string          `db:"source" valid:"-"`
	Vendor            string          `db:"vendor" valid:"-"`
	PaymentMethod     string          `db:"payment_method" valid:"-"`
	Recurring         bool            `db:"recurring" valid:"-"`
	RecurringInterval string          `db:"recurring_interval" valid:"-"`
}
