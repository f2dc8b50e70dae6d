package dto

import (
	"fmt"
	"time"

	"github.com/evlampy/storeboard/internal/entity"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ExpenseRequest is the JSON payload for creating or updating an expense.
type ExpenseRequest struct {
	Date              string  `json:"date"`
	Amount            float64 `json:"amount"`
	Category          string  `json:"category"`
	Description       string  `json:"description"`
	Source            string  `json:"source"`
	Vendor            string  `json:"vendor"`
	PaymentMethod     string  `json:"payment_method"`
	Recurring         bool    `json:"recurring"`
	RecurringInterval string  `json:"recurring_interval"`
}

// ConvertExpenseRequest parses the request into an insert payload. Category
// and amount validity is enforced by the store.
func ConvertExpenseRequest(req *ExpenseRequest) (*entity.ExpenseInsert, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("bad expense date %q: %w", req.Date, err)
	}
	return &entity.ExpenseInsert{
		Date:              date,
		Amount:            decimal.NewFromFloat(req.Amount),
		Category:          entity.ExpenseCategory(req.Category),
		Description:       req.Description,
		Source:            req.Source,
		Vendor:            req.Vendor,
		PaymentMethod:     req.PaymentMethod,
		Recurring:         req.Recurring,
		RecurringInterval: req.RecurringInterval,
	}, nil
}

type Expense struct {
	ID                string  `json:"id"`
	Date              string  `json:"date"`
	Amount            float64 `json:"amount"`
	Category          string  `json:"category"`
	Description       string  `json:"description"`
	Source            string  `json:"source"`
	Vendor            string  `json:"vendor"`
	PaymentMethod     string  `json:"payment_method"`
	Recurring         bool    `json:"recurring"`
	RecurringInterval string  `json:"recurring_interval"`
	CreatedAt         string  `json:"created_at"`
}

func ConvertExpense(e *entity.Expense) *Expense {
	return &Expense{
		ID:                e.ID,
		Date:              e.Date.Format(dateLayout),
		Amount:            money(e.Amount),
		Category:          string(e.Category),
		Description:       e.Description,
		Source:            e.Source,
		Vendor:            e.Vendor,
		PaymentMethod:     e.PaymentMethod,
		Recurring:         e.Recurring,
		RecurringInterval: e.RecurringInterval,
		CreatedAt:         e.CreatedAt.Format(time.RFC3339),
	}
}

func ConvertExpenses(expenses []entity.Expense) []Expense {
	out := make([]Expense, 0, len(expenses))
	for i := range expenses {
		out = append(out, *ConvertExpense(&expenses[i]))
	}
	return out
}
