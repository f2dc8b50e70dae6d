package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/asaskevich/govalidator"
	"github.com/evlampy/storeboard/internal/dependency"
	"github.com/evlampy/storeboard/internal/entity"
	"github.com/google/uuid"
)

var (
	// ErrExpenseNotFound is returned when an expense id does not exist.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrInvalidExpense is returned when an insert payload fails validation.
	ErrInvalidExpense = errors.New("invalid expense")
)

type expensesStore struct {
	*MYSQLStore
}

// Expenses returns an object implementing the Expenses interface
func (ms *MYSQLStore) Expenses() dependency.Expenses {
	return &expensesStore{
		MYSQLStore: ms,
	}
}

func validateExpenseInsert(insert *entity.ExpenseInsert) error {
	if _, err := govalidator.ValidateStruct(insert); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidExpense, err.Error())
	}
	if !insert.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidExpense)
	}
	if !entity.ValidExpenseCategories[insert.Category] {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidExpense, insert.Category)
	}
	return nil
}

func (ms *MYSQLStore) AddExpense(ctx context.Context, insert *entity.ExpenseInsert) (*entity.Expense, error) {
	if err := validateExpenseInsert(insert); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	err := ExecNamed(ctx, ms.DB(), `
		INSERT INTO expense
			(id, expense_date, amount, category, description, source, vendor, payment_method, recurring, recurring_interval)
		VALUES
			(:id, :date, :amount, :category, :description, :source, :vendor, :paymentMethod, :recurring, :recurringInterval)`,
		map[string]any{
			"id":                id,
			"date":              insert.Date,
			"amount":            insert.Amount,
			"category":          insert.Category,
			"description":       insert.Description,
			"source":            insert.Source,
			"vendor":            insert.Vendor,
			"paymentMethod":     insert.PaymentMethod,
			"recurring":         insert.Recurring,
			"recurringInterval": insert.RecurringInterval,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to add expense: %w", err)
	}

	return ms.GetExpenseByID(ctx, id)
}

func (ms *MYSQLStore) GetExpenseByID(ctx context.Context, id string) (*entity.Expense, error) {
	e, err := QueryNamedOne[entity.Expense](ctx, ms.DB(),
		`SELECT * FROM expense WHERE id = :id`, map[string]any{"id": id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return &e, nil
}

func (ms *MYSQLStore) UpdateExpense(ctx context.Context, id string, insert *entity.ExpenseInsert) error {
	if err := validateExpenseInsert(insert); err != nil {
		return err
	}

	res, err := ms.DB().ExecContext(ctx, `
		UPDATE expense
		SET expense_date = ?, amount = ?, category = ?, description = ?,
			source = ?, vendor = ?, payment_method = ?, recurring = ?, recurring_interval = ?
		WHERE id = ?`,
		insert.Date, insert.Amount, insert.Category, insert.Description,
		insert.Source, insert.Vendor, insert.PaymentMethod, insert.Recurring, insert.RecurringInterval,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func (ms *MYSQLStore) DeleteExpense(ctx context.Context, id string) error {
	res, err := ms.DB().ExecContext(ctx, `DELETE FROM expense WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func (ms *MYSQLStore) GetExpensesInRange(ctx context.Context, window entity.TimeRange) ([]entity.Expense, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	expenses, err := QueryListNamed[entity.Expense](ctx, ms.DB(), `
		SELECT * FROM expense
		WHERE DATE(expense_date) >= DATE(:from) AND DATE(expense_date) <= DATE(:to)
		ORDER BY expense_date ASC`,
		map[string]any{"from": window.From, "to": window.To})
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	return expenses, nil
}
