package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/evlampy/storeboard/internal/entity"
	"github.com/jmoiron/sqlx"
)

type (
	// Expenses is the manually tracked expense store. The analytics engine
	// only ever consumes read snapshots; writes come from the dashboard API.
	Expenses interface {
		AddExpense(ctx context.Context, insert *entity.ExpenseInsert) (*entity.Expense, error)
		UpdateExpense(ctx context.Context, id string, insert *entity.ExpenseInsert) error
		DeleteExpense(ctx context.Context, id string) error
		GetExpenseByID(ctx context.Context, id string) (*entity.Expense, error)
		// GetExpensesInRange returns the expense snapshot for a window,
		// ordered by date ascending.
		GetExpensesInRange(ctx context.Context, window entity.TimeRange) ([]entity.Expense, error)
	}

	// Repository aggregates the store interfaces plus transaction control.
	Repository interface {
		Expenses() Expenses
		Tx(ctx context.Context, f func(context.Context, Repository) error) error
		TxBegin(ctx context.Context) (Repository, error)
		TxCommit(ctx context.Context) error
		TxRollback(ctx context.Context) error
		Now() time.Time
		InTx() bool
		Close()
	}

	// ShopSource fetches raw storefront records for the engine. Absence of
	// data is an empty collection, never an error.
	ShopSource interface {
		FetchOrders(ctx context.Context, window entity.TimeRange) ([]entity.Order, error)
		FetchAllOrders(ctx context.Context) ([]entity.Order, error)
		FetchCustomers(ctx context.Context) ([]entity.Customer, error)
		FetchProducts(ctx context.Context) ([]entity.Product, error)
	}

	// CampaignSource fetches email campaign statistics from the mail
	// platform.
	CampaignSource interface {
		FetchCampaignStats(ctx context.Context) ([]entity.CampaignStats, error)
	}

	// Cache is the injected response cache capability used by the fetch
	// layer. Implementations must be safe for concurrent use.
	Cache interface {
		Get(key string) (any, bool)
		Set(key string, value any, ttl time.Duration)
		Expire(key string)
	}

	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
		PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
		PreparexContext(ctx context.Context, query string) (*sqlx.Stmt, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}
)
