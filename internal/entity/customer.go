package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a read-only snapshot of a registered storefront customer.
type Customer struct {
	ID          int
	CreatedAt   time.Time
	OrdersCount int
	TotalSpent  decimal.Decimal
	Country     string
	Email       string
}
