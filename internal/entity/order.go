package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle status reported by the storefront platform.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusOnHold     OrderStatus = "on-hold"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
	OrderStatusFailed     OrderStatus = "failed"
)

// QualifyingStatuses are the statuses that count toward net sales and profit.
var QualifyingStatuses = map[OrderStatus]bool{
	OrderStatusCompleted:  true,
	OrderStatusProcessing: true,
	OrderStatusOnHold:     true,
}

// IsQualifying reports whether the status counts toward revenue metrics.
func (s OrderStatus) IsQualifying() bool {
	return QualifyingStatuses[s]
}

// Order is a read-only snapshot of a storefront order. Inputs may be
// inconsistent (grand total vs line totals) and are never mutated.
type Order struct {
	ID                 int
	CreatedAt          time.Time
	Status             OrderStatus
	CustomerID         int // 0 = guest checkout
	LineItems          []LineItem
	Totals             OrderTotals
	Refunds            []Refund
	Billing            Billing
	PaymentMethodLabel string
	AttributionMeta    map[string]string
}

type LineItem struct {
	ProductID int
	Name      string
	Quantity  int
	LineTotal decimal.Decimal
	Category  string // from line item metadata; empty means uncategorized
}

type OrderTotals struct {
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Shipping   decimal.Decimal
	Discount   decimal.Decimal
	GrandTotal decimal.Decimal
}

type Refund struct {
	Amount decimal.Decimal
}

type Billing struct {
	Country string
	Email   string
	Name    string
}

// NetTotal is the order grand total minus all associated refund amounts.
// Refund status is intentionally not checked, matching the storefront's
// own reporting.
func (o *Order) NetTotal() decimal.Decimal {
	net := o.Totals.GrandTotal
	for _, r := range o.Refunds {
		net = net.Sub(r.Amount.Abs())
	}
	return net
}

// RefundedTotal sums the absolute refund amounts on the order.
func (o *Order) RefundedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, r := range o.Refunds {
		total = total.Add(r.Amount.Abs())
	}
	return total
}
