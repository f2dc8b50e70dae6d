package analytics

import (
	"time"

	"github.com/evlampy/storeboard/internal/entity"
	"github.com/shopspring/decimal"
)

// test fixture helpers shared across the package tests

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func amount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func order(id int, created time.Time, status entity.OrderStatus, customerID int, grandTotal string, items ...entity.LineItem) entity.Order {
	return entity.Order{
		ID:         id,
		CreatedAt:  created,
		Status:     status,
		CustomerID: customerID,
		LineItems:  items,
		Totals:     entity.OrderTotals{GrandTotal: amount(grandTotal)},
		Billing:    entity.Billing{Country: "LV"},
	}
}

func item(productID, qty int, lineTotal string) entity.LineItem {
	return entity.LineItem{
		ProductID: productID,
		Name:      "product",
		Quantity:  qty,
		LineTotal: amount(lineTotal),
	}
}
