package entity

import "github.com/shopspring/decimal"

// Product is a read-only snapshot of a catalog product. UnitCost comes from
// a cost metadata lookup on the platform and defaults to zero when absent.
type Product struct {
	ID            int
	Name          string
	UnitPrice     decimal.Decimal
	UnitCost      decimal.Decimal
	StockQuantity *int // nil when stock is not managed
	Categories    []string
}

// CostLookup maps product ids to unit costs. Missing entries mean zero cost.
type CostLookup map[int]decimal.Decimal

// Cost returns the unit cost for a product, zero when unknown.
func (cl CostLookup) Cost(productID int) decimal.Decimal {
	if c, ok := cl[productID]; ok {
		return c
	}
	return decimal.Zero
}

// CostLookupFromProducts builds a unit cost lookup from a product snapshot.
func CostLookupFromProducts(products []Product) CostLookup {
	cl := make(CostLookup, len(products))
	for _, p := range products {
		cl[p.ID] = p.UnitCost
	}
	return cl
}
