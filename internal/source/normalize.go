package source

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/evlampy/storeboard/internal/entity"
	"github.com/shopspring/decimal"
)

// Raw platform shapes. The platform reports money as strings, sometimes as
// numbers, sometimes not at all; dates in a few different layouts. All of
// that defensive coercion happens here so the engine only ever sees clean
// entities.

type rawOrder struct {
	ID            int               `json:"id"`
	CreatedAt     string            `json:"created_at"`
	Status        string            `json:"status"`
	CustomerID    int               `json:"customer_id"`
	LineItems     []rawLineItem     `json:"line_items"`
	Subtotal      json.RawMessage   `json:"subtotal"`
	TotalTax      json.RawMessage   `json:"total_tax"`
	ShippingTotal json.RawMessage   `json:"shipping_total"`
	DiscountTotal json.RawMessage   `json:"discount_total"`
	Total         json.RawMessage   `json:"total"`
	Refunds       []rawRefund       `json:"refunds"`
	Billing       rawBilling        `json:"billing"`
	PaymentMethod string            `json:"payment_method_title"`
	MetaData      []rawMetaKeyValue `json:"meta_data"`
}

type rawLineItem struct {
	ProductID int               `json:"product_id"`
	Name      string            `json:"name"`
	Quantity  json.RawMessage   `json:"quantity"`
	Total     json.RawMessage   `json:"total"`
	MetaData  []rawMetaKeyValue `json:"meta_data"`
}

type rawRefund struct {
	Total json.RawMessage `json:"total"`
}

type rawBilling struct {
	Country string `json:"country"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

type rawMetaKeyValue struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type rawCustomer struct {
	ID         int             `json:"id"`
	CreatedAt  string          `json:"created_at"`
	OrderCount json.RawMessage `json:"orders_count"`
	TotalSpent json.RawMessage `json:"total_spent"`
	Billing    rawBilling      `json:"billing"`
	Email      string          `json:"email"`
}

type rawProduct struct {
	ID            int               `json:"id"`
	Name          string            `json:"name"`
	Price         json.RawMessage   `json:"price"`
	StockQuantity *int              `json:"stock_quantity"`
	Categories    []rawNamed        `json:"categories"`
	MetaData      []rawMetaKeyValue `json:"meta_data"`
}

type rawNamed struct {
	Name string `json:"name"`
}

// costMetaKeys are the product metadata keys that may carry the unit cost,
// checked in order.
var costMetaKeys = []string{"cost_of_goods", "unit_cost", "_wc_cog_cost"}

func normalizeOrder(r *rawOrder) entity.Order {
	o := entity.Order{
		ID:                 r.ID,
		CreatedAt:          parseTime(r.CreatedAt),
		Status:             entity.OrderStatus(strings.ToLower(strings.TrimSpace(r.Status))),
		CustomerID:         r.CustomerID,
		PaymentMethodLabel: r.PaymentMethod,
		Billing: entity.Billing{
			Country: r.Billing.Country,
			Email:   r.Billing.Email,
			Name:    r.Billing.Name,
		},
		Totals: entity.OrderTotals{
			Subtotal:   parseAmount(r.Subtotal),
			Tax:        parseAmount(r.TotalTax),
			Shipping:   parseAmount(r.ShippingTotal),
			Discount:   parseAmount(r.DiscountTotal),
			GrandTotal: parseAmount(r.Total),
		},
		AttributionMeta: metaToMap(r.MetaData),
	}

	for i := range r.LineItems {
		li := &r.LineItems[i]
		meta := metaToMap(li.MetaData)
		o.LineItems = append(o.LineItems, entity.LineItem{
			ProductID: li.ProductID,
			Name:      li.Name,
			Quantity:  parseInt(li.Quantity),
			LineTotal: parseAmount(li.Total),
			Category:  meta["category"],
		})
	}

	for i := range r.Refunds {
		o.Refunds = append(o.Refunds, entity.Refund{Amount: parseAmount(r.Refunds[i].Total)})
	}

	return o
}

func normalizeCustomer(r *rawCustomer) entity.Customer {
	return entity.Customer{
		ID:          r.ID,
		CreatedAt:   parseTime(r.CreatedAt),
		OrdersCount: parseInt(r.OrderCount),
		TotalSpent:  parseAmount(r.TotalSpent),
		Country:     r.Billing.Country,
		Email:       r.Email,
	}
}

func normalizeProduct(r *rawProduct) entity.Product {
	p := entity.Product{
		ID:            r.ID,
		Name:          r.Name,
		UnitPrice:     parseAmount(r.Price),
		UnitCost:      decimal.Zero,
		StockQuantity: r.StockQuantity,
	}
	for _, c := range r.Categories {
		if c.Name != "" {
			p.Categories = append(p.Categories, c.Name)
		}
	}

	meta := metaToMap(r.MetaData)
	for _, key := range costMetaKeys {
		if v, ok := meta[key]; ok && v != "" {
			p.UnitCost = parseAmount(json.RawMessage(strconv.Quote(v)))
			break
		}
	}
	if p.UnitCost.IsNegative() {
		p.UnitCost = decimal.Zero
	}
	return p
}

// parseAmount accepts a JSON string or number and yields a finite decimal.
// Anything unparseable, NaN or infinite becomes zero.
func parseAmount(raw json.RawMessage) decimal.Decimal {
	if len(raw) == 0 {
		return decimal.Zero
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return decimal.Zero
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(f)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseInt accepts a JSON number or numeric string, zero on anything else.
func parseInt(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var i int
	if err := json.Unmarshal(raw, &i); err == nil {
		return i
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return i
}

// timeLayouts are the timestamp layouts the platform has been seen to emit.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTime returns the zero time on malformed input; downstream filters
// exclude such records instead of failing the aggregation.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func metaToMap(meta []rawMetaKeyValue) map[string]string {
	if len(meta) == 0 {
		return nil
	}
	out := make(map[string]string, len(meta))
	for _, kv := range meta {
		if kv.Key == "" {
			continue
		}
		var s string
		if err := json.Unmarshal(kv.Value, &s); err != nil {
			// non-string metadata values are kept verbatim
			s = strings.Trim(string(kv.Value), `"`)
		}
		out[kv.Key] = s
	}
	return out
}
