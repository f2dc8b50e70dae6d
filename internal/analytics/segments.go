package analytics

import (
	"sort"
	"time"

	"github.com/evlampy/storeboard/internal/entity"
	"github.com/shopspring/decimal"
)

// Segment names, in rule priority order.
const (
	SegmentChampions          = "Champions"
	SegmentLoyalCustomers     = "Loyal Customers"
	SegmentPotentialLoyalists = "Potential Loyalists"
	SegmentAtRisk             = "At Risk"
	SegmentLost               = "Lost"
)

// segmentOrder fixes the output ordering of non-empty segments.
var segmentOrder = map[string]int{
	SegmentChampions:          0,
	SegmentLoyalCustomers:     1,
	SegmentPotentialLoyalists: 2,
	SegmentAtRisk:             3,
	SegmentLost:               4,
}

type rfmStats struct {
	lastOrder  time.Time
	orderCount int
	totalSpent decimal.Decimal
}

// segmentRule classifies one customer's recency/frequency/monetary stats.
// Rules run in fixed order, first match wins, so each purchasing customer
// lands in exactly one segment.
type segmentRule struct {
	name  string
	match func(days float64, orders int, spent decimal.Decimal) bool
}

var segmentRules = []segmentRule{
	{SegmentChampions, func(days float64, orders int, spent decimal.Decimal) bool {
		return days <= 30 && orders >= 3 && spent.GreaterThanOrEqual(decimal.NewFromInt(200))
	}},
	{SegmentLoyalCustomers, func(days float64, orders int, _ decimal.Decimal) bool {
		return orders >= 3 && days <= 90
	}},
	{SegmentPotentialLoyalists, func(days float64, orders int, _ decimal.Decimal) bool {
		return days <= 60 && orders >= 1
	}},
	{SegmentAtRisk, func(days float64, _ int, _ decimal.Decimal) bool {
		return days <= 180
	}},
	{SegmentLost, func(float64, int, decimal.Decimal) bool { return true }},
}

// SegmentCustomers classifies every purchasing customer into exactly one
// RFM-style segment from their qualifying orders. Guests are excluded. Only
// non-empty segments are returned. now anchors the recency computation.
func SegmentCustomers(orders []entity.Order, now time.Time) []entity.CustomerSegment {
	stats := map[int]*rfmStats{}
	for i := range orders {
		o := &orders[i]
		if o.CustomerID == 0 || !o.Status.IsQualifying() || o.CreatedAt.IsZero() {
			continue
		}
		st, ok := stats[o.CustomerID]
		if !ok {
			st = &rfmStats{totalSpent: decimal.Zero}
			stats[o.CustomerID] = st
		}
		if o.CreatedAt.After(st.lastOrder) {
			st.lastOrder = o.CreatedAt
		}
		st.orderCount++
		st.totalSpent = st.totalSpent.Add(o.NetTotal())
	}

	segments := map[string]*entity.CustomerSegment{}
	for _, st := range stats {
		days := now.Sub(st.lastOrder).Hours() / 24
		name := classifySegment(days, st.orderCount, st.totalSpent)
		seg, ok := segments[name]
		if !ok {
			seg = &entity.CustomerSegment{Name: name, Revenue: decimal.Zero}
			segments[name] = seg
		}
		seg.Count++
		seg.Revenue = seg.Revenue.Add(st.totalSpent)
	}

	var out []entity.CustomerSegment
	for _, seg := range segments {
		seg.AvgOrderValue = seg.Revenue.Div(decimal.NewFromInt(int64(seg.Count))).Round(2)
		out = append(out, *seg)
	}
	sort.Slice(out, func(i, j int) bool {
		return segmentOrder[out[i].Name] < segmentOrder[out[j].Name]
	})
	return out
}

func classifySegment(days float64, orders int, spent decimal.Decimal) string {
	for _, rule := range segmentRules {
		if rule.match(days, orders, spent) {
			return rule.name
		}
	}
	return SegmentLost
}
