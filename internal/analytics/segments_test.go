package analytics

import (
	"testing"
	"time"

	"github.com/evlampy/storeboard/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentCustomers_Champions(t *testing.T) {
	now := day(2024, time.June, 1)
	// 4 orders, 500 total, last one 10 days ago
	orders := []entity.Order{
		order(1, now.AddDate(0, 0, -100), entity.OrderStatusCompleted, 1, "125"),
		order(2, now.AddDate(0, 0, -60), entity.OrderStatusCompleted, 1, "125"),
		order(3, now.AddDate(0, 0, -30), entity.OrderStatusCompleted, 1, "125"),
		order(4, now.AddDate(0, 0, -10), entity.OrderStatusCompleted, 1, "125"),
	}

	segments := SegmentCustomers(orders, now)
	require.Len(t, segments, 1)
	assert.Equal(t, SegmentChampions, segments[0].Name)
	assert.Equal(t, 1, segments[0].Count)
	assert.Equal(t, "500", segments[0].Revenue.String())
}

func TestSegmentCustomers_RuleOrder(t *testing.T) {
	now := day(2024, time.June, 1)
	tests := []struct {
		name       string
		daysAgo    int
		orderCount int
		perOrder   string
		want       string
	}{
		{"loyal, three orders within 90 days but low spend", 40, 3, "20", SegmentLoyalCustomers},
		{"potential loyalist, recent single order", 20, 1, "50", SegmentPotentialLoyalists},
		{"at risk, no order for four months", 120, 2, "300", SegmentAtRisk},
		{"lost, inactive over 180 days", 200, 5, "900", SegmentLost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var orders []entity.Order
			for i := 0; i < tt.orderCount; i++ {
				// spread orders backwards, most recent at tt.daysAgo
				created := now.AddDate(0, 0, -(tt.daysAgo + i*30))
				orders = append(orders, order(i+1, created, entity.OrderStatusCompleted, 1, tt.perOrder))
			}
			segments := SegmentCustomers(orders, now)
			require.Len(t, segments, 1)
			assert.Equal(t, tt.want, segments[0].Name)
		})
	}
}

func TestSegmentCustomers_TotalityAndExclusivity(t *testing.T) {
	now := day(2024, time.June, 1)
	var orders []entity.Order
	id := 0
	for cust := 1; cust <= 40; cust++ {
		// vary recency, frequency and spend across the customer base
		for o := 0; o <= cust%4; o++ {
			id++
			created := now.AddDate(0, 0, -(cust*7 + o*15))
			orders = append(orders, order(id, created, entity.OrderStatusCompleted, cust, "75"))
		}
	}
	// guests and non-qualifying orders must not produce segment members
	orders = append(orders,
		order(900, now.AddDate(0, 0, -5), entity.OrderStatusCompleted, 0, "50"),
		order(901, now.AddDate(0, 0, -5), entity.OrderStatusCancelled, 99, "50"),
	)

	segments := SegmentCustomers(orders, now)

	total := 0
	seen := map[string]bool{}
	for _, s := range segments {
		assert.False(t, seen[s.Name], "segment %s reported twice", s.Name)
		seen[s.Name] = true
		assert.Positive(t, s.Count, "empty segments are not returned")
		total += s.Count
	}
	assert.Equal(t, 40, total, "every purchasing customer is in exactly one segment")
}

func TestSegmentCustomers_AvgOrderValue(t *testing.T) {
	now := day(2024, time.June, 1)
	orders := []entity.Order{
		order(1, now.AddDate(0, 0, -10), entity.OrderStatusCompleted, 1, "60"),
		order(2, now.AddDate(0, 0, -12), entity.OrderStatusCompleted, 2, "40"),
	}

	segments := SegmentCustomers(orders, now)
	require.Len(t, segments, 1)
	assert.Equal(t, SegmentPotentialLoyalists, segments[0].Name)
	assert.Equal(t, 2, segments[0].Count)
	assert.Equal(t, "50", segments[0].AvgOrderValue.String(), "segment revenue divided by member count")
}
