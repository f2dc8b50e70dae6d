package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/evlampy/storeboard/internal/entity"
)

// DefaultVelocityPeriodDays is the trailing window used when the caller does
// not specify one.
const DefaultVelocityPeriodDays = 30

// AnalyzeVelocity builds a fixed-length trailing daily sales series per
// product and classifies its trend. Index 0 of the series is today, higher
// indices are further in the past. now anchors the day offsets.
func AnalyzeVelocity(orders []entity.Order, products []entity.Product, periodDays int, now time.Time) ([]entity.ProductVelocity, error) {
	if periodDays < 0 {
		return nil, ErrInvalidPeriod
	}
	if periodDays == 0 {
		periodDays = DefaultVelocityPeriodDays
	}

	daily := map[int][]int{}
	for _, p := range products {
		daily[p.ID] = make([]int, periodDays)
	}

	today := startOfDay(now)
	for i := range orders {
		o := &orders[i]
		if !o.Status.IsQualifying() || o.CreatedAt.IsZero() {
			continue
		}
		offset := int(today.Sub(startOfDay(o.CreatedAt)).Hours() / 24)
		if offset < 0 || offset >= periodDays {
			continue
		}
		for _, li := range o.LineItems {
			series, ok := daily[li.ProductID]
			if !ok || li.Quantity <= 0 {
				continue
			}
			series[offset] += li.Quantity
		}
	}

	out := make([]entity.ProductVelocity, 0, len(products))
	for _, p := range products {
		series := daily[p.ID]
		total := 0
		for _, q := range series {
			total += q
		}
		avg := SafeFloat(float64(total) / float64(periodDays))

		trend, change := classifyTrend(series)

		var sellOut *int
		if p.StockQuantity != nil && avg > 0 {
			days := int(math.Ceil(float64(*p.StockQuantity) / avg))
			sellOut = &days
		}

		out = append(out, entity.ProductVelocity{
			ProductID:     p.ID,
			Name:          p.Name,
			TotalSales:    total,
			AvgDailySales: avg,
			Trend:         trend,
			PercentChange: change,
			DaysToSellOut: sellOut,
			Daily:         series,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].TotalSales > out[j].TotalSales })
	return out, nil
}

// classifyTrend splits the series at its midpoint and compares the recent
// half (lower indices) against the older half. Changes within ±10% are
// considered stable.
func classifyTrend(series []int) (string, float64) {
	mid := len(series) / 2
	if mid == 0 {
		return "stable", 0
	}
	recent := mean(series[:mid])
	older := mean(series[mid:])
	if older == 0 {
		return "stable", 0
	}
	change := SafeFloat((recent - older) / older * 100)
	switch {
	case change > 10:
		return "increasing", change
	case change < -10:
		return "decreasing", change
	default:
		return "stable", change
	}
}

func mean(xs []int) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return float64(sum) / float64(len(xs))
}
