package analytics

import (
	"sort"
	"time"

	"github.com/evlampy/storeboard/internal/entity"
	"github.com/shopspring/decimal"
)

// SummarizeCustomers classifies the customer base for a window. It needs the
// FULL order history, not just the windowed subset: whether a customer is new
// or returning depends on their true first qualifying order, which may
// predate the window.
func SummarizeCustomers(allOrders []entity.Order, customers []entity.Customer, window entity.TimeRange) (entity.CustomerSummary, error) {
	if err := window.Validate(); err != nil {
		return entity.CustomerSummary{}, ErrInvalidWindow
	}

	firstOrder := map[int]time.Time{}
	for i := range allOrders {
		o := &allOrders[i]
		if o.CustomerID == 0 || !o.Status.IsQualifying() || o.CreatedAt.IsZero() {
			continue
		}
		if first, ok := firstOrder[o.CustomerID]; !ok || o.CreatedAt.Before(first) {
			firstOrder[o.CustomerID] = o.CreatedAt
		}
	}

	windowed, err := FilterOrders(allOrders, window)
	if err != nil {
		return entity.CustomerSummary{}, err
	}
	qualifying := QualifyingOrders(windowed)

	from := startOfDay(window.From)
	to := endOfDay(window.To)

	cs := entity.CustomerSummary{AvgLifetimeValue: decimal.Zero}
	seen := map[int]bool{}
	bySource := map[string]*entity.SourceMetric{}

	for i := range qualifying {
		o := &qualifying[i]

		if o.CustomerID == 0 {
			cs.GuestOrders++
		} else if !seen[o.CustomerID] {
			seen[o.CustomerID] = true
			first := firstOrder[o.CustomerID]
			if !first.Before(from) && !first.After(to) {
				cs.NewCustomers++
			} else {
				cs.ReturningCustomers++
			}
		}

		label := ResolveOrderSource(o.AttributionMeta)
		sm, ok := bySource[label]
		if !ok {
			sm = &entity.SourceMetric{Source: label, Revenue: decimal.Zero}
			bySource[label] = sm
		}
		sm.Orders++
		sm.Revenue = sm.Revenue.Add(o.NetTotal())
	}

	cs.TotalCustomers = len(customers)
	repeat := 0
	lifetime := decimal.Zero
	for _, c := range customers {
		if c.OrdersCount > 1 {
			repeat++
		}
		lifetime = lifetime.Add(c.TotalSpent)
	}
	if cs.TotalCustomers > 0 {
		cs.RetentionRate = SafeFloat(float64(repeat) / float64(cs.TotalCustomers) * 100)
		cs.AvgLifetimeValue = lifetime.Div(decimal.NewFromInt(int64(cs.TotalCustomers))).Round(2)
	}

	for _, sm := range bySource {
		cs.Attribution = append(cs.Attribution, *sm)
	}
	sort.Slice(cs.Attribution, func(i, j int) bool {
		return cs.Attribution[i].Revenue.GreaterThan(cs.Attribution[j].Revenue)
	})

	return cs, nil
}
