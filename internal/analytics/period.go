package analytics

import (
	"errors"
	"time"

	"github.com/evlampy/storeboard/internal/entity"
)

// Precondition violations. Dirty data never raises these; they indicate a
// caller bug and are returned instead of being reinterpreted.
var (
	ErrInvalidWindow  = errors.New("analytics: window start is after end")
	ErrInvalidSupport = errors.New("analytics: min support must not be negative")
	ErrInvalidPeriod  = errors.New("analytics: period days must be positive")
)

// dayKeyFormat is the bucket key for all per-day breakdowns.
const dayKeyFormat = "2006-01-02"

// FilterOrders returns orders placed within start-of-day(From) through
// end-of-day(To) inclusive, any status. Orders with a zero timestamp are
// excluded rather than failing the whole aggregation.
func FilterOrders(orders []entity.Order, window entity.TimeRange) ([]entity.Order, error) {
	if err := window.Validate(); err != nil {
		return nil, ErrInvalidWindow
	}
	from := startOfDay(window.From)
	to := endOfDay(window.To)
	var out []entity.Order
	for _, o := range orders {
		if o.CreatedAt.IsZero() {
			continue
		}
		if o.CreatedAt.Before(from) || o.CreatedAt.After(to) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// QualifyingOrders narrows a filtered order set to the status whitelist used
// for net sales and profit.
func QualifyingOrders(orders []entity.Order) []entity.Order {
	var out []entity.Order
	for _, o := range orders {
		if o.Status.IsQualifying() {
			out = append(out, o)
		}
	}
	return out
}

// FilterExpenses returns expenses dated within the window.
func FilterExpenses(expenses []entity.Expense, window entity.TimeRange) ([]entity.Expense, error) {
	if err := window.Validate(); err != nil {
		return nil, ErrInvalidWindow
	}
	from := startOfDay(window.From)
	to := endOfDay(window.To)
	var out []entity.Expense
	for _, e := range expenses {
		if e.Date.IsZero() {
			continue
		}
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
