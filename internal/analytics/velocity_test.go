package analytics

import (
	"testing"
	"time"

	"github.com/evlampy/storeboard/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func velocityProduct(id int, stock *int) entity.Product {
	return entity.Product{ID: id, Name: "product", StockQuantity: stock}
}

func TestAnalyzeVelocity_DaysToSellOut(t *testing.T) {
	now := day(2024, time.June, 10)
	// 4 units sold on each of the 5 trailing days
	var orders []entity.Order
	for i := 0; i < 5; i++ {
		orders = append(orders, order(i+1, now.AddDate(0, 0, -i), entity.OrderStatusCompleted, 1, "40", item(1, 4, "40")))
	}

	out, err := AnalyzeVelocity(orders, []entity.Product{velocityProduct(1, intPtr(20))}, 5, now)
	require.NoError(t, err)
	require.Len(t, out, 1)

	v := out[0]
	assert.Equal(t, 20, v.TotalSales)
	assert.InDelta(t, 4, v.AvgDailySales, 0.001)
	require.NotNil(t, v.DaysToSellOut)
	assert.Equal(t, 5, *v.DaysToSellOut)
	assert.Equal(t, "stable", v.Trend)
}

func TestAnalyzeVelocity_UnknownStock(t *testing.T) {
	now := day(2024, time.June, 10)
	orders := []entity.Order{
		order(1, now, entity.OrderStatusCompleted, 1, "40", item(1, 4, "40")),
	}

	out, err := AnalyzeVelocity(orders, []entity.Product{velocityProduct(1, nil)}, 30, now)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Nil(t, out[0].DaysToSellOut)
}

func TestAnalyzeVelocity_NoSalesNoSellOut(t *testing.T) {
	now := day(2024, time.June, 10)
	out, err := AnalyzeVelocity(nil, []entity.Product{velocityProduct(1, intPtr(10))}, 30, now)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Nil(t, out[0].DaysToSellOut, "no sales means no projection")
	assert.Zero(t, out[0].AvgDailySales)
}

func TestAnalyzeVelocity_TrendIncreasing(t *testing.T) {
	now := day(2024, time.June, 30)
	var orders []entity.Order
	// heavy sales in the recent half, light in the older half
	for i := 0; i < 5; i++ {
		orders = append(orders, order(i+1, now.AddDate(0, 0, -i), entity.OrderStatusCompleted, 1, "50", item(1, 5, "50")))
	}
	orders = append(orders, order(10, now.AddDate(0, 0, -8), entity.OrderStatusCompleted, 1, "10", item(1, 1, "10")))

	out, err := AnalyzeVelocity(orders, []entity.Product{velocityProduct(1, nil)}, 10, now)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "increasing", out[0].Trend)
	assert.Greater(t, out[0].PercentChange, 10.0)
}

func TestAnalyzeVelocity_SeriesShape(t *testing.T) {
	now := day(2024, time.June, 10)
	orders := []entity.Order{
		order(1, now, entity.OrderStatusCompleted, 1, "10", item(1, 1, "10")),
		order(2, now.AddDate(0, 0, -3), entity.OrderStatusCompleted, 2, "20", item(1, 2, "20")),
		// outside the trailing window
		order(3, now.AddDate(0, 0, -40), entity.OrderStatusCompleted, 3, "90", item(1, 9, "90")),
		// non-qualifying
		order(4, now, entity.OrderStatusCancelled, 4, "50", item(1, 5, "50")),
	}

	out, err := AnalyzeVelocity(orders, []entity.Product{velocityProduct(1, nil)}, 7, now)
	require.NoError(t, err)
	require.Len(t, out, 1)

	v := out[0]
	require.Len(t, v.Daily, 7, "series length is always periodDays")
	assert.Equal(t, 1, v.Daily[0], "index 0 is today")
	assert.Equal(t, 2, v.Daily[3])
	assert.Equal(t, 3, v.TotalSales)
}

func TestAnalyzeVelocity_SortedByTotalSales(t *testing.T) {
	now := day(2024, time.June, 10)
	orders := []entity.Order{
		order(1, now, entity.OrderStatusCompleted, 1, "10", item(1, 1, "10"), item(2, 6, "60")),
	}

	out, err := AnalyzeVelocity(orders, []entity.Product{velocityProduct(1, nil), velocityProduct(2, nil)}, 30, now)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 2, out[0].ProductID)
	assert.Equal(t, 6, out[0].TotalSales)
}

func TestAnalyzeVelocity_NegativePeriod(t *testing.T) {
	_, err := AnalyzeVelocity(nil, nil, -5, day(2024, time.June, 10))
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
