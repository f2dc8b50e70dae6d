package analytics

import (
	"math"
	"time"

	"github.com/evlampy/storeboard/internal/entity"
)

const (
	// DefaultForecastDays is the projection horizon used when the caller
	// does not specify one.
	DefaultForecastDays = 7

	// minForecastHistory is the minimum number of historical points needed
	// for a projection; shorter series yield an empty forecast.
	minForecastHistory = 7

	// zScore95 is the normal approximation multiplier for a 95% band.
	zScore95 = 1.96
)

// ForecastRevenue fits a least-squares linear trend to a short historical
// daily revenue series and projects a bounded forecast. This is intentionally
// a simple point estimate with a normal-approximation band, not a proper
// time series model.
func ForecastRevenue(history []entity.DailyPoint, forecastDays int) []entity.RevenueForecastPoint {
	if forecastDays <= 0 {
		forecastDays = DefaultForecastDays
	}
	n := len(history)
	if n < minForecastHistory {
		return nil
	}

	values := make([]float64, n)
	for i, p := range history {
		v, _ := p.Revenue.Float64()
		values[i] = SafeFloat(v)
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	stddev := math.Sqrt(variance / float64(n))

	slope := olsSlope(values)

	lastDate, err := time.Parse(dayKeyFormat, history[n-1].Date)
	if err != nil {
		return nil
	}

	out := make([]entity.RevenueForecastPoint, 0, forecastDays)
	for i := 1; i <= forecastDays; i++ {
		projected := math.Max(0, mean+slope*float64(n+i-1))
		lower := math.Max(0, projected-zScore95*stddev)
		upper := projected + zScore95*stddev
		out = append(out, entity.RevenueForecastPoint{
			Date:      lastDate.AddDate(0, 0, i),
			Projected: safeDecimalFromFloat(projected).Round(2),
			Lower:     safeDecimalFromFloat(lower).Round(2),
			Upper:     safeDecimalFromFloat(upper).Round(2),
		})
	}
	return out
}

// olsSlope is the ordinary least squares slope of values against their index.
func olsSlope(values []float64) float64 {
	n := float64(len(values))
	if n == 0 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return SafeFloat((n*sumXY - sumX*sumY) / denom)
}
