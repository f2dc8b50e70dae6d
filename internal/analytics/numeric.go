package analytics

import (
	"math"

	"github.com/shopspring/decimal"
)

// SafeFloat coerces NaN and infinities to zero. Every float leaving the
// engine passes through this guard so callers can serialize results without
// checking for non-finite values.
func SafeFloat(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// pctOf returns part/whole*100 as a guarded float, zero when whole is zero.
func pctOf(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	f, _ := part.Div(whole).Mul(decimal.NewFromInt(100)).Float64()
	return SafeFloat(f)
}

// safeDecimalFromFloat builds a decimal from a possibly non-finite float.
func safeDecimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(SafeFloat(f))
}
