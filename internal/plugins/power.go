package plugins

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"decimal-calc/internal/operations"
)

// Power raises a to the b-th power, keeping operations.Precision significant
// digits for inexact results. Undefined results, such as zero raised to a
// negative exponent, are reported as errors.
func Power(a, b decimal.Decimal) (decimal.Decimal, error) {
	out, err := a.PowWithPrecision(b, powerPlaces(a, b))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("power %s ^ %s: %w", a, b, err)
	}
	if out.IsZero() {
		return out, nil
	}
	return out.Round(operations.FractionalPlaces(operations.Magnitude(out))), nil
}

// powerPlaces estimates the magnitude of a^b from log10|a| and asks for one
// digit more than needed, so the final rounding in Power has something to
// round.
func powerPlaces(a, b decimal.Decimal) int32 {
	if a.IsZero() {
		return operations.FractionalPlaces(0)
	}
	m := operations.Magnitude(a)
	lg := float64(m) + math.Log10(a.Abs().Shift(int32(-m)).InexactFloat64())

	est := b.InexactFloat64() * lg
	switch {
	case math.IsNaN(est):
		est = 0
	case est > math.MaxInt32:
		est = math.MaxInt32
	case est < math.MinInt32:
		est = math.MinInt32
	}
	return operations.FractionalPlaces(int(math.Floor(est)) - 1)
}
