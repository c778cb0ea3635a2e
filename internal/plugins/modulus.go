package plugins

import (
	"github.com/shopspring/decimal"

	"decimal-calc/internal/operations"
)

// Modulus returns the remainder of a / b truncated toward zero; the result
// takes the sign of a.
func Modulus(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Decimal{}, operations.ErrDivisionByZero
	}
	return a.Mod(b), nil
}
