package operations

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// Precision is the number of significant digits kept by inexact results.
	Precision = 28

	// MaxExponent bounds the adjusted exponent of an operand. Larger values
	// expand to millions of digits when rendered.
	MaxExponent = 999999

	// maxPlaces is the deepest fractional digit a result may carry. Smaller
	// results lose significant digits and eventually round to zero.
	maxPlaces = MaxExponent + Precision - 1
)

// ErrOperandRange is returned by ParseOperand for numbers at or beyond
// 10^(MaxExponent+1), or below 10^-MaxExponent.
var ErrOperandRange = errors.New("operand out of range")

// ParseOperand parses tok as a decimal and rejects values whose exponent
// lies outside [-MaxExponent, MaxExponent].
func ParseOperand(tok string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(tok)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.IsZero() {
		return d, nil
	}
	if adj := Magnitude(d); adj > MaxExponent || adj < -MaxExponent {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrOperandRange, tok)
	}
	if exp := int(d.Exponent()); exp < -MaxExponent || exp > MaxExponent {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrOperandRange, tok)
	}
	return d, nil
}

// Magnitude returns the power of ten of d's most significant digit, so 123
// gives 2 and 0.05 gives -2.
func Magnitude(d decimal.Decimal) int {
	return d.NumDigits() + int(d.Exponent()) - 1
}

// FractionalPlaces returns how many digits after the decimal point a result
// of the given magnitude needs to carry Precision significant digits. It is
// never negative.
func FractionalPlaces(magnitude int) int32 {
	places := Precision - 1 - magnitude
	if places < 0 {
		return 0
	}
	if places > maxPlaces {
		return maxPlaces
	}
	return int32(places)
}
