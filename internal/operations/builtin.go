package operations

import "github.com/shopspring/decimal"

func Add(a, b decimal.Decimal) (decimal.Decimal, error) {
	return a.Add(b), nil
}

func Subtract(a, b decimal.Decimal) (decimal.Decimal, error) {
	return a.Sub(b), nil
}

func Multiply(a, b decimal.Decimal) (decimal.Decimal, error) {
	return a.Mul(b), nil
}

// Divide returns a / b rounded half up to Precision significant digits.
func Divide(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Decimal{}, ErrDivisionByZero
	}
	if a.IsZero() {
		return decimal.Zero, nil
	}
	// The quotient's leading digit sits at diff or diff-1; start from the
	// lower bound and redo the division once the magnitude is known.
	diff := Magnitude(a) - Magnitude(b)
	q := a.DivRound(b, FractionalPlaces(diff-1))
	if m := Magnitude(q); m != diff-1 {
		q = a.DivRound(b, FractionalPlaces(m))
	}
	return q, nil
}
