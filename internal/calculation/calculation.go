package calculation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"decimal-calc/internal/operations"
)

// Calculation pairs two operands with an operation. It is immutable once
// created; the result is computed on demand by Perform.
type Calculation struct {
	id        string
	createdAt time.Time
	a, b      decimal.Decimal
	op        operations.Operation
}

func New(a, b decimal.Decimal, op operations.Operation) Calculation {
	return Calculation{
		id:        uuid.New().String(),
		createdAt: time.Now(),
		a:         a,
		b:         b,
		op:        op,
	}
}

func (c Calculation) ID() string {
	return c.id
}

func (c Calculation) CreatedAt() time.Time {
	return c.createdAt
}

func (c Calculation) A() decimal.Decimal {
	return c.a
}

func (c Calculation) B() decimal.Decimal {
	return c.b
}

func (c Calculation) Operation() operations.Operation {
	return c.op
}

func (c Calculation) OperationName() string {
	return c.op.Name
}

// Perform applies the bound operation, returning any error it reports.
func (c Calculation) Perform() (decimal.Decimal, error) {
	return c.op.Apply(c.a, c.b)
}

// Equal reports structural equality of operands and operation name.
func (c Calculation) Equal(other Calculation) bool {
	return c.a.Equal(other.a) && c.b.Equal(other.b) && c.op.Name == other.op.Name
}

func (c Calculation) String() string {
	return fmt.Sprintf("Calculation(%s, %s, %s)", c.a, c.b, c.op.Name)
}
