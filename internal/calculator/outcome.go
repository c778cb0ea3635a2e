package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"decimal-calc/internal/operations"
	"decimal-calc/internal/worker"
)

// ErrInvalidOperand is reported when an operand token is not a decimal number.
var ErrInvalidOperand = errors.New("invalid number input")

// Outcome is the result of evaluating one request. Err is nil on success.
type Outcome struct {
	ID        string
	A         string
	B         string
	Operation string
	Result    decimal.Decimal
	Err       error
}

// String renders the outcome as the fixed line printed to the user.
func (o Outcome) String() string {
	switch {
	case o.Err == nil:
		return fmt.Sprintf("The result of %s %s %s is equal to %s", o.A, o.Operation, o.B, o.Result)
	case errors.Is(o.Err, operations.ErrDivisionByZero):
		return "An error occurred: Cannot divide by zero"
	case errors.Is(o.Err, ErrInvalidOperand):
		return fmt.Sprintf("Invalid number input: %s or %s is not a valid number.", o.A, o.B)
	case errors.Is(o.Err, operations.ErrUnknownOperation):
		return fmt.Sprintf("Unknown operation: %s", o.Operation)
	default:
		return fmt.Sprintf("An unexpected error occurred: %v", o.Err)
	}
}

// errorKind classifies err for metrics, logs and HTTP status mapping.
func errorKind(err error) string {
	switch {
	case errors.Is(err, operations.ErrDivisionByZero):
		return "division_by_zero"
	case errors.Is(err, ErrInvalidOperand):
		return "invalid_operand"
	case errors.Is(err, operations.ErrUnknownOperation):
		return "unknown_operation"
	case errors.Is(err, operations.ErrOverflow):
		return "overflow"
	case errors.Is(err, worker.ErrTimeout):
		return "worker_timeout"
	case errors.Is(err, worker.ErrCrashed):
		return "worker_crashed"
	default:
		return "operation_failed"
	}
}
