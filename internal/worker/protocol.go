package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"decimal-calc/internal/calculation"
	"decimal-calc/internal/operations"
)

// Error kinds carried in Response.Error.
const (
	kindDivisionByZero   = "division_by_zero"
	kindUnknownOperation = "unknown_operation"
	kindOverflow         = "overflow"
	kindInvalidRequest   = "invalid_request"
	kindCrashed          = "crashed"
	kindFailed           = "operation_failed"
)

var tracer = otel.Tracer("calculator/worker")

// ErrInvalidRequest is reported when a worker receives operands it cannot parse.
var ErrInvalidRequest = errors.New("invalid worker request")

// Request is written by the parent to the worker's stdin.
type Request struct {
	A         string `json:"a"`
	B         string `json:"b"`
	Operation string `json:"operation"`
}

// Response is written by the worker to its stdout. Exactly one of Result or
// Error is set.
type Response struct {
	Result  string `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func newRequest(calc calculation.Calculation) Request {
	return Request{
		A:         scientific(calc.A()),
		B:         scientific(calc.B()),
		Operation: calc.OperationName(),
	}
}

// scientific renders d as coefficient and exponent, which stays short for
// operands such as 1e999999 whose String form has a million digits.
func scientific(d decimal.Decimal) string {
	return d.Coefficient().String() + "e" + strconv.Itoa(int(d.Exponent()))
}

func newResponse(result decimal.Decimal, err error) Response {
	if err == nil {
		return Response{Result: result.String()}
	}

	kind := kindFailed
	switch {
	case errors.Is(err, operations.ErrDivisionByZero):
		kind = kindDivisionByZero
	case errors.Is(err, operations.ErrUnknownOperation):
		kind = kindUnknownOperation
	case errors.Is(err, operations.ErrOverflow):
		kind = kindOverflow
	case errors.Is(err, ErrInvalidRequest):
		kind = kindInvalidRequest
	case errors.Is(err, ErrCrashed):
		kind = kindCrashed
	}
	return Response{Error: kind, Message: err.Error()}
}

// outcome turns a decoded response back into a result or a typed error.
func (r Response) outcome() (decimal.Decimal, error) {
	switch r.Error {
	case "":
		out, err := decimal.NewFromString(r.Result)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: bad result %q: %v", ErrCrashed, r.Result, err)
		}
		return out, nil
	case kindDivisionByZero:
		return decimal.Decimal{}, operations.ErrDivisionByZero
	case kindUnknownOperation:
		return decimal.Decimal{}, fmt.Errorf("%w: %s", operations.ErrUnknownOperation, r.Message)
	case kindOverflow:
		return decimal.Decimal{}, fmt.Errorf("%w: %s", operations.ErrOverflow, r.Message)
	case kindInvalidRequest:
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrInvalidRequest, r.Message)
	case kindCrashed:
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrCrashed, r.Message)
	default:
		return decimal.Decimal{}, errors.New(r.Message)
	}
}

// Serve is the worker side of Process: it reads one Request from in, runs it
// against reg and writes one Response to out. Only I/O failures are returned;
// calculation failures travel inside the Response.
func Serve(ctx context.Context, reg *operations.Registry, in io.Reader, out io.Writer) error {
	var req Request
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}

	ctx, span := tracer.Start(ctx, "worker."+req.Operation)
	defer span.End()

	result, err := handle(ctx, reg, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if err := json.NewEncoder(out).Encode(newResponse(result, err)); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}

func handle(ctx context.Context, reg *operations.Registry, req Request) (decimal.Decimal, error) {
	op, err := reg.Lookup(req.Operation)
	if err != nil {
		return decimal.Decimal{}, err
	}

	a, err := operations.ParseOperand(req.A)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: a=%q", ErrInvalidRequest, req.A)
	}
	b, err := operations.ParseOperand(req.B)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: b=%q", ErrInvalidRequest, req.B)
	}

	return Inline{}.Run(ctx, calculation.New(a, b, op))
}
