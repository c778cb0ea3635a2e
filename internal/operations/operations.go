package operations

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrDivisionByZero is returned by operations whose divisor is exactly zero.
	ErrDivisionByZero = errors.New("cannot divide by zero")

	// ErrUnknownOperation is returned by Lookup for names that were never registered.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrOverflow is returned by Apply for results whose magnitude exceeds
	// 10^MaxExponent.
	ErrOverflow = errors.New("result out of range")
)

// Func is a binary operation over two decimals.
type Func func(a, b decimal.Decimal) (decimal.Decimal, error)

// Operation binds a Func to the name it was registered under.
type Operation struct {
	Name string
	Fn   Func
}

// Apply runs the operation on (a, b) and rejects results too large to render.
func (o Operation) Apply(a, b decimal.Decimal) (decimal.Decimal, error) {
	out, err := o.Fn(a, b)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !out.IsZero() && Magnitude(out) > MaxExponent {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrOverflow, o.Name)
	}
	return out, nil
}

// Registry maps operation names to operations, remembering registration order.
// It is populated once at startup and is not safe for concurrent registration.
type Registry struct {
	ops   map[string]Operation
	order []string
}

// NewRegistry returns a registry holding the four built-in operations.
func NewRegistry() *Registry {
	r := &Registry{ops: make(map[string]Operation)}
	r.Register("add", Add)
	r.Register("subtract", Subtract)
	r.Register("multiply", Multiply)
	r.Register("divide", Divide)
	return r
}

// Register installs fn under name. A later registration of the same name
// replaces the earlier one but keeps its position in Names.
func (r *Registry) Register(name string, fn Func) {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, ok := r.ops[name]; !ok {
		r.order = append(r.order, name)
	}
	r.ops[name] = Operation{Name: name, Fn: fn}
}

func (r *Registry) Lookup(name string) (Operation, error) {
	op, ok := r.ops[strings.ToLower(name)]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
	return op, nil
}

// All returns a copy of the name to operation mapping.
func (r *Registry) All() map[string]Operation {
	out := make(map[string]Operation, len(r.ops))
	for name, op := range r.ops {
		out[name] = op
	}
	return out
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}
