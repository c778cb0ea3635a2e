package plugins

import (
	"decimal-calc/internal/commands"
	"decimal-calc/internal/operations"
)

// Kind is the capability a plugin contributes.
type Kind string

const (
	KindOperation Kind = "operation"
	KindCommand   Kind = "command"
)

// Provider is a compiled-in implementation a descriptor can bind to.
type Provider interface {
	Kind() Kind
}

// OperationProvider contributes a binary operation to the registry.
type OperationProvider struct {
	Fn operations.Func
}

func (OperationProvider) Kind() Kind { return KindOperation }

// CommandProvider contributes a command to the dispatcher.
type CommandProvider struct {
	New func() commands.Command
}

func (CommandProvider) Kind() Kind { return KindCommand }

// Catalog maps provider names to providers.
type Catalog map[string]Provider

// DefaultCatalog lists every provider shipped with the binary.
func DefaultCatalog() Catalog {
	return Catalog{
		"modulus": OperationProvider{Fn: Modulus},
		"power":   OperationProvider{Fn: Power},
		"greet":   CommandProvider{New: func() commands.Command { return GreetCommand{} }},
	}
}
