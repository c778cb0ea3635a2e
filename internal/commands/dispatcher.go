package commands

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownCommand = errors.New("no such command")

// Command is a named zero-argument action exposed to the REPL.
type Command interface {
	Execute() (string, error)
}

// CommandFunc adapts a plain function to Command.
type CommandFunc func() (string, error)

func (f CommandFunc) Execute() (string, error) {
	return f()
}

// Dispatcher maps command names to commands. Registration happens at startup,
// so it carries no locking.
type Dispatcher struct {
	commands map[string]Command
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{commands: make(map[string]Command)}
}

// Register installs cmd under name, silently replacing any previous entry.
func (d *Dispatcher) Register(name string, cmd Command) {
	d.commands[name] = cmd
}

// Execute runs the named command. An absent name yields ErrUnknownCommand.
func (d *Dispatcher) Execute(name string) (string, error) {
	cmd, ok := d.commands[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return cmd.Execute()
}

func (d *Dispatcher) Has(name string) bool {
	_, ok := d.commands[name]
	return ok
}

func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.commands))
	for name := range d.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
