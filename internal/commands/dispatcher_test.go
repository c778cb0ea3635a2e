package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteRegistered(t *testing.T) {
	d := NewDispatcher()
	d.Register("greet", CommandFunc(func() (string, error) { return "hello", nil }))

	out, err := d.Execute("greet")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.True(t, d.Has("greet"))
}

func TestExecuteUnknown(t *testing.T) {
	d := NewDispatcher()

	out, err := d.Execute("unknown_command")
	assert.Empty(t, out)
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.EqualError(t, err, "no such command: unknown_command")
}

func TestRegisterOverwrites(t *testing.T) {
	d := NewDispatcher()
	d.Register("x", CommandFunc(func() (string, error) { return "first", nil }))
	d.Register("x", CommandFunc(func() (string, error) { return "second", nil }))

	out, err := d.Execute("x")
	require.NoError(t, err)
	assert.Equal(t, "second", out)
	assert.Equal(t, []string{"x"}, d.Names())
}

func TestExecutePropagatesCommandError(t *testing.T) {
	boom := errors.New("boom")
	d := NewDispatcher()
	d.Register("fail", CommandFunc(func() (string, error) { return "", boom }))

	_, err := d.Execute("fail")
	assert.ErrorIs(t, err, boom)
}

func TestNamesSorted(t *testing.T) {
	d := NewDispatcher()
	for _, n := range []string{"last", "greet", "history"} {
		d.Register(n, CommandFunc(func() (string, error) { return n, nil }))
	}
	assert.Equal(t, []string{"greet", "history", "last"}, d.Names())
}
