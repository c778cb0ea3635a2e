package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CALC_CONFIG", "")
	t.Setenv("ENVIRONMENT", "testing")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("CALC_ISOLATION", "inline")
	t.Setenv("CALC_PLUGIN_DIR", filepath.Join("..", "..", "plugins"))
	t.Setenv("CALC_TELEMETRY_ENABLED", "false")
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	setTestEnv(t)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	if args == nil {
		args = []string{} // nil makes cobra fall back to os.Args (go test flags)
	}
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootWrongArgumentCount(t *testing.T) {
	for _, args := range [][]string{{"5"}, {"5", "3"}, {"5", "3", "add", "extra"}} {
		out, err := execute(t, "", args...)
		if !errors.Is(err, errUsage) {
			t.Fatalf("args %v: expected errUsage, got %v", args, err)
		}
		if strings.TrimSpace(out) != usageLine {
			t.Fatalf("args %v: expected usage line, got %q", args, out)
		}
	}
}

func TestRootOneShot(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"5", "3", "add"}, "The result of 5 add 3 is equal to 8"},
		{[]string{"-5", "3", "add"}, "The result of -5 add 3 is equal to -2"},
		{[]string{"1", "0", "divide"}, "An error occurred: Cannot divide by zero"},
		{[]string{"10", "3", "modulus"}, "The result of 10 modulus 3 is equal to 1"},
		{[]string{"a", "3", "add"}, "Invalid number input: a or 3 is not a valid number."},
		{[]string{"9", "3", "unknown"}, "Unknown operation: unknown"},
	}

	for _, tc := range tests {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			out, err := execute(t, "", tc.args...)
			if err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if strings.TrimSpace(out) != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, out)
			}
		})
	}
}

func TestRootInteractive(t *testing.T) {
	out, err := execute(t, "menu\n2 3 power\nexit\n")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	for _, want := range []string{
		"Available commands: add, subtract, multiply, divide, modulus, power",
		"The result of 2 power 3 is equal to 8",
		"Exiting calculator. Goodbye!",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRootHelpIsUsage(t *testing.T) {
	for _, arg := range []string{"--help", "-h", "help"} {
		out, err := execute(t, "", arg)
		if !errors.Is(err, errUsage) {
			t.Fatalf("%s: expected errUsage, got %v", arg, err)
		}
		if strings.TrimSpace(out) != usageLine {
			t.Fatalf("%s: expected usage line, got %q", arg, out)
		}
	}
}

func TestWorkerCommand(t *testing.T) {
	out, err := execute(t, `{"a":"7","b":"2","operation":"divide"}`, "worker")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if strings.TrimSpace(out) != `{"result":"3.5"}` {
		t.Fatalf("unexpected worker reply %q", out)
	}
}
