package calculator

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"decimal-calc/internal/commands"
	"decimal-calc/internal/observability"
)

const (
	welcomeLine = "Welcome to the Interactive Calculator (type 'exit' to quit, 'menu' for available commands)"
	promptLine  = "\nEnter calculation (e.g., '5 3 add'): "
	usageLine   = "Invalid input. Use format: <number1> <number2> <operation>"
	goodbyeLine = "Exiting calculator. Goodbye!"
)

// REPL reads requests from in until exit, end of input or cancellation of
// ctx, writing prompts and results to out. Each line is dispatched and
// reported before the next prompt is shown.
func (s *Session) REPL(ctx context.Context, in io.Reader, out io.Writer) error {
	logger := observability.Logger
	fmt.Fprintln(out, welcomeLine)

	// Releases the reader goroutine when the loop returns on exit.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	for {
		fmt.Fprint(out, promptLine)

		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			logger.Info("calculator interrupted, exiting")
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				logger.Info("end of input, exiting")
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			if s.handleLine(ctx, line, out) {
				return nil
			}
		}
	}
}

// handleLine dispatches one input line and reports the outcome. It returns
// true when the session should exit.
func (s *Session) handleLine(ctx context.Context, line string, out io.Writer) bool {
	line = strings.ToLower(strings.TrimSpace(line))

	switch line {
	case "exit":
		fmt.Fprintln(out, goodbyeLine)
		observability.Logger.Info("calculator exit requested")
		return true
	case "menu":
		fmt.Fprintln(out, "\nAvailable commands:", strings.Join(s.registry.Names(), ", "))
		fmt.Fprintln(out, "Session commands:", strings.Join(s.dispatcher.Names(), ", "))
		return false
	}

	parts := strings.Fields(line)
	switch len(parts) {
	case 1:
		s.runCommand(parts[0], out)
	case 3:
		fmt.Fprintln(out, s.Evaluate(ctx, parts[0], parts[1], parts[2]))
	default:
		fmt.Fprintln(out, usageLine)
	}
	return false
}

func (s *Session) runCommand(name string, out io.Writer) {
	result, err := s.dispatcher.Execute(name)
	switch {
	case errors.Is(err, commands.ErrUnknownCommand):
		observability.Logger.Debug("unknown command", zap.String("command", name))
		fmt.Fprintf(out, "No such command: %s\n", name)
	case err != nil:
		fmt.Fprintf(out, "An error occurred: %v\n", err)
	default:
		fmt.Fprintln(out, result)
	}
}
