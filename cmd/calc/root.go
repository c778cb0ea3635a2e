package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"decimal-calc/internal/observability"
)

const usageLine = "Usage: calc OR calc <number1> <number2> <operation>"

// errUsage is returned for a wrong argument count; the usage line has
// already been printed.
var errUsage = errors.New("usage")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "calc [<number1> <number2> <operation>]",
		Short: "An interactive decimal calculator",
		Long: `calc evaluates "<number1> <number2> <operation>" requests with exact decimal
arithmetic. Without arguments it starts an interactive prompt; with exactly
three arguments it evaluates them once and exits.`,
		Args: cobra.ArbitraryArgs,
		// Operands such as "-5" must not be mistaken for flags.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE:               runRoot,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	// "help", "-h" and "--help" are argument counts like any other.
	root.SetHelpCommand(&cobra.Command{Hidden: true})

	root.AddCommand(newServeCmd(), newWorkerCmd())
	return root
}

func runRoot(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) != 0 && len(args) != 3 {
		fmt.Fprintln(out, usageLine)
		return errUsage
	}

	ctx := cmd.Context()
	a, err := bootstrap(ctx, observability.RoleCLI)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	session, err := a.newSession()
	if err != nil {
		return err
	}

	if len(args) == 3 {
		fmt.Fprintln(out, session.Evaluate(ctx, args[0], args[1], args[2]))
		return nil
	}

	observability.Logger.Info("starting interactive mode")
	return session.REPL(ctx, cmd.InOrStdin(), out)
}
