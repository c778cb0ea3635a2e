package main

import (
	"github.com/spf13/cobra"

	"decimal-calc/internal/observability"
	"decimal-calc/internal/worker"
)

// newWorkerCmd is the child side of process isolation. It is spawned by the
// parent for each calculation and is not meant to be run by hand.
func newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "worker",
		Short:  "Run one calculation read from stdin",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := worker.ContextFromEnvironment(cmd.Context())
			a, err := bootstrap(ctx, observability.RoleWorker)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			return worker.Serve(ctx, a.registry, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
