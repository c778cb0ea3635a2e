package main

import (
	"github.com/spf13/cobra"

	"decimal-calc/internal/observability"
	"decimal-calc/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := bootstrap(ctx, observability.RoleServer)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			session, err := a.newSession()
			if err != nil {
				return err
			}

			return server.Run(ctx, addr, server.NewRouter(session))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to CALC_SERVER_ADDR or :8080)")
	return cmd
}
