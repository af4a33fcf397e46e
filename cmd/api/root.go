package main

import (
	"github.com/spf13/cobra"

	"msdsapi/internal/config"
)

func newRootCmd(cfg *config.AppConfig) *cobra.Command {
	serve := newServeCmd(cfg)

	cmd := &cobra.Command{
		Use:           "msdsapi",
		Short:         "MSDS catalog API",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Running the binary without a subcommand starts the server.
		RunE: serve.RunE,
	}

	cmd.AddCommand(
		serve,
		newMigrateCmd(cfg),
	)
	return cmd
}
