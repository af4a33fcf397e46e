package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"msdsapi/internal/config"
	"msdsapi/internal/database"
	"msdsapi/internal/database/migration"
	"msdsapi/internal/logger"
)

func newMigrateCmd(cfg *config.AppConfig) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the catalog schema",
		Long:  "Creates the documents, attachments and document_attachments tables. Every step is idempotent.",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(cfg.Env)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer log.Sync()

			db, err := database.NewPostgres(cmd.Context(), cfg.Database)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			if force {
				return migration.Apply(cmd.Context(), db, log)
			}
			return migration.EnsureMigrated(cmd.Context(), db, log)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "run every step even when the schema already exists")
	return cmd
}
