package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"msdsapi/internal/logger"
)

type step struct {
	Name string
	SQL  string
}

// steps are idempotent so Apply can be re-run against a partially migrated database.
var steps = []step{
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id                                 TEXT    PRIMARY KEY,
  title                              TEXT    NOT NULL,
  usage                              TEXT,
  file_path                          TEXT,
  applies_to_chemical_control_act    BOOLEAN NOT NULL DEFAULT FALSE,
  applies_to_occupational_safety_act BOOLEAN NOT NULL DEFAULT FALSE
);`,
	},
	{
		Name: "create_table_attachments",
		SQL: `CREATE TABLE IF NOT EXISTS attachments (
  id         BIGINT      GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
  title      TEXT        NOT NULL,
  type       SMALLINT    NOT NULL DEFAULT 0 CHECK (type BETWEEN 0 AND 2),
  file_path  TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		// No foreign keys: orphaned relations are tolerated and drop out of joins.
		Name: "create_table_document_attachments",
		SQL: `CREATE TABLE IF NOT EXISTS document_attachments (
  document_id   TEXT        NOT NULL,
  attachment_id BIGINT      NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (document_id, attachment_id)
);`,
	},
	{
		Name: "create_index_document_attachments_attachment_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_attachments_attachment_id ON document_attachments (attachment_id);`,
	},
	{
		Name: "create_index_attachments_type",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_attachments_type ON attachments (type);`,
	},
	{
		Name: "create_index_documents_usage",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_usage ON documents (usage) WHERE usage IS NOT NULL;`,
	},
}

// sentinelQuery checks for the table created last, so a half-finished run is retried.
const sentinelQuery = "SELECT to_regclass('public.document_attachments') IS NOT NULL"

// EnsureMigrated applies the schema unless the sentinel table already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *logger.Logger) error {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("component", "database")
	start := time.Now()

	var exists bool
	if err := db.QueryRowContext(ctx, sentinelQuery).Scan(&exists); err != nil {
		log.Error("db_migration_failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("check sentinel table: %w", err)
	}
	if exists {
		log.Info("db_migration_skip", "reason", "schema already exists", "duration_ms", time.Since(start).Milliseconds())
		return nil
	}
	return apply(ctx, db, log, start)
}

// Apply runs every step unconditionally.
func Apply(ctx context.Context, db *sql.DB, log *logger.Logger) error {
	if log == nil {
		log = logger.Nop()
	}
	return apply(ctx, db, log.With("component", "database"), time.Now())
}

func apply(ctx context.Context, db *sql.DB, log *logger.Logger, start time.Time) error {
	log.Info("db_migration_start", "steps", len(steps))

	for _, s := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, s.SQL); err != nil {
			log.Error("db_migration_failed",
				"migration_step", s.Name,
				"error", err,
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", s.Name, err)
		}
		log.Debug("db_migration_step", "migration_step", s.Name, "step_duration_ms", time.Since(stepStart).Milliseconds())
	}

	log.Info("db_migration_success", "duration_ms", time.Since(start).Milliseconds())
	return nil
}
