package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema
// creation. Each migration must be idempotent. Append new migrations at the
// end.
var migrations = []string{
	// Migration 1: index for the per-item event trail, which is read on every
	// item history request.
	`CREATE INDEX IF NOT EXISTS idx_events_item ON events(item_id)`,

	// Migration 2: index for per-user payment history.
	`CREATE INDEX IF NOT EXISTS idx_payments_to_user ON payments(to_user_id)`,
}

// Migrate creates the schema and runs the database migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
