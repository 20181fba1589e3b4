package db

import (
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every open.
func Migrate(db execer) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS blueprints (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL DEFAULT '',
		version     INTEGER NOT NULL CHECK(version > 0),
		document    TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS initiatives (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL DEFAULT '',
		version     INTEGER NOT NULL CHECK(version > 0),
		document    TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_initiatives_name ON initiatives(name)`,

	`CREATE TABLE IF NOT EXISTS collection_versions (
		collection TEXT PRIMARY KEY,
		version    INTEGER NOT NULL CHECK(version >= 0)
	)`,

	`CREATE TABLE IF NOT EXISTS settings (
		id           TEXT PRIMARY KEY DEFAULT 'default',
		period_month INTEGER NOT NULL CHECK(period_month BETWEEN 1 AND 12),
		period_year  INTEGER NOT NULL
	)`,
}
