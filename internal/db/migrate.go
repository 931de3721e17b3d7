package db

import (
	"database/sql"
	"fmt"
)

// migrations are idempotent and re-run on every startup.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS session (
		id         INTEGER PRIMARY KEY CHECK (id = 1),
		role       TEXT NOT NULL CHECK (role IN ('Employee','Administrator')),
		email      TEXT NOT NULL,
		token      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS bill_cache (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL DEFAULT '',
		type          TEXT NOT NULL DEFAULT '',
		name          TEXT NOT NULL DEFAULT '',
		date          TEXT NOT NULL DEFAULT '',
		amount        REAL NOT NULL DEFAULT 0,
		pct           INTEGER NOT NULL DEFAULT 0,
		vat           TEXT NOT NULL DEFAULT '',
		commentary    TEXT NOT NULL DEFAULT '',
		comment_admin TEXT NOT NULL DEFAULT '',
		file_url      TEXT NOT NULL DEFAULT '',
		file_name     TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL DEFAULT 'pending',
		cached_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_bill_cache_date ON bill_cache(date)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
