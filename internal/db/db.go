// Package db persists run history for position-report: one row per
// processing run plus the per-(file, sensor) statistics and per-file
// diagnostics it produced. History is optional; the processing core never
// touches this package.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the run-history database.
type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the history database at path and applies
// the connection pragmas. Run MigrateUp before first use of the stores.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := sqlDB.Exec(pragma); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("applying %q: %w", pragma, err)
		}
	}

	return &DB{sqlDB}, nil
}
