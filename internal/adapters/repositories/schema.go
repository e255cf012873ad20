package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the dataset schema. The DDL is portable across the SQLite
// and Postgres drivers used by the two repository flavors.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPOIsQuery := `
	CREATE TABLE IF NOT EXISTS pois (
		identifier TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		city TEXT NOT NULL,
		abstract TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		photo TEXT NOT NULL DEFAULT '',
		needed_time TEXT NOT NULL DEFAULT '',
		seasons TEXT NOT NULL DEFAULT '[]',
		season_reason TEXT NOT NULL DEFAULT '',
		labels TEXT NOT NULL DEFAULT '{}',
		metadata TEXT NOT NULL DEFAULT '{}'
	);
	`

	createDistancesQuery := `
	CREATE TABLE IF NOT EXISTS distances (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_km REAL,
		duration_minutes REAL,
		status TEXT NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_pois_city ON pois(city);
	`

	statements := []string{
		createPOIsQuery,
		createDistancesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
