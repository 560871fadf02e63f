package store

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of schema changes. Each entry runs at
// most once; user_version tracks how many have been applied.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS activities (
		hash TEXT PRIMARY KEY,
		filename TEXT NOT NULL,
		date TEXT NOT NULL,
		session_id INTEGER NOT NULL DEFAULT 0,
		json_data TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_date ON activities(date)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_session ON activities(session_id)`,
}

// migrate applies any pending migrations to the database
func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		if _, err := db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("applying migration %d: %w", i+1, err)
		}
		if _, err := db.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			return fmt.Errorf("recording migration %d: %w", i+1, err)
		}
	}

	return nil
}
