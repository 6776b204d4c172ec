package database

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations holds the embedded schema, applied in version order. The three
// tables mirror the optourism source schema: FirenzeCard swipe logs, museum
// location metadata, and the state/national museum comparison table.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_firenze_card_logs",
		SQL: `
			CREATE TABLE IF NOT EXISTS firenze_card_logs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id TEXT,
				museum_id INTEGER NOT NULL,
				museum_name TEXT NOT NULL,
				entry_time TIMESTAMP NOT NULL,
				total_adults INTEGER NOT NULL DEFAULT 0,
				minors INTEGER NOT NULL DEFAULT 0
			);
			CREATE INDEX IF NOT EXISTS idx_logs_entry_time ON firenze_card_logs(entry_time);
			CREATE INDEX IF NOT EXISTS idx_logs_museum ON firenze_card_logs(museum_id);
			CREATE INDEX IF NOT EXISTS idx_logs_user ON firenze_card_logs(user_id);
		`,
	},
	{
		Version: 2,
		Name:    "create_firenze_card_locations",
		SQL: `
			CREATE TABLE IF NOT EXISTS firenze_card_locations (
				museum_id INTEGER PRIMARY KEY,
				museum_name TEXT NOT NULL,
				short_name TEXT NOT NULL,
				latitude REAL NOT NULL,
				longitude REAL NOT NULL
			);
		`,
	},
	{
		Version: 3,
		Name:    "create_state_national_museum_visits",
		SQL: `
			CREATE TABLE IF NOT EXISTS state_national_museum_visits (
				museum_id INTEGER NOT NULL,
				visit_month TEXT NOT NULL,
				total_visitors INTEGER NOT NULL DEFAULT 0,
				PRIMARY KEY (museum_id, visit_month)
			);
		`,
	},
}

// Migrate applies all pending migrations.
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := apply(db, m); err != nil {
			return err
		}
	}
	return nil
}

// initMigrationsTable creates the migrations tracking table
func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

func apply(db *sql.DB, m Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
	}

	if _, err := tx.Exec(m.SQL); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
	}

	if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}
	return nil
}
