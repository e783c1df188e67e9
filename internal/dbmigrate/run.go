package dbmigrate

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Run executes a goose command (up, status, down) against the database
// using the pgx stdlib driver. The connection is opened per invocation
// and closed before returning.
func Run(command string, dbURL string, migrationsDir string) error {
	if dbURL == "" {
		return fmt.Errorf("dbmigrate: no database URL")
	}
	if migrationsDir == "" {
		migrationsDir = DefaultMigrationsDir
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("dbmigrate: open connection: %w", err)
	}
	defer db.Close()

	// Fail fast on an unreachable database instead of inside goose.
	if err := db.Ping(); err != nil {
		return fmt.Errorf("dbmigrate: ping: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("dbmigrate: set dialect: %w", err)
	}

	if err := goose.Run(command, db, migrationsDir); err != nil {
		return fmt.Errorf("dbmigrate: %s: %w", command, err)
	}

	return nil
}
