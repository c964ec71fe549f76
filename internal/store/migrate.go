package store

import (
	"database/sql"
	"fmt"
	"sync"

	"bookshelf/db"

	"github.com/pressly/goose/v3"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

// MigrationsDir returns the embedded directory holding dialect's migrations.
func MigrationsDir(dialect string) (string, error) {
	switch dialect {
	case DialectPostgres:
		return "migrations/postgres", nil
	case DialectSQLite:
		return "migrations/sqlite", nil
	default:
		return "", fmt.Errorf("unsupported dialect %q", dialect)
	}
}

// Migrate applies every pending embedded migration for dialect.
func Migrate(sqlDB *sql.DB, dialect string) error {
	return RunMigrations(sqlDB, dialect, "up")
}

// RunMigrations runs a goose command (up, down, status) against the embedded
// migrations for dialect.
func RunMigrations(sqlDB *sql.DB, dialect, command string) error {
	if sqlDB == nil {
		return fmt.Errorf("sql db is required")
	}
	dir, err := MigrationsDir(dialect)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(db.Migrations)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	switch command {
	case "up":
		err = goose.Up(sqlDB, dir)
	case "down":
		err = goose.Down(sqlDB, dir)
	case "status":
		err = goose.Status(sqlDB, dir)
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migrate %s %s: %w", dialect, command, err)
	}
	return nil
}
