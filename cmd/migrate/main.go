package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"bookshelf/internal/config"
	"bookshelf/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	var (
		driver  = flag.String("driver", store.DriverPostgres, "Storage driver to migrate: postgres, sqlite")
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	dialect, err := dialectFor(*driver)
	if err != nil {
		log.Fatal(err)
	}

	if *command == "create" {
		if *name == "" {
			log.Fatal("Name is required for 'create' command")
		}
		dir := sourceDir(cfg.MigrationsDir, *driver)
		if err := goose.Create(nil, dir, *name, "sql"); err != nil {
			log.Fatalf("Failed to create migration: %v", err)
		}
		fmt.Printf("Migration created in %s: %s\n", dir, *name)
		return
	}

	db, closeDB, err := openDB(context.Background(), *driver, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB()

	if err := store.RunMigrations(db, dialect, *command); err != nil {
		log.Fatalf("Failed to run %s: %v", *command, err)
	}

	switch *command {
	case "up":
		fmt.Println("Migrations applied successfully")
	case "down":
		fmt.Println("Migrations rolled back successfully")
	}
}

// dialectFor maps a storage driver to its goose dialect.
func dialectFor(driver string) (string, error) {
	switch driver {
	case store.DriverPostgres:
		return store.DialectPostgres, nil
	case store.DriverSQLite:
		return store.DialectSQLite, nil
	default:
		return "", fmt.Errorf("driver %q has no migrations, use postgres or sqlite", driver)
	}
}

// sourceDir is where new migration files for driver are written.
func sourceDir(root, driver string) string {
	return filepath.Join(root, driver)
}

func openDB(ctx context.Context, driver string, cfg *config.Config) (*sql.DB, func(), error) {
	switch driver {
	case store.DriverPostgres:
		if cfg.DatabaseDSN == "" {
			return nil, nil, fmt.Errorf("DB_DSN is required")
		}
		pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", store.RedactDSN(cfg.DatabaseDSN), err)
		}
		db := stdlib.OpenDBFromPool(pool)
		return db, func() {
			_ = db.Close()
			pool.Close()
		}, nil
	default:
		db, err := store.OpenSQLiteDB(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	}
}
