package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bookshelf/internal/entity"

	_ "modernc.org/sqlite"
)

// SQLiteSlot keeps the collection as one row of bookshelf_slots.
type SQLiteSlot struct {
	db  *sql.DB
	key string
}

// OpenSQLite opens the database at path, creating its directory, and applies
// the embedded migrations.
func OpenSQLite(path, key string) (*SQLiteSlot, error) {
	if key == "" {
		key = DefaultKey
	}
	sqlDB, err := OpenSQLiteDB(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(sqlDB, DialectSQLite); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return &SQLiteSlot{db: sqlDB, key: key}, nil
}

// OpenSQLiteDB opens the database at path without touching its schema.
func OpenSQLiteDB(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := applyPragmas(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

func applyPragmas(sqlDB *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, stmt := range pragmas {
		if _, err := sqlDB.Exec(stmt); err != nil {
			return fmt.Errorf("apply pragma: %w", err)
		}
	}
	return nil
}

func (s *SQLiteSlot) Load(ctx context.Context) ([]entity.Book, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM bookshelf_slots WHERE key = ?`, s.key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []entity.Book{}, nil
		}
		return nil, fmt.Errorf("read slot: %w", err)
	}
	return decodeOrEmpty("sqlite:"+s.key, []byte(value)), nil
}

func (s *SQLiteSlot) Save(ctx context.Context, books []entity.Book) error {
	data, err := EncodeBooks(books)
	if err != nil {
		return err
	}
	return s.SetRaw(ctx, string(data))
}

// SetRaw stores value verbatim under the slot key.
func (s *SQLiteSlot) SetRaw(ctx context.Context, value string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO bookshelf_slots (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`, s.key, value, time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("write slot: %w", err)
	}
	return nil
}

func (s *SQLiteSlot) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteSlot) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
