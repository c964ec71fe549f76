package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bookshelf/internal/entity"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// SlotPG keeps the collection as one row of bookshelf_slots in Postgres.
type SlotPG struct {
	db      *pgxpool.Pool
	key     string
	timeout time.Duration
}

func NewSlotPG(db *pgxpool.Pool, key string, timeout time.Duration) *SlotPG {
	if key == "" {
		key = DefaultKey
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &SlotPG{db: db, key: key, timeout: timeout}
}

// OpenPostgres connects to dsn and, when migrate is set, applies the embedded
// migrations first.
func OpenPostgres(ctx context.Context, dsn, key string, timeout time.Duration, migrate bool) (*SlotPG, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	if migrate {
		if err := migratePostgres(dsn); err != nil {
			return nil, err
		}
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	slot := NewSlotPG(pool, key, timeout)
	if err := slot.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database (%s): %w", RedactDSN(dsn), err)
	}
	return slot, nil
}

func migratePostgres(dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer sqlDB.Close()
	return Migrate(sqlDB, DialectPostgres)
}

func (r *SlotPG) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *SlotPG) Load(ctx context.Context) ([]entity.Book, error) {
	const query = `SELECT value FROM bookshelf_slots WHERE key = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var value string
	if err := r.db.QueryRow(timeoutCtx, query, r.key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []entity.Book{}, nil
		}
		return nil, fmt.Errorf("read slot: %w", err)
	}
	return decodeOrEmpty("postgres:"+r.key, []byte(value)), nil
}

func (r *SlotPG) Save(ctx context.Context, books []entity.Book) error {
	data, err := EncodeBooks(books)
	if err != nil {
		return err
	}
	return r.SetRaw(ctx, string(data))
}

// SetRaw stores value verbatim under the slot key.
func (r *SlotPG) SetRaw(ctx context.Context, value string) error {
	const upsertSQL = `
		INSERT INTO bookshelf_slots (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.db.Exec(timeoutCtx, upsertSQL, r.key, value); err != nil {
		return fmt.Errorf("write slot: %w", err)
	}
	return nil
}

func (r *SlotPG) Ping(ctx context.Context) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.Ping(timeoutCtx)
}

func (r *SlotPG) Close() error {
	r.db.Close()
	return nil
}
