package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookshelf/internal/bookshelf"
)

const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Backend is a slot that can be health-checked and released.
type Backend interface {
	bookshelf.Slot
	Ping(ctx context.Context) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Driver      string
	Key         string
	DataDir     string
	SQLitePath  string
	DSN         string
	Timeout     time.Duration
	AutoMigrate bool
}

// Open returns the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Backend, error) {
	var (
		backend Backend
		err     error
	)
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case DriverFile, "":
		var slot *FileSlot
		slot, err = NewFileSlot(opts.DataDir, opts.Key)
		backend = slot
	case DriverSQLite:
		var slot *SQLiteSlot
		slot, err = OpenSQLite(opts.SQLitePath, opts.Key)
		backend = slot
	case DriverPostgres:
		var slot *SlotPG
		slot, err = OpenPostgres(ctx, opts.DSN, opts.Key, opts.Timeout, opts.AutoMigrate)
		backend = slot
	case DriverMemory:
		backend = NewMemorySlot()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
	if err != nil {
		return nil, err
	}
	return backend, nil
}

// RedactDSN hides the credentials of a connection URL.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
