package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"bookshelf/internal/entity"
)

// FileSlot keeps the collection in <dir>/<key>.json.
type FileSlot struct {
	dir string
	key string
}

func NewFileSlot(dir, key string) (*FileSlot, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if key == "" {
		key = DefaultKey
	}
	return &FileSlot{dir: dir, key: key}, nil
}

// Path returns the file backing the slot.
func (s *FileSlot) Path() string {
	return filepath.Join(s.dir, filepath.Base(s.key)+".json")
}

func (s *FileSlot) Load(ctx context.Context) ([]entity.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []entity.Book{}, nil
		}
		return nil, fmt.Errorf("read slot: %w", err)
	}
	return decodeOrEmpty(s.Path(), data), nil
}

// Save writes to a temporary file and renames it over the slot, so a reader
// never sees a partial collection.
func (s *FileSlot) Save(ctx context.Context, books []entity.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := EncodeBooks(books)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(s.key)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write slot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync slot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close slot: %w", err)
	}
	if err := os.Rename(tmpName, s.Path()); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace slot: %w", err)
	}
	return nil
}

// Ping reports whether the data directory is usable.
func (s *FileSlot) Ping(context.Context) error {
	info, err := os.Stat(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat data directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data path %s is not a directory", s.dir)
	}
	return nil
}

func (s *FileSlot) Close() error { return nil }
