package store

import (
	"context"
	"slices"
	"sync"

	"bookshelf/internal/entity"
)

// MemorySlot holds the serialized collection in process memory.
type MemorySlot struct {
	mu   sync.Mutex
	data []byte
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Load(ctx context.Context) ([]entity.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return []entity.Book{}, nil
	}
	return decodeOrEmpty("memory", s.data), nil
}

func (s *MemorySlot) Save(ctx context.Context, books []entity.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := EncodeBooks(books)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Raw returns a copy of the stored blob, or nil when nothing was saved.
func (s *MemorySlot) Raw() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data)
}

// SetRaw replaces the stored blob as-is.
func (s *MemorySlot) SetRaw(data []byte) {
	s.mu.Lock()
	s.data = slices.Clone(data)
	s.mu.Unlock()
}

func (s *MemorySlot) Ping(context.Context) error { return nil }

func (s *MemorySlot) Close() error { return nil }
