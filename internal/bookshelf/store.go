package bookshelf

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"bookshelf/internal/entity"
)

// ErrSync is returned when a mutation was applied but the change listener failed.
var ErrSync = errors.New("bookshelf: change not synchronized")

// Store is the single source of truth for the book collection.
// Every mutation, together with its change notification, runs inside one
// critical section.
type Store struct {
	mu       sync.Mutex
	books    []entity.Book
	ids      IDSource
	listener ChangeListener
}

// Option configures a Store.
type Option func(*Store)

// WithListener registers the change listener.
func WithListener(l ChangeListener) Option {
	return func(s *Store) { s.listener = l }
}

// WithIDSource replaces the default clock-based id source.
func WithIDSource(ids IDSource) Option {
	return func(s *Store) { s.ids = ids }
}

// WithClock uses a clock-based id source reading now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.ids = NewClockIDs(now) }
}

// NewStore builds a store hydrated with books. Records repeating an earlier id
// are dropped.
func NewStore(books []entity.Book, opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	if s.ids == nil {
		s.ids = NewClockIDs(nil)
	}

	seen := make(map[int64]bool, len(books))
	s.books = make([]entity.Book, 0, len(books))
	for _, b := range books {
		if seen[b.ID] {
			log.Printf("bookshelf: dropping duplicate id=%d title=%q", b.ID, b.Title)
			continue
		}
		seen[b.ID] = true
		s.ids.Observe(b.ID)
		s.books = append(s.books, b)
	}
	return s
}

// Open loads the collection from slot and returns a store over it.
func Open(ctx context.Context, slot Slot, opts ...Option) (*Store, error) {
	books, err := slot.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	return NewStore(books, opts...), nil
}

// Add appends a new book built from in. The book is always added; a non-nil
// error only reports a failed change notification.
func (s *Store) Add(ctx context.Context, in entity.BookInput) (entity.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := entity.Book{
		ID:         s.ids.Next(),
		Title:      in.Title,
		Author:     in.Author,
		Year:       in.Year,
		IsComplete: in.IsComplete,
	}
	s.books = append(s.books, b)
	return b, s.notifyLocked(ctx)
}

// FindIndexByID returns the position of the book with id.
func (s *Store) FindIndexByID(id int64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(id)
}

// Get returns the book with id.
func (s *Store) Get(id int64) (entity.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexLocked(id)
	if !ok {
		return entity.Book{}, false
	}
	return s.books[i], true
}

// SetCompletion replaces the book with id by a copy whose IsComplete is v.
// An unknown id is a silent no-op.
func (s *Store) SetCompletion(ctx context.Context, id int64, v bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexLocked(id)
	if !ok {
		return false, nil
	}
	s.books[i] = s.books[i].WithCompletion(v)
	return true, s.notifyLocked(ctx)
}

func (s *Store) MarkComplete(ctx context.Context, id int64) (bool, error) {
	return s.SetCompletion(ctx, id, true)
}

func (s *Store) MarkIncomplete(ctx context.Context, id int64) (bool, error) {
	return s.SetCompletion(ctx, id, false)
}

// Remove deletes the book with id once confirm approves it. Confirmation is
// only asked for a book that exists; a nil confirm declines.
func (s *Store) Remove(ctx context.Context, id int64, confirm Confirmer) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexLocked(id)
	if !ok {
		return false, nil
	}
	if confirm == nil || !confirm(s.books[i]) {
		return false, nil
	}
	s.books = slices.Delete(s.books, i, i+1)
	return true, s.notifyLocked(ctx)
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []entity.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.books)
}

// Read calls fn with a copy of the collection inside the critical section, so
// no mutation or change notification runs while fn does. fn must not call
// back into the Store.
func (s *Store) Read(fn func(books []entity.Book)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(slices.Clone(s.books))
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.books)
}

func (s *Store) indexLocked(id int64) (int, bool) {
	for i, b := range s.books {
		if b.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s *Store) notifyLocked(ctx context.Context) error {
	if s.listener == nil {
		return nil
	}
	if err := s.listener.BooksChanged(ctx, slices.Clone(s.books)); err != nil {
		return fmt.Errorf("%w: %w", ErrSync, err)
	}
	return nil
}
