package bookshelf

import (
	"context"
	"strings"

	"bookshelf/internal/entity"
)

// Service maps each user intent to exactly one Store call.
type Service struct {
	store *Store
	view  View
}

// NewService creates a service over store rendering into view.
func NewService(store *Store, view View) *Service {
	return &Service{store: store, view: view}
}

// New hydrates a store from slot and wires the save-then-render listener.
func New(ctx context.Context, slot Slot, view View, opts ...Option) (*Service, error) {
	opts = append(opts, WithListener(NewSyncer(slot, view)))
	store, err := Open(ctx, slot, opts...)
	if err != nil {
		return nil, err
	}
	return NewService(store, view), nil
}

// Store exposes the underlying store.
func (s *Service) Store() *Store {
	return s.store
}

// AddBook handles the add form.
func (s *Service) AddBook(ctx context.Context, in entity.BookInput) (entity.Book, error) {
	return s.store.Add(ctx, in)
}

// SetCompletion handles a mark button.
func (s *Service) SetCompletion(ctx context.Context, id int64, v bool) (bool, error) {
	return s.store.SetCompletion(ctx, id, v)
}

func (s *Service) MarkComplete(ctx context.Context, id int64) (bool, error) {
	return s.store.MarkComplete(ctx, id)
}

func (s *Service) MarkIncomplete(ctx context.Context, id int64) (bool, error) {
	return s.store.MarkIncomplete(ctx, id)
}

// RemoveBook handles a remove button.
func (s *Service) RemoveBook(ctx context.Context, id int64, confirm Confirmer) (bool, error) {
	return s.store.Remove(ctx, id, confirm)
}

// List returns the books matching query; a blank query returns all of them.
func (s *Service) List(query string) []entity.Book {
	return match(s.store.All(), query)
}

// Search renders the books matching query. Nothing is persisted. The render
// happens under the store lock so a concurrent change cannot be overwritten
// by an older result.
func (s *Service) Search(query string) []entity.Book {
	var books []entity.Book
	s.store.Read(func(all []entity.Book) {
		books = match(all, query)
		s.render(books)
	})
	return books
}

// Refresh renders the whole collection.
func (s *Service) Refresh() {
	s.store.Read(s.render)
}

func match(books []entity.Book, query string) []entity.Book {
	if strings.TrimSpace(query) == "" {
		return books
	}
	return FilterByTitle(books, query)
}

func (s *Service) render(books []entity.Book) {
	if s.view != nil {
		s.view.Render(books)
	}
}
