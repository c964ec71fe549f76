package bookshelf

import (
	"context"

	"bookshelf/internal/entity"
)

// Slot is the single named persistence location holding the whole collection.
type Slot interface {
	// Load returns the stored collection. A missing or malformed slot yields
	// an empty collection and no error.
	Load(ctx context.Context) ([]entity.Book, error)
	// Save overwrites the slot with books.
	Save(ctx context.Context, books []entity.Book) error
}

// View renders a list of books. Every call is a full re-render.
type View interface {
	Render(books []entity.Book)
}

// ChangeListener is notified once after every applied mutation.
// It receives a snapshot and must not call back into the Store.
type ChangeListener interface {
	BooksChanged(ctx context.Context, books []entity.Book) error
}

// ChangeListenerFunc adapts a function to ChangeListener.
type ChangeListenerFunc func(ctx context.Context, books []entity.Book) error

func (f ChangeListenerFunc) BooksChanged(ctx context.Context, books []entity.Book) error {
	return f(ctx, books)
}

// Confirmer is the synchronous yes/no gate asked before a book is removed.
type Confirmer func(book entity.Book) bool

// Always confirms every removal.
func Always(entity.Book) bool { return true }
