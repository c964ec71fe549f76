package bookshelf

import (
	"context"
	"fmt"

	"bookshelf/internal/entity"
)

// Syncer is the default change listener: save the collection, then render it.
// When the save fails nothing is rendered.
type Syncer struct {
	slot Slot
	view View
}

func NewSyncer(slot Slot, view View) *Syncer {
	return &Syncer{slot: slot, view: view}
}

func (s *Syncer) BooksChanged(ctx context.Context, books []entity.Book) error {
	if err := s.slot.Save(ctx, books); err != nil {
		return fmt.Errorf("save books: %w", err)
	}
	if s.view != nil {
		s.view.Render(books)
	}
	return nil
}
