package http

import (
	"context"
	"strconv"

	"bookshelf/internal/bookshelf"
	"bookshelf/internal/entity"
)

// BookService is the part of bookshelf.Service the handlers drive.
type BookService interface {
	AddBook(ctx context.Context, in entity.BookInput) (entity.Book, error)
	SetCompletion(ctx context.Context, id int64, v bool) (bool, error)
	RemoveBook(ctx context.Context, id int64, confirm bookshelf.Confirmer) (bool, error)
	List(query string) []entity.Book
	Search(query string) []entity.Book
	Refresh()
}

var _ BookService = (*bookshelf.Service)(nil)

func parseBookID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// removal is the outcome of a confirmed-removal attempt.
type removal int

const (
	removalDone removal = iota
	removalNotFound
	removalDeclined
)

// removeBook asks confirm only when the book exists, so a false result can
// be told apart as missing or declined.
func removeBook(ctx context.Context, svc BookService, id int64, confirmed bool) (removal, error) {
	asked := false
	removed, err := svc.RemoveBook(ctx, id, func(entity.Book) bool {
		asked = true
		return confirmed
	})
	switch {
	case removed:
		return removalDone, err
	case asked:
		return removalDeclined, nil
	default:
		return removalNotFound, nil
	}
}
