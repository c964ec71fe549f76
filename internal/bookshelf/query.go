package bookshelf

import (
	"strings"

	"bookshelf/internal/entity"
)

// FilterByTitle returns the books whose title contains query, ignoring case.
// Order is preserved and an empty query matches every book.
func FilterByTitle(books []entity.Book, query string) []entity.Book {
	q := strings.ToLower(query)
	out := make([]entity.Book, 0, len(books))
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), q) {
			out = append(out, b)
		}
	}
	return out
}
