package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"bookshelf/internal/entity"
)

// DefaultKey is the name of the slot holding the collection.
const DefaultKey = "books"

// ErrMalformed is returned by DecodeBooks when the blob is not a JSON array of books.
var ErrMalformed = errors.New("stored books are malformed")

// EncodeBooks serializes the collection as a JSON array.
func EncodeBooks(books []entity.Book) ([]byte, error) {
	if books == nil {
		books = []entity.Book{}
	}
	data, err := json.Marshal(books)
	if err != nil {
		return nil, fmt.Errorf("encode books: %w", err)
	}
	return data, nil
}

// DecodeBooks parses a blob written by EncodeBooks. A JSON null decodes to an
// empty collection.
func DecodeBooks(data []byte) ([]entity.Book, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return []entity.Book{}, nil
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrMalformed
	}

	var books []entity.Book
	if err := json.Unmarshal(trimmed, &books); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return books, nil
}

// decodeOrEmpty fails open: a malformed blob is logged and read as empty.
func decodeOrEmpty(source string, data []byte) []entity.Book {
	books, err := DecodeBooks(data)
	if err != nil {
		log.Printf("store: ignoring malformed slot source=%s err=%v", source, err)
		return []entity.Book{}
	}
	return books
}
