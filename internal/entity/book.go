package entity

import "fmt"

// Book is one record on the shelf. ID is assigned on creation and never changes.
type Book struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Year       Year   `json:"year"`
	IsComplete bool   `json:"isComplete"`
}

// BookInput carries the user-supplied fields of a new book.
type BookInput struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	Year       Year   `json:"year"`
	IsComplete bool   `json:"isComplete"`
}

// WithCompletion returns a copy of b with IsComplete set to v.
func (b Book) WithCompletion(v bool) Book {
	b.IsComplete = v
	return b
}

func (b Book) String() string {
	return fmt.Sprintf("%d %q by %s (%s) complete=%t", b.ID, b.Title, b.Author, b.Year, b.IsComplete)
}
