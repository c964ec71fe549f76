// Package view renders the bookshelf page: one list of unfinished books and
// one of finished books.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"slices"
	"sync"

	"bookshelf/internal/entity"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Static returns the page's script and stylesheet.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Page is the data behind one rendering.
type Page struct {
	Incomplete []entity.Book
	Complete   []entity.Book
}

// Split sorts books onto the two shelves, keeping their order.
func Split(books []entity.Book) Page {
	p := Page{
		Incomplete: []entity.Book{},
		Complete:   []entity.Book{},
	}
	for _, b := range books {
		if b.IsComplete {
			p.Complete = append(p.Complete, b)
		} else {
			p.Incomplete = append(p.Incomplete, b)
		}
	}
	return p
}

// Shelf holds the most recent rendering. Each Render replaces it entirely.
type Shelf struct {
	mu   sync.RWMutex
	page Page
}

func NewShelf() *Shelf {
	return &Shelf{page: Split(nil)}
}

func (s *Shelf) Render(books []entity.Book) {
	page := Split(books)
	s.mu.Lock()
	s.page = page
	s.mu.Unlock()
}

// Page returns a copy of the current rendering.
func (s *Shelf) Page() Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Page{
		Incomplete: slices.Clone(s.page.Incomplete),
		Complete:   slices.Clone(s.page.Complete),
	}
}

// WriteHTML writes the current rendering as a full HTML page.
func (s *Shelf) WriteHTML(w io.Writer) error {
	if err := pageTemplate.ExecuteTemplate(w, "shelf", s.Page()); err != nil {
		return fmt.Errorf("render shelf: %w", err)
	}
	return nil
}
