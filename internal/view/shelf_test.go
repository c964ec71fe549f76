package view

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"

	"bookshelf/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	books := []entity.Book{
		{ID: 1, Title: "Dune", IsComplete: true},
		{ID: 2, Title: "Hobbit"},
		{ID: 3, Title: "Emma", IsComplete: true},
	}

	page := Split(books)

	assert.Equal(t, []entity.Book{books[1]}, page.Incomplete)
	assert.Equal(t, []entity.Book{books[0], books[2]}, page.Complete)
}

func TestShelf_RenderReplacesPage(t *testing.T) {
	shelf := NewShelf()
	assert.Empty(t, shelf.Page().Incomplete)

	shelf.Render([]entity.Book{{ID: 1, Title: "Dune"}, {ID: 2, Title: "Hobbit"}})
	assert.Len(t, shelf.Page().Incomplete, 2)

	shelf.Render([]entity.Book{{ID: 2, Title: "Hobbit", IsComplete: true}})
	page := shelf.Page()
	assert.Empty(t, page.Incomplete)
	assert.Equal(t, []entity.Book{{ID: 2, Title: "Hobbit", IsComplete: true}}, page.Complete)
}

func TestShelf_WriteHTML(t *testing.T) {
	shelf := NewShelf()
	shelf.Render([]entity.Book{
		{ID: 11, Title: "Dune", Author: "Herbert", Year: entity.YearOf(1965)},
		{ID: 12, Title: "<b>Hobbit</b>", Author: "Tolkien", Year: entity.InvalidYear, IsComplete: true},
	})

	var buf bytes.Buffer
	require.NoError(t, shelf.WriteHTML(&buf))
	html := buf.String()

	assert.Contains(t, html, "Dune")
	assert.Contains(t, html, "Year: 1965")
	assert.Contains(t, html, "Year: NaN")
	assert.Contains(t, html, `action="/books/11/complete"`)
	assert.Contains(t, html, `action="/books/12/incomplete"`)
	assert.Contains(t, html, `action="/books/12/delete"`)
	assert.Contains(t, html, "&lt;b&gt;Hobbit&lt;/b&gt;")
	assert.NotContains(t, html, "<b>Hobbit</b>")

	incomplete := html[strings.Index(html, `id="incompleteBookshelfList"`):strings.Index(html, `id="completeBookshelfList"`)]
	assert.Contains(t, incomplete, "Dune")
	assert.NotContains(t, incomplete, "Hobbit")
}

func TestStatic(t *testing.T) {
	js, err := fs.ReadFile(Static(), "shelf.js")
	require.NoError(t, err)
	assert.Contains(t, string(js), "confirm")

	_, err = fs.ReadFile(Static(), "shelf.css")
	assert.NoError(t, err)
}
