package bookshelf

import (
	"testing"

	"bookshelf/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestFilterByTitle(t *testing.T) {
	books := []entity.Book{
		{ID: 1, Title: "Dune"},
		{ID: 2, Title: "The Hobbit"},
		{ID: 3, Title: "Dune Messiah"},
	}

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{name: "empty query returns all in order", query: "", want: []int64{1, 2, 3}},
		{name: "case insensitive", query: "dUN", want: []int64{1, 3}},
		{name: "substring in the middle", query: "obb", want: []int64{2}},
		{name: "no match", query: "ZZZQQQ", want: []int64{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterByTitle(books, tc.query)
			ids := make([]int64, 0, len(got))
			for _, b := range got {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestFilterByTitle_DoesNotAlias(t *testing.T) {
	books := []entity.Book{{ID: 1, Title: "Dune"}}

	got := FilterByTitle(books, "")
	got[0].Title = "changed"

	assert.Equal(t, "Dune", books[0].Title)
}
