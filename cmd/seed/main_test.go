package main

import (
	"context"
	"math/rand"
	"testing"

	"bookshelf/internal/store"
	"bookshelf/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("appends to existing books", func(t *testing.T) {
		slot := store.NewMemorySlot()
		require.NoError(t, slot.Save(ctx, testutil.SampleBooks()))

		total, err := seed(ctx, slot, 5, false, rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		assert.Equal(t, 7, total)

		books, err := slot.Load(ctx)
		require.NoError(t, err)
		require.Len(t, books, 7)
		assert.Equal(t, testutil.SampleBooks(), books[:2])

		seen := map[int64]bool{}
		for _, b := range books {
			assert.False(t, seen[b.ID], "duplicate id %d", b.ID)
			seen[b.ID] = true
			assert.True(t, b.Year.Valid)
		}
	})

	t.Run("reset replaces books", func(t *testing.T) {
		slot := store.NewMemorySlot()
		require.NoError(t, slot.Save(ctx, testutil.SampleBooks()))

		total, err := seed(ctx, slot, 3, true, rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		assert.Equal(t, 3, total)

		books, err := slot.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, books, 3)
	})
}
