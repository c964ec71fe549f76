package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"bookshelf/internal/bookshelf"
	"bookshelf/internal/config"
	"bookshelf/internal/entity"
	"bookshelf/internal/store"
)

func main() {
	var (
		count = flag.Int("count", 20, "Number of books to generate")
		reset = flag.Bool("reset", false, "Clear the shelf before seeding")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	backend, err := store.Open(ctx, store.Options{
		Driver:      cfg.StorageDriver,
		Key:         cfg.StorageKey,
		DataDir:     cfg.DataDir,
		SQLitePath:  cfg.SQLitePath,
		DSN:         cfg.DatabaseDSN,
		Timeout:     cfg.DBTimeout,
		AutoMigrate: cfg.AutoMigrate,
	})
	if err != nil {
		log.Fatalf("Failed to open storage driver=%s: %v", cfg.StorageDriver, err)
	}
	defer backend.Close()

	total, err := seed(ctx, backend, *count, *reset, rand.New(rand.NewSource(rand.Int63())))
	if err != nil {
		log.Fatalf("Failed to seed books: %v", err)
	}
	log.Printf("Total books on the shelf: %d", total)
}

// seed appends count generated books to the slot's collection and saves it
// once. It returns the resulting collection size.
func seed(ctx context.Context, slot bookshelf.Slot, count int, reset bool, rnd *rand.Rand) (int, error) {
	var existing []entity.Book
	if !reset {
		books, err := slot.Load(ctx)
		if err != nil {
			return 0, fmt.Errorf("load books: %w", err)
		}
		existing = books
	}

	shelf := bookshelf.NewStore(existing)
	log.Printf("Generating %d books...", count)
	for i := 0; i < count; i++ {
		in := entity.BookInput{
			Title:      fmt.Sprintf("Book Title %d - %s", shelf.Len()+1, randomWord(rnd)),
			Author:     fmt.Sprintf("%s %s", randomWord(rnd), randomWord(rnd)),
			Year:       entity.YearOf(int64(1950 + rnd.Intn(75))),
			IsComplete: rnd.Intn(2) == 0,
		}
		if _, err := shelf.Add(ctx, in); err != nil {
			return 0, fmt.Errorf("add book: %w", err)
		}
	}

	if err := slot.Save(ctx, shelf.All()); err != nil {
		return 0, fmt.Errorf("save books: %w", err)
	}
	return shelf.Len(), nil
}

func randomWord(rnd *rand.Rand) string {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	return words[rnd.Intn(len(words))]
}
