// Package storage selects and wires a persistence backend for the engine.
package storage

import (
	"context"
	"fmt"
	"os"

	"draw-guess/internal/config"
	"draw-guess/internal/db"
	"draw-guess/internal/game"
	"draw-guess/internal/storage/gormstore"
	"draw-guess/internal/storage/mongostore"
)

// Backend is the full persistence surface: the engine's document store plus
// the word catalog admin operations.
type Backend interface {
	game.Store
	AddWord(ctx context.Context, lang, word string) error
	ListWords(ctx context.Context, lang string) ([]game.WordEntry, error)
}

// Open builds the backend named by cfg.StorageBackend: postgres (default),
// mongo, or memory for a database-less dev server.
func Open(ctx context.Context, cfg config.Config) (Backend, error) {
	switch cfg.StorageBackend {
	case "postgres":
		conn, err := db.Open(cfg)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(conn); err != nil {
			return nil, err
		}
		return gormstore.New(conn), nil
	case "mongo":
		url := os.Getenv("MONGO_URL")
		if url == "" {
			return nil, fmt.Errorf("MONGO_URL is not set")
		}
		store, err := mongostore.New(ctx, url)
		if err != nil {
			return nil, err
		}
		if err := store.Setup(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case "memory":
		return game.NewMemStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
