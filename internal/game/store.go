package game

import (
	"context"
	"errors"
)

// Store is the document-store abstraction the engine runs against. Game
// aggregates are read and written whole; round history is append-only.
// Implementations live in internal/storage; the in-memory store below backs
// the tests.
type Store interface {
	// CreateGame inserts a new aggregate. ErrCodeTaken is returned when the
	// code is already in use.
	CreateGame(ctx context.Context, g *Game) error
	// LoadGame returns the aggregate for code, or ErrNotFound.
	LoadGame(ctx context.Context, code string) (*Game, error)
	// SaveGame overwrites the whole aggregate.
	SaveGame(ctx context.Context, g *Game) error

	// AppendRound records one closed round.
	AppendRound(ctx context.Context, r *RoundRecord) error
	// LatestRound returns the most recent round record for code, or
	// ErrNotFound when no round has closed yet.
	LatestRound(ctx context.Context, code string) (*RoundRecord, error)

	// CountWords reports the catalog size for a language.
	CountWords(ctx context.Context, lang string) (int64, error)
	// WordAt returns the catalog entry at index, 0 <= index < CountWords.
	WordAt(ctx context.Context, lang string, index int64) (string, error)
}

// Storage sentinels, distinct from the caller-facing coded errors. The
// service translates ErrNotFound into ErrGameNotFound where a caller named a
// game.
var (
	ErrNotFound  = errors.New("not found")
	ErrCodeTaken = errors.New("game code already in use")
)
