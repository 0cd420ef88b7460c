// Package mongostore persists game aggregates in MongoDB collections.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"draw-guess/internal/game"
)

const (
	databaseName     = "draw-guess"
	gamesCollection  = "games"
	roundsCollection = "rounds"
	wordsCollection  = "words"

	queryPeriod = 5 * time.Second
)

type Store struct {
	games  *mongo.Collection
	rounds *mongo.Collection
	words  *mongo.Collection
}

// New connects to MongoDB and returns a Store over the draw-guess database.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(databaseURL)
	ctx, cancel := context.WithTimeout(ctx, queryPeriod)
	defer cancel()
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	database := client.Database(databaseName)
	return &Store{
		games:  database.Collection(gamesCollection),
		rounds: database.Collection(roundsCollection),
		words:  database.Collection(wordsCollection),
	}, nil
}

// Setup creates the unique indexes the store relies on.
func (s *Store) Setup(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryPeriod)
	defer cancel()
	_, err := s.games.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating unique game code index: %w", err)
	}
	_, err = s.words.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "lang", Value: 1}, {Key: "word", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating unique word index: %w", err)
	}
	_, err = s.rounds.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "game_code", Value: 1}, {Key: "stage", Value: -1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating round history index: %w", err)
	}
	return nil
}

func (s *Store) CreateGame(ctx context.Context, g *game.Game) error {
	ctx, cancel := context.WithTimeout(ctx, queryPeriod)
	defer cancel()
	if _, err := s.games.InsertOne(ctx, g); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return game.ErrCodeTaken
		}
		return fmt.Errorf("creating game: %w", err)
	}
	return nil
}

func (s *Store) LoadGame(ctx context.Context, code string) (*game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, queryPeriod)
	defer cancel()
	var g game.Game
	err := s.games.FindOne(ctx, bson.D{{Key: "code", Value: code}}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, game.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading game: %w", err)
	}
	return &g, nil
}

func (s *Store) SaveGame(ctx context.Context, g *game.Game) error {
	ctx, cancel := context.WithTimeout(ctx, queryPeriod)
	defer cancel()
	result, err := s.games.ReplaceOne(ctx, bson.D{{Key: "code", Value: g.Code}}, g)
	if err != nil {
		return fmt.Errorf("saving game: %w", err)
	}
	if result.MatchedCount == 0 {
		return game.ErrNotFound
	}
	return nil
}

func (s *Store) AppendRound(ctx context.Context, r *game.RoundRecord) error {
	ctx, cancel := context.WithTimeout(ctx, queryPeriod)
	defer cancel()
	if _, err := s.rounds.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("appending round: %w", err)
	}
	return nil
}

func (s *Store) LatestRound(ctx context.Context, code string) (*game.RoundRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, queryPeriod)
	defer cancel()
	opts := options.FindOne().SetSort(bson.D{{Key: "stage", Value: -1}})
	var record game.RoundRecord
	err := s.rounds.FindOne(ctx, bson.D{{Key: "game_code", Value: code}}, opts).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, game.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading round history: %w", err)
	}
	return &record, nil
}

func (s *Store) CountWords(ctx context.Context, lang string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryPeriod)
	defer cancel()
	count, err := s.words.CountDocuments(ctx, bson.D{{Key: "lang", Value: lang}})
	if err != nil {
		return 0, fmt.Errorf("counting words: %w", err)
	}
	return count, nil
}

func (s *Store) WordAt(ctx context.Context, lang string, index int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryPeriod)
	defer cancel()
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}}).SetSkip(index)
	var entry game.WordEntry
	err := s.words.FindOne(ctx, bson.D{{Key: "lang", Value: lang}}, opts).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", game.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("picking word: %w", err)
	}
	return entry.Word, nil
}

// AddWord inserts a catalog entry, ignoring duplicates.
func (s *Store) AddWord(ctx context.Context, lang, word string) error {
	ctx, cancel := context.WithTimeout(ctx, queryPeriod)
	defer cancel()
	_, err := s.words.InsertOne(ctx, game.WordEntry{Lang: lang, Word: word})
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("adding word: %w", err)
	}
	return nil
}

// ListWords returns the catalog, optionally filtered by language.
func (s *Store) ListWords(ctx context.Context, lang string) ([]game.WordEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, queryPeriod)
	defer cancel()
	filter := bson.D{}
	if lang != "" {
		filter = bson.D{{Key: "lang", Value: lang}}
	}
	opts := options.Find().SetSort(bson.D{{Key: "lang", Value: 1}, {Key: "word", Value: 1}})
	cursor, err := s.words.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("listing words: %w", err)
	}
	defer cursor.Close(ctx)
	var entries []game.WordEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decoding words: %w", err)
	}
	return entries, nil
}
