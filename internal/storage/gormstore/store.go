// Package gormstore persists game aggregates as json documents in Postgres.
package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"draw-guess/internal/db"
	"draw-guess/internal/game"
)

type Store struct {
	conn *gorm.DB
}

func New(conn *gorm.DB) *Store {
	return &Store{conn: conn}
}

func (s *Store) CreateGame(ctx context.Context, g *game.Game) error {
	doc, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encoding game %s: %w", g.Code, err)
	}
	record := db.Game{
		Code:  g.Code,
		State: string(g.State),
		Doc:   datatypes.JSON(doc),
	}
	err = s.conn.WithContext(ctx).Create(&record).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return game.ErrCodeTaken
	}
	return err
}

func (s *Store) LoadGame(ctx context.Context, code string) (*game.Game, error) {
	var record db.Game
	err := s.conn.WithContext(ctx).Where("code = ?", code).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, game.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var g game.Game
	if err := json.Unmarshal(record.Doc, &g); err != nil {
		return nil, fmt.Errorf("decoding game %s: %w", code, err)
	}
	return &g, nil
}

func (s *Store) SaveGame(ctx context.Context, g *game.Game) error {
	doc, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encoding game %s: %w", g.Code, err)
	}
	result := s.conn.WithContext(ctx).Model(&db.Game{}).
		Where("code = ?", g.Code).
		Updates(map[string]any{
			"state": string(g.State),
			"doc":   datatypes.JSON(doc),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return game.ErrNotFound
	}
	return nil
}

func (s *Store) AppendRound(ctx context.Context, r *game.RoundRecord) error {
	guesses, err := json.Marshal(r.Guesses)
	if err != nil {
		return fmt.Errorf("encoding round guesses: %w", err)
	}
	record := db.Round{
		GameCode:   r.GameCode,
		Stage:      r.Stage,
		TurnPlayer: r.TurnPlayer,
		Word:       r.Word,
		Drawing:    r.Drawing,
		TurnScore:  r.TurnScore,
		Guesses:    datatypes.JSON(guesses),
	}
	return s.conn.WithContext(ctx).Create(&record).Error
}

func (s *Store) LatestRound(ctx context.Context, code string) (*game.RoundRecord, error) {
	var record db.Round
	err := s.conn.WithContext(ctx).
		Where("game_code = ?", code).
		Order("stage DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, game.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	result := &game.RoundRecord{
		GameCode:   record.GameCode,
		Stage:      record.Stage,
		TurnPlayer: record.TurnPlayer,
		Word:       record.Word,
		Drawing:    record.Drawing,
		TurnScore:  record.TurnScore,
	}
	if err := json.Unmarshal(record.Guesses, &result.Guesses); err != nil {
		return nil, fmt.Errorf("decoding round guesses for game %s: %w", code, err)
	}
	return result, nil
}

func (s *Store) CountWords(ctx context.Context, lang string) (int64, error) {
	var count int64
	err := s.conn.WithContext(ctx).Model(&db.Word{}).Where("lang = ?", lang).Count(&count).Error
	return count, err
}

func (s *Store) WordAt(ctx context.Context, lang string, index int64) (string, error) {
	var record db.Word
	err := s.conn.WithContext(ctx).
		Where("lang = ?", lang).
		Order("id").
		Offset(int(index)).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", game.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return record.Word, nil
}

// AddWord inserts a catalog entry, ignoring duplicates.
func (s *Store) AddWord(ctx context.Context, lang, word string) error {
	record := db.Word{Lang: lang, Word: word}
	err := s.conn.WithContext(ctx).Create(&record).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// ListWords returns the catalog, optionally filtered by language.
func (s *Store) ListWords(ctx context.Context, lang string) ([]game.WordEntry, error) {
	query := s.conn.WithContext(ctx).Model(&db.Word{}).Order("lang, word")
	if lang != "" {
		query = query.Where("lang = ?", lang)
	}
	var records []db.Word
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	words := make([]game.WordEntry, 0, len(records))
	for _, record := range records {
		words = append(words, game.WordEntry{Lang: record.Lang, Word: record.Word})
	}
	return words, nil
}
