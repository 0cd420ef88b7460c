package db

import (
	"time"

	"gorm.io/datatypes"
)

// Game rows hold the whole session aggregate as a json document; code is the
// primary lookup key and state is lifted out for operability queries.
type Game struct {
	ID        uint           `gorm:"primaryKey"`
	Code      string         `gorm:"size:12;uniqueIndex;not null"`
	State     string         `gorm:"size:32;not null"`
	Doc       datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
}

type Word struct {
	ID        uint      `gorm:"primaryKey"`
	Lang      string    `gorm:"size:16;not null;uniqueIndex:idx_words_lang_word"`
	Word      string    `gorm:"size:64;not null;uniqueIndex:idx_words_lang_word"`
	CreatedAt time.Time `gorm:"not null"`
}

// Round is the append-only history of closed rounds.
type Round struct {
	ID         uint           `gorm:"primaryKey"`
	GameCode   string         `gorm:"size:12;index;not null;uniqueIndex:idx_rounds_game_stage"`
	Stage      int            `gorm:"not null;uniqueIndex:idx_rounds_game_stage"`
	TurnPlayer string         `gorm:"size:64;not null"`
	Word       string         `gorm:"size:64;not null"`
	Drawing    string         `gorm:"type:text;not null"`
	TurnScore  int            `gorm:"not null"`
	Guesses    datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time      `gorm:"not null"`
}
