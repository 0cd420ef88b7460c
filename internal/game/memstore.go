package game

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
)

// MemStore is an in-memory Store. It backs the tests and lets the server run
// without a database. Aggregates are copied on every load and save so callers
// never alias the stored document.
type MemStore struct {
	mu     sync.Mutex
	games  map[string]*Game
	rounds map[string][]*RoundRecord
	words  map[string][]string
}

func NewMemStore() *MemStore {
	return &MemStore{
		games:  make(map[string]*Game),
		rounds: make(map[string][]*RoundRecord),
		words:  make(map[string][]string),
	}
}

// AddWord seeds one catalog entry, ignoring duplicates.
func (m *MemStore) AddWord(ctx context.Context, lang, word string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.words[lang] {
		if existing == word {
			return nil
		}
	}
	m.words[lang] = append(m.words[lang], word)
	return nil
}

// ListWords returns the catalog, optionally filtered by language.
func (m *MemStore) ListWords(ctx context.Context, lang string) ([]WordEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]WordEntry, 0)
	for l, words := range m.words {
		if lang != "" && l != lang {
			continue
		}
		for _, w := range words {
			entries = append(entries, WordEntry{Lang: l, Word: w})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Lang != entries[j].Lang {
			return entries[i].Lang < entries[j].Lang
		}
		return entries[i].Word < entries[j].Word
	})
	return entries, nil
}

func (m *MemStore) CreateGame(ctx context.Context, g *Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[g.Code]; ok {
		return ErrCodeTaken
	}
	m.games[g.Code] = copyGame(g)
	return nil
}

func (m *MemStore) LoadGame(ctx context.Context, code string) (*Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[code]
	if !ok {
		return nil, ErrNotFound
	}
	return copyGame(g), nil
}

func (m *MemStore) SaveGame(ctx context.Context, g *Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[g.Code]; !ok {
		return ErrNotFound
	}
	m.games[g.Code] = copyGame(g)
	return nil
}

func (m *MemStore) AppendRound(ctx context.Context, r *RoundRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	record := *r
	record.Guesses = append([]RoundGuess(nil), r.Guesses...)
	m.rounds[r.GameCode] = append(m.rounds[r.GameCode], &record)
	return nil
}

func (m *MemStore) LatestRound(ctx context.Context, code string) (*RoundRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rounds := m.rounds[code]
	if len(rounds) == 0 {
		return nil, ErrNotFound
	}
	record := *rounds[len(rounds)-1]
	record.Guesses = append([]RoundGuess(nil), rounds[len(rounds)-1].Guesses...)
	return &record, nil
}

func (m *MemStore) CountWords(ctx context.Context, lang string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.words[lang])), nil
}

func (m *MemStore) WordAt(ctx context.Context, lang string, index int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	words := m.words[lang]
	if index < 0 || index >= int64(len(words)) {
		return "", ErrNotFound
	}
	return words[index], nil
}

func copyGame(g *Game) *Game {
	data, err := json.Marshal(g)
	if err != nil {
		panic(err)
	}
	var clone Game
	if err := json.Unmarshal(data, &clone); err != nil {
		panic(err)
	}
	return &clone
}
