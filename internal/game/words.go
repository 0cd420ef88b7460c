package game

import (
	"context"
	"errors"
	"fmt"
)

// WordEntry is one language-tagged catalog entry. Entries are immutable once
// stored.
type WordEntry struct {
	Lang string `json:"lang" bson:"lang"`
	Word string `json:"word" bson:"word"`
}

// issueWord draws a uniform random catalog word for lang that is neither held
// by a player of the named game nor present in exclude. Selection retries
// against collisions up to the configured budget; a catalog smaller than the
// demand fails with ErrWordsExhausted rather than ever issuing a duplicate.
func (s *Service) issueWord(ctx context.Context, code, lang string, exclude []string) (string, error) {
	count, err := s.store.CountWords(ctx, lang)
	if err != nil {
		return "", fmt.Errorf("counting words: %w", err)
	}
	if count == 0 {
		return "", ErrNoWords
	}

	inUse := make(map[string]struct{}, len(exclude))
	for _, w := range exclude {
		inUse[w] = struct{}{}
	}
	if g, err := s.store.LoadGame(ctx, code); err == nil {
		for _, w := range g.playerWords() {
			inUse[w] = struct{}{}
		}
	} else if !errors.Is(err, ErrNotFound) {
		return "", fmt.Errorf("loading game %s: %w", code, err)
	}

	for attempt := 0; attempt < s.wordRetryBudget; attempt++ {
		word, err := s.store.WordAt(ctx, lang, int64(s.randIntn(int(count))))
		if err != nil {
			return "", fmt.Errorf("picking word: %w", err)
		}
		if _, taken := inUse[word]; taken {
			continue
		}
		return word, nil
	}
	return "", ErrWordsExhausted
}

// issueWords draws count pairwise-distinct words by repeated single issuance,
// growing the exclusion set each time.
func (s *Service) issueWords(ctx context.Context, code, lang string, count int, exclude []string) ([]string, error) {
	words := make([]string, 0, count)
	excluded := append([]string(nil), exclude...)
	for i := 0; i < count; i++ {
		word, err := s.issueWord(ctx, code, lang, excluded)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
		excluded = append(excluded, word)
	}
	return words, nil
}
