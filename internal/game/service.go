package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"draw-guess/internal/config"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const createCodeAttempts = 5

type durations struct {
	name   time.Duration
	choose time.Duration
	scores time.Duration
}

// Service owns the authoritative game lifecycle: it validates every action
// against the current state and actor, mutates the persisted aggregate and
// advances the state machine once nobody is left waiting or a deadline forces
// it.
type Service struct {
	store  Store
	locker *Locker
	log    zerolog.Logger

	points          Points
	stage           durations
	codeLength      int
	wordRetryBudget int

	now func() time.Time

	randMu sync.Mutex
	rng    *rand.Rand
}

func New(store Store, locker *Locker, cfg config.Config) *Service {
	return &Service{
		store:  store,
		locker: locker,
		log:    log.With().Str("component", "game").Logger(),
		points: Points{
			WinOnTurn:    cfg.PointsWinOnTurn,
			CorrectGuess: cfg.PointsCorrectGuess,
			Mislead:      cfg.PointsMislead,
		},
		stage: durations{
			name:   time.Duration(cfg.NameDurationSeconds) * time.Second,
			choose: time.Duration(cfg.ChooseDurationSeconds) * time.Second,
			scores: time.Duration(cfg.ScoresDurationSeconds) * time.Second,
		},
		codeLength:      cfg.GameCodeLength,
		wordRetryBudget: cfg.WordRetryBudget,
		now:             func() time.Time { return time.Now().UTC() },
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Service) randIntn(n int) int {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	return s.rng.Intn(n)
}

func (s *Service) newPermutation(n int) []int {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	return randomPermutation(s.rng, n)
}

func (s *Service) newGameCode() string {
	buf := make([]byte, s.codeLength)
	for i := range buf {
		buf[i] = codeAlphabet[s.randIntn(len(codeAlphabet))]
	}
	return string(buf)
}

// CreateGame allocates a fresh code, assigns the owner their first secret
// word and stores the aggregate in the created state.
func (s *Service) CreateGame(ctx context.Context, owner string, maxScore int, lang string) (string, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return "", ErrUnknownPlayer
	}
	for attempt := 0; attempt < createCodeAttempts; attempt++ {
		code := s.newGameCode()
		word, err := s.issueWord(ctx, code, lang, nil)
		if err != nil {
			return "", err
		}
		g := &Game{
			Code:           code,
			Owner:          owner,
			Lang:           lang,
			MaxScore:       maxScore,
			State:          StateCreated,
			Players:        []Player{{Name: owner, Word: word}},
			UsedWords:      []string{},
			StageStartedAt: s.now(),
		}
		err = s.store.CreateGame(ctx, g)
		if errors.Is(err, ErrCodeTaken) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating game: %w", err)
		}
		s.log.Info().Str("code", code).Str("owner", owner).Str("lang", lang).Int("max_score", maxScore).Msg("game created")
		return code, nil
	}
	return "", fmt.Errorf("could not allocate an unused game code")
}

// JoinGame adds a named player with a freshly issued word. Only legal while
// the game has not started.
func (s *Service) JoinGame(ctx context.Context, code, name string) error {
	name = strings.TrimSpace(name)
	return s.locker.WithLock(ctx, code, func(ctx context.Context) error {
		g, err := s.loadGame(ctx, code)
		if err != nil {
			return err
		}
		if g.State != StateCreated {
			return ErrWrongState
		}
		if name == "" {
			return ErrUnknownPlayer
		}
		if g.player(name) != nil {
			return ErrAlreadyJoined
		}
		word, err := s.issueWord(ctx, code, g.Lang, nil)
		if err != nil {
			return err
		}
		g.Players = append(g.Players, Player{Name: name, Word: word})
		if err := s.saveGame(ctx, g); err != nil {
			return err
		}
		s.log.Info().Str("code", code).Str("player", name).Msg("player joined")
		return nil
	})
}

// StartGame moves the game to waiting_for_initial_pic. Owner-only, and at
// least two players must have joined.
func (s *Service) StartGame(ctx context.Context, code, requestor string) error {
	return s.locker.WithLock(ctx, code, func(ctx context.Context) error {
		g, err := s.loadGame(ctx, code)
		if err != nil {
			return err
		}
		if g.State != StateCreated {
			return ErrWrongState
		}
		if requestor != g.Owner {
			return ErrNotOwner
		}
		if len(g.Players) < 2 {
			return ErrNotEnoughPlayers
		}
		g.State = StateWaitingForInitialPic
		g.StageStartedAt = s.now()
		g.StageDeadline = time.Time{}
		g.setAllWaiting(true)
		if err := s.saveGame(ctx, g); err != nil {
			return err
		}
		s.log.Info().Str("code", code).Msg("game started")
		return nil
	})
}

// SubmitDrawing stores a player's picture for the current cycle. When the
// last drawing lands the machine rolls a fresh turn order and enters
// action_name.
func (s *Service) SubmitDrawing(ctx context.Context, code, name, drawing string) error {
	return s.locker.WithLock(ctx, code, func(ctx context.Context) error {
		g, err := s.loadGame(ctx, code)
		if err != nil {
			return err
		}
		if g.State != StateWaitingForInitialPic {
			return ErrWrongState
		}
		p := g.player(name)
		if p == nil {
			return ErrUnknownPlayer
		}
		if !p.WaitingForAction {
			return ErrAlreadyActed
		}
		p.Drawing = drawing
		p.WaitingForAction = false
		s.log.Info().Str("code", code).Str("player", name).Msg("drawing submitted")
		if err := s.checkAndAdvance(ctx, g, false); err != nil {
			return err
		}
		return s.saveGame(ctx, g)
	})
}

// SubmitCaption records a non-turn player's decoy caption during action_name.
func (s *Service) SubmitCaption(ctx context.Context, code, name, caption string) error {
	caption = strings.TrimSpace(caption)
	return s.locker.WithLock(ctx, code, func(ctx context.Context) error {
		g, err := s.loadGame(ctx, code)
		if err != nil {
			return err
		}
		if g.State != StateActionName {
			return ErrWrongState
		}
		p := g.player(name)
		if p == nil {
			return ErrUnknownPlayer
		}
		if turn := g.turnPlayer(); turn != nil && turn.Name == name {
			return ErrIsYourTurn
		}
		if !p.WaitingForAction {
			return ErrAlreadyActed
		}
		if p.Round == nil {
			p.Round = &RoundScratch{}
		}
		p.Round.ChosenCaption = caption
		p.WaitingForAction = false
		s.log.Info().Str("code", code).Str("player", name).Msg("caption submitted")
		if err := s.checkAndAdvance(ctx, g, false); err != nil {
			return err
		}
		return s.saveGame(ctx, g)
	})
}

// SubmitGuess records which caption a non-turn player believes is the true
// word. The guessed text must be in play, and guessing your own decoy is
// rejected unless another player submitted the identical text.
func (s *Service) SubmitGuess(ctx context.Context, code, name, caption string) error {
	caption = strings.TrimSpace(caption)
	return s.locker.WithLock(ctx, code, func(ctx context.Context) error {
		g, err := s.loadGame(ctx, code)
		if err != nil {
			return err
		}
		if g.State != StateActionChoose {
			return ErrWrongState
		}
		p := g.player(name)
		if p == nil {
			return ErrUnknownPlayer
		}
		if turn := g.turnPlayer(); turn != nil && turn.Name == name {
			return ErrIsYourTurn
		}
		if !p.WaitingForAction {
			return ErrAlreadyActed
		}
		matches := make([]Caption, 0, 2)
		for _, c := range g.captionsInPlay() {
			if c.Text == caption {
				matches = append(matches, c)
			}
		}
		if len(matches) == 0 {
			return ErrUnknownCaption
		}
		// A caption text submitted by exactly one author is provably that
		// author's own; with a collision the self-guess cannot be proven and
		// is allowed.
		if len(matches) == 1 && matches[0].Owner == name {
			return ErrOwnCaption
		}
		if p.Round == nil {
			p.Round = &RoundScratch{}
		}
		p.Round.GuessedCaption = caption
		p.WaitingForAction = false
		s.log.Info().Str("code", code).Str("player", name).Msg("guess submitted")
		if err := s.checkAndAdvance(ctx, g, false); err != nil {
			return err
		}
		return s.saveGame(ctx, g)
	})
}

func (s *Service) loadGame(ctx context.Context, code string) (*Game, error) {
	g, err := s.store.LoadGame(ctx, code)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading game %s: %w", code, err)
	}
	return g, nil
}

func (s *Service) saveGame(ctx context.Context, g *Game) error {
	if err := s.store.SaveGame(ctx, g); err != nil {
		return fmt.Errorf("saving game %s: %w", g.Code, err)
	}
	return nil
}
