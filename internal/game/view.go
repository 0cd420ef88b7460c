package game

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
)

// View is the state-specific, audience-filtered projection returned to a
// polling client. Fields past WaitingFor are populated per state.
type View struct {
	Code       string        `json:"code"`
	Owner      string        `json:"owner"`
	State      State         `json:"state"`
	Players    []PlayerScore `json:"players"`
	MaxScore   int           `json:"max_score"`
	Word       string        `json:"word,omitempty"`
	WaitingFor []string      `json:"waiting_for"`

	MyTurn       bool        `json:"my_turn,omitempty"`
	Drawing      string      `json:"drawing,omitempty"`
	StateSeconds int         `json:"state_seconds,omitempty"`
	RemainingSec float64     `json:"remaining_sec,omitempty"`
	Captions     []string    `json:"captions,omitempty"`
	Turn         string      `json:"turn,omitempty"`
	TurnWord     string      `json:"turn_word,omitempty"`
	TurnScore    int         `json:"turn_score,omitempty"`
	Guesses      []GuessView `json:"guesses,omitempty"`
}

type PlayerScore struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type GuessView struct {
	Name           string `json:"name"`
	ChosenCaption  string `json:"chosen_caption"`
	GuessedCaption string `json:"guessed_caption"`
	Score          int    `json:"score"`
}

// GetGameView projects the game for one viewer. A read that finds the stage
// deadline elapsed first forces a single state advancement and projects the
// post-advance state; one step always reaches a stage whose deadline lies in
// the future.
func (s *Service) GetGameView(ctx context.Context, code, viewer string) (*View, error) {
	var view *View
	err := s.locker.WithLock(ctx, code, func(ctx context.Context) error {
		g, err := s.loadGame(ctx, code)
		if err != nil {
			return err
		}
		if g.player(viewer) == nil {
			return ErrUnknownPlayer
		}
		if g.deadlineExpired(s.now()) {
			s.log.Info().Str("code", code).Str("state", string(g.State)).Msg("stage deadline elapsed, forcing advancement")
			if err := s.checkAndAdvance(ctx, g, true); err != nil {
				return err
			}
			if err := s.saveGame(ctx, g); err != nil {
				return err
			}
		}
		view, err = s.project(ctx, g, viewer)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *Service) project(ctx context.Context, g *Game, viewer string) (*View, error) {
	view := &View{
		Code:       g.Code,
		Owner:      g.Owner,
		State:      g.State,
		MaxScore:   g.MaxScore,
		Word:       g.player(viewer).Word,
		WaitingFor: g.waitingNames(),
		Players:    make([]PlayerScore, 0, len(g.Players)),
	}
	for i := range g.Players {
		view.Players = append(view.Players, PlayerScore{Name: g.Players[i].Name, Score: g.Players[i].Score})
	}

	switch g.State {
	case StateActionName:
		s.projectTurn(g, viewer, view)
		view.StateSeconds = int(s.stage.name.Seconds())

	case StateActionChoose:
		s.projectTurn(g, viewer, view)
		view.StateSeconds = int(s.stage.choose.Seconds())
		view.Captions = sortedCaptionTexts(g.captionsInPlay())

	case StateActionScores:
		record, err := s.store.LatestRound(ctx, g.Code)
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("round history missing for game %s stage %d", g.Code, g.Stage)
		}
		if err != nil {
			return nil, fmt.Errorf("reading round history for game %s: %w", g.Code, err)
		}
		if record.Stage != g.Stage {
			return nil, fmt.Errorf("round history out of sync for game %s: have stage %d, want %d", g.Code, record.Stage, g.Stage)
		}
		view.StateSeconds = int(s.stage.scores.Seconds())
		view.RemainingSec = s.remainingSec(g)
		view.Drawing = record.Drawing
		view.Turn = record.TurnPlayer
		view.TurnWord = record.Word
		view.TurnScore = record.TurnScore
		for _, guess := range record.Guesses {
			if guess.Name == record.TurnPlayer {
				continue
			}
			view.Guesses = append(view.Guesses, GuessView{
				Name:           guess.Name,
				ChosenCaption:  guess.ChosenCaption,
				GuessedCaption: guess.GuessedCaption,
				Score:          guess.Score,
			})
		}
	}

	return view, nil
}

func (s *Service) projectTurn(g *Game, viewer string, view *View) {
	if turn := g.turnPlayer(); turn != nil {
		view.Drawing = turn.Drawing
		view.MyTurn = turn.Name == viewer
	}
	view.RemainingSec = s.remainingSec(g)
}

func (s *Service) remainingSec(g *Game) float64 {
	if g.StageDeadline.IsZero() {
		return 0
	}
	return g.StageDeadline.Sub(s.now()).Seconds()
}

// sortedCaptionTexts orders the candidate captions by descending md5 of their
// text so every viewer sees an identical, submission-order-independent list.
func sortedCaptionTexts(captions []Caption) []string {
	texts := make([]string, 0, len(captions))
	for _, c := range captions {
		texts = append(texts, c.Text)
	}
	sort.SliceStable(texts, func(i, j int) bool {
		return captionSortKey(texts[i]) > captionSortKey(texts[j])
	})
	return texts
}

func captionSortKey(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
