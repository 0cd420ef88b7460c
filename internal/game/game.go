package game

import "time"

type State string

const (
	StateCreated              State = "created"
	StateWaitingForInitialPic State = "waiting_for_initial_pic"
	StateActionName           State = "action_name"
	StateActionChoose         State = "action_choose"
	StateActionScores         State = "action_scores"
	StateFinished             State = "finished"
)

// Game is the whole persisted aggregate for one play session. It is always
// loaded, mutated in memory and saved back as a unit while the per-code lock
// is held.
type Game struct {
	Code           string    `json:"code" bson:"code"`
	Owner          string    `json:"owner" bson:"owner"`
	Lang           string    `json:"lang" bson:"lang"`
	MaxScore       int       `json:"max_score" bson:"max_score"`
	State          State     `json:"state" bson:"state"`
	Stage          int       `json:"stage" bson:"stage"`
	Permutation    []int     `json:"permutation" bson:"permutation"`
	Players        []Player  `json:"players" bson:"players"`
	UsedWords      []string  `json:"used_words" bson:"used_words"`
	StageStartedAt time.Time `json:"stage_started_at" bson:"stage_started_at"`
	// StageDeadline is zero in states that have no time budget
	// (created, waiting_for_initial_pic, finished).
	StageDeadline time.Time `json:"stage_deadline" bson:"stage_deadline"`
}

type Player struct {
	Name             string        `json:"name" bson:"name"`
	Word             string        `json:"word" bson:"word"`
	Drawing          string        `json:"drawing,omitempty" bson:"drawing,omitempty"`
	WaitingForAction bool          `json:"waiting_for_action" bson:"waiting_for_action"`
	Score            int           `json:"score" bson:"score"`
	Round            *RoundScratch `json:"round,omitempty" bson:"round,omitempty"`
}

// RoundScratch is the per-round submission state of a non-turn player,
// cleared when the round closes.
type RoundScratch struct {
	ChosenCaption  string `json:"chosen_caption,omitempty" bson:"chosen_caption,omitempty"`
	GuessedCaption string `json:"guessed_caption,omitempty" bson:"guessed_caption,omitempty"`
}

// RoundRecord is the write-once history entry appended when a round closes.
type RoundRecord struct {
	GameCode   string       `json:"game_code" bson:"game_code"`
	Stage      int          `json:"stage" bson:"stage"`
	TurnPlayer string       `json:"turn_player" bson:"turn_player"`
	Word       string       `json:"word" bson:"word"`
	Drawing    string       `json:"drawing" bson:"drawing"`
	TurnScore  int          `json:"turn_score" bson:"turn_score"`
	Guesses    []RoundGuess `json:"guesses" bson:"guesses"`
}

type RoundGuess struct {
	Name           string `json:"name" bson:"name"`
	ChosenCaption  string `json:"chosen_caption" bson:"chosen_caption"`
	GuessedCaption string `json:"guessed_caption" bson:"guessed_caption"`
	Score          int    `json:"score" bson:"score"`
}

// Caption is a candidate answer in play during action_choose: the turn
// player's true word or a decoy invented by a non-turn player.
type Caption struct {
	Text  string
	Owner string
}

func (g *Game) turnIndex() int {
	if len(g.Players) == 0 || len(g.Permutation) == 0 {
		return -1
	}
	return g.Permutation[g.Stage%len(g.Players)]
}

func (g *Game) turnPlayer() *Player {
	i := g.turnIndex()
	if i < 0 || i >= len(g.Players) {
		return nil
	}
	return &g.Players[i]
}

func (g *Game) player(name string) *Player {
	for i := range g.Players {
		if g.Players[i].Name == name {
			return &g.Players[i]
		}
	}
	return nil
}

func (g *Game) anyWaiting() bool {
	for i := range g.Players {
		if g.Players[i].WaitingForAction {
			return true
		}
	}
	return false
}

func (g *Game) waitingNames() []string {
	names := make([]string, 0)
	for i := range g.Players {
		if g.Players[i].WaitingForAction {
			names = append(names, g.Players[i].Name)
		}
	}
	return names
}

func (g *Game) setAllWaiting(waiting bool) {
	for i := range g.Players {
		g.Players[i].WaitingForAction = waiting
	}
}

func (g *Game) playerWords() []string {
	words := make([]string, 0, len(g.Players))
	for i := range g.Players {
		if g.Players[i].Word != "" {
			words = append(words, g.Players[i].Word)
		}
	}
	return words
}

// captionsInPlay returns every decoy caption submitted this round plus the
// turn player's true word. Duplicate texts are kept: the guess guard and the
// projector both need to see how many authors share a text.
func (g *Game) captionsInPlay() []Caption {
	captions := make([]Caption, 0, len(g.Players))
	for i := range g.Players {
		p := &g.Players[i]
		if p.Round == nil || p.Round.ChosenCaption == "" {
			continue
		}
		captions = append(captions, Caption{Text: p.Round.ChosenCaption, Owner: p.Name})
	}
	if turn := g.turnPlayer(); turn != nil {
		captions = append(captions, Caption{Text: turn.Word, Owner: turn.Name})
	}
	return captions
}

func (g *Game) deadlineExpired(now time.Time) bool {
	return !g.StageDeadline.IsZero() && now.After(g.StageDeadline) && g.State != StateFinished
}
