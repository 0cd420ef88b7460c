package game

// Points holds the configurable reward values applied when a round closes.
type Points struct {
	WinOnTurn    int
	CorrectGuess int
	Mislead      int
}

// scoreRound computes the per-player point deltas for the round that is
// closing. Every player in the game appears in the result; players who did not
// act (absent on a forced close) contribute and receive nothing.
//
// Reward channels:
//   - the turn player earns WinOnTurn unless nobody guessed the word or every
//     non-turn player did (the word was too hard or too easy),
//   - each correct guesser earns CorrectGuess,
//   - the author of a decoy earns Mislead once per other player who guessed
//     that decoy's text.
//
// Correct-guess and mislead rewards are independent: a decoy identical to the
// true word pays out on both channels.
func scoreRound(g *Game, pts Points) map[string]int {
	deltas := make(map[string]int, len(g.Players))
	for i := range g.Players {
		deltas[g.Players[i].Name] = 0
	}

	turn := g.turnPlayer()
	if turn == nil {
		return deltas
	}

	participants := make([]*Player, 0, len(g.Players))
	correctGuessers := 0
	for i := range g.Players {
		p := &g.Players[i]
		if p.Round == nil {
			continue
		}
		participants = append(participants, p)
		if p.Round.GuessedCaption == turn.Word {
			correctGuessers++
		}
	}

	// All-or-none forfeits the turn bonus; the boundary is the count of
	// non-turn players, not the full roster.
	nonTurnCount := len(g.Players) - 1
	if correctGuessers != 0 && correctGuessers != nonTurnCount {
		deltas[turn.Name] += pts.WinOnTurn
	}

	for _, p := range participants {
		if p.Round.GuessedCaption == "" {
			continue
		}
		if p.Round.GuessedCaption == turn.Word {
			deltas[p.Name] += pts.CorrectGuess
		}
		for _, liar := range participants {
			if liar.Name == p.Name {
				continue
			}
			if liar.Round.ChosenCaption != "" && liar.Round.ChosenCaption == p.Round.GuessedCaption {
				deltas[liar.Name] += pts.Mislead
			}
		}
	}

	return deltas
}
