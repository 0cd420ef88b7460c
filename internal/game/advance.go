package game

import (
	"context"
	"time"
)

// checkAndAdvance moves the aggregate to its next state once no player is
// waiting, or unconditionally when force is set (deadline elapsed — missing
// submissions count as absent). Mutations happen in memory; the caller saves
// the aggregate. Round close (scoring plus the history append) runs exactly
// once, on the action_choose exit.
func (s *Service) checkAndAdvance(ctx context.Context, g *Game, force bool) error {
	if !force && g.anyWaiting() {
		return nil
	}
	now := s.now()

	switch g.State {
	case StateWaitingForInitialPic:
		g.Permutation = s.newPermutation(len(g.Players))
		g.State = StateActionName
		g.StageStartedAt = now
		g.StageDeadline = now.Add(s.stage.name)
		g.setAllWaiting(true)
		turn := g.turnPlayer()
		turn.WaitingForAction = false
		s.log.Info().Str("code", g.Code).Ints("permutation", g.Permutation).Str("turn", turn.Name).
			Msg("moving to state action_name from waiting_for_initial_pic")

	case StateActionName:
		g.State = StateActionChoose
		g.StageStartedAt = now
		g.StageDeadline = now.Add(s.stage.choose)
		g.setAllWaiting(true)
		turn := g.turnPlayer()
		turn.WaitingForAction = false
		s.log.Info().Str("code", g.Code).Str("turn", turn.Name).Msg("moving to state action_choose")

	case StateActionChoose:
		if err := s.closeRound(ctx, g, now); err != nil {
			return err
		}

	case StateActionScores:
		if (g.Stage+1)%len(g.Players) == 0 {
			if err := s.startCycle(ctx, g, now); err != nil {
				return err
			}
			return nil
		}
		g.Stage++
		g.State = StateActionName
		g.StageStartedAt = now
		g.StageDeadline = now.Add(s.stage.name)
		g.setAllWaiting(true)
		turn := g.turnPlayer()
		turn.WaitingForAction = false
		s.log.Info().Str("code", g.Code).Str("turn", turn.Name).Msg("moving to state action_name from action_scores")
	}
	return nil
}

// closeRound settles the current round: it computes the point deltas, appends
// the write-once history record, applies the deltas and decides between
// finished and the scores checkpoint.
func (s *Service) closeRound(ctx context.Context, g *Game, now time.Time) error {
	deltas := scoreRound(g, s.points)
	turn := g.turnPlayer()

	record := &RoundRecord{
		GameCode:   g.Code,
		Stage:      g.Stage,
		TurnPlayer: turn.Name,
		Word:       turn.Word,
		Drawing:    turn.Drawing,
		TurnScore:  deltas[turn.Name],
	}
	for i := range g.Players {
		p := &g.Players[i]
		if p.Round == nil {
			continue
		}
		record.Guesses = append(record.Guesses, RoundGuess{
			Name:           p.Name,
			ChosenCaption:  p.Round.ChosenCaption,
			GuessedCaption: p.Round.GuessedCaption,
			Score:          deltas[p.Name],
		})
	}
	if err := s.store.AppendRound(ctx, record); err != nil {
		return err
	}

	for i := range g.Players {
		p := &g.Players[i]
		p.Score += deltas[p.Name]
		p.Round = nil
	}

	for i := range g.Players {
		if g.Players[i].Score >= g.MaxScore {
			g.State = StateFinished
			g.StageStartedAt = now
			g.StageDeadline = time.Time{}
			g.setAllWaiting(false)
			s.log.Info().Str("code", g.Code).Str("winner", g.Players[i].Name).Msg("moving to state finished")
			return nil
		}
	}

	g.State = StateActionScores
	g.StageStartedAt = now
	g.StageDeadline = now.Add(s.stage.scores)
	g.setAllWaiting(false)
	s.log.Info().Str("code", g.Code).Int("stage", g.Stage).Msg("moving to state action_scores")
	return nil
}

// startCycle begins a new rotation: every player gets a fresh distinct word,
// drawings are cleared and the words of the finished cycle join the dedup
// set.
func (s *Service) startCycle(ctx context.Context, g *Game, now time.Time) error {
	words, err := s.issueWords(ctx, g.Code, g.Lang, len(g.Players), g.UsedWords)
	if err != nil {
		return err
	}
	g.UsedWords = append(g.UsedWords, g.playerWords()...)
	for i := range g.Players {
		g.Players[i].Word = words[i]
		g.Players[i].Drawing = ""
		g.Players[i].WaitingForAction = true
	}
	g.Stage++
	g.State = StateWaitingForInitialPic
	g.StageStartedAt = now
	g.StageDeadline = time.Time{}
	s.log.Info().Str("code", g.Code).Int("stage", g.Stage).Msg("moving to state waiting_for_initial_pic")
	return nil
}
