package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testPoints = Points{WinOnTurn: 5, CorrectGuess: 3, Mislead: 1}

func scoringGame() *Game {
	return &Game{
		Code:        "abcd",
		MaxScore:    25,
		State:       StateActionChoose,
		Permutation: []int{0, 1, 2},
		Players: []Player{
			{Name: "alice", Word: "cat"},
			{Name: "bob", Word: "pear"},
			{Name: "carol", Word: "plum"},
		},
	}
}

func TestScoreRoundCorrectGuessAndMislead(t *testing.T) {
	g := scoringGame()
	g.Players[1].Round = &RoundScratch{ChosenCaption: "dog", GuessedCaption: "cat"}
	g.Players[2].Round = &RoundScratch{ChosenCaption: "fox", GuessedCaption: "dog"}

	deltas := scoreRound(g, testPoints)

	assert.Equal(t, 5, deltas["alice"], "one of two guessers was right, turn bonus applies")
	assert.Equal(t, 4, deltas["bob"], "correct guess plus one fooled guesser")
	assert.Equal(t, 0, deltas["carol"])
}

func TestScoreRoundAllCorrectForfeitsTurnBonus(t *testing.T) {
	g := scoringGame()
	g.Players[1].Round = &RoundScratch{ChosenCaption: "dog", GuessedCaption: "cat"}
	g.Players[2].Round = &RoundScratch{ChosenCaption: "fox", GuessedCaption: "cat"}

	deltas := scoreRound(g, testPoints)

	assert.Equal(t, 0, deltas["alice"], "word too easy, no turn bonus")
	assert.Equal(t, 3, deltas["bob"])
	assert.Equal(t, 3, deltas["carol"])
}

func TestScoreRoundNoneCorrectForfeitsTurnBonus(t *testing.T) {
	g := scoringGame()
	g.Players[1].Round = &RoundScratch{ChosenCaption: "dog", GuessedCaption: "fox"}
	g.Players[2].Round = &RoundScratch{ChosenCaption: "fox", GuessedCaption: "dog"}

	deltas := scoreRound(g, testPoints)

	assert.Equal(t, 0, deltas["alice"], "word too hard, no turn bonus")
	assert.Equal(t, 1, deltas["bob"], "carol fell for bob's decoy")
	assert.Equal(t, 1, deltas["carol"], "bob fell for carol's decoy")
}

func TestScoreRoundDecoyMatchingWordPaysBothChannels(t *testing.T) {
	g := scoringGame()
	g.Players[1].Round = &RoundScratch{ChosenCaption: "cat", GuessedCaption: "dog"}
	g.Players[2].Round = &RoundScratch{ChosenCaption: "dog", GuessedCaption: "cat"}

	deltas := scoreRound(g, testPoints)

	assert.Equal(t, 5, deltas["alice"])
	assert.Equal(t, 4, deltas["bob"], "decoy identical to the word misleads and carol guessed right off it")
	assert.Equal(t, 4, deltas["carol"], "correct guess plus bob fooled by her decoy")
}

func TestScoreRoundMisleadPaysPerFooledGuesser(t *testing.T) {
	g := scoringGame()
	g.Players = append(g.Players, Player{Name: "dave", Word: "kiwi"})
	g.Permutation = []int{0, 1, 2, 3}
	g.Players[1].Round = &RoundScratch{ChosenCaption: "dog", GuessedCaption: "cat"}
	g.Players[2].Round = &RoundScratch{ChosenCaption: "fox", GuessedCaption: "dog"}
	g.Players[3].Round = &RoundScratch{ChosenCaption: "elk", GuessedCaption: "dog"}

	deltas := scoreRound(g, testPoints)

	assert.Equal(t, 5, deltas["bob"], "correct guess plus two fooled guessers")
}

func TestScoreRoundAbsentPlayersScoreNothing(t *testing.T) {
	g := scoringGame()
	g.Players[1].Round = &RoundScratch{ChosenCaption: "dog"}
	g.Players[2].Round = nil

	deltas := scoreRound(g, testPoints)

	assert.Len(t, deltas, 3, "every player appears in the result")
	for name, delta := range deltas {
		assert.Zero(t, delta, "player %s", name)
	}
}

func TestScoreRoundEmptyGuessNeverMatchesEmptyCaption(t *testing.T) {
	g := scoringGame()
	g.Players[1].Round = &RoundScratch{}
	g.Players[2].Round = &RoundScratch{}

	deltas := scoreRound(g, testPoints)

	for name, delta := range deltas {
		assert.Zero(t, delta, "player %s", name)
	}
}
