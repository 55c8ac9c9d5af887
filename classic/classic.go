// Package classic constructs the canonical two-player matrix games used
// throughout introductory game theory: matching pennies, the prisoner's
// dilemma, battle of the sexes, and rock-paper-scissors.
package classic

import (
	nash "github.com/timpalpant/go-nash"
)

// Matrix builds a two-player finite game from explicit payoff matrices:
// rowPayoffs[i][j] and colPayoffs[i][j] are the payoffs when the row
// player plays rowStrategies[i] and the column player colStrategies[j].
func Matrix(rowID, colID string, rowStrategies, colStrategies []string, rowPayoffs, colPayoffs [][]float64) (*nash.Game, error) {
	rowIndex := indexOf(rowStrategies)
	colIndex := indexOf(colStrategies)

	lookup := func(payoffs [][]float64) nash.PayoffFunc {
		return func(p nash.Profile) float64 {
			return payoffs[rowIndex[p[rowID].Label()]][colIndex[p[colID].Label()]]
		}
	}

	return nash.NewGame(
		nash.Player{ID: rowID, Space: nash.DiscreteSpace(rowStrategies...), Payoff: lookup(rowPayoffs)},
		nash.Player{ID: colID, Space: nash.DiscreteSpace(colStrategies...), Payoff: lookup(colPayoffs)},
	)
}

func indexOf(labels []string) map[string]int {
	idx := make(map[string]int, len(labels))
	for i, l := range labels {
		idx[l] = i
	}
	return idx
}

func mustMatrix(rowID, colID string, strategies []string, rowPayoffs, colPayoffs [][]float64) *nash.Game {
	g, err := Matrix(rowID, colID, strategies, strategies, rowPayoffs, colPayoffs)
	if err != nil {
		panic(err)
	}
	return g
}

// MatchingPennies returns the 2x2 zero-sum matching game. Its unique
// equilibrium is both players mixing uniformly.
func MatchingPennies() *nash.Game {
	row := [][]float64{
		{1, -1},
		{-1, 1},
	}
	col := [][]float64{
		{-1, 1},
		{1, -1},
	}
	return mustMatrix("even", "odd", []string{"heads", "tails"}, row, col)
}

// PrisonersDilemma returns the standard prisoner's dilemma. Mutual
// defection is the unique (dominant-strategy) equilibrium.
func PrisonersDilemma() *nash.Game {
	row := [][]float64{
		{-1, -3},
		{0, -2},
	}
	col := [][]float64{
		{-1, 0},
		{-3, -2},
	}
	return mustMatrix("prisoner1", "prisoner2", []string{"cooperate", "defect"}, row, col)
}

// BattleOfTheSexes returns the classic coordination game with two pure
// equilibria and one mixed equilibrium.
func BattleOfTheSexes() *nash.Game {
	row := [][]float64{
		{2, 0},
		{0, 1},
	}
	col := [][]float64{
		{1, 0},
		{0, 2},
	}
	return mustMatrix("row", "col", []string{"opera", "ballet"}, row, col)
}

// RockPaperScissors returns the 3x3 zero-sum cycle game. Its unique
// equilibrium is both players mixing uniformly.
func RockPaperScissors() *nash.Game {
	row := [][]float64{
		{0, -1, 1},
		{1, 0, -1},
		{-1, 1, 0},
	}
	col := [][]float64{
		{0, 1, -1},
		{-1, 0, 1},
		{1, -1, 0},
	}
	return mustMatrix("p1", "p2", []string{"rock", "paper", "scissors"}, row, col)
}
