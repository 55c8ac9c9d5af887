package nash

import (
	"math/rand"

	"github.com/golang/glog"

	"github.com/timpalpant/go-nash/internal/floats"
)

// FictitiousPlay approximates a mixed-strategy equilibrium of a two-player
// finite game by iterated best response against the opponent's empirical
// play frequencies. It is a heuristic for games too large for support
// enumeration: the returned frequencies converge to an equilibrium for
// zero-sum and some other game classes, but carry no general guarantee and
// are not verified against tolerance.
//
// mixingLambda in [0, 1] mixes in uniform exploration: with that
// probability a player plays a uniformly random strategy instead of a best
// response. Ties in the best response are broken at random.
func FictitiousPlay(g *Game, nIter int, mixingLambda float64) (MixedStrategy, MixedStrategy, error) {
	if g.NumPlayers() != 2 || !g.allDiscrete() {
		return nil, nil, &InvalidGameError{Reason: "fictitious play requires a two-player finite game"}
	}
	if nIter <= 0 {
		return nil, nil, invalidGamef("fictitious play requires nIter > 0, got %d", nIter)
	}

	row, col := g.players[0], g.players[1]
	A, B, err := payoffMatrices(g, row, col)
	if err != nil {
		return nil, nil, err
	}

	rowPlayCounts := make([]int, len(A))
	colPlayCounts := make([]int, len(A[0]))
	for i := 1; i <= nIter; i++ {
		var rowSelected int
		if rand.Float64() < mixingLambda {
			rowSelected = rand.Intn(len(rowPlayCounts))
		} else {
			rowSelected = countBestResponse(A, colPlayCounts, false)
		}

		var colSelected int
		if rand.Float64() < mixingLambda {
			colSelected = rand.Intn(len(colPlayCounts))
		} else {
			colSelected = countBestResponse(B, rowPlayCounts, true)
		}

		rowPlayCounts[rowSelected]++
		colPlayCounts[colSelected]++

		if nIter/10 > 0 && i%(nIter/10) == 0 {
			glog.V(1).Infof("After %d iterations, %s weights: %v", i, row.ID, normalizeCounts(rowPlayCounts))
			glog.V(1).Infof("After %d iterations, %s weights: %v", i, col.ID, normalizeCounts(colPlayCounts))
		}
	}

	return toMixedStrategy(row.Space.Labels, normalizeCounts(rowPlayCounts)),
		toMixedStrategy(col.Space.Labels, normalizeCounts(colPlayCounts)), nil
}

// countBestResponse returns the strategy maximizing expected payoff in M
// against the opponent's play counts. opponentIsRow selects which axis of
// M the opponent occupies.
func countBestResponse(M [][]float64, opponentCounts []int, opponentIsRow bool) int {
	var utilities []float64
	if opponentIsRow {
		utilities = make([]float64, len(M[0]))
		for i, c := range opponentCounts {
			for j := range utilities {
				utilities[j] += float64(c) * M[i][j]
			}
		}
	} else {
		utilities = make([]float64, len(M))
		for j, c := range opponentCounts {
			for i := range utilities {
				utilities[i] += float64(c) * M[i][j]
			}
		}
	}

	return randTieArgMax(utilities)
}

// randTieArgMax returns the index of the maximum utility, breaking exact
// ties uniformly at random so fictitious play does not lock onto one of
// several equivalent strategies.
func randTieArgMax(vs []float64) int {
	best, bestIdx := vs[0], 0
	nTied := 1
	for i, v := range vs[1:] {
		switch {
		case v > best:
			best = v
			bestIdx = i + 1
			nTied = 1
		case v == best:
			nTied++
			if rand.Intn(nTied) == 0 {
				bestIdx = i + 1
			}
		}
	}
	return bestIdx
}

func normalizeCounts(counts []int) []float64 {
	result := make([]float64, len(counts))
	for i, v := range counts {
		result[i] = float64(v)
	}
	floats.Normalize(result)
	return result
}
