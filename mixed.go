package nash

import (
	"math"

	"github.com/golang/glog"
	"gonum.org/v1/gonum/mat"

	"github.com/timpalpant/go-nash/internal/floats"
)

// maxEnumerableStrategies bounds support enumeration, which checks
// 2^n x 2^m support pairs.
const maxEnumerableStrategies = 16

// FindMixedNash finds all mixed-strategy Nash equilibria of a two-player
// finite game by support enumeration: every non-empty pair of supports is
// checked by solving the indifference linear system and verifying that the
// solution is a probability distribution, that every support strategy
// yields equal expected payoff within tolerance, and that no strategy
// outside the support does strictly better.
//
// Pure equilibria appear as singleton-support solutions. Results are
// returned in support-enumeration order, deduplicated by value within
// tolerance. Supports containing strictly dominated strategies are pruned.
// If no support pair qualifies, the search fails with
// NoEquilibriumFoundError.
func FindMixedNash(g *Game, params Params) ([]MixedEquilibrium, error) {
	if g.NumPlayers() != 2 || !g.allDiscrete() {
		return nil, &InvalidGameError{Reason: "mixed-strategy solver requires a two-player finite game"}
	}

	row, col := g.players[0], g.players[1]
	n, m := len(row.Space.Labels), len(col.Space.Labels)
	if n > maxEnumerableStrategies || m > maxEnumerableStrategies {
		return nil, invalidGamef(
			"support enumeration is limited to %d strategies per player, got %dx%d; use FictitiousPlay for larger games",
			maxEnumerableStrategies, n, m)
	}

	A, B, err := payoffMatrices(g, row, col)
	if err != nil {
		return nil, err
	}

	tol := params.tolerance()
	rowDominated := strictlyDominated(A, tol)
	colDominated := strictlyDominated(transpose(B), tol)

	var results []MixedEquilibrium
	checked := 0
	for sa := 1; sa < (1 << n); sa++ {
		if containsDominated(sa, rowDominated) {
			continue
		}
		for sb := 1; sb < (1 << m); sb++ {
			if containsDominated(sb, colDominated) {
				continue
			}

			checked++
			p, q, margin, ok := solveSupportPair(A, B, maskIndices(sa, n), maskIndices(sb, m), tol)
			if !ok {
				continue
			}

			eq := MixedEquilibrium{
				Strategies: map[string]MixedStrategy{
					row.ID: toMixedStrategy(row.Space.Labels, p),
					col.ID: toMixedStrategy(col.Space.Labels, q),
				},
				Margin: margin,
			}
			if !containsEquilibrium(results, eq, tol) {
				results = append(results, eq)
			}
		}
	}

	glog.V(1).Infof("checked %d support pairs, found %d mixed equilibria", checked, len(results))
	if len(results) == 0 {
		return nil, &NoEquilibriumFoundError{Method: "mixed-strategy support enumeration"}
	}

	return results, nil
}

// payoffMatrices tabulates both players' payoffs over the joint discrete
// strategy space. A is the first (row) player's matrix, B the second's.
func payoffMatrices(g *Game, row, col Player) (A, B [][]float64, err error) {
	n, m := len(row.Space.Labels), len(col.Space.Labels)
	A = make([][]float64, n)
	B = make([][]float64, n)
	profile := make(Profile, 2)
	for i, ri := range row.Space.Labels {
		A[i] = make([]float64, m)
		B[i] = make([]float64, m)
		profile[row.ID] = DiscreteStrategy(ri)
		for j, cj := range col.Space.Labels {
			profile[col.ID] = DiscreteStrategy(cj)
			if A[i][j], err = g.Payoff(row.ID, profile); err != nil {
				return nil, nil, err
			}
			if B[i][j], err = g.Payoff(col.ID, profile); err != nil {
				return nil, nil, err
			}
		}
	}

	return A, B, nil
}

// strictlyDominated flags rows of M that are strictly dominated by some
// other pure row. A strictly dominated strategy cannot appear in any
// equilibrium support, so pruning it is sound.
func strictlyDominated(M [][]float64, tol float64) []bool {
	dominated := make([]bool, len(M))
	for i := range M {
		for i2 := range M {
			if i2 == i || dominated[i2] {
				continue
			}

			dominates := true
			for j := range M[i] {
				if M[i2][j] <= M[i][j]+tol {
					dominates = false
					break
				}
			}
			if dominates {
				dominated[i] = true
				break
			}
		}
	}
	return dominated
}

func transpose(M [][]float64) [][]float64 {
	if len(M) == 0 {
		return nil
	}

	T := make([][]float64, len(M[0]))
	for j := range T {
		T[j] = make([]float64, len(M))
		for i := range M {
			T[j][i] = M[i][j]
		}
	}
	return T
}

func containsDominated(mask int, dominated []bool) bool {
	for i, d := range dominated {
		if d && mask&(1<<i) != 0 {
			return true
		}
	}
	return false
}

func maskIndices(mask, n int) []int {
	var idx []int
	for i := 0; i < n; i++ {
		if mask&(1<<i) != 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

// solveSupportPair solves the indifference system for the candidate
// support pair and verifies the solution. p and q are probability vectors
// over the full strategy spaces (zero outside the supports); ok is false
// when the candidate does not form an equilibrium within tol.
func solveSupportPair(A, B [][]float64, suppRow, suppCol []int, tol float64) (p, q []float64, margin float64, ok bool) {
	n, m := len(A), len(A[0])

	pSupp, ok := solveIndifference(B, suppRow, suppCol, tol, false)
	if !ok {
		return nil, nil, 0, false
	}
	qSupp, ok := solveIndifference(A, suppCol, suppRow, tol, true)
	if !ok {
		return nil, nil, 0, false
	}

	p = expand(pSupp, suppRow, n)
	q = expand(qSupp, suppCol, m)

	// Expected payoff of each pure strategy against the rival's mix.
	vRow := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			vRow[i] += q[j] * A[i][j]
		}
	}
	vCol := make([]float64, m)
	for j := 0; j < m; j++ {
		for i := 0; i < n; i++ {
			vCol[j] += p[i] * B[i][j]
		}
	}

	mRow, ok := verifySupport(vRow, suppRow, tol)
	if !ok {
		return nil, nil, 0, false
	}
	mCol, ok := verifySupport(vCol, suppCol, tol)
	if !ok {
		return nil, nil, 0, false
	}

	return p, q, math.Max(mRow, mCol), true
}

// solveIndifference finds the mixer's probabilities over suppMixer that
// make the observing player indifferent among suppObserved, together with
// the simplex sum constraint. M is the observing player's payoff matrix;
// mixerIsCol selects which axis of M the mixer occupies.
func solveIndifference(M [][]float64, suppMixer, suppObserved []int, tol float64, mixerIsCol bool) ([]float64, bool) {
	at := func(mixer, observed int) float64 {
		if mixerIsCol {
			return M[observed][mixer]
		}
		return M[mixer][observed]
	}

	k, l := len(suppMixer), len(suppObserved)
	sys := mat.NewDense(l, k, nil)
	rhs := mat.NewVecDense(l, nil)
	for t := 1; t < l; t++ {
		for i, mi := range suppMixer {
			sys.Set(t-1, i, at(mi, suppObserved[t])-at(mi, suppObserved[0]))
		}
	}
	for i := range suppMixer {
		sys.Set(l-1, i, 1)
	}
	rhs.SetVec(l-1, 1)

	var x mat.VecDense
	if err := x.SolveVec(sys, rhs); err != nil {
		// Ill-conditioned systems may still carry a usable candidate;
		// verification decides. Anything else is a dead support pair.
		if _, isCond := err.(mat.Condition); !isCond {
			return nil, false
		}
	}

	probs := make([]float64, k)
	for i := range probs {
		v := x.AtVec(i)
		if !floats.IsFinite(v) || v < -tol {
			return nil, false
		}
		probs[i] = math.Max(v, 0)
	}

	if math.Abs(floats.Sum(probs)-1) > tol {
		return nil, false
	}
	floats.Normalize(probs)
	return probs, true
}

func expand(probs []float64, supp []int, n int) []float64 {
	full := make([]float64, n)
	for i, s := range supp {
		full[s] = probs[i]
	}
	return full
}

// verifySupport checks the equilibrium conditions for one player given the
// expected payoff v of each pure strategy against the rival's mix: support
// strategies must be indifferent within tol and no outside strategy may do
// strictly better. The returned margin is the worst slack observed.
func verifySupport(v []float64, supp []int, tol float64) (margin float64, ok bool) {
	suppMin, suppMax := math.Inf(1), math.Inf(-1)
	inSupp := make(map[int]bool, len(supp))
	for _, i := range supp {
		inSupp[i] = true
		suppMin = math.Min(suppMin, v[i])
		suppMax = math.Max(suppMax, v[i])
	}

	spread := suppMax - suppMin
	if spread > tol {
		return 0, false
	}

	margin = spread
	for i := range v {
		if inSupp[i] {
			continue
		}
		gain := v[i] - suppMax
		if gain > tol {
			return 0, false
		}
		margin = math.Max(margin, gain)
	}

	return margin, true
}

func toMixedStrategy(labels []string, probs []float64) MixedStrategy {
	m := make(MixedStrategy, len(labels))
	for i, l := range labels {
		m[l] = probs[i]
	}
	return m
}

func containsEquilibrium(eqs []MixedEquilibrium, eq MixedEquilibrium, tol float64) bool {
	for _, e := range eqs {
		same := true
		for id, ms := range eq.Strategies {
			if !ms.Equal(e.Strategies[id], tol) {
				same = false
				break
			}
		}
		if same {
			return true
		}
	}
	return false
}
