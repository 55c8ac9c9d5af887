package nash

import (
	"math"

	"github.com/golang/glog"
)

// FindPureNash finds pure-strategy Nash equilibria of the game.
//
// When every player has a discrete strategy space, the Cartesian product of
// all spaces is enumerated exhaustively and every qualifying profile is
// returned, in product-enumeration order; if none qualifies the search
// fails with NoEquilibriumFoundError.
//
// When any player has a continuous space, best-response iteration is run
// from Params.InitialGuess (interval midpoints by default) until the
// profile moves less than tolerance between sweeps. Players are updated
// one at a time in declared order, each responding to the others' latest
// strategies; updating all players at once cycles on linear Cournot with
// three or more firms, where sequential sweeps settle.
// This path returns at most one fixed point per call; other equilibria may
// exist and can be sought from different initial guesses. It fails with
// NoConvergenceError if the iteration cap is reached.
func FindPureNash(g *Game, params Params) (*PureResult, error) {
	if g.allDiscrete() {
		return findPureNashExhaustive(g, params)
	}

	return findPureNashFixedPoint(g, params)
}

func findPureNashExhaustive(g *Game, params Params) (*PureResult, error) {
	players := g.players

	counts := make([]int, len(players))
	for i, p := range players {
		counts[i] = len(p.Space.Labels)
	}

	result := &PureResult{Exhaustive: true, Margin: math.Inf(-1)}
	idx := make([]int, len(players))
	checked := 0
	for {
		checked++
		profile := make(Profile, len(players))
		for i, p := range players {
			profile[p.ID] = DiscreteStrategy(p.Space.Labels[idx[i]])
		}

		margin, ok, err := deviationMargin(g, profile, params)
		if err != nil {
			return nil, err
		}
		if ok {
			result.Profiles = append(result.Profiles, profile)
			result.Margin = math.Max(result.Margin, margin)
		}

		if !nextIndex(idx, counts) {
			break
		}
	}

	glog.V(1).Infof("checked %d pure profiles, found %d equilibria", checked, len(result.Profiles))
	if len(result.Profiles) == 0 {
		return nil, &NoEquilibriumFoundError{Method: "pure-strategy enumeration"}
	}

	return result, nil
}

// nextIndex advances a mixed-radix counter. It returns false after the
// last combination.
func nextIndex(idx, counts []int) bool {
	for i := len(idx) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] < counts[i] {
			return true
		}
		idx[i] = 0
	}
	return false
}

// deviationMargin computes the largest payoff gain any single player can
// obtain by deviating unilaterally from the profile. ok is true when no
// deviation gains more than the configured tolerance.
func deviationMargin(g *Game, profile Profile, params Params) (margin float64, ok bool, err error) {
	tol := params.tolerance()
	margin = math.Inf(-1)
	for _, p := range g.players {
		current, err := g.Payoff(p.ID, profile)
		if err != nil {
			return 0, false, err
		}

		best, err := bestDeviationPayoff(g, p, profile, params)
		if err != nil {
			return 0, false, err
		}

		gain := best - current
		margin = math.Max(margin, gain)
		if gain > tol {
			return margin, false, nil
		}
	}

	return margin, true, nil
}

func bestDeviationPayoff(g *Game, p Player, profile Profile, params Params) (float64, error) {
	if p.Space.Kind == Discrete {
		payoffs, err := discretePayoffs(g, p.ID, profile, p.Space)
		if err != nil {
			return 0, err
		}

		best := math.Inf(-1)
		for _, v := range payoffs {
			best = math.Max(best, v)
		}
		return best, nil
	}

	br, err := continuousBestResponse(g, p.ID, profile, p.Space, params)
	if err != nil {
		return 0, err
	}
	return g.Payoff(p.ID, profile.With(p.ID, br))
}

func findPureNashFixedPoint(g *Game, params Params) (*PureResult, error) {
	tol := params.tolerance()
	maxIter := params.maxIterations(DefaultFixedPointIterations)

	current := params.InitialGuess
	if current == nil {
		current = g.defaultProfile()
	} else {
		if err := g.checkProfile(current); err != nil {
			return nil, err
		}
		current = current.Clone()
	}

	delta := math.Inf(1)
	for iter := 1; iter <= maxIter; iter++ {
		next := current.Clone()
		for _, p := range g.players {
			br, err := BestResponse(g, p.ID, next, params)
			if err != nil {
				return nil, err
			}
			next[p.ID] = br
		}

		delta = profileDistance(current, next)
		glog.V(1).Infof("best-response iteration %d: delta=%g", iter, delta)
		current = next
		if delta <= tol {
			// The fixed point must still survive its own verification:
			// every player's strategy a best response within tolerance.
			margin, ok, err := deviationMargin(g, current, params)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, &NoConvergenceError{
					Method:     "best-response iteration",
					Iterations: iter,
					Residual:   margin,
				}
			}

			return &PureResult{
				Profiles:   []Profile{current},
				Margin:     math.Max(margin, 0),
				Exhaustive: false,
				Iterations: iter,
			}, nil
		}
	}

	return nil, &NoConvergenceError{
		Method:     "best-response iteration",
		Iterations: maxIter,
		Residual:   delta,
	}
}

// profileDistance is the largest single-player change between two
// profiles: the absolute value difference for continuous strategies, and 1
// for any discrete strategy that changed label.
func profileDistance(a, b Profile) float64 {
	var dist float64
	for id, s := range a {
		o := b[id]
		if s.Kind() == Discrete {
			if s.Label() != o.Label() {
				dist = math.Max(dist, 1)
			}
			continue
		}
		dist = math.Max(dist, math.Abs(s.Value()-o.Value()))
	}
	return dist
}
