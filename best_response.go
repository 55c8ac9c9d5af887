package nash

import (
	"math"

	"github.com/golang/glog"

	"github.com/timpalpant/go-nash/internal/floats"
)

// BestResponse returns the strategy maximizing the given player's payoff
// against the rivals' fixed strategies.
//
// Discrete spaces are searched exhaustively, ties broken by Params.TieBreak
// (under TieBreakAll the first tied strategy is returned; see
// AllBestResponses). Continuous payoffs detected to be concave quadratic in
// the player's own strategy (the linear-demand Cournot case) are maximized
// in closed form; all other continuous payoffs are maximized by
// golden-section search, which assumes the payoff is unimodal on the
// interval and fails with NoConvergenceError if the iteration cap is
// reached first.
//
// rivals must assign a strategy to every other player; an entry for the
// target player, if present, is ignored.
func BestResponse(g *Game, player string, rivals Profile, params Params) (Strategy, error) {
	sp, ok := g.Space(player)
	if !ok {
		return Strategy{}, invalidGamef("unknown player: %s", player)
	}

	if sp.Kind == Discrete {
		return discreteBestResponse(g, player, rivals, sp, params)
	}

	return continuousBestResponse(g, player, rivals, sp, params)
}

// AllBestResponses returns every strategy of a discrete player whose payoff
// against the rivals' strategies is within tolerance of the maximum, in the
// space's declared order. Continuous players get the single strategy that
// BestResponse would return.
func AllBestResponses(g *Game, player string, rivals Profile, params Params) ([]Strategy, error) {
	sp, ok := g.Space(player)
	if !ok {
		return nil, invalidGamef("unknown player: %s", player)
	}

	if sp.Kind != Discrete {
		s, err := continuousBestResponse(g, player, rivals, sp, params)
		if err != nil {
			return nil, err
		}
		return []Strategy{s}, nil
	}

	payoffs, err := discretePayoffs(g, player, rivals, sp)
	if err != nil {
		return nil, err
	}

	tol := params.tolerance()
	best := floats.Max(payoffs)
	var result []Strategy
	for i, v := range payoffs {
		if v >= best-tol {
			result = append(result, DiscreteStrategy(sp.Labels[i]))
		}
	}
	return result, nil
}

func discretePayoffs(g *Game, player string, rivals Profile, sp Space) ([]float64, error) {
	payoffs := make([]float64, len(sp.Labels))
	profile := rivals.Clone()
	for i, label := range sp.Labels {
		profile[player] = DiscreteStrategy(label)
		v, err := g.Payoff(player, profile)
		if err != nil {
			return nil, err
		}
		payoffs[i] = v
	}
	return payoffs, nil
}

func discreteBestResponse(g *Game, player string, rivals Profile, sp Space, params Params) (Strategy, error) {
	payoffs, err := discretePayoffs(g, player, rivals, sp)
	if err != nil {
		return Strategy{}, err
	}

	tol := params.tolerance()
	best := floats.Max(payoffs)
	pick := -1
	for i, v := range payoffs {
		if v < best-tol {
			continue
		}
		if pick == -1 || params.TieBreak == TieBreakLast {
			pick = i
		}
	}

	return DiscreteStrategy(sp.Labels[pick]), nil
}

func continuousBestResponse(g *Game, player string, rivals Profile, sp Space, params Params) (Strategy, error) {
	tol := params.tolerance()
	f := func(x float64) (float64, error) {
		return g.Payoff(player, rivals.With(player, ContinuousStrategy(x)))
	}

	x, ok, err := quadraticMaximizer(f, sp.Lower, sp.Upper, tol)
	if err != nil {
		return Strategy{}, err
	}
	if ok {
		return ContinuousStrategy(x), nil
	}

	glog.V(2).Infof("payoff for %s is not quadratic, falling back to golden-section search", player)
	x, err = goldenSection(f, sp.Lower, sp.Upper, tol, params.maxIterations(DefaultScalarIterations))
	if err != nil {
		return Strategy{}, err
	}

	return ContinuousStrategy(x), nil
}

// quadraticMaximizer fits a parabola through three samples of f and, if two
// further samples confirm the fit within tolerance, returns the exact
// maximizer of the fitted quadratic clipped to [lo, hi]. ok is false when f
// is not quadratic on the interval.
func quadraticMaximizer(f func(float64) (float64, error), lo, hi, tol float64) (x float64, ok bool, err error) {
	h := (hi - lo) / 2
	mid := lo + h

	y0, err := f(lo)
	if err != nil {
		return 0, false, err
	}
	y1, err := f(mid)
	if err != nil {
		return 0, false, err
	}
	y2, err := f(hi)
	if err != nil {
		return 0, false, err
	}

	// Second and first differences give the fitted curvature and the slope
	// at the midpoint.
	curv := (y0 - 2*y1 + y2) / (2 * h * h)
	slope := (y2 - y0) / (2 * h)
	predict := func(x float64) float64 {
		d := x - mid
		return y1 + slope*d + curv*d*d
	}

	scale := math.Max(1, math.Max(math.Abs(y0), math.Max(math.Abs(y1), math.Abs(y2))))
	fitTol := tol * scale
	for _, probe := range []float64{mid - h/2, mid + h/2} {
		y, err := f(probe)
		if err != nil {
			return 0, false, err
		}
		if math.Abs(y-predict(probe)) > fitTol {
			return 0, false, nil
		}
	}

	curvEps := fitTol / (h * h)
	switch {
	case curv < -curvEps:
		// Concave: the unique stationary point, clipped to the bounds.
		return floats.Clip(mid-slope/(2*curv), lo, hi), true, nil
	case curv > curvEps:
		// Convex: the better endpoint.
		if y2 > y0+fitTol {
			return hi, true, nil
		}
		return lo, true, nil
	default:
		// Linear within tolerance: an endpoint, the lower on a flat payoff.
		if slope > curvEps*h {
			return hi, true, nil
		}
		return lo, true, nil
	}
}

// goldenSection maximizes a unimodal f on [lo, hi] to within tol.
func goldenSection(f func(float64) (float64, error), lo, hi, tol float64, maxIter int) (float64, error) {
	const invphi = 0.6180339887498949 // (sqrt(5) - 1) / 2

	a, b := lo, hi
	c := b - invphi*(b-a)
	d := a + invphi*(b-a)
	fc, err := f(c)
	if err != nil {
		return 0, err
	}
	fd, err := f(d)
	if err != nil {
		return 0, err
	}

	for i := 0; i < maxIter; i++ {
		if b-a <= tol {
			return (a + b) / 2, nil
		}

		if fc > fd {
			b, d, fd = d, c, fc
			c = b - invphi*(b-a)
			fc, err = f(c)
		} else {
			a, c, fc = c, d, fd
			d = a + invphi*(b-a)
			fd, err = f(d)
		}
		if err != nil {
			return 0, err
		}
	}

	return 0, &NoConvergenceError{
		Method:     "golden-section search",
		Iterations: maxIter,
		Residual:   b - a,
	}
}
