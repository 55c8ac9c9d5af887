package nash

// TieBreak is the policy applied when multiple discrete strategies yield
// equal best-response payoff.
type TieBreak int

const (
	// TieBreakFirst selects the first tied strategy in the space's
	// declared order. This is the default.
	TieBreakFirst TieBreak = iota
	// TieBreakLast selects the last tied strategy.
	TieBreakLast
	// TieBreakAll requests the full tied set. BestResponse still returns
	// the first tied strategy under this policy (it returns exactly one
	// strategy); use AllBestResponses to retrieve the whole set.
	TieBreakAll
)

const (
	// DefaultTolerance is the convergence and indifference threshold
	// used when Params.Tolerance is zero.
	DefaultTolerance = 1e-6

	// DefaultScalarIterations caps bounded scalar maximization.
	DefaultScalarIterations = 1000

	// DefaultFixedPointIterations caps best-response iteration sweeps.
	DefaultFixedPointIterations = 500
)

// Params are the configuration options shared by all solvers.
// The zero value is valid and corresponds to the defaults.
type Params struct {
	// Tolerance is the convergence/equality threshold for fixed points
	// and indifference checks. Zero means DefaultTolerance.
	Tolerance float64

	// MaxIterations caps iterative methods before they fail with
	// NoConvergenceError. Zero means the solver's default
	// (DefaultScalarIterations for scalar search,
	// DefaultFixedPointIterations for fixed-point iteration).
	MaxIterations int

	// TieBreak selects among equally good discrete best responses.
	TieBreak TieBreak

	// InitialGuess optionally seeds best-response iteration on games with
	// continuous strategy spaces. When nil, iteration starts from each
	// interval's midpoint (first label for discrete players). Iteration
	// finds one fixed point per call; a different guess may find another.
	InitialGuess Profile
}

func (p Params) tolerance() float64 {
	if p.Tolerance == 0 {
		return DefaultTolerance
	}

	return p.Tolerance
}

func (p Params) maxIterations(dflt int) int {
	if p.MaxIterations == 0 {
		return dflt
	}

	return p.MaxIterations
}
