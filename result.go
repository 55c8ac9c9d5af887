package nash

// PureResult is the outcome of a pure-strategy equilibrium search.
type PureResult struct {
	// Profiles are the qualifying equilibrium profiles, in enumeration
	// order for exhaustive searches. Fixed-point iteration yields at most
	// one profile per call: it is one fixed point, not proof of uniqueness.
	Profiles []Profile

	// Margin is the worst remaining unilateral deviation incentive across
	// the returned profiles: the largest payoff gain any player could
	// obtain by switching strategy. It is non-negative and at most the
	// configured tolerance.
	Margin float64

	// Exhaustive is true when every candidate profile was checked, and
	// false for the fixed-point path, which can miss other equilibria.
	Exhaustive bool

	// Iterations is the number of best-response iterations performed.
	// It is zero for exhaustive searches.
	Iterations int
}

// MixedEquilibrium is one mixed-strategy Nash equilibrium of a two-player
// finite game: a probability distribution per player, keyed by player ID.
type MixedEquilibrium struct {
	Strategies map[string]MixedStrategy

	// Margin is the worst verification slack: the largest indifference
	// violation within a support or payoff advantage of a strategy
	// outside it. It is at most the configured tolerance.
	Margin float64
}

// AgentID identifies one (player, type) decision agent of a Bayesian game.
type AgentID struct {
	Player string
	Type   string
}

// BayesianEquilibrium is a Bayesian Nash equilibrium: one strategy choice
// per (player, type) agent. Exactly one of Pure and Mixed is non-nil:
// best-response iteration yields pure per-type strategies, while
// delegation to the mixed solver (two-agent finite games) yields mixed
// per-type strategies.
type BayesianEquilibrium struct {
	Pure  map[AgentID]Strategy
	Mixed map[AgentID]MixedStrategy

	// Margin is the verification margin of the delegate solver.
	Margin float64

	// Converged is true when the solution met tolerance. Truncated runs
	// fail with NoConvergenceError instead of returning a result.
	Converged bool

	// Iterations is the number of best-response iterations performed by
	// the iterative path, zero under delegation.
	Iterations int
}
