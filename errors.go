package nash

import "fmt"

// InvalidGameError indicates a malformed Game or TypeSpace: an empty
// strategy space, a non-normalized prior, or a payoff function that
// panics or returns a non-finite value.
type InvalidGameError struct {
	Reason string
}

func (e *InvalidGameError) Error() string {
	return "invalid game: " + e.Reason
}

func invalidGamef(format string, args ...interface{}) error {
	return &InvalidGameError{Reason: fmt.Sprintf(format, args...)}
}

// NoConvergenceError indicates that an iterative method exhausted its
// iteration cap before meeting the configured tolerance.
type NoConvergenceError struct {
	Method     string
	Iterations int
	Residual   float64
}

func (e *NoConvergenceError) Error() string {
	return fmt.Sprintf("%s did not converge after %d iterations (residual %g)",
		e.Method, e.Iterations, e.Residual)
}

// NoEquilibriumFoundError indicates that an exhaustive search completed
// without producing any qualifying equilibrium. Unlike NoConvergenceError
// the search was certain, not truncated: the game has no equilibrium of
// the requested kind within tolerance.
type NoEquilibriumFoundError struct {
	Method string
}

func (e *NoEquilibriumFoundError) Error() string {
	return e.Method + ": exhaustive search found no equilibrium"
}
