// Package floats provides small float64 slice and tolerance helpers
// shared by the equilibrium solvers.
package floats

import "math"

// Sum is
//  var total float64
//  for _, v := range x {
//  	total += v
//  }
func Sum(x []float64) float64 {
	var total float64
	for _, v := range x {
		total += v
	}
	return total
}

// Scal is
//  for i := range x {
//  	x[i] *= alpha
//  }
func Scal(alpha float64, x []float64) {
	for i := range x {
		x[i] *= alpha
	}
}

// Normalize scales x so it sums to 1. x is unchanged if it sums to zero.
func Normalize(x []float64) {
	total := Sum(x)
	if total != 0 {
		Scal(1/total, x)
	}
}

// ArgMax returns the maximum value in x and the index of its first
// occurrence.
func ArgMax(x []float64) (float64, int) {
	best := math.Inf(-1)
	bestIdx := 0
	for i, v := range x {
		if v > best {
			best = v
			bestIdx = i
		}
	}
	return best, bestIdx
}

// Max returns the maximum value in x.
func Max(x []float64) float64 {
	best, _ := ArgMax(x)
	return best
}

// EqualWithin reports whether a and b differ by at most tol.
func EqualWithin(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// Clip returns x restricted to the interval [lo, hi].
func Clip(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
