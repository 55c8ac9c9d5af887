package floats

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	x := []float64{1, 2, 5}
	Normalize(x)
	if got := Sum(x); math.Abs(got-1) > 1e-12 {
		t.Errorf("expected sum 1, got %v", got)
	}
	if math.Abs(x[2]-0.625) > 1e-12 {
		t.Errorf("expected x[2] = 0.625, got %v", x[2])
	}

	zero := []float64{0, 0}
	Normalize(zero)
	if zero[0] != 0 || zero[1] != 0 {
		t.Errorf("zero vector should be unchanged, got %v", zero)
	}
}

func TestArgMax(t *testing.T) {
	best, idx := ArgMax([]float64{1, 3, 3, 2})
	if best != 3 || idx != 1 {
		t.Errorf("expected (3, 1), got (%v, %v)", best, idx)
	}
	if got := Max([]float64{-5, -2, -9}); got != -2 {
		t.Errorf("expected -2, got %v", got)
	}
}

func TestClip(t *testing.T) {
	if got := Clip(-1, 0, 10); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := Clip(11, 0, 10); got != 10 {
		t.Errorf("expected 10, got %v", got)
	}
	if got := Clip(5, 0, 10); got != 5 {
		t.Errorf("expected 5, got %v", got)
	}
}

func TestIsFinite(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if IsFinite(bad) {
			t.Errorf("expected %v to be non-finite", bad)
		}
	}
	if !IsFinite(0) || !IsFinite(-1e300) {
		t.Error("finite values misclassified")
	}
}

func TestEqualWithin(t *testing.T) {
	if !EqualWithin(1.0, 1.0+1e-9, 1e-6) {
		t.Error("values within tolerance reported unequal")
	}
	if EqualWithin(1.0, 1.1, 1e-6) {
		t.Error("values outside tolerance reported equal")
	}
}
