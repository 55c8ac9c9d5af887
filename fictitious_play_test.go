package nash

import (
	"math"
	"testing"
)

func TestFictitiousPlay_MatchingPennies(t *testing.T) {
	// Zero-sum, so the empirical frequencies converge to the unique
	// equilibrium. The convergence rate is slow; allow a loose tolerance.
	row, col, err := FictitiousPlay(matchingPennies(t), 100000, 0)
	if err != nil {
		t.Fatal(err)
	}

	for _, ms := range []MixedStrategy{row, col} {
		for _, label := range []string{"heads", "tails"} {
			if math.Abs(ms[label]-0.5) > 0.05 {
				t.Errorf("expected P(%s) near 0.5, got %v", label, ms[label])
			}
		}
	}
}

func TestFictitiousPlay_RockPaperScissors(t *testing.T) {
	g := mustMatrixGame(t, []string{"rock", "paper", "scissors"},
		[][]float64{{0, -1, 1}, {1, 0, -1}, {-1, 1, 0}},
		[][]float64{{0, 1, -1}, {-1, 0, 1}, {1, -1, 0}})

	row, col, err := FictitiousPlay(g, 100000, 0.05)
	if err != nil {
		t.Fatal(err)
	}

	for _, ms := range []MixedStrategy{row, col} {
		if err := ms.Validate(1e-9); err != nil {
			t.Fatal(err)
		}
		for label, p := range ms {
			if math.Abs(p-1.0/3) > 0.05 {
				t.Errorf("expected P(%s) near 1/3, got %v", label, p)
			}
		}
	}
}

func TestFictitiousPlay_DominantStrategy(t *testing.T) {
	// In the prisoner's dilemma defection is strictly dominant, so without
	// exploration play concentrates on it after the first (untied) round.
	row, col, err := FictitiousPlay(prisonersDilemma(t), 1000, 0)
	if err != nil {
		t.Fatal(err)
	}

	if row["defect"] < 0.99 {
		t.Errorf("expected row to defect almost always, got %v", row)
	}
	if col["defect"] < 0.99 {
		t.Errorf("expected col to defect almost always, got %v", col)
	}
}

func TestFictitiousPlay_InvalidInput(t *testing.T) {
	if _, _, err := FictitiousPlay(cournotDuopoly(t, 12, 0), 100, 0); err == nil {
		t.Error("expected error for continuous game")
	}
	if _, _, err := FictitiousPlay(matchingPennies(t), 0, 0); err == nil {
		t.Error("expected error for zero iterations")
	}
}
