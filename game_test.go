package nash

import (
	"math"
	"testing"
)

// mustMatrixGame builds a two-player finite game with players "row" and
// "col" over the same labels for both.
func mustMatrixGame(t testing.TB, labels []string, rowPayoffs, colPayoffs [][]float64) *Game {
	t.Helper()

	idx := make(map[string]int, len(labels))
	for i, l := range labels {
		idx[l] = i
	}
	lookup := func(payoffs [][]float64) PayoffFunc {
		return func(p Profile) float64 {
			return payoffs[idx[p["row"].Label()]][idx[p["col"].Label()]]
		}
	}

	g, err := NewGame(
		Player{ID: "row", Space: DiscreteSpace(labels...), Payoff: lookup(rowPayoffs)},
		Player{ID: "col", Space: DiscreteSpace(labels...), Payoff: lookup(colPayoffs)},
	)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func matchingPennies(t testing.TB) *Game {
	return mustMatrixGame(t, []string{"heads", "tails"},
		[][]float64{{1, -1}, {-1, 1}},
		[][]float64{{-1, 1}, {1, -1}})
}

func prisonersDilemma(t testing.TB) *Game {
	return mustMatrixGame(t, []string{"cooperate", "defect"},
		[][]float64{{-1, -3}, {0, -2}},
		[][]float64{{-1, 0}, {-3, -2}})
}

func battleOfTheSexes(t testing.TB) *Game {
	return mustMatrixGame(t, []string{"opera", "ballet"},
		[][]float64{{2, 0}, {0, 1}},
		[][]float64{{1, 0}, {0, 2}})
}

// cournotDuopoly builds the two-firm quantity game with inverse demand
// P(Q) = a - Q and a common marginal cost.
func cournotDuopoly(t testing.TB, a, cost float64) *Game {
	t.Helper()

	profit := func(id string) PayoffFunc {
		return func(p Profile) float64 {
			total := p["firm1"].Value() + p["firm2"].Value()
			return (a - total - cost) * p[id].Value()
		}
	}

	g, err := NewGame(
		Player{ID: "firm1", Space: Interval(0, a), Payoff: profit("firm1")},
		Player{ID: "firm2", Space: Interval(0, a), Payoff: profit("firm2")},
	)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNewGame_EmptyDiscreteSpace(t *testing.T) {
	_, err := NewGame(
		Player{ID: "p1", Space: DiscreteSpace(), Payoff: func(Profile) float64 { return 0 }},
		Player{ID: "p2", Space: DiscreteSpace("a"), Payoff: func(Profile) float64 { return 0 }},
	)
	if _, ok := err.(*InvalidGameError); !ok {
		t.Errorf("expected InvalidGameError, got %v", err)
	}
}

func TestNewGame_BadContinuousBounds(t *testing.T) {
	_, err := NewGame(
		Player{ID: "p1", Space: Interval(1, 1), Payoff: func(Profile) float64 { return 0 }},
	)
	if _, ok := err.(*InvalidGameError); !ok {
		t.Errorf("expected InvalidGameError, got %v", err)
	}
}

func TestNewGame_DuplicatePlayers(t *testing.T) {
	payoff := func(Profile) float64 { return 0 }
	_, err := NewGame(
		Player{ID: "p", Space: DiscreteSpace("a"), Payoff: payoff},
		Player{ID: "p", Space: DiscreteSpace("a"), Payoff: payoff},
	)
	if _, ok := err.(*InvalidGameError); !ok {
		t.Errorf("expected InvalidGameError, got %v", err)
	}
}

func TestNewGame_PanickingPayoff(t *testing.T) {
	_, err := NewGame(
		Player{ID: "p", Space: DiscreteSpace("a"), Payoff: func(Profile) float64 { panic("boom") }},
	)
	if _, ok := err.(*InvalidGameError); !ok {
		t.Errorf("expected InvalidGameError, got %v", err)
	}
}

func TestNewGame_NonFinitePayoff(t *testing.T) {
	_, err := NewGame(
		Player{ID: "p", Space: DiscreteSpace("a"), Payoff: func(Profile) float64 { return math.NaN() }},
	)
	if _, ok := err.(*InvalidGameError); !ok {
		t.Errorf("expected InvalidGameError, got %v", err)
	}
}

func TestGame_PayoffValidatesProfile(t *testing.T) {
	g := matchingPennies(t)

	cases := []struct {
		name    string
		profile Profile
	}{
		{"incomplete", Profile{"row": DiscreteStrategy("heads")}},
		{"unknown player", Profile{"row": DiscreteStrategy("heads"), "nobody": DiscreteStrategy("heads")}},
		{"unknown strategy", Profile{"row": DiscreteStrategy("heads"), "col": DiscreteStrategy("edge")}},
		{"wrong kind", Profile{"row": DiscreteStrategy("heads"), "col": ContinuousStrategy(0.5)}},
	}
	for _, tc := range cases {
		if _, err := g.Payoff("row", tc.profile); err == nil {
			t.Errorf("%s: expected error, got none", tc.name)
		}
	}

	if _, err := g.Payoff("nobody", Profile{}); err == nil {
		t.Error("expected error for unknown target player")
	}
}

func TestGame_PayoffMatrixValues(t *testing.T) {
	g := matchingPennies(t)

	profile := Profile{"row": DiscreteStrategy("heads"), "col": DiscreteStrategy("tails")}
	v, err := g.Payoff("row", profile)
	if err != nil {
		t.Fatal(err)
	}
	if v != -1 {
		t.Errorf("expected row payoff -1, got %v", v)
	}

	v, err = g.Payoff("col", profile)
	if err != nil {
		t.Fatal(err)
	}
	if v != 1 {
		t.Errorf("expected col payoff 1, got %v", v)
	}
}

func TestSpace_Capabilities(t *testing.T) {
	d := DiscreteSpace("a", "b")
	if !d.Contains(DiscreteStrategy("a")) || d.Contains(DiscreteStrategy("z")) {
		t.Error("discrete Contains is wrong")
	}
	if n := len(d.Enumerate()); n != 2 {
		t.Errorf("expected 2 strategies, got %d", n)
	}
	if _, _, ok := d.Bounds(); ok {
		t.Error("discrete space should have no bounds")
	}

	c := Interval(0, 10)
	if !c.Contains(ContinuousStrategy(5)) || c.Contains(ContinuousStrategy(11)) {
		t.Error("continuous Contains is wrong")
	}
	if c.Enumerate() != nil {
		t.Error("continuous space should not enumerate")
	}
	lo, hi, ok := c.Bounds()
	if !ok || lo != 0 || hi != 10 {
		t.Errorf("expected bounds [0, 10], got [%v, %v]", lo, hi)
	}
}
