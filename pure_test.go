package nash

import (
	"math"
	"testing"
)

func TestFindPureNash_PrisonersDilemma(t *testing.T) {
	g := prisonersDilemma(t)

	result, err := FindPureNash(g, Params{})
	if err != nil {
		t.Fatal(err)
	}

	if !result.Exhaustive {
		t.Error("discrete search should be exhaustive")
	}
	if len(result.Profiles) != 1 {
		t.Fatalf("expected exactly 1 equilibrium, got %d", len(result.Profiles))
	}

	profile := result.Profiles[0]
	if profile["row"].Label() != "defect" || profile["col"].Label() != "defect" {
		t.Errorf("expected mutual defection, got %v", profile)
	}
	if result.Margin > DefaultTolerance {
		t.Errorf("margin %v exceeds tolerance", result.Margin)
	}
}

func TestFindPureNash_MatchingPenniesHasNone(t *testing.T) {
	_, err := FindPureNash(matchingPennies(t), Params{})
	if _, ok := err.(*NoEquilibriumFoundError); !ok {
		t.Errorf("expected NoEquilibriumFoundError, got %v", err)
	}
}

func TestFindPureNash_BattleOfTheSexes(t *testing.T) {
	result, err := FindPureNash(battleOfTheSexes(t), Params{})
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Profiles) != 2 {
		t.Fatalf("expected 2 equilibria, got %d", len(result.Profiles))
	}

	// Product-enumeration order: (opera, opera) before (ballet, ballet).
	if result.Profiles[0]["row"].Label() != "opera" || result.Profiles[0]["col"].Label() != "opera" {
		t.Errorf("expected (opera, opera) first, got %v", result.Profiles[0])
	}
	if result.Profiles[1]["row"].Label() != "ballet" || result.Profiles[1]["col"].Label() != "ballet" {
		t.Errorf("expected (ballet, ballet) second, got %v", result.Profiles[1])
	}
}

func TestFindPureNash_CournotDuopoly(t *testing.T) {
	// With P(Q) = 12 - Q and zero cost, the unique symmetric equilibrium
	// is each firm producing a/3 = 4.
	g := cournotDuopoly(t, 12, 0)

	result, err := FindPureNash(g, Params{})
	if err != nil {
		t.Fatal(err)
	}

	if result.Exhaustive {
		t.Error("continuous search cannot be exhaustive")
	}
	if len(result.Profiles) != 1 {
		t.Fatalf("expected 1 fixed point, got %d", len(result.Profiles))
	}

	profile := result.Profiles[0]
	for _, id := range []string{"firm1", "firm2"} {
		if math.Abs(profile[id].Value()-4) > 1e-5 {
			t.Errorf("%s: expected quantity 4, got %v", id, profile[id].Value())
		}
	}
}

func TestFindPureNash_ThreeFirmCournot(t *testing.T) {
	// P(Q) = 12 - Q with zero cost: each firm produces a/(n+1) = 3. The
	// sequential sweep converges here; a joint update of all three firms
	// oscillates between the corners instead.
	ids := []string{"firm1", "firm2", "firm3"}
	profit := func(id string) PayoffFunc {
		return func(p Profile) float64 {
			var total float64
			for _, s := range p {
				total += s.Value()
			}
			return (12 - total) * p[id].Value()
		}
	}

	players := make([]Player, len(ids))
	for i, id := range ids {
		players[i] = Player{ID: id, Space: Interval(0, 12), Payoff: profit(id)}
	}
	g, err := NewGame(players...)
	if err != nil {
		t.Fatal(err)
	}

	result, err := FindPureNash(g, Params{})
	if err != nil {
		t.Fatal(err)
	}

	profile := result.Profiles[0]
	for _, id := range ids {
		if math.Abs(profile[id].Value()-3) > 1e-5 {
			t.Errorf("%s: expected quantity 3, got %v", id, profile[id].Value())
		}
	}
	if result.Margin < 0 {
		t.Errorf("margin must be non-negative, got %v", result.Margin)
	}
}

func TestFindPureNash_InitialGuess(t *testing.T) {
	g := cournotDuopoly(t, 12, 0)

	guess := Profile{
		"firm1": ContinuousStrategy(1),
		"firm2": ContinuousStrategy(11),
	}
	result, err := FindPureNash(g, Params{InitialGuess: guess})
	if err != nil {
		t.Fatal(err)
	}

	profile := result.Profiles[0]
	if math.Abs(profile["firm1"].Value()-4) > 1e-5 {
		t.Errorf("expected quantity 4 from asymmetric guess, got %v", profile["firm1"].Value())
	}
}

func TestFindPureNash_NoProfitableDeviation(t *testing.T) {
	g := prisonersDilemma(t)
	result, err := FindPureNash(g, Params{})
	if err != nil {
		t.Fatal(err)
	}

	// No unilateral deviation to any other strategy may strictly improve
	// the deviating player's payoff.
	for _, profile := range result.Profiles {
		for _, p := range g.Players() {
			current, err := g.Payoff(p.ID, profile)
			if err != nil {
				t.Fatal(err)
			}
			for _, s := range p.Space.Enumerate() {
				v, err := g.Payoff(p.ID, profile.With(p.ID, s))
				if err != nil {
					t.Fatal(err)
				}
				if v > current+DefaultTolerance {
					t.Errorf("player %s improves from %v to %v by deviating to %v",
						p.ID, current, v, s)
				}
			}
		}
	}
}

func TestFindPureNash_SingletonGame(t *testing.T) {
	// A one-player game degrades to plain maximization.
	g, err := NewGame(Player{
		ID:    "p",
		Space: Interval(0, 10),
		Payoff: func(p Profile) float64 {
			d := p["p"].Value() - 3
			return -d * d
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	result, err := FindPureNash(g, Params{})
	if err != nil {
		t.Fatal(err)
	}
	if got := result.Profiles[0]["p"].Value(); math.Abs(got-3) > 1e-6 {
		t.Errorf("expected maximizer 3, got %v", got)
	}
}

func TestDeviationMargin_PropagatesParams(t *testing.T) {
	// The verification step searches continuous deviations under the
	// caller's iteration cap, not a rebuilt default.
	g := quarticGame(t)
	profile := Profile{"p": ContinuousStrategy(2)}

	if _, _, err := deviationMargin(g, profile, Params{MaxIterations: 3}); err == nil {
		t.Error("expected the iteration cap to reach the deviation search")
	}

	margin, ok, err := deviationMargin(g, profile, Params{})
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Errorf("optimum should verify, margin %v", margin)
	}
}

func TestFindPureNash_BadInitialGuess(t *testing.T) {
	g := cournotDuopoly(t, 12, 0)
	guess := Profile{"firm1": ContinuousStrategy(-5), "firm2": ContinuousStrategy(4)}
	if _, err := FindPureNash(g, Params{InitialGuess: guess}); err == nil {
		t.Error("expected error for out-of-space initial guess")
	}
}
