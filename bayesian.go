package nash

import (
	"math"
	"sort"
	"strings"

	"github.com/golang/glog"
)

// agentSeparator joins a player ID and a type name into the identifier of
// the corresponding (player, type) agent in the expanded game.
const agentSeparator = "/"

// TypeProfile assigns one realized type to each player, keyed by player ID.
type TypeProfile map[string]string

// PriorEntry is one atom of a joint prior: a complete type profile and its
// probability. Type profiles absent from the prior have probability zero.
type PriorEntry struct {
	Types TypeProfile
	Prob  float64
}

// TypeSpace is the private-information structure of a Bayesian game: a
// finite ordered set of types per player and a joint prior over all
// players' types. It is immutable after construction.
type TypeSpace struct {
	types map[string][]string
	prior []PriorEntry
}

// NewTypeSpace validates the given per-player type sets and joint prior.
// Every player needs at least one type; every prior entry must assign a
// known type to exactly the players in types, probabilities must be
// non-negative, and the prior must sum to 1 within DefaultTolerance.
func NewTypeSpace(types map[string][]string, prior []PriorEntry) (*TypeSpace, error) {
	if len(types) == 0 {
		return nil, &InvalidGameError{Reason: "type space has no players"}
	}

	for id, ts := range types {
		if len(ts) == 0 {
			return nil, invalidGamef("player %s has no types", id)
		}
		seen := make(map[string]struct{}, len(ts))
		for _, t := range ts {
			if _, ok := seen[t]; ok {
				return nil, invalidGamef("player %s has duplicate type %s", id, t)
			}
			seen[t] = struct{}{}
		}
	}

	total := 0.0
	seen := make(map[string]struct{}, len(prior))
	for _, entry := range prior {
		if entry.Prob < 0 {
			return nil, invalidGamef("prior probability %g is negative", entry.Prob)
		}
		if len(entry.Types) != len(types) {
			return nil, invalidGamef("prior entry assigns types to %d players, type space has %d",
				len(entry.Types), len(types))
		}
		for id, t := range entry.Types {
			ts, ok := types[id]
			if !ok {
				return nil, invalidGamef("prior entry references unknown player: %s", id)
			}
			if !containsString(ts, t) {
				return nil, invalidGamef("prior entry references unknown type %s for player %s", t, id)
			}
		}

		key := typeProfileKey(entry.Types)
		if _, dup := seen[key]; dup {
			return nil, invalidGamef("prior has duplicate entry for type profile %s", key)
		}
		seen[key] = struct{}{}
		total += entry.Prob
	}

	if math.Abs(total-1) > DefaultTolerance {
		return nil, invalidGamef("prior probabilities sum to %g, not 1", total)
	}

	copied := make(map[string][]string, len(types))
	for id, ts := range types {
		copied[id] = append([]string(nil), ts...)
	}

	return &TypeSpace{
		types: copied,
		prior: append([]PriorEntry(nil), prior...),
	}, nil
}

// Types returns the given player's types, in declared order.
func (ts *TypeSpace) Types(player string) []string {
	return append([]string(nil), ts.types[player]...)
}

// Marginal returns the marginal probability that the given player holds
// the given type.
func (ts *TypeSpace) Marginal(player, typ string) float64 {
	var total float64
	for _, entry := range ts.prior {
		if entry.Types[player] == typ {
			total += entry.Prob
		}
	}
	return total
}

func typeProfileKey(tp TypeProfile) string {
	ids := make([]string, 0, len(tp))
	for id := range tp {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id + "=" + tp[id]
	}
	return strings.Join(parts, ",")
}

func containsString(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// BayesianPayoff maps a realized type profile and action profile to one
// player's payoff.
type BayesianPayoff func(types TypeProfile, actions Profile) float64

// BayesianPlayer is one participant in a Bayesian game.
type BayesianPlayer struct {
	ID     string
	Space  Space
	Payoff BayesianPayoff
}

// BayesianGame is a strategic-form game with private information: each
// player knows their own type, drawn from the joint prior of a TypeSpace,
// and payoffs depend on the full realized type profile.
type BayesianGame struct {
	players []BayesianPlayer
	ts      *TypeSpace
}

// NewBayesianGame validates the players against the type space and returns
// the game they form. The type space must cover exactly the game's
// players. Player IDs and type names must not contain "/", which separates
// the two in expanded agent identifiers.
func NewBayesianGame(players []BayesianPlayer, ts *TypeSpace) (*BayesianGame, error) {
	if len(players) == 0 {
		return nil, &InvalidGameError{Reason: "a game requires at least one player"}
	}
	if ts == nil {
		return nil, &InvalidGameError{Reason: "a Bayesian game requires a type space"}
	}

	seen := make(map[string]struct{}, len(players))
	for i, p := range players {
		if p.ID == "" {
			return nil, invalidGamef("player %d has an empty identifier", i)
		}
		if strings.Contains(p.ID, agentSeparator) {
			return nil, invalidGamef("player identifier %s must not contain %q", p.ID, agentSeparator)
		}
		if _, ok := seen[p.ID]; ok {
			return nil, invalidGamef("duplicate player identifier: %s", p.ID)
		}
		seen[p.ID] = struct{}{}

		if err := p.Space.validate(); err != nil {
			return nil, err
		}
		if p.Payoff == nil {
			return nil, invalidGamef("player %s has no payoff function", p.ID)
		}

		types, ok := ts.types[p.ID]
		if !ok {
			return nil, invalidGamef("type space has no types for player %s", p.ID)
		}
		for _, t := range types {
			if strings.Contains(t, agentSeparator) {
				return nil, invalidGamef("type name %s must not contain %q", t, agentSeparator)
			}
		}
	}

	if len(ts.types) != len(players) {
		return nil, invalidGamef("type space covers %d players, game has %d", len(ts.types), len(players))
	}

	return &BayesianGame{
		players: append([]BayesianPlayer(nil), players...),
		ts:      ts,
	}, nil
}

// TypeSpace returns the game's type space.
func (bg *BayesianGame) TypeSpace() *TypeSpace {
	return bg.ts
}

// FindBayesianNash computes a Bayesian Nash equilibrium: for every player
// and every type they might hold, a strategy maximizing expected payoff
// against all rival (player, type) strategies, weighted by the prior
// conditional on the player's own type.
//
// The game is expanded into its agent form, one agent per (player, type)
// pair. When the agent game is a two-agent finite game it is delegated to
// FindMixedNash and the first equilibrium returned; otherwise the agent
// game is solved by FindPureNash (exhaustive for all-discrete agent games,
// best-response iteration when any space is continuous).
// Errors from the delegate solvers propagate unchanged.
//
// Types with zero marginal probability have constant expected payoff;
// they receive an arbitrary best response.
func FindBayesianNash(bg *BayesianGame, params Params) (*BayesianEquilibrium, error) {
	ag, agents, err := bg.agentGame()
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("expanded Bayesian game into %d agents", len(agents))

	if len(agents) == 2 && ag.allDiscrete() {
		eqs, err := FindMixedNash(ag, params)
		if err != nil {
			return nil, err
		}

		eq := eqs[0]
		mixed := make(map[AgentID]MixedStrategy, len(agents))
		for _, a := range agents {
			mixed[a] = eq.Strategies[agentKey(a.Player, a.Type)]
		}
		return &BayesianEquilibrium{
			Mixed:     mixed,
			Margin:    eq.Margin,
			Converged: true,
		}, nil
	}

	result, err := FindPureNash(ag, params)
	if err != nil {
		return nil, err
	}

	profile := result.Profiles[0]
	pure := make(map[AgentID]Strategy, len(agents))
	for _, a := range agents {
		pure[a] = profile[agentKey(a.Player, a.Type)]
	}
	return &BayesianEquilibrium{
		Pure:       pure,
		Margin:     result.Margin,
		Converged:  true,
		Iterations: result.Iterations,
	}, nil
}

func agentKey(player, typ string) string {
	return player + agentSeparator + typ
}

// agentGame expands the Bayesian game into its agent form: one player per
// (player, type) pair, each with the base player's strategy space and an
// expected payoff conditioned on holding that type.
func (bg *BayesianGame) agentGame() (*Game, []AgentID, error) {
	var agents []AgentID
	var players []Player
	for _, p := range bg.players {
		for _, t := range bg.ts.types[p.ID] {
			agents = append(agents, AgentID{Player: p.ID, Type: t})
			players = append(players, Player{
				ID:     agentKey(p.ID, t),
				Space:  p.Space,
				Payoff: bg.agentPayoff(p, t),
			})
		}
	}

	g, err := NewGame(players...)
	if err != nil {
		return nil, nil, err
	}
	return g, agents, nil
}

// agentPayoff is the expected payoff of player p holding type typ: the
// prior-weighted sum over rival type combinations, conditioned on p
// holding typ, of the base payoff at the actions the agents play under
// those types.
func (bg *BayesianGame) agentPayoff(p BayesianPlayer, typ string) PayoffFunc {
	marginal := bg.ts.Marginal(p.ID, typ)
	return func(agentProfile Profile) float64 {
		var ev float64
		for _, entry := range bg.ts.prior {
			if entry.Types[p.ID] != typ || entry.Prob == 0 {
				continue
			}

			actions := make(Profile, len(bg.players))
			for _, q := range bg.players {
				actions[q.ID] = agentProfile[agentKey(q.ID, entry.Types[q.ID])]
			}
			ev += entry.Prob * p.Payoff(entry.Types, actions)
		}

		if marginal > 0 {
			ev /= marginal
		}
		return ev
	}
}
