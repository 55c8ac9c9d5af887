package nash

import (
	"fmt"
	"math"
)

// Game is an immutable strategic-form game: an ordered sequence of players,
// each with a strategy space and a payoff function over the joint profile.
//
// A Game validates on construction and is read-only afterwards; solvers
// never mutate it and every solver call is an independent pure function
// of its inputs.
type Game struct {
	players []Player
	index   map[string]int
}

// NewGame validates the given players and returns the game they form.
// Player identifiers must be unique, strategy spaces non-empty (discrete)
// or properly ordered (continuous), and every payoff function must be
// evaluable over a complete profile. Singleton games are permitted and
// degrade to unconstrained optimization.
func NewGame(players ...Player) (*Game, error) {
	if len(players) == 0 {
		return nil, &InvalidGameError{Reason: "a game requires at least one player"}
	}

	index := make(map[string]int, len(players))
	for i, p := range players {
		if p.ID == "" {
			return nil, invalidGamef("player %d has an empty identifier", i)
		}
		if _, ok := index[p.ID]; ok {
			return nil, invalidGamef("duplicate player identifier: %s", p.ID)
		}
		if err := p.Space.validate(); err != nil {
			return nil, err
		}
		if p.Payoff == nil {
			return nil, invalidGamef("player %s has no payoff function", p.ID)
		}

		index[p.ID] = i
	}

	g := &Game{
		players: append([]Player(nil), players...),
		index:   index,
	}

	// Probe every payoff function once with a representative profile so a
	// broken function fails here rather than deep inside a solver.
	probe := g.defaultProfile()
	for _, p := range g.players {
		if _, err := g.Payoff(p.ID, probe); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Players returns the game's players in declared order.
func (g *Game) Players() []Player {
	return append([]Player(nil), g.players...)
}

// NumPlayers returns the number of players in the game.
func (g *Game) NumPlayers() int {
	return len(g.players)
}

// PlayerIDs returns the player identifiers in declared order.
func (g *Game) PlayerIDs() []string {
	ids := make([]string, len(g.players))
	for i, p := range g.players {
		ids[i] = p.ID
	}
	return ids
}

// Space returns the strategy space of the given player.
func (g *Game) Space(player string) (Space, bool) {
	i, ok := g.index[player]
	if !ok {
		return Space{}, false
	}

	return g.players[i].Space, true
}

// Payoff evaluates the given player's payoff at a complete strategy
// profile. It fails with InvalidGameError if the profile is incomplete,
// references unknown players or strategies, or the payoff function panics
// or returns a non-finite value.
func (g *Game) Payoff(player string, profile Profile) (v float64, err error) {
	i, ok := g.index[player]
	if !ok {
		return 0, invalidGamef("unknown player: %s", player)
	}

	if err := g.checkProfile(profile); err != nil {
		return 0, err
	}

	defer func() {
		if r := recover(); r != nil {
			err = invalidGamef("payoff function for %s panicked: %v", player, r)
		}
	}()

	v = g.players[i].Payoff(profile)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalidGamef("payoff function for %s returned non-finite value %v", player, v)
	}

	return v, nil
}

func (g *Game) checkProfile(profile Profile) error {
	if len(profile) != len(g.players) {
		return invalidGamef("profile has %d entries, game has %d players",
			len(profile), len(g.players))
	}

	for id, s := range profile {
		i, ok := g.index[id]
		if !ok {
			return invalidGamef("profile references unknown player: %s", id)
		}
		if !g.players[i].Space.Contains(s) {
			return invalidGamef("strategy %v is not in player %s's space", s, id)
		}
	}

	return nil
}

// defaultProfile is the canonical starting profile: the first label for
// discrete players, the interval midpoint for continuous players.
func (g *Game) defaultProfile() Profile {
	profile := make(Profile, len(g.players))
	for _, p := range g.players {
		switch p.Space.Kind {
		case Discrete:
			profile[p.ID] = DiscreteStrategy(p.Space.Labels[0])
		case Continuous:
			profile[p.ID] = ContinuousStrategy((p.Space.Lower + p.Space.Upper) / 2)
		}
	}
	return profile
}

// allDiscrete reports whether every player has a discrete strategy space.
func (g *Game) allDiscrete() bool {
	for _, p := range g.players {
		if p.Space.Kind != Discrete {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer.
func (g *Game) String() string {
	return fmt.Sprintf("game with %d players: %v", len(g.players), g.PlayerIDs())
}
