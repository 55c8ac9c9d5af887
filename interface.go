// Package nash implements equilibrium solvers for strategic-form games:
// best responses, pure- and mixed-strategy Nash equilibria, and Bayesian
// Nash equilibria for games with privately known types.
package nash

import (
	"bytes"
	"encoding/gob"
	"math"
	"sort"
	"strconv"
)

// SpaceKind is the kind of strategy space available to a player.
type SpaceKind int

const (
	// Discrete spaces are finite ordered sets of labeled strategies.
	Discrete SpaceKind = iota
	// Continuous spaces are closed real intervals.
	Continuous
)

// Strategy is a single choice by one player: a label drawn from a discrete
// space, or a real value within a continuous interval.
type Strategy struct {
	kind  SpaceKind
	label string
	value float64
}

// DiscreteStrategy returns the discrete strategy with the given label.
func DiscreteStrategy(label string) Strategy {
	return Strategy{kind: Discrete, label: label}
}

// ContinuousStrategy returns the continuous strategy with the given value.
func ContinuousStrategy(v float64) Strategy {
	return Strategy{kind: Continuous, value: v}
}

// Kind returns the kind of space this strategy is drawn from.
func (s Strategy) Kind() SpaceKind {
	return s.kind
}

// Label returns the strategy's label. It is empty for continuous strategies.
func (s Strategy) Label() string {
	return s.label
}

// Value returns the strategy's real value. It is zero for discrete strategies.
func (s Strategy) Value() float64 {
	return s.value
}

// Equal reports whether two strategies are the same choice.
// Continuous strategies are compared within tol.
func (s Strategy) Equal(other Strategy, tol float64) bool {
	if s.kind != other.kind {
		return false
	}

	if s.kind == Discrete {
		return s.label == other.label
	}

	return math.Abs(s.value-other.value) <= tol
}

// String implements fmt.Stringer.
func (s Strategy) String() string {
	if s.kind == Discrete {
		return s.label
	}

	return strconv.FormatFloat(s.value, 'g', -1, 64)
}

type strategyGob struct {
	Kind  SpaceKind
	Label string
	Value float64
}

// GobEncode implements gob.GobEncoder.
func (s Strategy) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	err := enc.Encode(strategyGob{Kind: s.kind, Label: s.label, Value: s.value})
	return buf.Bytes(), err
}

// GobDecode implements gob.GobDecoder.
func (s *Strategy) GobDecode(buf []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(buf))
	var g strategyGob
	if err := dec.Decode(&g); err != nil {
		return err
	}

	s.kind = g.Kind
	s.label = g.Label
	s.value = g.Value
	return nil
}

// Space is a player's strategy space, either a finite ordered set of
// labeled strategies or a closed real interval. Solvers branch on Kind.
type Space struct {
	Kind SpaceKind

	// Labels is the ordered set of strategies. Discrete spaces only.
	Labels []string

	// Lower and Upper bound the interval. Continuous spaces only.
	Lower, Upper float64
}

// DiscreteSpace returns the finite space over the given ordered labels.
func DiscreteSpace(labels ...string) Space {
	return Space{Kind: Discrete, Labels: labels}
}

// Interval returns the continuous space [lower, upper].
func Interval(lower, upper float64) Space {
	return Space{Kind: Continuous, Lower: lower, Upper: upper}
}

// Contains reports whether the given strategy lies in this space.
func (sp Space) Contains(s Strategy) bool {
	if s.kind != sp.Kind {
		return false
	}

	if sp.Kind == Discrete {
		for _, l := range sp.Labels {
			if l == s.label {
				return true
			}
		}
		return false
	}

	return sp.Lower <= s.value && s.value <= sp.Upper
}

// Enumerate returns all strategies in this space, in declared order.
// It returns nil for continuous spaces.
func (sp Space) Enumerate() []Strategy {
	if sp.Kind != Discrete {
		return nil
	}

	result := make([]Strategy, len(sp.Labels))
	for i, l := range sp.Labels {
		result[i] = DiscreteStrategy(l)
	}
	return result
}

// Bounds returns the interval bounds of a continuous space.
// ok is false for discrete spaces.
func (sp Space) Bounds() (lower, upper float64, ok bool) {
	if sp.Kind != Continuous {
		return 0, 0, false
	}

	return sp.Lower, sp.Upper, true
}

func (sp Space) validate() error {
	switch sp.Kind {
	case Discrete:
		if len(sp.Labels) == 0 {
			return &InvalidGameError{Reason: "discrete strategy space is empty"}
		}

		seen := make(map[string]struct{}, len(sp.Labels))
		for _, l := range sp.Labels {
			if _, ok := seen[l]; ok {
				return &InvalidGameError{Reason: "duplicate strategy label: " + l}
			}
			seen[l] = struct{}{}
		}
	case Continuous:
		if !(sp.Lower < sp.Upper) {
			return &InvalidGameError{Reason: "continuous strategy space requires lower < upper"}
		}
		if math.IsNaN(sp.Lower) || math.IsNaN(sp.Upper) ||
			math.IsInf(sp.Lower, 0) || math.IsInf(sp.Upper, 0) {
			return &InvalidGameError{Reason: "continuous strategy space bounds must be finite"}
		}
	default:
		return &InvalidGameError{Reason: "unknown strategy space kind"}
	}

	return nil
}

// Profile assigns one strategy to each player, keyed by player ID.
type Profile map[string]Strategy

// Clone returns a copy of the profile.
func (p Profile) Clone() Profile {
	result := make(Profile, len(p))
	for id, s := range p {
		result[id] = s
	}
	return result
}

// With returns a copy of the profile with the given player's strategy replaced.
func (p Profile) With(player string, s Strategy) Profile {
	result := p.Clone()
	result[player] = s
	return result
}

// Equal reports whether two profiles assign the same strategy to every
// player, continuous values compared within tol.
func (p Profile) Equal(other Profile, tol float64) bool {
	if len(p) != len(other) {
		return false
	}

	for id, s := range p {
		o, ok := other[id]
		if !ok || !s.Equal(o, tol) {
			return false
		}
	}
	return true
}

// PlayerIDs returns the profile's player IDs in sorted order.
func (p Profile) PlayerIDs() []string {
	ids := make([]string, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PayoffFunc maps a complete strategy profile to one player's payoff.
// The Game holds payoff functions by reference and never mutates them;
// they must be pure functions of the profile.
type PayoffFunc func(Profile) float64

// Player is one participant in a game: an identifier, a strategy space,
// and a payoff function over the joint profile.
type Player struct {
	ID     string
	Space  Space
	Payoff PayoffFunc
}

// MixedStrategy is a probability distribution over a discrete strategy
// space, keyed by strategy label.
type MixedStrategy map[string]float64

// Support returns the labels played with probability greater than tol,
// in the order given by labels.
func (m MixedStrategy) Support(labels []string, tol float64) []string {
	var result []string
	for _, l := range labels {
		if m[l] > tol {
			result = append(result, l)
		}
	}
	return result
}

// Validate checks that m is a probability distribution within tol.
func (m MixedStrategy) Validate(tol float64) error {
	total := 0.0
	for l, p := range m {
		if p < -tol {
			return &InvalidGameError{Reason: "negative probability for strategy " + l}
		}
		total += p
	}

	if math.Abs(total-1) > tol {
		return &InvalidGameError{Reason: "mixed strategy probabilities do not sum to 1"}
	}
	return nil
}

// Equal reports whether two mixed strategies assign the same probability
// to every label within tol.
func (m MixedStrategy) Equal(other MixedStrategy, tol float64) bool {
	for l, p := range m {
		if math.Abs(p-other[l]) > tol {
			return false
		}
	}
	for l, p := range other {
		if math.Abs(p-m[l]) > tol {
			return false
		}
	}
	return true
}
