// Package gamefile loads strategic-form games from declarative YAML
// definitions. Each player names a strategy space and a payoff expression
// over the joint profile; expressions are compiled once and evaluated per
// profile, with each player's chosen strategy bound to a variable named by
// their ID (the label string for discrete players, the quantity for
// continuous players).
//
// A Cournot duopoly, for example:
//
//	name: cournot duopoly
//	players:
//	  - id: firm1
//	    space: {lower: 0, upper: 12}
//	    payoff: (12 - firm1 - firm2) * firm1
//	  - id: firm2
//	    space: {lower: 0, upper: 12}
//	    payoff: (12 - firm1 - firm2) * firm2
package gamefile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	nash "github.com/timpalpant/go-nash"
)

// File is the top-level YAML document.
type File struct {
	Name    string       `yaml:"name"`
	Players []PlayerSpec `yaml:"players"`
}

// PlayerSpec declares one player.
type PlayerSpec struct {
	ID     string    `yaml:"id"`
	Space  SpaceSpec `yaml:"space"`
	Payoff string    `yaml:"payoff"`
}

// SpaceSpec declares a strategy space: either a list of discrete strategy
// labels, or both interval bounds, never both.
type SpaceSpec struct {
	Strategies []string `yaml:"strategies,omitempty"`
	Lower      *float64 `yaml:"lower,omitempty"`
	Upper      *float64 `yaml:"upper,omitempty"`
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Load reads and parses the game definition at path.
func Load(path string) (*nash.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read game file")
	}

	g, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return g, nil
}

// Fingerprint returns a stable hex identifier of a game definition's
// bytes, suitable as a cache key: any edit to the definition changes it.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Parse builds a game from YAML data.
func Parse(data []byte) (*nash.Game, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "unmarshal game file")
	}

	if err := validate(f); err != nil {
		return nil, err
	}

	players := make([]nash.Player, len(f.Players))
	for i, ps := range f.Players {
		program, err := expr.Compile(ps.Payoff,
			expr.Env(map[string]interface{}{}),
			expr.AllowUndefinedVariables())
		if err != nil {
			return nil, errors.Wrapf(err, "compile payoff for player %s", ps.ID)
		}

		players[i] = nash.Player{
			ID:     ps.ID,
			Space:  ps.Space.space(),
			Payoff: payoffFunc(ps.ID, program),
		}
	}

	return nash.NewGame(players...)
}

// validate checks file-level constraints before any expression is
// compiled. Game-level rules (unique IDs, space contents) are enforced by
// nash.NewGame.
func validate(f File) error {
	var errs []string

	if len(f.Players) == 0 {
		errs = append(errs, "at least one player is required")
	}
	for i, ps := range f.Players {
		where := fmt.Sprintf("players[%d]", i)
		if ps.ID == "" {
			errs = append(errs, where+": id is required")
		} else if !identifierRe.MatchString(ps.ID) {
			errs = append(errs, where+": id must be a valid expression identifier")
		}
		if ps.Payoff == "" {
			errs = append(errs, where+": payoff expression is required")
		}

		discrete := len(ps.Space.Strategies) > 0
		continuous := ps.Space.Lower != nil || ps.Space.Upper != nil
		switch {
		case discrete && continuous:
			errs = append(errs, where+": space must be either strategies or lower/upper, not both")
		case continuous && (ps.Space.Lower == nil || ps.Space.Upper == nil):
			errs = append(errs, where+": space requires both lower and upper")
		case !discrete && !continuous:
			errs = append(errs, where+": space requires strategies or lower/upper")
		}
	}

	if len(errs) > 0 {
		return errors.New("invalid game file: " + strings.Join(errs, "; "))
	}
	return nil
}

func (s SpaceSpec) space() nash.Space {
	if len(s.Strategies) > 0 {
		return nash.DiscreteSpace(s.Strategies...)
	}
	return nash.Interval(*s.Lower, *s.Upper)
}

// payoffFunc evaluates the compiled expression at a profile. Evaluation
// failures panic; nash.Game recovers them into InvalidGameError, at
// construction for expressions that can never evaluate.
func payoffFunc(player string, program *vm.Program) nash.PayoffFunc {
	return func(profile nash.Profile) float64 {
		env := make(map[string]interface{}, len(profile))
		for id, s := range profile {
			if s.Kind() == nash.Discrete {
				env[id] = s.Label()
			} else {
				env[id] = s.Value()
			}
		}

		out, err := expr.Run(program, env)
		if err != nil {
			panic(errors.Wrapf(err, "evaluate payoff for player %s", player))
		}

		v, ok := toFloat(out)
		if !ok {
			panic(fmt.Sprintf("payoff for player %s evaluated to non-numeric %T", player, out))
		}
		return v
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	default:
		return 0, false
	}
}
