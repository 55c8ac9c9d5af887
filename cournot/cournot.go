// Package cournot builds strategic-form Cournot oligopoly games: firms
// simultaneously choose quantities, price follows the linear inverse
// demand P(Q) = Intercept - Slope*Q, and each firm earns
// (P(Q) - cost) * quantity.
package cournot

import (
	"fmt"

	nash "github.com/timpalpant/go-nash"
)

// Market describes a Cournot market with linear inverse demand and
// constant marginal costs.
type Market struct {
	// Intercept and Slope parameterize inverse demand P(Q) = Intercept - Slope*Q.
	Intercept float64
	Slope     float64

	// Costs holds each firm's constant marginal cost. Its length is the
	// number of firms.
	Costs []float64

	// Capacity bounds each firm's quantity. Zero means Intercept/Slope,
	// the quantity at which price reaches zero.
	Capacity float64
}

// New returns a market with the given demand parameters and one firm per
// marginal cost.
func New(intercept, slope float64, costs ...float64) Market {
	return Market{
		Intercept: intercept,
		Slope:     slope,
		Costs:     costs,
	}
}

// NewDuopoly returns the standard two-firm market with unit demand slope
// and a common marginal cost.
func NewDuopoly(intercept, cost float64) Market {
	return Market{
		Intercept: intercept,
		Slope:     1,
		Costs:     []float64{cost, cost},
	}
}

func (m Market) capacity() float64 {
	if m.Capacity > 0 {
		return m.Capacity
	}
	return m.Intercept / m.Slope
}

// FirmID returns the identifier of the ith firm (zero-based).
func FirmID(i int) string {
	return fmt.Sprintf("firm%d", i+1)
}

// Game builds the strategic-form game for this market: one continuous
// quantity space [0, capacity] per firm, profit payoffs.
func (m Market) Game() (*nash.Game, error) {
	if len(m.Costs) == 0 {
		return nil, fmt.Errorf("cournot: market has no firms")
	}
	if m.Slope <= 0 {
		return nil, fmt.Errorf("cournot: demand slope must be positive, got %g", m.Slope)
	}

	players := make([]nash.Player, len(m.Costs))
	for i, cost := range m.Costs {
		id := FirmID(i)
		cost := cost
		players[i] = nash.Player{
			ID:    id,
			Space: nash.Interval(0, m.capacity()),
			Payoff: func(profile nash.Profile) float64 {
				var total float64
				for _, s := range profile {
					total += s.Value()
				}
				price := m.Intercept - m.Slope*total
				return (price - cost) * profile[id].Value()
			},
		}
	}

	return nash.NewGame(players...)
}

// ClosedForm returns the interior Nash equilibrium quantities
//
//	q_i = (Intercept + sum(Costs) - (n+1)*Costs[i]) / (Slope * (n+1))
//
// clipped below at zero. For widely spread costs the clipped value is only
// an approximation of the corner equilibrium.
func (m Market) ClosedForm() []float64 {
	n := len(m.Costs)
	var costSum float64
	for _, c := range m.Costs {
		costSum += c
	}

	qs := make([]float64, n)
	for i, c := range m.Costs {
		q := (m.Intercept + costSum - float64(n+1)*c) / (m.Slope * float64(n+1))
		if q < 0 {
			q = 0
		}
		qs[i] = q
	}
	return qs
}

// BestResponseQuantity returns firm i's profit-maximizing quantity when
// its rivals jointly produce rivalQuantity:
//
//	q_i = (Intercept - Slope*rivalQuantity - Costs[i]) / (2*Slope)
//
// clipped to [0, capacity].
func (m Market) BestResponseQuantity(i int, rivalQuantity float64) float64 {
	q := (m.Intercept - m.Slope*rivalQuantity - m.Costs[i]) / (2 * m.Slope)
	if q < 0 {
		return 0
	}
	if cap := m.capacity(); q > cap {
		return cap
	}
	return q
}
