package cournot

import (
	"fmt"

	nash "github.com/timpalpant/go-nash"
)

// Point is one sample of a reaction curve: the rival's quantity and the
// firm's best-response quantity against it.
type Point struct {
	Rival    float64
	Response float64
}

// ReactionCurve tabulates firm's best response across an even grid of
// samples of its rival's quantity over [0, capacity]. The market must be a
// duopoly. The numeric output is what a plotting layer consumes; no
// plotting is done here.
func ReactionCurve(m Market, firm int, samples int, params nash.Params) ([]Point, error) {
	if len(m.Costs) != 2 {
		return nil, fmt.Errorf("cournot: reaction curves require a duopoly, market has %d firms", len(m.Costs))
	}
	if firm < 0 || firm > 1 {
		return nil, fmt.Errorf("cournot: firm index %d out of range", firm)
	}
	if samples < 2 {
		return nil, fmt.Errorf("cournot: need at least 2 samples, got %d", samples)
	}

	g, err := m.Game()
	if err != nil {
		return nil, err
	}

	rival := 1 - firm
	cap := m.capacity()
	step := cap / float64(samples-1)
	curve := make([]Point, samples)
	for k := 0; k < samples; k++ {
		q := float64(k) * step
		rivals := nash.Profile{FirmID(rival): nash.ContinuousStrategy(q)}
		br, err := nash.BestResponse(g, FirmID(firm), rivals, params)
		if err != nil {
			return nil, err
		}
		curve[k] = Point{Rival: q, Response: br.Value()}
	}

	return curve, nil
}
