// Script to solve a Cournot oligopoly with linear inverse demand: prints
// the best-response fixed point, the closed-form check, and optionally a
// tabulated reaction curve for duopolies.
package main

import (
	"flag"
	"fmt"

	"github.com/golang/glog"

	nash "github.com/timpalpant/go-nash"
	"github.com/timpalpant/go-nash/cournot"
)

func main() {
	intercept := flag.Float64("intercept", 100, "Inverse demand intercept a in P(Q) = a - b*Q")
	slope := flag.Float64("slope", 1, "Inverse demand slope b")
	cost := flag.Float64("cost", 20, "Constant marginal cost per firm")
	nFirms := flag.Int("firms", 2, "Number of firms")
	curveSamples := flag.Int("curve_samples", 0, "If > 0, tabulate firm 1's reaction curve with this many samples (duopoly only)")
	flag.Parse()

	costs := make([]float64, *nFirms)
	for i := range costs {
		costs[i] = *cost
	}
	market := cournot.New(*intercept, *slope, costs...)

	g, err := market.Game()
	if err != nil {
		glog.Exit(err)
	}

	result, err := nash.FindPureNash(g, nash.Params{})
	if err != nil {
		glog.Exit(err)
	}

	profile := result.Profiles[0]
	fmt.Printf("equilibrium after %d iterations (margin %g):\n", result.Iterations, result.Margin)
	for i := range costs {
		id := cournot.FirmID(i)
		fmt.Printf("  %s: q = %.4f\n", id, profile[id].Value())
	}
	fmt.Printf("closed form: %v\n", market.ClosedForm())

	if *curveSamples > 0 {
		curve, err := cournot.ReactionCurve(market, 0, *curveSamples, nash.Params{})
		if err != nil {
			glog.Exit(err)
		}

		fmt.Println("reaction curve for firm1:")
		for _, pt := range curve {
			fmt.Printf("  %8.3f -> %8.3f\n", pt.Rival, pt.Response)
		}
	}
}
