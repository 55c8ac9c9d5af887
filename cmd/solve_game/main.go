// Script to solve a game defined in a YAML game file: finds pure-strategy
// equilibria, and mixed-strategy equilibria for two-player finite games.
// Results are optionally cached on disk so repeated runs are free.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	nash "github.com/timpalpant/go-nash"
	"github.com/timpalpant/go-nash/gamefile"
	"github.com/timpalpant/go-nash/ldbcache"
)

func main() {
	gamePath := flag.String("game", "", "Path to the YAML game definition")
	cachePath := flag.String("cache", "", "Optional path to a LevelDB result cache")
	tolerance := flag.Float64("tolerance", nash.DefaultTolerance, "Convergence/indifference tolerance")
	maxIter := flag.Int("max_iters", 0, "Iteration cap (0 = solver default)")
	flag.Parse()

	if *gamePath == "" {
		fmt.Fprintln(os.Stderr, "usage: solve_game -game <file.yaml> [-cache <dir>]")
		os.Exit(2)
	}

	data, err := os.ReadFile(*gamePath)
	if err != nil {
		glog.Exit(err)
	}
	g, err := gamefile.Parse(data)
	if err != nil {
		glog.Exitf("parse %s: %v", *gamePath, err)
	}

	params := nash.Params{Tolerance: *tolerance, MaxIterations: *maxIter}

	var cache *ldbcache.Cache
	if *cachePath != "" {
		cache, err = ldbcache.Open(*cachePath)
		if err != nil {
			glog.Exit(err)
		}
		defer cache.Close()
	}

	// Results are keyed by the definition's content, not its path.
	key := gamefile.Fingerprint(data)
	solvePure(g, params, cache, key)
	solveMixed(g, params, cache, key)
}

func solvePure(g *nash.Game, params nash.Params, cache *ldbcache.Cache, key string) {
	if cache != nil {
		if result, ok, err := cache.GetPure(key); err != nil {
			glog.Exit(err)
		} else if ok {
			glog.Infof("pure result loaded from cache")
			printPure(result)
			return
		}
	}

	result, err := nash.FindPureNash(g, params)
	if _, none := err.(*nash.NoEquilibriumFoundError); none {
		fmt.Println("no pure-strategy equilibrium")
		return
	}
	if err != nil {
		glog.Exit(err)
	}

	if cache != nil {
		if err := cache.PutPure(key, result); err != nil {
			glog.Warningf("failed to cache pure result: %v", err)
		}
	}
	printPure(result)
}

func printPure(result *nash.PureResult) {
	for _, profile := range result.Profiles {
		fmt.Println("pure equilibrium:")
		for _, id := range profile.PlayerIDs() {
			fmt.Printf("  %s: %v\n", id, profile[id])
		}
	}
	fmt.Printf("  margin: %g, exhaustive: %v\n", result.Margin, result.Exhaustive)
}

func solveMixed(g *nash.Game, params nash.Params, cache *ldbcache.Cache, key string) {
	if cache != nil {
		if eqs, ok, err := cache.GetMixed(key); err != nil {
			glog.Exit(err)
		} else if ok {
			glog.Infof("mixed result loaded from cache")
			printMixed(eqs)
			return
		}
	}

	eqs, err := nash.FindMixedNash(g, params)
	if _, invalid := err.(*nash.InvalidGameError); invalid {
		glog.V(1).Infof("skipping mixed solver: %v", err)
		return
	}
	if _, none := err.(*nash.NoEquilibriumFoundError); none {
		fmt.Println("no mixed-strategy equilibrium")
		return
	}
	if err != nil {
		glog.Exit(err)
	}

	if cache != nil {
		if err := cache.PutMixed(key, eqs); err != nil {
			glog.Warningf("failed to cache mixed result: %v", err)
		}
	}
	printMixed(eqs)
}

func printMixed(eqs []nash.MixedEquilibrium) {
	for i, eq := range eqs {
		fmt.Printf("mixed equilibrium %d (margin %g):\n", i+1, eq.Margin)
		for id, ms := range eq.Strategies {
			fmt.Printf("  %s: %v\n", id, ms)
		}
	}
}
