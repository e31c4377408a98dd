// Package batch balances many independent line instances concurrently.
// Every run gets its own graph and balancer, so runs share no mutable state
// and need no synchronization beyond the dispatch bookkeeping.
package batch

import (
	"fmt"
	"sync"

	"github.com/mulore/kottaslau/internal/balancer"
	"github.com/mulore/kottaslau/internal/graph"
	"github.com/mulore/kottaslau/internal/instance"
)

// Result is the outcome of balancing a single instance file. Exactly one of
// Assignment and Err is set.
type Result struct {
	Path       string
	Instance   *instance.Instance
	Assignment *balancer.Assignment
	Err        error
}

// Config controls a batch run.
type Config struct {
	MaxParallel int // concurrent runs, default 4
	Policy      balancer.Policy
}

// Run balances every instance file and returns results in input order. A
// failing instance does not stop the others.
func Run(paths []string, cfg Config) []Result {
	if cfg.MaxParallel <= 0 {
		cfg.MaxParallel = 4
	}

	results := make([]Result, len(paths))
	sem := make(chan struct{}, cfg.MaxParallel)
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = runOne(path, cfg.Policy)
		}(i, path)
	}

	wg.Wait()
	return results
}

func runOne(path string, policy balancer.Policy) Result {
	res := Result{Path: path}

	in, err := instance.Load(path)
	if err != nil {
		res.Err = err
		return res
	}
	res.Instance = in

	g, err := graph.Build(in.Tasks)
	if err != nil {
		res.Err = fmt.Errorf("build precedence graph: %w", err)
		return res
	}

	b, err := balancer.New(g, balancer.Config{
		CycleTime:   in.CycleTime(),
		StationCost: in.StationCost,
		Policy:      policy,
	})
	if err != nil {
		res.Err = err
		return res
	}

	res.Assignment, res.Err = b.Run()
	return res
}
