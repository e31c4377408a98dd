package balancer

import (
	"fmt"
	"log"
	"sort"

	"github.com/mulore/kottaslau/internal/graph"
	"github.com/mulore/kottaslau/internal/risk"
)

// safeZ is the station z-score above which a task counts as safe under the
// priority policy: overrun probability below 0.005.
const safeZ = 2.575

// taskCost caches the per-task quantities the decision rule needs. They
// depend only on the graph and the configuration, so they are computed once
// up front.
type taskCost struct {
	inline     float64 // L_k
	outline    float64 // I_k
	zLimit     float64 // z where L_k = Overrun * I_k
	successors int
}

// Balancer assigns precedence-constrained stochastic tasks to a sequence of
// stations using the Kottas-Lau desirability rule: a task joins the current
// station iff its in-line cost covers the expected out-of-line cost
// L_k >= R * I_k, where R is the station's overrun probability with the task
// added. Runs are stateless with respect to each other.
type Balancer struct {
	graph *graph.PrecedenceGraph
	cfg   Config
	costs map[string]taskCost
}

// New validates the configuration and task parameters, precomputes the cost
// table, and returns a Balancer ready to run. It fails fast with
// risk.InvalidParameterError before any station work.
func New(g *graph.PrecedenceGraph, cfg Config) (*Balancer, error) {
	if cfg.CycleTime <= 0 {
		return nil, &risk.InvalidParameterError{Param: "cycle time", Value: cfg.CycleTime}
	}
	if cfg.StationCost < 0 {
		return nil, &risk.InvalidParameterError{Param: "station cost", Value: cfg.StationCost}
	}
	if cfg.Policy == "" {
		cfg.Policy = PolicyOrdered
	}
	if cfg.Policy != PolicyOrdered && cfg.Policy != PolicyPriority {
		return nil, fmt.Errorf("unknown policy %q", cfg.Policy)
	}

	for _, id := range sortedIDs(g) {
		t := g.Tasks[id]
		if t.Mean < 0 {
			return nil, &risk.InvalidParameterError{Param: "mean of task " + id, Value: t.Mean}
		}
		if t.Variance < 0 {
			return nil, &risk.InvalidParameterError{Param: "variance of task " + id, Value: t.Variance}
		}
		if t.OutCost < 0 {
			return nil, &risk.InvalidParameterError{Param: "out-of-line cost of task " + id, Value: t.OutCost}
		}
	}

	model := &CostModel{StationCost: cfg.StationCost, Inline: cfg.Inline}
	costs := make(map[string]taskCost, len(g.Tasks))
	for _, id := range sortedIDs(g) {
		t := g.Tasks[id]
		l := model.InlineCost(t)
		i := model.OutlineCost(t, g)
		if i < l {
			log.Printf("warning: task %s: out-of-line completion cost %g below in-line cost %g", id, i, l)
		}
		costs[id] = taskCost{
			inline:     l,
			outline:    i,
			zLimit:     risk.ZLimit(l, i),
			successors: g.SuccessorCount(id),
		}
	}

	return &Balancer{graph: g, cfg: cfg, costs: costs}, nil
}

// Run produces the station assignment. On failure no partial assignment is
// returned.
func (b *Balancer) Run() (*Assignment, error) {
	assigned := make(map[string]bool, b.graph.TaskCount())
	var stations []*Station
	current := &Station{Index: 0}

	for len(assigned) < b.graph.TaskCount() {
		ready := b.graph.Eligible(assigned)
		if len(ready) == 0 {
			return nil, &InfeasiblePrecedenceError{Remaining: b.remaining(assigned)}
		}

		id := b.pick(ready, current)
		t := b.graph.Tasks[id]
		mean := current.Mean + t.Mean
		variance := current.Variance + t.Variance

		r, err := risk.Overrun(mean, variance, b.cfg.CycleTime)
		if err != nil {
			return nil, err
		}

		c := b.costs[id]
		if c.inline >= r*c.outline {
			current.Tasks = append(current.Tasks, Placement{
				TaskID:          id,
				Risk:            r,
				ExpectedOutCost: r * c.outline,
			})
			current.Mean = mean
			current.Variance = variance
			assigned[id] = true
			continue
		}

		if len(current.Tasks) == 0 {
			return nil, &TaskExceedsCycleTimeError{
				TaskID:    id,
				Mean:      t.Mean,
				Variance:  t.Variance,
				CycleTime: b.cfg.CycleTime,
			}
		}

		// Close the station and retry the task against a fresh one.
		stations = append(stations, current)
		current = &Station{Index: len(stations)}
	}

	if len(current.Tasks) > 0 {
		stations = append(stations, current)
	}

	total := b.cfg.CycleTime * b.cfg.StationCost * float64(len(stations))
	for _, s := range stations {
		for _, p := range s.Tasks {
			total += p.ExpectedOutCost
		}
	}

	return &Assignment{
		Stations:      stations,
		CycleTime:     b.cfg.CycleTime,
		TotalUnitCost: total,
	}, nil
}

// pick returns the eligible task to try next against the current station.
// ready is in ascending ID order, which PolicyOrdered uses as-is.
func (b *Balancer) pick(ready []string, current *Station) string {
	if b.cfg.Policy != PolicyPriority {
		return ready[0]
	}

	var safe, desirable, critical []string
	for _, id := range ready {
		t := b.graph.Tasks[id]
		z := risk.ZScore(current.Mean+t.Mean, current.Variance+t.Variance, b.cfg.CycleTime)
		switch {
		case z > safeZ:
			safe = append(safe, id)
		case z >= b.costs[id].zLimit:
			desirable = append(desirable, id)
		default:
			critical = append(critical, id)
		}
	}

	switch {
	case len(safe) > 0:
		// Highest out-of-line completion cost first.
		sort.SliceStable(safe, func(i, j int) bool {
			return b.costs[safe[i]].outline > b.costs[safe[j]].outline
		})
		return safe[0]
	case len(desirable) > 0:
		// Lowest out-of-line completion cost first.
		sort.SliceStable(desirable, func(i, j int) bool {
			return b.costs[desirable[i]].outline < b.costs[desirable[j]].outline
		})
		return desirable[0]
	default:
		// Only critical candidates remain: the run loop will close the
		// station, or fail if it is empty. Most successors first so a
		// fresh station starts with the task unblocking the most work.
		sort.SliceStable(critical, func(i, j int) bool {
			return b.costs[critical[i]].successors > b.costs[critical[j]].successors
		})
		return critical[0]
	}
}

func (b *Balancer) remaining(assigned map[string]bool) []string {
	var left []string
	for id := range b.graph.Tasks {
		if !assigned[id] {
			left = append(left, id)
		}
	}
	sort.Strings(left)
	return left
}

func sortedIDs(g *graph.PrecedenceGraph) []string {
	ids := make([]string, 0, len(g.Tasks))
	for id := range g.Tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
