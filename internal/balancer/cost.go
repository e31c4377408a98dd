package balancer

import (
	"github.com/mulore/kottaslau/internal/graph"
)

// InlineFunc computes the in-line completion cost of a task from its mean
// execution time and the station cost rate. Any replacement must stay
// monotonic increasing in both arguments.
type InlineFunc func(mean, stationCost float64) float64

// defaultInline charges the station rate for the task's mean duration.
func defaultInline(mean, stationCost float64) float64 {
	return mean * stationCost
}

// CostModel computes in-line and out-of-line completion costs.
type CostModel struct {
	StationCost float64
	Inline      InlineFunc // nil means mean * StationCost
}

// InlineCost returns L_k, the cost of completing the task at a station on
// the line.
func (m *CostModel) InlineCost(t *graph.Task) float64 {
	f := m.Inline
	if f == nil {
		f = defaultInline
	}
	return f(t.Mean, m.StationCost)
}

// OutlineCost returns I_k, the cost of completing the task and its full
// transitive successor closure outside the line: once a task misses the
// line, everything depending on it goes with it.
func (m *CostModel) OutlineCost(t *graph.Task, g *graph.PrecedenceGraph) float64 {
	cost := 0.0
	for _, id := range g.Following(t.ID) {
		cost += g.Tasks[id].OutCost
	}
	return cost
}
