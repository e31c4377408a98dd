// Package instance is the I/O collaborator around the balancing core: it
// reads problem instances from JSON or YAML files and writes result files.
// The core packages never touch files or formats.
package instance

import (
	"fmt"

	"github.com/mulore/kottaslau/internal/graph"
)

// Instance holds a single problem: the task list plus the line parameters.
type Instance struct {
	ID          string
	Rate        float64 // q, target production rate [units/time]
	StationCost float64 // c, station cost [cost/time]
	Tasks       []graph.Task
}

// CycleTime returns the time available per station, the reciprocal of the
// target production rate.
func (in *Instance) CycleTime() float64 {
	return 1 / in.Rate
}

// Validate checks the structural contract: a positive production rate, at
// least one task, and non-empty unique task IDs. Value-domain checks on
// means, variances and costs stay with the balancer.
func (in *Instance) Validate() error {
	if in.Rate <= 0 {
		return fmt.Errorf("instance %s: production rate must be positive, got %v", in.ID, in.Rate)
	}
	if len(in.Tasks) == 0 {
		return fmt.Errorf("instance %s: no tasks", in.ID)
	}
	seen := make(map[string]bool, len(in.Tasks))
	for i, t := range in.Tasks {
		if t.ID == "" {
			return fmt.Errorf("instance %s: task %d has an empty ID", in.ID, i)
		}
		if seen[t.ID] {
			return fmt.Errorf("instance %s: duplicate task ID %s", in.ID, t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}
