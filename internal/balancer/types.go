package balancer

// Policy selects which eligible task the balancer tries next. The outcome of
// a run depends on this order, so both policies are fixed and deterministic.
type Policy string

const (
	// PolicyOrdered visits eligible tasks in ascending ID order.
	PolicyOrdered Policy = "ordered"
	// PolicyPriority reproduces the Kottas-Lau selection heuristic: safe
	// tasks with the highest out-of-line completion cost first, then
	// desirable tasks with the lowest, critical tasks only to seed an
	// empty station (most direct successors first).
	PolicyPriority Policy = "priority"
)

// Config holds the line parameters for a balancing run. Immutable for the
// duration of the run; a Balancer never mutates it.
type Config struct {
	CycleTime   float64 // Tc, time available per station (1 / production rate)
	StationCost float64 // cost per time unit of keeping a station open
	Policy      Policy  // defaults to PolicyOrdered
	Inline      InlineFunc
}

// Placement records a task committed to a station.
type Placement struct {
	TaskID string `json:"task_id"`
	// Risk is the station overrun probability immediately after the task
	// was committed.
	Risk float64 `json:"risk"`
	// ExpectedOutCost is Risk times the task's out-of-line completion
	// cost: the expected cost of finishing it and its dependents off-line.
	ExpectedOutCost float64 `json:"expected_out_cost"`
}

// Station is a group of tasks performed within one cycle time slot. Grown
// only by the balancer during a run; frozen once closed.
type Station struct {
	Index    int         `json:"index"`
	Tasks    []Placement `json:"tasks"`
	Mean     float64     `json:"mean"`     // sum of task means
	Variance float64     `json:"variance"` // sum of task variances
}

// TaskIDs returns the assigned task IDs in commit order.
func (s *Station) TaskIDs() []string {
	ids := make([]string, len(s.Tasks))
	for i, p := range s.Tasks {
		ids[i] = p.TaskID
	}
	return ids
}

// Utilization returns the station's mean workload as a fraction of the cycle
// time. Can exceed 1 when the balancer accepts a risky but cheap overrun.
func (s *Station) Utilization(cycleTime float64) float64 {
	return s.Mean / cycleTime
}

// Assignment is the result of a balancing run: every task in exactly one
// station, stations ordered by opening sequence.
type Assignment struct {
	Stations  []*Station `json:"stations"`
	CycleTime float64    `json:"cycle_time"`
	// TotalUnitCost is the expected cost to produce one unit: the summed
	// expected out-of-line costs plus the line cost Tc * C * #stations.
	TotalUnitCost float64 `json:"total_unit_cost"`
}

// StationOf returns the index of the station holding the task, or -1.
func (a *Assignment) StationOf(taskID string) int {
	for _, s := range a.Stations {
		for _, p := range s.Tasks {
			if p.TaskID == taskID {
				return s.Index
			}
		}
	}
	return -1
}

// TaskCount returns the number of placed tasks across all stations.
func (a *Assignment) TaskCount() int {
	n := 0
	for _, s := range a.Stations {
		n += len(s.Tasks)
	}
	return n
}
