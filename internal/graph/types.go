package graph

// Task is a single operation in the production process. Execution time is
// normally distributed with mean Mean and variance Variance; Predecessors
// lists the tasks that must complete first (direct edges in the operation
// process chart). Tasks are immutable once the graph is built.
type Task struct {
	ID           string   `json:"task_id"`
	Mean         float64  `json:"m"`
	Variance     float64  `json:"s"`
	OutCost      float64  `json:"out_line_cost"` // unit cost of completing the task off the line
	Predecessors []string `json:"predecessor_set"`
}

// PrecedenceGraph is the directed acyclic graph of tasks on the line.
type PrecedenceGraph struct {
	Tasks  map[string]*Task
	Adj    map[string][]string // task -> tasks it directly precedes
	RevAdj map[string][]string // task -> its direct predecessors
	Roots  []string            // tasks with no predecessors
	Leaves []string            // tasks that precede nothing
}
