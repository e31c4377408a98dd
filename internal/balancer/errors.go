package balancer

import (
	"fmt"
	"strings"
)

// InfeasiblePrecedenceError is returned when no task is eligible while tasks
// remain unassigned. A graph that passed construction cannot produce this;
// it guards against malformed input reaching the run loop.
type InfeasiblePrecedenceError struct {
	Remaining []string
}

func (e *InfeasiblePrecedenceError) Error() string {
	return fmt.Sprintf("no eligible task with %d unassigned: %s",
		len(e.Remaining), strings.Join(e.Remaining, ", "))
}

// TaskExceedsCycleTimeError is returned when a task is undesirable even as
// the sole occupant of an empty station: no assignment can satisfy the cycle
// time for this task set.
type TaskExceedsCycleTimeError struct {
	TaskID    string
	Mean      float64
	Variance  float64
	CycleTime float64
}

func (e *TaskExceedsCycleTimeError) Error() string {
	return fmt.Sprintf("task %s (mean %v, variance %v) is infeasible alone at cycle time %v",
		e.TaskID, e.Mean, e.Variance, e.CycleTime)
}
