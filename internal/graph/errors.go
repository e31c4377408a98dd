package graph

import (
	"fmt"
	"strings"
)

// CycleError reports a cycle in the predecessor relation. Path holds the
// offending task IDs in forward order, first task repeated at the end.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("precedence cycle detected: %s", strings.Join(e.Path, " -> "))
}

// UnknownTaskError reports a predecessor reference to a task that does not
// exist in the graph.
type UnknownTaskError struct {
	TaskID string // task declaring the edge
	Ref    string // the dangling predecessor ID
}

func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("task %s references unknown predecessor %s", e.TaskID, e.Ref)
}
