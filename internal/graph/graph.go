package graph

import "sort"

// Build constructs a PrecedenceGraph from task specs. It fails with
// UnknownTaskError if a predecessor references a task not in the list, and
// with CycleError if the predecessor relation is not a strict partial order.
func Build(tasks []Task) (*PrecedenceGraph, error) {
	g := &PrecedenceGraph{
		Tasks:  make(map[string]*Task),
		Adj:    make(map[string][]string),
		RevAdj: make(map[string][]string),
	}

	for i := range tasks {
		t := tasks[i]
		g.Tasks[t.ID] = &t
	}

	// Edges run predecessor -> task. Duplicate predecessor entries collapse
	// to a single edge.
	edgeSet := make(map[[2]string]bool)
	for id, task := range g.Tasks {
		for _, pred := range task.Predecessors {
			if _, ok := g.Tasks[pred]; !ok {
				return nil, &UnknownTaskError{TaskID: id, Ref: pred}
			}
			key := [2]string{pred, id}
			if edgeSet[key] {
				continue
			}
			edgeSet[key] = true
			g.Adj[pred] = append(g.Adj[pred], id)
			g.RevAdj[id] = append(g.RevAdj[id], pred)
		}
	}

	// Sort adjacency lists for deterministic traversal order.
	for k := range g.Adj {
		sort.Strings(g.Adj[k])
	}
	for k := range g.RevAdj {
		sort.Strings(g.RevAdj[k])
	}

	for id := range g.Tasks {
		if len(g.RevAdj[id]) == 0 {
			g.Roots = append(g.Roots, id)
		}
		if len(g.Adj[id]) == 0 {
			g.Leaves = append(g.Leaves, id)
		}
	}
	sort.Strings(g.Roots)
	sort.Strings(g.Leaves)

	if cycle := g.detectCycle(); cycle != nil {
		return nil, &CycleError{Path: cycle}
	}

	return g, nil
}

// detectCycle returns a cycle path in forward order (first task repeated at
// the end), or nil if the graph is acyclic. DFS with coloring: white
// (unvisited), gray (in progress), black (done).
func (g *PrecedenceGraph) detectCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := make(map[string]int)
	parent := make(map[string]string)

	var dfs func(node string) []string
	dfs = func(node string) []string {
		color[node] = gray
		for _, next := range g.Adj[node] {
			if color[next] == gray {
				cycle := []string{node}
				for cur := node; cur != next; {
					cur = parent[cur]
					cycle = append(cycle, cur)
				}
				for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return append(cycle, next)
			}
			if color[next] == white {
				parent[next] = node
				if cycle := dfs(next); cycle != nil {
					return cycle
				}
			}
		}
		color[node] = black
		return nil
	}

	ids := make([]string, 0, len(g.Tasks))
	for id := range g.Tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if color[id] == white {
			if cycle := dfs(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// Eligible returns the unassigned tasks whose predecessors are all contained
// in assigned, in ascending ID order. That order is the documented tie-break:
// the balancing outcome depends on it, so it must stay fixed.
func (g *PrecedenceGraph) Eligible(assigned map[string]bool) []string {
	var ready []string
	for id, task := range g.Tasks {
		if assigned[id] {
			continue
		}
		ok := true
		for _, pred := range task.Predecessors {
			if !assigned[pred] {
				ok = false
				break
			}
		}
		if ok {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)
	return ready
}

// Following returns the task plus its full transitive successor closure in
// ascending ID order. This is the set of work that would leave the line if
// the task were completed off-line.
func (g *PrecedenceGraph) Following(id string) []string {
	visited := make(map[string]bool)
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		stack = append(stack, g.Adj[cur]...)
	}

	closure := make([]string, 0, len(visited))
	for t := range visited {
		closure = append(closure, t)
	}
	sort.Strings(closure)
	return closure
}

// SuccessorCount returns the number of direct successors of a task.
func (g *PrecedenceGraph) SuccessorCount(id string) int {
	return len(g.Adj[id])
}

// TaskCount returns the number of tasks in the graph.
func (g *PrecedenceGraph) TaskCount() int {
	return len(g.Tasks)
}
