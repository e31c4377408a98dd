package reporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mulore/kottaslau/internal/balancer"
	"github.com/mulore/kottaslau/internal/graph"
	"github.com/mulore/kottaslau/internal/instance"
)

func makeRun(t *testing.T) (*instance.Instance, *balancer.Assignment) {
	t.Helper()
	in := &instance.Instance{
		ID:          "test-line",
		Rate:        0.2,
		StationCost: 10,
		Tasks: []graph.Task{
			{ID: "a", Mean: 2, Variance: 0.1, OutCost: 50},
			{ID: "b", Mean: 2, Variance: 0.1, OutCost: 50, Predecessors: []string{"a"}},
			{ID: "c", Mean: 1, Variance: 0.05, OutCost: 50, Predecessors: []string{"b"}},
		},
	}
	g, err := graph.Build(in.Tasks)
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	b, err := balancer.New(g, balancer.Config{CycleTime: in.CycleTime(), StationCost: in.StationCost})
	if err != nil {
		t.Fatalf("new balancer: %v", err)
	}
	asg, err := b.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return in, asg
}

func TestPrintAssignment(t *testing.T) {
	in, asg := makeRun(t)
	rpt := New(in, asg)

	var buf bytes.Buffer
	rpt.PrintAssignment(&buf)
	output := buf.String()

	if !strings.Contains(output, "test-line") {
		t.Error("expected output to contain the instance ID")
	}
	if !strings.Contains(output, "STATION 1") {
		t.Error("expected output to contain 'STATION 1'")
	}
	if !strings.Contains(output, "STATION 2") {
		t.Error("expected output to contain 'STATION 2'")
	}
	for _, id := range []string{"a", "b", "c"} {
		if !strings.Contains(output, id) {
			t.Errorf("expected output to contain task %s", id)
		}
	}
	if !strings.Contains(output, "Total unit cost:") {
		t.Error("expected output to contain total unit cost")
	}
}

func TestSummary(t *testing.T) {
	in, asg := makeRun(t)
	rpt := New(in, asg)

	s := rpt.Summary()
	if !strings.Contains(s, "3 tasks in 2 stations") {
		t.Errorf("unexpected summary: %q", s)
	}
}

func TestJSON(t *testing.T) {
	in, asg := makeRun(t)
	rpt := New(in, asg)

	data, err := rpt.JSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var r instance.Result
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if r.InstanceID != "test-line" || len(r.Stations) != 2 {
		t.Errorf("unexpected report: %+v", r)
	}
}
