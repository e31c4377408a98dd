package instance

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mulore/kottaslau/internal/balancer"
	"github.com/mulore/kottaslau/internal/graph"
)

const sampleJSON = `{
  "instance_id": "demo",
  "q": 0.2,
  "c": 10,
  "task_list": [
    {"task_id": "a", "m": 2, "s": 0.1, "out_line_cost": 50, "predecessor_set": []},
    {"task_id": "b", "m": 2, "s": 0.1, "out_line_cost": 50, "predecessor_set": ["a"]},
    {"task_id": "c", "m": 1, "s": 0.05, "out_line_cost": 50, "predecessor_set": ["b"]}
  ]
}`

func TestParseJSON(t *testing.T) {
	in, err := ParseJSON([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if in.ID != "demo" || in.Rate != 0.2 || in.StationCost != 10 {
		t.Errorf("unexpected header fields: %+v", in)
	}
	if math.Abs(in.CycleTime()-5) > 1e-12 {
		t.Errorf("expected cycle time 5, got %v", in.CycleTime())
	}
	if len(in.Tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(in.Tasks))
	}
	b := in.Tasks[1]
	if b.ID != "b" || b.Mean != 2 || b.Variance != 0.1 || b.OutCost != 50 {
		t.Errorf("unexpected task b: %+v", b)
	}
	if !reflect.DeepEqual(b.Predecessors, []string{"a"}) {
		t.Errorf("expected b preceded by [a], got %v", b.Predecessors)
	}
}

func TestParseJSON_DefaultOutCost(t *testing.T) {
	data := `{
	  "instance_id": "defaults", "q": 1, "c": 2, "out_line_cost": 30,
	  "task_list": [
	    {"task_id": "x", "m": 0.5, "s": 0.01},
	    {"task_id": "y", "m": 0.5, "s": 0.01, "out_line_cost": 99}
	  ]
	}`
	in, err := ParseJSON([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Tasks[0].OutCost != 30 {
		t.Errorf("expected global default 30 for x, got %v", in.Tasks[0].OutCost)
	}
	if in.Tasks[1].OutCost != 99 {
		t.Errorf("expected per-task override 99 for y, got %v", in.Tasks[1].OutCost)
	}
}

func TestParseJSON_Malformed(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not JSON", `{"instance_id": `},
		{"missing task_list", `{"instance_id": "x", "q": 1, "c": 1}`},
		{"empty task_list", `{"instance_id": "x", "q": 1, "c": 1, "task_list": []}`},
		{"zero rate", `{"instance_id": "x", "q": 0, "c": 1, "task_list": [{"task_id": "a"}]}`},
		{"empty task id", `{"instance_id": "x", "q": 1, "c": 1, "task_list": [{"m": 1}]}`},
		{"duplicate task id", `{"instance_id": "x", "q": 1, "c": 1, "task_list": [{"task_id": "a"}, {"task_id": "a"}]}`},
	}
	for _, tc := range cases {
		if _, err := ParseJSON([]byte(tc.data)); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestParseYAML(t *testing.T) {
	data := `
instance_id: demo-yaml
q: 0.25
c: 8
out_line_cost: 40
task_list:
  - task_id: a
    m: 1.5
    s: 0.2
  - task_id: b
    m: 1.0
    s: 0.1
    out_line_cost: 70
    predecessor_set: [a]
`
	in, err := ParseYAML([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.ID != "demo-yaml" || in.Rate != 0.25 || in.StationCost != 8 {
		t.Errorf("unexpected header fields: %+v", in)
	}
	if in.Tasks[0].OutCost != 40 {
		t.Errorf("expected default out cost 40, got %v", in.Tasks[0].OutCost)
	}
	if in.Tasks[1].OutCost != 70 {
		t.Errorf("expected override out cost 70, got %v", in.Tasks[1].OutCost)
	}
	if !reflect.DeepEqual(in.Tasks[1].Predecessors, []string{"a"}) {
		t.Errorf("expected b preceded by [a], got %v", in.Tasks[1].Predecessors)
	}
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "instance.json")
	if err := os.WriteFile(jsonPath, []byte(sampleJSON), 0644); err != nil {
		t.Fatal(err)
	}
	yamlPath := filepath.Join(dir, "instance.yaml")
	yamlData := "instance_id: y\nq: 1\nc: 1\ntask_list:\n  - task_id: a\n    m: 1\n    s: 0.1\n"
	if err := os.WriteFile(yamlPath, []byte(yamlData), 0644); err != nil {
		t.Fatal(err)
	}

	if in, err := Load(jsonPath); err != nil || in.ID != "demo" {
		t.Errorf("JSON load: got %v, %v", in, err)
	}
	if in, err := Load(yamlPath); err != nil || in.ID != "y" {
		t.Errorf("YAML load: got %v, %v", in, err)
	}
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBuildAndWriteResult(t *testing.T) {
	in, err := ParseJSON([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g, err := graph.Build(in.Tasks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := balancer.New(g, balancer.Config{CycleTime: in.CycleTime(), StationCost: in.StationCost})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	asg, err := b.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := BuildResult(in, asg)
	if len(r.Stations) != 2 {
		t.Fatalf("expected 2 stations, got %d", len(r.Stations))
	}
	if r.Stations[0].StationID != "1" || r.Stations[1].StationID != "2" {
		t.Errorf("expected station IDs 1 and 2, got %s and %s",
			r.Stations[0].StationID, r.Stations[1].StationID)
	}
	if !reflect.DeepEqual(r.Stations[0].Tasks, []string{"a", "b"}) {
		t.Errorf("expected station 1 = [a b], got %v", r.Stations[0].Tasks)
	}

	path := filepath.Join(t.TempDir(), "out.json")
	if err := WriteResult(path, r); err != nil {
		t.Fatalf("write result: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var back Result
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("parse written result: %v", err)
	}
	if back.InstanceID != "demo" || len(back.Stations) != 2 {
		t.Errorf("round-trip mismatch: %+v", back)
	}
}
