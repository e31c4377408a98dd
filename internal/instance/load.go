package instance

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/mulore/kottaslau/internal/graph"
)

// Load reads an instance file, dispatching on extension: .yaml/.yml is
// parsed as YAML, anything else as JSON.
func Load(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read instance: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON parses the instance JSON shape:
//
//	{"instance_id": "...", "q": 0.2, "c": 10,
//	 "task_list": [{"task_id": "a", "m": 2, "s": 0.1,
//	                "out_line_cost": 50, "predecessor_set": ["b"]}]}
//
// A top-level "out_line_cost" is the default for tasks that omit their own.
func ParseJSON(data []byte) (*Instance, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("instance is not valid JSON")
	}
	doc := gjson.ParseBytes(data)

	in := &Instance{
		ID:          doc.Get("instance_id").String(),
		Rate:        doc.Get("q").Float(),
		StationCost: doc.Get("c").Float(),
	}
	defaultOut := doc.Get("out_line_cost").Float()

	list := doc.Get("task_list")
	if !list.IsArray() {
		return nil, fmt.Errorf("instance %s: task_list missing or not an array", in.ID)
	}
	list.ForEach(func(_, tv gjson.Result) bool {
		t := graph.Task{
			ID:       tv.Get("task_id").String(),
			Mean:     tv.Get("m").Float(),
			Variance: tv.Get("s").Float(),
			OutCost:  defaultOut,
		}
		if oc := tv.Get("out_line_cost"); oc.Exists() {
			t.OutCost = oc.Float()
		}
		tv.Get("predecessor_set").ForEach(func(_, p gjson.Result) bool {
			t.Predecessors = append(t.Predecessors, p.String())
			return true
		})
		in.Tasks = append(in.Tasks, t)
		return true
	})

	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in, nil
}

// yamlInstance mirrors the JSON shape for YAML files.
type yamlInstance struct {
	ID          string     `yaml:"instance_id"`
	Rate        float64    `yaml:"q"`
	StationCost float64    `yaml:"c"`
	OutCost     float64    `yaml:"out_line_cost"`
	Tasks       []yamlTask `yaml:"task_list"`
}

type yamlTask struct {
	ID           string   `yaml:"task_id"`
	Mean         float64  `yaml:"m"`
	Variance     float64  `yaml:"s"`
	OutCost      *float64 `yaml:"out_line_cost"`
	Predecessors []string `yaml:"predecessor_set"`
}

// ParseYAML parses a YAML instance file.
func ParseYAML(data []byte) (*Instance, error) {
	var raw yamlInstance
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse instance YAML: %w", err)
	}

	in := &Instance{
		ID:          raw.ID,
		Rate:        raw.Rate,
		StationCost: raw.StationCost,
	}
	for _, rt := range raw.Tasks {
		t := graph.Task{
			ID:           rt.ID,
			Mean:         rt.Mean,
			Variance:     rt.Variance,
			OutCost:      raw.OutCost,
			Predecessors: rt.Predecessors,
		}
		if rt.OutCost != nil {
			t.OutCost = *rt.OutCost
		}
		in.Tasks = append(in.Tasks, t)
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in, nil
}
