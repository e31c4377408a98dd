package instance

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/mulore/kottaslau/internal/balancer"
)

// Result is the exported form of a balancing run, written next to the
// instance as the machine-readable output file.
type Result struct {
	InstanceID    string          `json:"instance_id"`
	Rate          float64         `json:"q"`
	StationCost   float64         `json:"c"`
	CycleTime     float64         `json:"cycle_time"`
	Stations      []StationResult `json:"station_list"`
	TotalUnitCost float64         `json:"total_unit_cost"`
}

// StationResult is one station in the exported result. Station IDs count
// from "1".
type StationResult struct {
	StationID   string   `json:"station_id"`
	Tasks       []string `json:"task_list"`
	Mean        float64  `json:"mean"`
	Variance    float64  `json:"variance"`
	Utilization float64  `json:"utilization"`
}

// BuildResult flattens an assignment into its exported form.
func BuildResult(in *Instance, asg *balancer.Assignment) *Result {
	r := &Result{
		InstanceID:    in.ID,
		Rate:          in.Rate,
		StationCost:   in.StationCost,
		CycleTime:     asg.CycleTime,
		TotalUnitCost: asg.TotalUnitCost,
	}
	for _, s := range asg.Stations {
		r.Stations = append(r.Stations, StationResult{
			StationID:   strconv.Itoa(s.Index + 1),
			Tasks:       s.TaskIDs(),
			Mean:        s.Mean,
			Variance:    s.Variance,
			Utilization: s.Utilization(asg.CycleTime),
		})
	}
	return r
}

// WriteResult persists a result as indented JSON.
func WriteResult(path string, r *Result) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
