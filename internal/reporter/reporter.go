package reporter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mulore/kottaslau/internal/balancer"
	"github.com/mulore/kottaslau/internal/instance"
	"github.com/mulore/kottaslau/internal/ui"
)

// Reporter renders a station assignment for a terminal or as JSON.
type Reporter struct {
	Instance   *instance.Instance
	Assignment *balancer.Assignment
}

// New creates a Reporter for a finished run.
func New(in *instance.Instance, asg *balancer.Assignment) *Reporter {
	return &Reporter{Instance: in, Assignment: asg}
}

// PrintAssignment writes the full station-by-station report.
func (r *Reporter) PrintAssignment(w io.Writer) {
	asg := r.Assignment

	fmt.Fprintf(w, "%s %s\n", ui.BoldCyan("Line balance:"), ui.Dim(r.Instance.ID))
	fmt.Fprintf(w, "Cycle time: %s   Station cost: %s   Stations: %s\n\n",
		ui.Bold(fmt.Sprintf("%g", asg.CycleTime)),
		ui.Bold(fmt.Sprintf("%g", r.Instance.StationCost)),
		ui.Bold(len(asg.Stations)))

	for _, s := range asg.Stations {
		fmt.Fprintf(w, "%s %d  %s M=%g S2=%g  load %s\n",
			ui.BoldWhite("STATION"), s.Index+1,
			ui.Dim("—"), s.Mean, s.Variance,
			ui.Utilization(s.Utilization(asg.CycleTime)))

		for _, p := range s.Tasks {
			fmt.Fprintf(w, "  %-10s risk %s  expected off-line cost %s\n",
				ui.BoldMagenta(p.TaskID),
				ui.Risk(p.Risk),
				ui.Dim(fmt.Sprintf("%.4f", p.ExpectedOutCost)))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%s %s\n", ui.Bold("Total unit cost:"),
		ui.BoldGreen(fmt.Sprintf("%.4f", asg.TotalUnitCost)))
}

// Summary returns a one-line wrap-up.
func (r *Reporter) Summary() string {
	return fmt.Sprintf("%s %d tasks in %d stations, unit cost %.4f",
		ui.BoldCyan("Balanced:"),
		r.Assignment.TaskCount(), len(r.Assignment.Stations),
		r.Assignment.TotalUnitCost)
}

// JSON returns the machine-readable report.
func (r *Reporter) JSON() ([]byte, error) {
	return json.MarshalIndent(instance.BuildResult(r.Instance, r.Assignment), "", "  ")
}
