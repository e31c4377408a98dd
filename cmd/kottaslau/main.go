package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mulore/kottaslau/internal/balancer"
	"github.com/mulore/kottaslau/internal/batch"
	"github.com/mulore/kottaslau/internal/graph"
	"github.com/mulore/kottaslau/internal/instance"
	"github.com/mulore/kottaslau/internal/reporter"
	"github.com/mulore/kottaslau/internal/ui"
)

var (
	flagInstance    string
	flagPolicy      string
	flagJSON        bool
	flagOutput      string
	flagFormat      string
	flagRate        float64
	flagStationCost float64
	flagOutCost     float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kottaslau",
		Short: "Balance a stochastic assembly line with the Kottas-Lau heuristic",
		Long: `Kottaslau assigns precedence-constrained tasks with normally distributed
execution times to a minimal-cost sequence of stations on a paced line.
A task joins the current station while its in-line completion cost covers
the expected cost of finishing it (and everything downstream) off the line.`,
	}

	rootCmd.PersistentFlags().StringVarP(&flagInstance, "instance", "i", "instance.json", "Instance file (JSON or YAML)")
	rootCmd.PersistentFlags().Float64Var(&flagRate, "rate", 0, "Override the target production rate q")
	rootCmd.PersistentFlags().Float64Var(&flagStationCost, "station-cost", -1, "Override the station cost c")
	rootCmd.PersistentFlags().Float64Var(&flagOutCost, "out-cost", -1, "Override every task's out-of-line unit cost")

	rootCmd.AddCommand(balanceCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(vizCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadInstance reads the instance file and applies flag overrides.
func loadInstance() (*instance.Instance, error) {
	in, err := instance.Load(flagInstance)
	if err != nil {
		return nil, err
	}
	if flagRate > 0 {
		in.Rate = flagRate
	}
	if flagStationCost >= 0 {
		in.StationCost = flagStationCost
	}
	if flagOutCost >= 0 {
		for i := range in.Tasks {
			in.Tasks[i].OutCost = flagOutCost
		}
	}
	return in, nil
}

// buildBalancer is shared setup for balance and check.
func buildBalancer(policy balancer.Policy) (*instance.Instance, *graph.PrecedenceGraph, *balancer.Balancer, error) {
	in, err := loadInstance()
	if err != nil {
		return nil, nil, nil, err
	}

	g, err := graph.Build(in.Tasks)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build precedence graph: %w", err)
	}

	b, err := balancer.New(g, balancer.Config{
		CycleTime:   in.CycleTime(),
		StationCost: in.StationCost,
		Policy:      policy,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	return in, g, b, nil
}

func balanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Compute the station assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _, b, err := buildBalancer(balancer.Policy(flagPolicy))
			if err != nil {
				return err
			}

			asg, err := b.Run()
			if err != nil {
				return fmt.Errorf("balance line: %w", err)
			}

			rpt := reporter.New(in, asg)

			if flagOutput != "" {
				if err := instance.WriteResult(flagOutput, instance.BuildResult(in, asg)); err != nil {
					return err
				}
				fmt.Printf("%s wrote %s\n", ui.Green("✓"), ui.Dim(flagOutput))
			}

			if flagJSON {
				data, err := rpt.JSON()
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			rpt.PrintAssignment(os.Stdout)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagPolicy, "policy", string(balancer.PolicyOrdered), "Task selection policy (ordered, priority)")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")
	cmd.Flags().StringVar(&flagOutput, "output", "", "Write the result to a file")

	return cmd
}

func batchCmd() *cobra.Command {
	var flagMaxParallel int

	cmd := &cobra.Command{
		Use:   "batch <instance>...",
		Short: "Balance many independent instances in parallel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := batch.Run(args, batch.Config{
				MaxParallel: flagMaxParallel,
				Policy:      balancer.Policy(flagPolicy),
			})

			failed := 0
			for _, res := range results {
				if res.Err != nil {
					failed++
					fmt.Printf("%s %-30s %v\n", ui.Red("✗"), res.Path, res.Err)
					continue
				}
				fmt.Printf("%s %-30s %s\n", ui.Green("✓"), res.Path,
					reporter.New(res.Instance, res.Assignment).Summary())
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d instances failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&flagMaxParallel, "max-parallel", 4, "Max concurrent runs")
	cmd.Flags().StringVar(&flagPolicy, "policy", string(balancer.PolicyOrdered), "Task selection policy (ordered, priority)")

	return cmd
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate an instance without balancing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, g, _, err := buildBalancer(balancer.PolicyOrdered)
			if err != nil {
				return err
			}

			fmt.Printf("%s instance %s: %d tasks, %d roots, cycle time %g\n",
				ui.Green("✓"), ui.Bold(in.ID), g.TaskCount(), len(g.Roots), in.CycleTime())
			return nil
		},
	}

	return cmd
}

func vizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viz",
		Short: "Print the operation process chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInstance()
			if err != nil {
				return err
			}
			g, err := graph.Build(in.Tasks)
			if err != nil {
				return fmt.Errorf("build precedence graph: %w", err)
			}

			if flagFormat == "dot" {
				printDOT(in, g)
				return nil
			}

			printASCIIChart(in, g)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", "ascii", "Output format (ascii, dot)")

	return cmd
}

// chartLevels groups tasks by precedence depth: level 0 holds the roots,
// level n the tasks whose predecessors all sit in earlier levels.
func chartLevels(g *graph.PrecedenceGraph) [][]string {
	level := make(map[string]int)
	var depth func(id string) int
	depth = func(id string) int {
		if d, ok := level[id]; ok {
			return d
		}
		d := 0
		for _, pred := range g.RevAdj[id] {
			if pd := depth(pred) + 1; pd > d {
				d = pd
			}
		}
		level[id] = d
		return d
	}

	maxDepth := 0
	for id := range g.Tasks {
		if d := depth(id); d > maxDepth {
			maxDepth = d
		}
	}

	levels := make([][]string, maxDepth+1)
	for id, d := range level {
		levels[d] = append(levels[d], id)
	}
	for i := range levels {
		sort.Strings(levels[i])
	}
	return levels
}

func printASCIIChart(in *instance.Instance, g *graph.PrecedenceGraph) {
	fmt.Printf("%s %s\n", ui.BoldCyan("Operation process chart"), ui.Dim(in.ID))
	fmt.Println(ui.Cyan("═══════════════════════"))
	fmt.Println()

	for i, level := range chartLevels(g) {
		fmt.Printf("%s Level %d %s\n", ui.Cyan("──"), i, ui.Cyan("──────────────────────────────"))
		for _, id := range level {
			t := g.Tasks[id]
			fmt.Printf("  [%s] %s\n", ui.BoldMagenta(id),
				ui.Dim(fmt.Sprintf("m=%g s=%g out=%g", t.Mean, t.Variance, t.OutCost)))
			for _, succ := range g.Adj[id] {
				fmt.Printf("      %s %s\n", ui.Dim("└──→"), ui.Magenta(succ))
			}
		}
		fmt.Println()
	}
}

func printDOT(in *instance.Instance, g *graph.PrecedenceGraph) {
	fmt.Printf("digraph %q {\n", in.ID)
	fmt.Println("  rankdir=LR;")
	fmt.Println("  node [shape=box, style=rounded];")
	fmt.Println()

	ids := make([]string, 0, len(g.Tasks))
	for id := range g.Tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		t := g.Tasks[id]
		fmt.Printf("  %q [label=\"%s\\nm=%g s=%g\"];\n", id, id, t.Mean, t.Variance)
	}

	fmt.Println()

	for _, from := range ids {
		for _, to := range g.Adj[from] {
			fmt.Printf("  %q -> %q;\n", from, to)
		}
	}

	fmt.Println("}")
}
