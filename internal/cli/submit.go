package cli

import (
	"encoding/json"
	"fmt"

	"github.com/me/rrsim/internal/workload"
	"github.com/spf13/cobra"
)

// runSummary is the subset of a run the CLI prints.
type runSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TimeQuantum int    `json:"time_quantum"`
	MaxTime     int    `json:"max_time"`
	Completed   []int  `json:"completed"`
	Summary     struct {
		ProcessCount      int     `json:"process_count"`
		CompletedCount    int     `json:"completed_count"`
		AvgWaitingTime    float64 `json:"avg_waiting_time"`
		AvgTurnaroundTime float64 `json:"avg_turnaround_time"`
		TotalTime         int     `json:"total_time"`
		CutOff            bool    `json:"cut_off"`
	} `json:"summary"`
	CreatedAt string `json:"created_at"`
}

func newSubmitCmd() *cobra.Command {
	var (
		quantum int
		maxTime int
		dryRun  bool
		show    bool
	)

	cmd := &cobra.Command{
		Use:   "submit <workload-file>",
		Short: "Run a workload file on the server",
		Long: `Submit a workload file (.yaml, .yml, .json or .hcl) to an rrsim server.
The server simulates it, stores the run and returns its id. With
--dry-run the run is simulated but not stored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wl, err := workload.Load(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("quantum") {
				wl.TimeQuantum = quantum
			}
			if cmd.Flags().Changed("max-time") {
				wl.MaxTime = maxTime
			}

			logger.Debug("submitting workload", "workload", wl.String())

			path := "/api/v1/simulations/"
			if dryRun {
				path += "?dry_run=true"
			}
			resp, err := client.Post(path, wl)
			if err != nil {
				return fmt.Errorf("submit workload: %w", err)
			}

			var run runSummary
			if err := json.Unmarshal(resp.Data, &run); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintln(out, "Dry-run: simulation succeeded. No run stored.")
			} else {
				fmt.Fprintf(out, "Run created: %s\n", run.ID)
			}
			fmt.Fprintf(out, "  Quantum:   %d\n", run.TimeQuantum)
			fmt.Fprintf(out, "  Completed: %d of %d processes in %d units\n",
				run.Summary.CompletedCount, run.Summary.ProcessCount, run.Summary.TotalTime)
			if run.Summary.CompletedCount > 0 {
				fmt.Fprintf(out, "  Avg wait:  %.2f\n", run.Summary.AvgWaitingTime)
				fmt.Fprintf(out, "  Avg TAT:   %.2f\n", run.Summary.AvgTurnaroundTime)
			}
			if run.Summary.CutOff {
				fmt.Fprintf(out, "  Cut off at max_time %d\n", run.MaxTime)
			}

			if show && !dryRun {
				text, err := client.GetText("/api/v1/simulations/" + run.ID + "/gantt")
				if err != nil {
					return fmt.Errorf("get chart: %w", err)
				}
				fmt.Fprint(out, text)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&quantum, "quantum", "q", 0, "Override the file's time quantum")
	cmd.Flags().IntVar(&maxTime, "max-time", 0, "Override the file's time bound")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Simulate without storing the run")
	cmd.Flags().BoolVar(&show, "show", false, "Print the Gantt chart after submitting")

	return cmd
}
