package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/me/rrsim/internal/report"
	"github.com/me/rrsim/internal/scheduler"
	"github.com/me/rrsim/internal/simulation"
	"github.com/me/rrsim/internal/store"
	"github.com/me/rrsim/internal/workload"
	"github.com/me/rrsim/pkg/model"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var (
		file        string
		interactive bool
		random      bool
		rnd         randomFlags
		quantum     int
		maxTime     int
		dbPath      string
		compact     bool
		all         bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate Round Robin scheduling locally",
		Long: `Simulate Round Robin scheduling on this machine and print the Gantt chart,
the table of completed processes and the average waiting and turnaround
times.

The process set comes from exactly one of --file (YAML, JSON or HCL),
--random or --interactive. Without any of them the processes are read
interactively from stdin.

A workload file may set time_quantum and max_time; --quantum and
--max-time override it when given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := 0
			for _, on := range []bool{file != "", interactive, random} {
				if on {
					sources++
				}
			}
			if sources > 1 {
				return errors.New("choose only one of --file, --random or --interactive")
			}

			out := cmd.OutOrStdout()
			req := simulation.Request{TimeQuantum: quantum, MaxTime: maxTime}

			switch {
			case file != "":
				wl, err := workload.Load(file)
				if err != nil {
					return err
				}
				procs, err := wl.Build()
				if err != nil {
					return fmt.Errorf("workload %s: %w", file, err)
				}
				req.Name = wl.Name
				req.Processes = procs
				if wl.TimeQuantum != 0 && !cmd.Flags().Changed("quantum") {
					req.TimeQuantum = wl.TimeQuantum
				}
				if wl.MaxTime != 0 && !cmd.Flags().Changed("max-time") {
					req.MaxTime = wl.MaxTime
				}
				if req.Name == "" {
					req.Name = filepath.Base(file)
				}
			case random:
				procs, seed, err := rnd.generate(cmd)
				if err != nil {
					return err
				}
				req.Name = fmt.Sprintf("random-%d", seed)
				req.Processes = procs
				fmt.Fprintf(out, "Generated %d processes (seed %d)\n", len(procs), seed)
				report.ProcessTable(out, procs)
			default:
				procs, err := workload.NewPrompter(cmd.InOrStdin(), out).Processes()
				if err != nil {
					return fmt.Errorf("read processes: %w", err)
				}
				req.Name = "interactive"
				req.Processes = procs
			}

			res, err := simulation.Execute(req, logger)
			if err != nil {
				return err
			}
			if err := printRun(out, res, compact, all); err != nil {
				return err
			}

			if dbPath != "" {
				if err := saveRun(cmd.Context(), dbPath, res.Run); err != nil {
					return err
				}
				fmt.Fprintf(out, "Saved run %s to %s\n", res.Run.ID, dbPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Workload file (.yaml, .yml, .json, .hcl)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Enter processes interactively")
	cmd.Flags().BoolVarP(&random, "random", "r", false, "Generate a random process set")
	rnd.register(cmd)
	defaults := scheduler.DefaultConfig()
	cmd.Flags().IntVarP(&quantum, "quantum", "q", defaults.TimeQuantum, "Time quantum")
	cmd.Flags().IntVar(&maxTime, "max-time", defaults.MaxTime, "Simulation time bound")
	cmd.Flags().StringVar(&dbPath, "db", "", "Also store the run in this SQLite database")
	cmd.Flags().BoolVar(&compact, "compact", false, "Merge consecutive units in the Gantt chart")
	cmd.Flags().BoolVar(&all, "all", false, "List unfinished processes in the table too")

	return cmd
}

// printRun writes the chart, the process table and the averages.
func printRun(w io.Writer, res *simulation.Outcome, compact, all bool) error {
	run := res.Run
	if compact {
		fmt.Fprintln(w)
		if err := report.CompactGantt(w, run.Timeline); err != nil {
			return err
		}
		fmt.Fprintln(w)
	} else if err := report.Gantt(w, run.Timeline); err != nil {
		return err
	}

	rows := res.Result.Completed
	if all {
		rows = run.Processes
	}
	if len(rows) > 0 {
		report.ProcessTable(w, rows)
	}
	return report.Averages(w, run.Summary)
}

// saveRun stores run in the SQLite database at path, creating it if needed.
func saveRun(ctx context.Context, path string, run *model.Run) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if dir := filepath.Dir(path); path != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}
	st, err := store.NewSQLiteStore(path, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate store: %w", err)
	}
	if err := st.CreateRun(ctx, run); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}
