package cli

import (
	"fmt"
	"os"

	"github.com/me/rrsim/internal/workload"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var (
		rnd     randomFlags
		name    string
		outPath string
		quantum int
		maxTime int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random workload file",
		Long: `Generate a random process set and write it as a YAML workload file,
ready for "rrsim run --file" or "rrsim submit". The seed is recorded in
the workload name so the set can be regenerated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			procs, seed, err := rnd.generate(cmd)
			if err != nil {
				return err
			}
			if name == "" {
				name = fmt.Sprintf("random-%d", seed)
			}
			wl := workload.FromProcesses(name, procs)
			wl.TimeQuantum = quantum
			wl.MaxTime = maxTime

			data, err := workload.EncodeYAML(wl)
			if err != nil {
				return err
			}

			if outPath == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("write workload: %w", err)
			}
			logger.Info("workload written", "path", outPath, "workload", wl.String(), "seed", seed)
			return nil
		},
	}

	rnd.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "Workload name (default: random-<seed>)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default: stdout)")
	cmd.Flags().IntVarP(&quantum, "quantum", "q", 0, "Time quantum to record in the file (0 leaves it unset)")
	cmd.Flags().IntVar(&maxTime, "max-time", 0, "Time bound to record in the file (0 leaves it unset)")

	return cmd
}
