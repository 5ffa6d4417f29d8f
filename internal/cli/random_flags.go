package cli

import (
	"time"

	"github.com/me/rrsim/internal/workload"
	"github.com/me/rrsim/pkg/model"
	"github.com/spf13/cobra"
)

// randomFlags binds the random generator parameters shared by run and
// generate.
type randomFlags struct {
	params workload.RandomParams
	seed   uint64
}

func (f *randomFlags) register(cmd *cobra.Command) {
	d := workload.DefaultRandomParams()
	cmd.Flags().IntVar(&f.params.Count, "count", d.Count, "Number of random processes")
	cmd.Flags().IntVar(&f.params.MaxArrival, "max-arrival", d.MaxArrival, "Largest random arrival time")
	cmd.Flags().IntVar(&f.params.MinBurst, "min-burst", d.MinBurst, "Smallest random burst time")
	cmd.Flags().IntVar(&f.params.MaxBurst, "max-burst", d.MaxBurst, "Largest random burst time")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Random seed (default: derived from the clock)")
}

// generate returns the process set and the seed that produced it.
func (f *randomFlags) generate(cmd *cobra.Command) ([]*model.Process, uint64, error) {
	seed := f.seed
	if !cmd.Flags().Changed("seed") {
		seed = uint64(time.Now().UnixNano())
	}
	procs, err := workload.Random(workload.NewRand(seed), f.params)
	return procs, seed, err
}
