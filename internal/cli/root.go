package cli

import (
	"log/slog"
	"os"

	"github.com/me/rrsim/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	client *Client
)

// defaultServer returns the default server URL, checking RRSIM_SERVER env var first.
func defaultServer() string {
	if s := os.Getenv("RRSIM_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// NewRootCmd creates the root cobra command for the rrsim CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rrsim",
		Short: "rrsim: Round Robin CPU scheduling simulator",
		Long: `rrsim simulates Round Robin CPU scheduling over a set of processes and
prints a Gantt chart with per-process waiting and turnaround times.

Simulations run locally with "rrsim run", or on an rrsim server with
"rrsim submit", where they are stored and can be listed and shown later.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flagDebug {
				flagLogLevel = "debug"
			}
			format, err := logging.ParseFormat(flagLogFormat)
			if err != nil {
				return err
			}
			logger = logging.NewLoggerWithWriter(logging.ParseLevel(flagLogLevel), format, cmd.ErrOrStderr())
			client = NewClient(flagServer, logger)
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "rrsim server URL (or RRSIM_SERVER env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json, none)")

	root.AddCommand(
		newRunCmd(),
		newGenerateCmd(),
		newSubmitCmd(),
		newListCmd(),
		newShowCmd(),
		newDeleteCmd(),
	)

	return root
}
