package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	var compact, all bool

	cmd := &cobra.Command{
		Use:   "show <run_id>",
		Short: "Print a stored run's Gantt chart and statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if compact {
				q.Set("compact", "true")
			}
			if all {
				q.Set("all", "true")
			}
			path := "/api/v1/simulations/" + url.PathEscape(args[0]) + "/gantt"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			text, err := client.GetText(path)
			if err != nil {
				return fmt.Errorf("get run: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Run: %s\n", args[0])
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "Merge consecutive units in the Gantt chart")
	cmd.Flags().BoolVar(&all, "all", false, "List unfinished processes in the table too")

	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run_id>",
		Short: "Delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := client.Delete("/api/v1/simulations/" + url.PathEscape(args[0])); err != nil {
				return fmt.Errorf("delete run: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", args[0])
			return nil
		},
	}
}
