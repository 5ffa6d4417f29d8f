package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		limit, offset int
		name          string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("limit", strconv.Itoa(limit))
			q.Set("offset", strconv.Itoa(offset))
			if name != "" {
				q.Set("name", name)
			}
			resp, err := client.Get("/api/v1/simulations/?" + q.Encode())
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}

			var data []runSummary
			if err := json.Unmarshal(resp.Data, &data); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(data) == 0 {
				fmt.Fprintln(out, "No runs found.")
				return nil
			}

			fmt.Fprintf(out, "%-40s  %-20s  %-4s  %-9s  %-8s  %s\n", "ID", "NAME", "Q", "DONE", "AVG WAIT", "CREATED")
			fmt.Fprintf(out, "%-40s  %-20s  %-4s  %-9s  %-8s  %s\n", "--", "----", "-", "----", "--------", "-------")
			for _, run := range data {
				done := fmt.Sprintf("%d/%d", run.Summary.CompletedCount, run.Summary.ProcessCount)
				avg := "-"
				if run.Summary.CompletedCount > 0 {
					avg = fmt.Sprintf("%.2f", run.Summary.AvgWaitingTime)
				}
				fmt.Fprintf(out, "%-40s  %-20s  %-4d  %-9s  %-8s  %s\n",
					run.ID, truncate(run.Name, 20), run.TimeQuantum, done, avg, created(run.CreatedAt))
			}

			if resp.Pagination != nil && resp.Pagination.HasMore {
				fmt.Fprintf(out, "\n(%d of %d shown)\n", len(data), resp.Pagination.Total)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to show")
	cmd.Flags().IntVar(&offset, "offset", 0, "Runs to skip")
	cmd.Flags().StringVar(&name, "name", "", "Only runs whose name contains this text")

	return cmd
}

// created renders an RFC3339 timestamp relative to now, e.g. "3 minutes ago".
func created(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return humanize.Time(t)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
