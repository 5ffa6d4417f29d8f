// Package report renders simulation results for terminals and plain-text
// API responses: a Gantt chart, a per-process table and average times.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/me/rrsim/pkg/model"
	"github.com/olekukonko/tablewriter"
)

const idleLabel = "ID"

// Blocks merges consecutive timeline units with the same occupant.
func Blocks(timeline []model.TimelineEntry) []model.Block {
	var blocks []model.Block
	for _, e := range timeline {
		if n := len(blocks); n > 0 {
			last := &blocks[n-1]
			if last.Idle == e.Idle && last.PID == e.PID && last.End == e.Time {
				last.End = e.Time + 1
				continue
			}
		}
		blocks = append(blocks, model.Block{PID: e.PID, Idle: e.Idle, Start: e.Time, End: e.Time + 1})
	}
	return blocks
}

func cellLabel(e model.TimelineEntry) string {
	if e.Idle {
		return idleLabel
	}
	return "P" + strconv.Itoa(e.PID)
}

// Gantt writes one fixed-width cell per time unit followed by a ruler of
// time markers, e.g.
//
//	|P1 |P1 |ID |
//	   0   1   2   3
func Gantt(w io.Writer, timeline []model.TimelineEntry) error {
	var b strings.Builder
	b.WriteString("\n--- CPU Timeline (Gantt Style) ---\n")
	if len(timeline) == 0 {
		b.WriteString("(empty timeline: nothing was simulated)\n")
	} else {
		for _, e := range timeline {
			fmt.Fprintf(&b, "|%s", center(cellLabel(e), 3))
		}
		b.WriteString("|\n")
		for _, e := range timeline {
			fmt.Fprintf(&b, "%4d", e.Time)
		}
		fmt.Fprintf(&b, "%4d\n", timeline[len(timeline)-1].Time+1)
	}
	b.WriteString("----------------------------------\n\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// CompactGantt writes one cell per block rather than per unit, with block
// boundaries on the ruler. Long runs stay readable.
func CompactGantt(w io.Writer, timeline []model.TimelineEntry) error {
	blocks := Blocks(timeline)
	if len(blocks) == 0 {
		_, err := io.WriteString(w, "(empty timeline)\n")
		return err
	}
	var bar, ruler strings.Builder
	for _, blk := range blocks {
		label := idleLabel
		if !blk.Idle {
			label = "P" + strconv.Itoa(blk.PID)
		}
		width := max(len(label)+2, 2*blk.Len())
		fmt.Fprintf(&bar, "|%s", center(label, width))
		start := strconv.Itoa(blk.Start)
		fmt.Fprintf(&ruler, "%-*s", width+1, start)
	}
	bar.WriteString("|\n")
	ruler.WriteString(strconv.Itoa(blocks[len(blocks)-1].End))
	ruler.WriteString("\n")
	_, err := io.WriteString(w, bar.String()+ruler.String())
	return err
}

// center pads s with spaces to width, extra space on the right.
func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}

func optional(v int, ok bool) string {
	if !ok {
		return "-"
	}
	return strconv.Itoa(v)
}

func ptr(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

// ProcessTable writes one row per process. Values that are undefined for
// unfinished processes are shown as "-".
func ProcessTable(w io.Writer, processes []*model.Process) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Arrival", "Burst", "Start", "Completion", "Turnaround", "Waiting", "State"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, p := range processes {
		tat, tatOK := p.TurnaroundTime()
		wt, wtOK := p.WaitingTime()
		table.Append([]string{
			p.Label(),
			strconv.Itoa(p.ArrivalTime),
			strconv.Itoa(p.BurstTime),
			ptr(p.StartTime),
			ptr(p.CompletionTime),
			optional(tat, tatOK),
			optional(wt, wtOK),
			p.State().String(),
		})
	}
	table.Render()
}

// Summarize computes averages over the completed processes only.
func Summarize(all, completed []*model.Process, timeline []model.TimelineEntry) model.Summary {
	s := model.Summary{
		ProcessCount:   len(all),
		CompletedCount: len(completed),
		TotalTime:      len(timeline),
		CutOff:         len(completed) < len(all),
	}
	if len(completed) == 0 {
		return s
	}
	var waiting, turnaround int
	for _, p := range completed {
		wt, _ := p.WaitingTime()
		tat, _ := p.TurnaroundTime()
		waiting += wt
		turnaround += tat
	}
	n := float64(len(completed))
	s.AvgWaitingTime = float64(waiting) / n
	s.AvgTurnaroundTime = float64(turnaround) / n
	return s
}

// Averages writes the aggregate statistics. A run with no completions is
// reported as such rather than as zero averages, and processes left
// unfinished at the time bound are called out separately.
func Averages(w io.Writer, s model.Summary) error {
	var b strings.Builder
	if !s.HasCompletions() {
		b.WriteString("No process completed in given simulation time.\n")
	} else {
		fmt.Fprintf(&b, "\nNumber of completed processes : %d\n", s.CompletedCount)
		fmt.Fprintf(&b, "Average Waiting Time          : %.2f\n", s.AvgWaitingTime)
		fmt.Fprintf(&b, "Average Turnaround Time       : %.2f\n", s.AvgTurnaroundTime)
	}
	if s.CutOff {
		fmt.Fprintf(&b, "Simulation stopped at t=%d with %d of %d processes unfinished.\n",
			s.TotalTime, s.ProcessCount-s.CompletedCount, s.ProcessCount)
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// Full writes the Gantt chart, the table of completed processes and the
// averages, in that order.
func Full(w io.Writer, timeline []model.TimelineEntry, completed []*model.Process, s model.Summary) error {
	if err := Gantt(w, timeline); err != nil {
		return err
	}
	if len(completed) > 0 {
		ProcessTable(w, completed)
	}
	return Averages(w, s)
}
