package scheduler

import (
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/me/rrsim/pkg/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// occupants renders a timeline as "P<n>" / "-" labels.
func occupants(tl []model.TimelineEntry) []string {
	out := make([]string, len(tl))
	for i, e := range tl {
		if e.Idle {
			out[i] = "-"
			continue
		}
		out[i] = (&model.Process{ID: e.PID}).Label()
	}
	return out
}

func completedIDs(ps []*model.Process) []int {
	ids := make([]int, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}

func TestSimulate_ThreeProcesses(t *testing.T) {
	p1 := model.NewProcess(1, 0, 5)
	p2 := model.NewProcess(2, 1, 3)
	p3 := model.NewProcess(3, 2, 1)

	rr := NewRoundRobin(Config{TimeQuantum: 3, MaxTime: 20}, testLogger())
	res, err := rr.Simulate([]*model.Process{p1, p2, p3})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	wantTimeline := []string{"P1", "P1", "P1", "P2", "P2", "P2", "P3", "P1", "P1"}
	if diff := cmp.Diff(wantTimeline, occupants(res.Timeline)); diff != "" {
		t.Errorf("timeline mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 3, 1}, completedIDs(res.Completed)); diff != "" {
		t.Errorf("completion order mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		p                         *model.Process
		start, completion, tat, w int
	}{
		{p1, 0, 9, 9, 4},
		{p2, 3, 6, 5, 2},
		{p3, 6, 7, 5, 4},
	}
	for _, tt := range tests {
		if *tt.p.StartTime != tt.start {
			t.Errorf("%s StartTime = %d, want %d", tt.p.Label(), *tt.p.StartTime, tt.start)
		}
		if *tt.p.CompletionTime != tt.completion {
			t.Errorf("%s CompletionTime = %d, want %d", tt.p.Label(), *tt.p.CompletionTime, tt.completion)
		}
		if tat, _ := tt.p.TurnaroundTime(); tat != tt.tat {
			t.Errorf("%s TurnaroundTime = %d, want %d", tt.p.Label(), tat, tt.tat)
		}
		if w, _ := tt.p.WaitingTime(); w != tt.w {
			t.Errorf("%s WaitingTime = %d, want %d", tt.p.Label(), w, tt.w)
		}
		if tt.p.RemainingTime != 0 {
			t.Errorf("%s RemainingTime = %d, want 0", tt.p.Label(), tt.p.RemainingTime)
		}
	}
}

func TestSimulate_InputOrderDoesNotMatter(t *testing.T) {
	res, err := Simulate([]*model.Process{
		model.NewProcess(3, 2, 1),
		model.NewProcess(1, 0, 5),
		model.NewProcess(2, 1, 3),
	}, 3, 20)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	want := []string{"P1", "P1", "P1", "P2", "P2", "P2", "P3", "P1", "P1"}
	if diff := cmp.Diff(want, occupants(res.Timeline)); diff != "" {
		t.Errorf("timeline mismatch (-want +got):\n%s", diff)
	}
}

func TestSimulate_StableOnEqualArrival(t *testing.T) {
	res, err := Simulate([]*model.Process{
		model.NewProcess(7, 0, 2),
		model.NewProcess(4, 0, 2),
		model.NewProcess(9, 0, 2),
	}, 1, 20)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	want := []string{"P7", "P4", "P9", "P7", "P4", "P9"}
	if diff := cmp.Diff(want, occupants(res.Timeline)); diff != "" {
		t.Errorf("timeline mismatch (-want +got):\n%s", diff)
	}
}

// A process preempted at the end of unit t queues behind processes that
// arrived at or before t, and ahead of those arriving at t+1.
func TestSimulate_PreemptionQueuesAfterSameUnitArrivals(t *testing.T) {
	res, err := Simulate([]*model.Process{
		model.NewProcess(1, 0, 4),
		model.NewProcess(2, 1, 1), // arrives inside P1's slice
		model.NewProcess(3, 2, 1), // arrives at P1's final slice unit
		model.NewProcess(4, 3, 1), // arrives right after P1 is preempted
	}, 3, 20)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	want := []string{"P1", "P1", "P1", "P2", "P3", "P1", "P4"}
	if diff := cmp.Diff(want, occupants(res.Timeline)); diff != "" {
		t.Errorf("timeline mismatch (-want +got):\n%s", diff)
	}
}

func TestSimulate_IdleGaps(t *testing.T) {
	res, err := Simulate([]*model.Process{
		model.NewProcess(1, 2, 1),
		model.NewProcess(2, 5, 2),
	}, 2, 20)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	want := []string{"-", "-", "P1", "-", "-", "P2", "P2"}
	if diff := cmp.Diff(want, occupants(res.Timeline)); diff != "" {
		t.Errorf("timeline mismatch (-want +got):\n%s", diff)
	}
	if res.Elapsed() != 7 {
		t.Errorf("Elapsed = %d, want 7", res.Elapsed())
	}
}

func TestSimulate_ArrivalAfterMaxTime(t *testing.T) {
	p := model.NewProcess(1, 30, 2)
	res, err := Simulate([]*model.Process{p}, 3, 20)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(res.Completed) != 0 {
		t.Errorf("Completed = %v, want empty", completedIDs(res.Completed))
	}
	if len(res.Timeline) != 20 {
		t.Fatalf("timeline length = %d, want 20", len(res.Timeline))
	}
	for _, e := range res.Timeline {
		if !e.Idle {
			t.Fatalf("unit %d not idle: %+v", e.Time, e)
		}
	}
	if p.Started() || p.Completed() || p.RemainingTime != 2 {
		t.Errorf("unarrived process was mutated: %+v", p)
	}
}

func TestSimulate_CutOffLeavesPartialState(t *testing.T) {
	p1 := model.NewProcess(1, 0, 10)
	p2 := model.NewProcess(2, 0, 1)
	res, err := Simulate([]*model.Process{p1, p2}, 2, 5)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	// P1 P1 P2 P1 P1
	if diff := cmp.Diff([]int{2}, completedIDs(res.Completed)); diff != "" {
		t.Errorf("completed mismatch (-want +got):\n%s", diff)
	}
	if p1.Completed() {
		t.Error("P1 should not complete")
	}
	if !p1.Started() || *p1.StartTime != 0 {
		t.Errorf("P1 StartTime = %v, want 0", p1.StartTime)
	}
	if p1.RemainingTime != 6 {
		t.Errorf("P1 RemainingTime = %d, want 6", p1.RemainingTime)
	}
	if res.Elapsed() != 5 {
		t.Errorf("Elapsed = %d, want 5", res.Elapsed())
	}
}

func TestSimulate_Empty(t *testing.T) {
	res, err := Simulate(nil, 3, 20)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(res.Timeline) != 0 || len(res.Completed) != 0 {
		t.Errorf("got timeline=%d completed=%d, want both empty", len(res.Timeline), len(res.Completed))
	}
}

func TestSimulate_SkipsAlreadyCompleted(t *testing.T) {
	done := model.NewProcess(1, 0, 2)
	done.RemainingTime = 0
	done.MarkStarted(0)
	done.MarkCompleted(2)
	res, err := Simulate([]*model.Process{done, model.NewProcess(2, 0, 1)}, 3, 10)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if diff := cmp.Diff([]string{"P2"}, occupants(res.Timeline)); diff != "" {
		t.Errorf("timeline mismatch (-want +got):\n%s", diff)
	}
}

func TestSimulate_InvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"zero quantum", Config{TimeQuantum: 0, MaxTime: 10}, "time_quantum"},
		{"negative quantum", Config{TimeQuantum: -2, MaxTime: 10}, "time_quantum"},
		{"zero max time", Config{TimeQuantum: 1, MaxTime: 0}, "max_time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.NewProcess(1, 0, 3)
			res, err := NewRoundRobin(tt.cfg, nil).Simulate([]*model.Process{p})
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) || ce.Field != tt.field {
				t.Errorf("ConfigError field = %v, want %s", ce, tt.field)
			}
			if res != nil {
				t.Error("result should be nil on config error")
			}
			if p.Started() || p.RemainingTime != 3 {
				t.Error("process mutated despite invalid config")
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if diff := cmp.Diff(Config{TimeQuantum: 3, MaxTime: 50}, NewRoundRobin(cfg, nil).Config()); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func randomWorkload(r *rand.Rand, n int) []*model.Process {
	ps := make([]*model.Process, n)
	for i := range ps {
		ps[i] = model.NewProcess(i+1, r.IntN(15), 1+r.IntN(9))
	}
	return ps
}

func TestSimulate_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for iter := 0; iter < 200; iter++ {
		n := r.IntN(8)
		quantum := 1 + r.IntN(5)
		maxTime := 1 + r.IntN(60)
		procs := randomWorkload(r, n)
		twin := model.CloneAll(procs)

		res, err := Simulate(procs, quantum, maxTime)
		if err != nil {
			t.Fatalf("Simulate: %v", err)
		}

		// Timeline completeness and bound.
		if len(res.Timeline) > maxTime {
			t.Fatalf("timeline length %d exceeds max time %d", len(res.Timeline), maxTime)
		}
		for i, e := range res.Timeline {
			if e.Time != i {
				t.Fatalf("timeline[%d].Time = %d", i, e.Time)
			}
		}

		// Quantum bound: a run longer than the quantum means the process was
		// preempted and immediately re-dispatched, which is only possible when
		// nothing that arrived earlier was still waiting.
		units := map[int]int{}
		streak := 0
		for i, e := range res.Timeline {
			if e.Idle {
				streak = 0
				continue
			}
			units[e.PID]++
			if i > 0 && !res.Timeline[i-1].Idle && res.Timeline[i-1].PID == e.PID {
				streak++
			} else {
				streak = 1
			}
			if streak > quantum && streak%quantum == 1 {
				for _, p := range procs {
					if p.ID != e.PID && p.ArrivalTime < i && (p.CompletionTime == nil || *p.CompletionTime > i) {
						t.Fatalf("iter %d: P%d kept the CPU past its quantum at t=%d while P%d waited", iter, e.PID, i, p.ID)
					}
				}
			}
		}

		// Conservation and non-negativity.
		for _, p := range res.Completed {
			if units[p.ID] != p.BurstTime {
				t.Errorf("P%d ran %d units, burst %d", p.ID, units[p.ID], p.BurstTime)
			}
			if *p.CompletionTime-*p.StartTime < p.BurstTime {
				t.Errorf("P%d completion-start < burst", p.ID)
			}
			w, _ := p.WaitingTime()
			tat, _ := p.TurnaroundTime()
			if w < 0 || tat < p.BurstTime {
				t.Errorf("P%d waiting=%d turnaround=%d burst=%d", p.ID, w, tat, p.BurstTime)
			}
		}
		for _, p := range procs {
			if p.RemainingTime < 0 || p.RemainingTime > p.BurstTime {
				t.Errorf("P%d RemainingTime %d out of range", p.ID, p.RemainingTime)
			}
		}

		// Determinism.
		again, err := Simulate(twin, quantum, maxTime)
		if err != nil {
			t.Fatalf("Simulate twin: %v", err)
		}
		if diff := cmp.Diff(res.Timeline, again.Timeline); diff != "" {
			t.Fatalf("iter %d: timelines differ (-first +second):\n%s", iter, diff)
		}
		if diff := cmp.Diff(res.Completed, again.Completed); diff != "" {
			t.Fatalf("iter %d: completed differ (-first +second):\n%s", iter, diff)
		}
	}
}
