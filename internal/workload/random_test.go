package workload

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/me/rrsim/pkg/model"
)

func TestRandom_Bounds(t *testing.T) {
	params := RandomParams{Count: 50, MaxArrival: 4, MinBurst: 2, MaxBurst: 3}
	procs, err := Random(NewRand(7), params)
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	if len(procs) != 50 {
		t.Fatalf("len = %d, want 50", len(procs))
	}
	for i, p := range procs {
		if p.ID != i+1 {
			t.Errorf("procs[%d].ID = %d", i, p.ID)
		}
		if p.ArrivalTime < 0 || p.ArrivalTime > 4 {
			t.Errorf("P%d arrival %d out of [0,4]", p.ID, p.ArrivalTime)
		}
		if p.BurstTime < 2 || p.BurstTime > 3 {
			t.Errorf("P%d burst %d out of [2,3]", p.ID, p.BurstTime)
		}
		if p.RemainingTime != p.BurstTime {
			t.Errorf("P%d remaining %d != burst %d", p.ID, p.RemainingTime, p.BurstTime)
		}
	}
}

func TestRandom_SeedIsReproducible(t *testing.T) {
	a, _ := Random(NewRand(42), DefaultRandomParams())
	b, _ := Random(NewRand(42), DefaultRandomParams())
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different workloads (-a +b):\n%s", diff)
	}
}

func TestRandom_FixedBurst(t *testing.T) {
	procs, err := Random(NewRand(1), RandomParams{Count: 3, MaxArrival: 0, MinBurst: 4, MaxBurst: 4})
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	for _, p := range procs {
		if p.ArrivalTime != 0 || p.BurstTime != 4 {
			t.Errorf("P%d = (%d,%d), want (0,4)", p.ID, p.ArrivalTime, p.BurstTime)
		}
	}
}

func TestRandomParams_Validate(t *testing.T) {
	tests := []struct {
		name   string
		params RandomParams
		field  string
	}{
		{"zero count", RandomParams{Count: 0, MinBurst: 1, MaxBurst: 1}, "count"},
		{"negative arrival", RandomParams{Count: 1, MaxArrival: -1, MinBurst: 1, MaxBurst: 1}, "max_arrival"},
		{"zero min burst", RandomParams{Count: 1, MinBurst: 0, MaxBurst: 1}, "min_burst"},
		{"inverted burst", RandomParams{Count: 1, MinBurst: 5, MaxBurst: 2}, "max_burst"},
		{"arrival at int max", RandomParams{Count: 1, MaxArrival: math.MaxInt, MinBurst: 1, MaxBurst: 1}, "max_arrival"},
		{"arrival over bound", RandomParams{Count: 1, MaxArrival: MaxRandomValue + 1, MinBurst: 1, MaxBurst: 1}, "max_arrival"},
		{"burst at int max", RandomParams{Count: 1, MinBurst: 1, MaxBurst: math.MaxInt}, "max_burst"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Random(NewRand(1), tt.params)
			var apiErr *model.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *model.APIError", err)
			}
			if apiErr.Details[0].Field != tt.field {
				t.Errorf("field = %q, want %q", apiErr.Details[0].Field, tt.field)
			}
		})
	}
}

func TestRandom_LargestBounds(t *testing.T) {
	params := RandomParams{Count: 3, MaxArrival: MaxRandomValue, MinBurst: MaxRandomValue, MaxBurst: MaxRandomValue}
	procs, err := Random(NewRand(3), params)
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	for _, p := range procs {
		if p.ArrivalTime < 0 || p.ArrivalTime > MaxRandomValue || p.BurstTime != MaxRandomValue {
			t.Errorf("P%d = (%d,%d) out of bounds", p.ID, p.ArrivalTime, p.BurstTime)
		}
	}
}
