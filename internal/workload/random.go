package workload

import (
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/me/rrsim/pkg/model"
)

// RandomParams bounds a randomly generated process set.
type RandomParams struct {
	Count      int `json:"count"`
	MaxArrival int `json:"max_arrival"`
	MinBurst   int `json:"min_burst"`
	MaxBurst   int `json:"max_burst"`
}

// MaxRandomValue bounds max_arrival and max_burst so the generator's
// half-open ranges cannot overflow.
const MaxRandomValue = math.MaxInt32

var maxRandomMessage = "must be <= " + strconv.Itoa(MaxRandomValue)

// DefaultRandomParams returns sensible defaults.
func DefaultRandomParams() RandomParams {
	return RandomParams{Count: 5, MaxArrival: 10, MinBurst: 2, MaxBurst: 8}
}

// Validate checks the bounds.
func (p RandomParams) Validate() error {
	var errs []model.FieldError
	if p.Count < 1 {
		errs = append(errs, model.FieldError{Field: "count", Message: "must be >= 1"})
	}
	if p.MaxArrival < 0 {
		errs = append(errs, model.FieldError{Field: "max_arrival", Message: "must be >= 0"})
	}
	if p.MaxArrival > MaxRandomValue {
		errs = append(errs, model.FieldError{Field: "max_arrival", Message: maxRandomMessage})
	}
	if p.MinBurst < 1 {
		errs = append(errs, model.FieldError{Field: "min_burst", Message: "must be >= 1"})
	}
	if p.MaxBurst < p.MinBurst {
		errs = append(errs, model.FieldError{Field: "max_burst", Message: "must be >= min_burst"})
	}
	if p.MaxBurst > MaxRandomValue {
		errs = append(errs, model.FieldError{Field: "max_burst", Message: maxRandomMessage})
	}
	if len(errs) > 0 {
		return model.NewValidationError("invalid random workload parameters", errs...)
	}
	return nil
}

// NewRand returns a generator seeded with seed, so equal seeds give equal
// workloads.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Random generates Count processes with ids 1..Count, arrival times uniform
// in [0, MaxArrival] and burst times uniform in [MinBurst, MaxBurst].
func Random(r *rand.Rand, p RandomParams) ([]*model.Process, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	procs := make([]*model.Process, p.Count)
	for i := range procs {
		arrival := r.IntN(p.MaxArrival + 1)
		burst := p.MinBurst + r.IntN(p.MaxBurst-p.MinBurst+1)
		procs[i] = model.NewProcess(i+1, arrival, burst)
	}
	return procs, nil
}
