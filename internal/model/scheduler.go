package model

import (
	"context"

	"github.com/limaJavier/jobshop/internal/solve"
)

// Result pairs an extracted schedule with the solve outcome. Status
// distinguishes a provably optimal makespan from the best found before a
// cutoff fired.
type Result struct {
	Status   solve.Status
	Schedule Schedule
	Makespan int
	Stats    solve.Statistics
}

type Scheduler interface {
	Solve(ctx context.Context, instance Instance) (Result, error)

	Verify(schedule Schedule, instance Instance) error
}

func NewScheduler(solver solve.Solver) Scheduler {
	return newBnbScheduler(solver)
}
