package solve

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// ErrRootInfeasible reports contradictory bounds before any ordering decision
// was made. The base job-shop formulation always admits the serial schedule,
// so this is a propagation bug, never a property of the input.
var ErrRootInfeasible = errors.New("contradictory bounds at the search root")

// Solver assigns start times to a problem's intervals minimizing the makespan.
// A StatusOptimal result means the search space was exhausted; StatusFeasible
// means a cutoff fired first and the best incumbent is returned.
// StatusInfeasible is only ever paired with a non-nil error.
type Solver interface {
	Solve(ctx context.Context, problem Problem) (Result, error)
}

// Options bound and instrument a solve run. The zero value runs a single
// worker to provable optimality without logging.
type Options struct {
	TimeLimit time.Duration // wall-clock cutoff; 0 runs to optimality
	MaxNodes  uint64        // search-node cutoff per worker; 0 means unlimited
	Workers   int           // subtree workers used by the parallel solver
	Logger    *zerolog.Logger
}

func (options Options) normalized() Options {
	if options.Workers < 1 {
		options.Workers = 1
	}
	if options.Logger == nil {
		nop := zerolog.Nop()
		options.Logger = &nop
	}
	return options
}

func NewBnbSolver(options Options) Solver {
	return &bnbSolver{options: options.normalized()}
}

func NewParallelSolver(options Options) Solver {
	return &parallelSolver{options: options.normalized()}
}

func deadlineFor(ctx context.Context, options Options, started time.Time) time.Time {
	deadline := time.Time{}
	if options.TimeLimit > 0 {
		deadline = started.Add(options.TimeLimit)
	}
	if ctxDeadline, ok := ctx.Deadline(); ok && (deadline.IsZero() || ctxDeadline.Before(deadline)) {
		deadline = ctxDeadline
	}
	return deadline
}
