package model

import (
	"context"
	"fmt"

	"github.com/limaJavier/jobshop/internal/solve"
)

type bnbScheduler struct {
	//** Dependencies
	solver solve.Solver
}

func newBnbScheduler(solver solve.Solver) *bnbScheduler {
	return &bnbScheduler{solver: solver}
}

func (scheduler *bnbScheduler) Solve(ctx context.Context, instance Instance) (Result, error) {
	//** Lower the instance into the solver's interval arena
	problem, indexer := BuildModel(instance)

	//** Run the branch-and-bound search
	solved, err := scheduler.solver.Solve(ctx, problem)
	if err != nil {
		return Result{Status: solved.Status}, err
	}

	//** Extract and defensively verify the winning assignment
	schedule := buildSchedule(instance, indexer, solved.Starts)
	if err := verify(schedule, instance); err != nil {
		return Result{}, fmt.Errorf("extracted schedule failed verification: %w", err)
	}
	if actual := schedule.Makespan(); actual != solved.Makespan {
		return Result{}, fmt.Errorf("reported makespan %d does not match the schedule's last end %d", solved.Makespan, actual)
	}

	return Result{
		Status:   solved.Status,
		Schedule: schedule,
		Makespan: solved.Makespan,
		Stats:    solved.Stats,
	}, nil
}

func (scheduler *bnbScheduler) Verify(schedule Schedule, instance Instance) error {
	return verify(schedule, instance)
}
