package solve

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelSolverMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 9))

	for range 5 {
		// Arrange
		problem := GenerateProblem(3, 3, 8, rng)

		// Act
		sequential, err := NewBnbSolver(Options{}).Solve(context.Background(), problem)
		assert.Nil(t, err)
		parallel, err := NewParallelSolver(Options{Workers: 4}).Solve(context.Background(), problem)
		assert.Nil(t, err)

		// Assert: exploration order differs between runs but the optimum does not
		assert.Equal(t, StatusOptimal, sequential.Status)
		assert.Equal(t, StatusOptimal, parallel.Status)
		assert.Equal(t, sequential.Makespan, parallel.Makespan)
		assert.True(t, AssertSolution(problem, parallel.Starts))
		assert.Equal(t, problem.MakespanOf(parallel.Starts), parallel.Makespan)
	}
}

func TestParallelSolverCancellation(t *testing.T) {
	rng := rand.New(rand.NewPCG(8, 2))
	problem := GenerateProblem(6, 6, 9, rng)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := NewParallelSolver(Options{Workers: 4}).Solve(ctx, problem)

	assert.Nil(t, err)
	assert.Equal(t, StatusFeasible, result.Status)
	assert.Equal(t, problem.Horizon, result.Makespan)
	assert.True(t, AssertSolution(problem, result.Starts))
}

func TestParallelSolverSingleWorker(t *testing.T) {
	rng := rand.New(rand.NewPCG(14, 6))
	problem := GenerateProblem(3, 3, 7, rng)

	result, err := NewParallelSolver(Options{Workers: 1}).Solve(context.Background(), problem)

	assert.Nil(t, err)
	assert.Equal(t, StatusOptimal, result.Status)
	assert.True(t, AssertSolution(problem, result.Starts))
}
