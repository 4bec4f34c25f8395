package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/limaJavier/jobshop/internal/solve"
)

func TestBuildModel(t *testing.T) {
	// Arrange
	instance, err := NewInstance([][]Task{
		{{Machine: 0, Duration: 3}, {Machine: 1, Duration: 2}},
		{{Machine: 1, Duration: 4}, {Machine: 0, Duration: 1}, {Machine: 2, Duration: 2}},
	})
	assert.Nil(t, err)

	// Act
	problem, indexer := BuildModel(instance)

	// Assert
	assert.Nil(t, problem.Validate())
	assert.Equal(t, 5, len(problem.Intervals))
	assert.Equal(t, instance.Horizon, problem.Horizon)
	assert.Equal(t, [][]int32{{0, 3}, {1, 2}, {4}}, problem.Machines)

	// Job links follow the arena's job-major layout
	assert.Equal(t, int32(1), problem.Intervals[0].Next)
	assert.Equal(t, int32(-1), problem.Intervals[1].Next)
	assert.Equal(t, int32(-1), problem.Intervals[2].Prev)
	assert.Equal(t, int32(3), problem.Intervals[2].Next)
	assert.Equal(t, int32(2), problem.Intervals[3].Prev)

	// Indexer matches the arena positions
	for jobId, job := range instance.Jobs {
		for taskId, task := range job {
			interval := problem.Intervals[indexer.Index(jobId, taskId)]
			assert.Equal(t, int32(jobId), interval.Job)
			assert.Equal(t, int32(taskId), interval.Task)
			assert.Equal(t, int32(task.Machine), interval.Machine)
			assert.Equal(t, task.Duration, interval.Duration)
		}
	}
}

func TestBuildModelSerialStartsRespectConstraints(t *testing.T) {
	instance, err := NewInstance([][]Task{
		{{Machine: 0, Duration: 3}, {Machine: 1, Duration: 2}},
		{{Machine: 0, Duration: 2}, {Machine: 1, Duration: 4}},
	})
	assert.Nil(t, err)

	problem, _ := BuildModel(instance)
	starts := problem.SerialStarts()

	assert.True(t, solve.AssertSolution(problem, starts))
	assert.Equal(t, problem.Horizon, problem.MakespanOf(starts))
}
