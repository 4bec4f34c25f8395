package model

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func randomShapedInstance(jobs int) Instance {
	definitions := make([][]Task, jobs)
	for jobId := range definitions {
		definitions[jobId] = make([]Task, rand.Intn(8)+1)
		for taskId := range definitions[jobId] {
			definitions[jobId][taskId] = Task{Machine: rand.Intn(5), Duration: rand.Intn(9) + 1}
		}
	}
	instance, err := NewInstance(definitions)
	if err != nil {
		panic(err)
	}
	return instance
}

func TestIndexAndAttributesRoundTrip(t *testing.T) {
	for range 10 {
		// Arrange
		instance := randomShapedInstance(rand.Intn(10) + 1)
		indexer := NewIndexer(instance)

		// Act
		indices := make([]int, 0, instance.TotalTasks())
		for jobId, job := range instance.Jobs {
			for taskId := range job {
				indices = append(indices, indexer.Index(jobId, taskId))
			}
		}

		// Assert
		for _, index := range indices {
			job, task := indexer.Attributes(index)
			assert.Equal(t, index, indexer.Index(job, task))
		}
	}
}

func TestIndexerIsDense(t *testing.T) {
	for range 10 {
		// Arrange
		instance := randomShapedInstance(rand.Intn(10) + 1)
		indexer := NewIndexer(instance)

		indices := make([]int, 0, instance.TotalTasks())
		for jobId, job := range instance.Jobs {
			for taskId := range job {
				indices = append(indices, indexer.Index(jobId, taskId))
			}
		}

		slices.Sort(indices)

		// Assert: indices are exactly 0..n-1 with no gaps
		assert.Equal(t, instance.TotalTasks(), indexer.Len())
		for i, index := range indices {
			assert.Equal(t, i, index)
		}
	}
}
