package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInstance(t *testing.T) {
	// Arrange
	jobs := [][]Task{
		{{Machine: 0, Duration: 3}, {Machine: 1, Duration: 2}, {Machine: 2, Duration: 2}},
		{{Machine: 0, Duration: 2}, {Machine: 2, Duration: 1}, {Machine: 1, Duration: 4}},
		{{Machine: 1, Duration: 4}, {Machine: 2, Duration: 3}},
	}

	// Act
	instance, err := NewInstance(jobs)

	// Assert
	assert.Nil(t, err)
	assert.Equal(t, 3, instance.NumMachines)
	assert.Equal(t, 21, instance.Horizon)
	assert.Equal(t, 8, instance.TotalTasks())
	assert.Equal(t, []int{5, 10, 6}, instance.MachineLoads())
	assert.Equal(t, []int{7, 7, 7}, instance.JobSpans())
}

func TestNewInstanceRejectsMalformedDefinitions(t *testing.T) {
	scenarios := []struct {
		name string
		jobs [][]Task
	}{
		{"no jobs", [][]Task{}},
		{"empty job", [][]Task{{{Machine: 0, Duration: 1}}, {}}},
		{"zero duration", [][]Task{{{Machine: 0, Duration: 0}}}},
		{"negative duration", [][]Task{{{Machine: 0, Duration: -3}}}},
		{"negative machine", [][]Task{{{Machine: -1, Duration: 2}}}},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			_, err := NewInstance(scenario.jobs)
			assert.NotNil(t, err)
		})
	}
}

func TestInputFromJson(t *testing.T) {
	// Arrange
	file := filepath.Join(t.TempDir(), "instance.json")
	content := `{
		"jobs": [
			[{"machine": 0, "duration": 3}, {"machine": 1, "duration": 2}],
			[{"machine": 1, "duration": 4}]
		]
	}`
	assert.Nil(t, os.WriteFile(file, []byte(content), 0666))

	// Act
	instance, err := InputFromJson(file)

	// Assert
	assert.Nil(t, err)
	assert.Equal(t, 2, instance.NumMachines)
	assert.Equal(t, 9, instance.Horizon)
	assert.Equal(t, Task{Machine: 1, Duration: 2}, instance.Jobs[0][1])
}

func TestInputFromJsonRejectsInvalidFile(t *testing.T) {
	_, err := InputFromJson(filepath.Join(t.TempDir(), "missing.json"))
	assert.NotNil(t, err)

	file := filepath.Join(t.TempDir(), "broken.json")
	assert.Nil(t, os.WriteFile(file, []byte("not json"), 0666))
	_, err = InputFromJson(file)
	assert.NotNil(t, err)
}
