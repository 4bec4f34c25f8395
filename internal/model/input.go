package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// Task is one step of a job: a fixed occupation of a single machine. Tasks are
// immutable once the instance is built.
type Task struct {
	Machine  int
	Duration int
}

// RawInstance mirrors the JSON input layout: jobs listed in order, each an
// ordered sequence of tasks.
type RawInstance struct {
	Jobs [][]Task
}

// Instance is a validated job-shop problem definition.
type Instance struct {
	Jobs        [][]Task
	NumMachines int
	Horizon     int // sum of all durations: the length of the fully serialized schedule
}

func InputFromJson(file string) (Instance, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Instance{}, err
	}
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Instance{}, err
	}

	var rawInput RawInstance
	if err := mapstructure.Decode(inputJson, &rawInput); err != nil {
		return Instance{}, err
	}
	return NewInstance(rawInput.Jobs)
}

// NewInstance validates the job definitions and fixes the machine count and
// horizon. Malformed definitions are rejected up front so no partial model is
// ever handed to a solver.
func NewInstance(jobs [][]Task) (Instance, error) {
	if len(jobs) == 0 {
		return Instance{}, fmt.Errorf("instance must define at least one job")
	}

	numMachines, horizon := 1, 0
	for jobId, job := range jobs {
		if len(job) == 0 {
			return Instance{}, fmt.Errorf("job %d has no tasks", jobId)
		}
		for taskId, task := range job {
			if task.Duration <= 0 {
				return Instance{}, fmt.Errorf("job %d task %d has non-positive duration %d", jobId, taskId, task.Duration)
			}
			if task.Machine < 0 {
				return Instance{}, fmt.Errorf("job %d task %d has negative machine %d", jobId, taskId, task.Machine)
			}
			if task.Machine+1 > numMachines {
				numMachines = task.Machine + 1
			}
			horizon += task.Duration
		}
	}

	return Instance{Jobs: jobs, NumMachines: numMachines, Horizon: horizon}, nil
}

// MachineLoads returns the total duration each machine must process.
func (instance Instance) MachineLoads() []int {
	loads := make([]int, instance.NumMachines)
	for _, job := range instance.Jobs {
		for _, task := range job {
			loads[task.Machine] += task.Duration
		}
	}
	return loads
}

// JobSpans returns each job's total duration.
func (instance Instance) JobSpans() []int {
	return lo.Map(instance.Jobs, func(job []Task, _ int) int {
		return lo.Reduce(job, func(span int, task Task, _ int) int { return span + task.Duration }, 0)
	})
}

// TotalTasks returns the number of tasks across all jobs.
func (instance Instance) TotalTasks() int {
	return lo.Reduce(instance.Jobs, func(total int, job []Task, _ int) int { return total + len(job) }, 0)
}
