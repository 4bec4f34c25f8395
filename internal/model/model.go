package model

import "github.com/limaJavier/jobshop/internal/solve"

// BuildModel lowers a validated instance into the solver's interval arena: one
// interval per (job, task) pair in job-major order, grouped by machine, with
// the horizon as the trivially safe completion bound.
func BuildModel(instance Instance) (solve.Problem, Indexer) {
	indexer := NewIndexer(instance)
	problem := solve.Problem{
		Intervals: make([]solve.Interval, 0, indexer.Len()),
		Machines:  make([][]int32, instance.NumMachines),
		Horizon:   instance.Horizon,
	}

	for jobId, job := range instance.Jobs {
		for taskId, task := range job {
			index := int32(indexer.Index(jobId, taskId))
			interval := solve.Interval{
				Job:      int32(jobId),
				Task:     int32(taskId),
				Machine:  int32(task.Machine),
				Next:     -1,
				Prev:     -1,
				Duration: task.Duration,
			}
			if taskId > 0 {
				interval.Prev = index - 1
				problem.Intervals[index-1].Next = index
			}
			problem.Intervals = append(problem.Intervals, interval)
			problem.Machines[task.Machine] = append(problem.Machines[task.Machine], index)
		}
	}

	return problem, indexer
}
