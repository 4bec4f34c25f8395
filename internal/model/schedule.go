package model

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/limaJavier/jobshop/internal/solve"
)

// AssignedTask is one task's placement in a finished schedule.
type AssignedTask struct {
	Job   int
	Task  int
	Start int
	End   int
}

// Schedule lists every machine's assigned tasks ordered by start time, ties
// broken by shorter duration first and then by job position, so the layout is
// reproducible across runs.
type Schedule [][]AssignedTask

func buildSchedule(instance Instance, indexer Indexer, starts solve.Solution) Schedule {
	schedule := make(Schedule, instance.NumMachines)
	for jobId, job := range instance.Jobs {
		for taskId, task := range job {
			start := starts[indexer.Index(jobId, taskId)]
			schedule[task.Machine] = append(schedule[task.Machine], AssignedTask{
				Job:   jobId,
				Task:  taskId,
				Start: start,
				End:   start + task.Duration,
			})
		}
	}

	for machine := range schedule {
		slices.SortFunc(schedule[machine], func(a, b AssignedTask) int {
			if a.Start != b.Start {
				return a.Start - b.Start
			}
			if durationA, durationB := a.End-a.Start, b.End-b.Start; durationA != durationB {
				return durationA - durationB
			}
			if a.Job != b.Job {
				return a.Job - b.Job
			}
			return a.Task - b.Task
		})
	}

	return schedule
}

// Makespan returns the completion time of the last-finishing task.
func (schedule Schedule) Makespan() int {
	return lo.Max(lo.Map(schedule, func(tasks []AssignedTask, _ int) int {
		return lo.Reduce(tasks, func(makespan int, task AssignedTask, _ int) int {
			if task.End > makespan {
				return task.End
			}
			return makespan
		}, 0)
	}))
}

// verify is a defensive check on an extracted schedule: every task placed
// exactly once on its machine with its defined duration, precedence respected
// within every job, and every machine exclusive. A violation names the
// offending tasks, since it indicates a propagation bug rather than bad input.
func verify(schedule Schedule, instance Instance) error {
	if len(schedule) != instance.NumMachines {
		return fmt.Errorf("schedule covers %d machines, instance defines %d", len(schedule), instance.NumMachines)
	}

	placed := make(map[[2]int]AssignedTask, instance.TotalTasks())
	for machine, tasks := range schedule {
		for _, task := range tasks {
			if task.Job < 0 || task.Job >= len(instance.Jobs) || task.Task < 0 || task.Task >= len(instance.Jobs[task.Job]) {
				return fmt.Errorf("machine %d holds unknown task: job %d task %d", machine, task.Job, task.Task)
			}
			defined := instance.Jobs[task.Job][task.Task]
			if defined.Machine != machine {
				return fmt.Errorf("job %d task %d assigned to machine %d but requires machine %d", task.Job, task.Task, machine, defined.Machine)
			}
			if task.Start < 0 || task.End-task.Start != defined.Duration {
				return fmt.Errorf("job %d task %d occupies [%d,%d) but its duration is %d", task.Job, task.Task, task.Start, task.End, defined.Duration)
			}
			if _, ok := placed[[2]int{task.Job, task.Task}]; ok {
				return fmt.Errorf("job %d task %d is placed more than once", task.Job, task.Task)
			}
			placed[[2]int{task.Job, task.Task}] = task
		}
	}

	for jobId, job := range instance.Jobs {
		for taskId := range job {
			if _, ok := placed[[2]int{jobId, taskId}]; !ok {
				return fmt.Errorf("job %d task %d is missing from the schedule", jobId, taskId)
			}
		}
	}

	// Precedence within each job
	for jobId, job := range instance.Jobs {
		for taskId := 0; taskId < len(job)-1; taskId++ {
			current := placed[[2]int{jobId, taskId}]
			next := placed[[2]int{jobId, taskId + 1}]
			if next.Start < current.End {
				return fmt.Errorf("precedence violated in job %d: task %d ends at %d but task %d starts at %d", jobId, taskId, current.End, taskId+1, next.Start)
			}
		}
	}

	// Exclusive use of each machine
	for machine, tasks := range schedule {
		for x := 0; x < len(tasks)-1; x++ {
			for y := x + 1; y < len(tasks); y++ {
				a, b := tasks[x], tasks[y]
				if a.Start < b.End && b.Start < a.End {
					return fmt.Errorf("overlap on machine %d: job %d task %d occupies [%d,%d) and job %d task %d occupies [%d,%d)",
						machine, a.Job, a.Task, a.Start, a.End, b.Job, b.Task, b.Start, b.End)
				}
			}
		}
	}

	return nil
}
