package solve

import (
	"errors"
	"fmt"
	"time"
)

// Interval is one task's occupancy of its machine: a decision variable whose
// start time is bound during search and fixed in a solution. The end is always
// start + Duration.
type Interval struct {
	Job      int32
	Task     int32
	Machine  int32
	Next     int32 // flat index of the job's next interval, -1 for the last
	Prev     int32 // flat index of the job's previous interval, -1 for the first
	Duration int
}

// Problem is a disjunctive scheduling instance over a dense interval arena.
// Intervals are stored job-major so a flat index identifies a (job, task)
// position; Machines groups interval indices by the machine they occupy and is
// built once, never resized.
type Problem struct {
	Intervals []Interval
	Machines  [][]int32
	Horizon   int // sum of all durations: a safe upper bound on any end time
}

// Solution holds one start time per interval, indexed as Problem.Intervals.
type Solution []int

type Status int

const (
	StatusOptimal Status = iota
	StatusFeasible
	StatusInfeasible
)

func (status Status) String() string {
	switch status {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	}
	return fmt.Sprintf("status(%d)", int(status))
}

// Statistics is a side value for reporting, not part of solver correctness.
type Statistics struct {
	Nodes     uint64 // search nodes visited, root included
	Conflicts uint64 // nodes abandoned on contradictory bounds
	Pruned    uint64 // nodes abandoned on a dominated lower bound
	Solutions uint64 // feasible leaves reached
	Elapsed   time.Duration
}

type Result struct {
	Status   Status
	Starts   Solution
	Makespan int
	Stats    Statistics
}

// SerialStarts schedules every interval end to end in arena order. The result
// is always feasible and finishes exactly at the horizon.
func (problem *Problem) SerialStarts() Solution {
	starts := make(Solution, len(problem.Intervals))
	now := 0
	for i, interval := range problem.Intervals {
		starts[i] = now
		now += interval.Duration
	}
	return starts
}

// MakespanOf returns the completion time of the last-finishing interval.
func (problem *Problem) MakespanOf(starts Solution) int {
	makespan := 0
	for i, interval := range problem.Intervals {
		if end := starts[i] + interval.Duration; end > makespan {
			makespan = end
		}
	}
	return makespan
}

// Validate checks the arena invariants the solvers rely on: positive
// durations, consistent job links, every interval grouped under its machine
// exactly once, and the horizon equal to the total duration.
func (problem *Problem) Validate() error {
	if len(problem.Intervals) == 0 {
		return errors.New("problem has no intervals")
	}

	grouped := make([]bool, len(problem.Intervals))
	for machine, intervals := range problem.Machines {
		for _, i := range intervals {
			if i < 0 || int(i) >= len(problem.Intervals) {
				return fmt.Errorf("machine %d references interval %d which is out of range", machine, i)
			}
			if problem.Intervals[i].Machine != int32(machine) {
				return fmt.Errorf("interval %d is grouped under machine %d but requires machine %d", i, machine, problem.Intervals[i].Machine)
			}
			if grouped[i] {
				return fmt.Errorf("interval %d is grouped more than once", i)
			}
			grouped[i] = true
		}
	}

	total := 0
	for i, interval := range problem.Intervals {
		if interval.Duration <= 0 {
			return fmt.Errorf("interval %d has non-positive duration %d", i, interval.Duration)
		}
		if !grouped[i] {
			return fmt.Errorf("interval %d is missing from the machine grouping", i)
		}
		if interval.Next >= 0 && (int(interval.Next) >= len(problem.Intervals) || problem.Intervals[interval.Next].Prev != int32(i)) {
			return fmt.Errorf("intervals %d and %d have inconsistent job links", i, interval.Next)
		}
		total += interval.Duration
	}
	if total != problem.Horizon {
		return fmt.Errorf("horizon %d does not equal the total duration %d", problem.Horizon, total)
	}

	return nil
}
