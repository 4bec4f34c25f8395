package solve

import "math/rand/v2"

// GenerateProblem builds a random dense job-shop instance where every job
// visits each machine exactly once in a random order, with durations in
// [1, maxDuration].
func GenerateProblem(jobs, machines, maxDuration int, rng *rand.Rand) Problem {
	problem := Problem{Machines: make([][]int32, machines)}
	for job := range jobs {
		for task, machine := range rng.Perm(machines) {
			index := int32(len(problem.Intervals))
			interval := Interval{
				Job:      int32(job),
				Task:     int32(task),
				Machine:  int32(machine),
				Next:     -1,
				Prev:     -1,
				Duration: rng.IntN(maxDuration) + 1,
			}
			if task > 0 {
				interval.Prev = index - 1
				problem.Intervals[index-1].Next = index
			}
			problem.Intervals = append(problem.Intervals, interval)
			problem.Machines[machine] = append(problem.Machines[machine], index)
			problem.Horizon += interval.Duration
		}
	}
	return problem
}

// AssertSolution checks that the starts respect the precedence chain within
// every job and exclusive use of every machine.
func AssertSolution(problem Problem, starts Solution) bool {
	if len(starts) != len(problem.Intervals) {
		return false
	}

	for i, interval := range problem.Intervals {
		if starts[i] < 0 {
			return false
		}
		if interval.Next >= 0 && starts[interval.Next] < starts[i]+interval.Duration {
			return false
		}
	}

	for _, intervals := range problem.Machines {
		for x := 0; x < len(intervals)-1; x++ {
			for y := x + 1; y < len(intervals); y++ {
				a, b := intervals[x], intervals[y]
				endA := starts[a] + problem.Intervals[a].Duration
				endB := starts[b] + problem.Intervals[b].Duration
				if starts[a] < endB && starts[b] < endA {
					return false
				}
			}
		}
	}

	return true
}
