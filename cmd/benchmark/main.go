package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"text/tabwriter"
	"time"

	"github.com/limaJavier/jobshop/internal/model"
	"github.com/limaJavier/jobshop/internal/solve"
)

const (
	maxDuration   = 9
	timeBudget    = 10 * time.Second
	runsPerSize   = 3
	benchmarkSeed = 42
)

var sizes = [][2]int{
	{3, 3},
	{4, 4},
	{5, 5},
	{6, 6},
	{7, 7},
}

type benchmarkResult struct {
	jobs     int
	machines int
	status   solve.Status
	makespan int
	nodes    uint64
	pruned   uint64
	duration time.Duration
}

func main() {
	rng := rand.New(rand.NewPCG(benchmarkSeed, 0))
	results := make([]benchmarkResult, 0, len(sizes)*runsPerSize)

	for _, size := range sizes {
		jobs, machines := size[0], size[1]
		for run := range runsPerSize {
			fmt.Printf("Benchmarking %v jobs on %v machines (run %v)\n", jobs, machines, run+1)

			instance := randomInstance(jobs, machines, maxDuration, rng)
			scheduler := model.NewScheduler(solve.NewBnbSolver(solve.Options{TimeLimit: timeBudget}))

			started := time.Now()
			result, err := scheduler.Solve(context.Background(), instance)
			if err != nil {
				fmt.Printf("solve failed: %v\n", err)
				continue
			}

			results = append(results, benchmarkResult{
				jobs:     jobs,
				machines: machines,
				status:   result.Status,
				makespan: result.Makespan,
				nodes:    result.Stats.Nodes,
				pruned:   result.Stats.Pruned,
				duration: time.Since(started),
			})
		}
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "jobs\tmachines\tstatus\tmakespan\tnodes\tpruned\ttime")
	for _, result := range results {
		fmt.Fprintf(writer, "%v\t%v\t%v\t%v\t%v\t%v\t%v\n",
			result.jobs, result.machines, result.status, result.makespan, result.nodes, result.pruned, result.duration.Round(time.Millisecond))
	}
	writer.Flush()
}

// randomInstance builds a dense instance where every job visits each machine
// exactly once in a random order, with durations in [1, maxDuration].
func randomInstance(jobs, machines, maxDuration int, rng *rand.Rand) model.Instance {
	definitions := make([][]model.Task, jobs)
	for jobId := range definitions {
		for _, machine := range rng.Perm(machines) {
			definitions[jobId] = append(definitions[jobId], model.Task{
				Machine:  machine,
				Duration: rng.IntN(maxDuration) + 1,
			})
		}
	}

	instance, err := model.NewInstance(definitions)
	if err != nil {
		panic(err) // generation is dense and positive, this cannot happen
	}
	return instance
}
