package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/limaJavier/jobshop/internal/model"
	"github.com/limaJavier/jobshop/internal/solve"
)

func main() {
	instance, err := model.NewInstance([][]model.Task{
		{{Machine: 0, Duration: 3}, {Machine: 1, Duration: 2}, {Machine: 2, Duration: 2}}, // Job0
		{{Machine: 0, Duration: 2}, {Machine: 2, Duration: 1}, {Machine: 1, Duration: 4}}, // Job1
		{{Machine: 1, Duration: 4}, {Machine: 2, Duration: 3}},                            // Job2
	})
	if err != nil {
		log.Fatalf("invalid instance: %v", err)
	}

	scheduler := model.NewScheduler(solve.NewBnbSolver(solve.Options{}))

	result, err := scheduler.Solve(context.Background(), instance)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Solution:")
	for machine, tasks := range result.Schedule {
		var names, times strings.Builder
		fmt.Fprintf(&names, "Machine %v: ", machine)
		times.WriteString("           ")
		for _, task := range tasks {
			// Pad both lines so the columns stay aligned
			fmt.Fprintf(&names, "%-15v", fmt.Sprintf("job_%v_task_%v", task.Job, task.Task))
			fmt.Fprintf(&times, "%-15v", fmt.Sprintf("[%v,%v]", task.Start, task.End))
		}
		fmt.Println(names.String())
		fmt.Println(times.String())
	}
	fmt.Printf("%v schedule length: %v\n", result.Status, result.Makespan)

	if err := scheduler.Verify(result.Schedule, instance); err != nil {
		log.Fatalf("verification failed: %v", err)
	}

	fmt.Println("Statistics")
	fmt.Printf("  conflicts: %d\n", result.Stats.Conflicts)
	fmt.Printf("  branches : %d\n", result.Stats.Nodes)
	fmt.Printf("  wall time: %v\n", result.Stats.Elapsed)
}
