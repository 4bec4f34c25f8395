package solve

import (
	"context"
	"sync"
	"time"
)

// subtreesPerWorker sizes the frontier handed to the worker pool. A few
// subtrees per worker keeps everyone busy when some branches prune early.
const subtreesPerWorker = 4

// parallelSolver explores independent subtrees on a fixed worker pool. Each
// worker owns a private engine; the incumbent is the only shared mutable
// resource and is updated under a strictly-better discipline, so workers may
// prune against a slightly stale bound without losing correctness.
type parallelSolver struct {
	options Options
}

func (solver *parallelSolver) Solve(ctx context.Context, problem Problem) (Result, error) {
	if err := problem.Validate(); err != nil {
		return Result{Status: StatusInfeasible}, err
	}

	started := time.Now()
	inc := newIncumbent(&problem)
	deadline := deadlineFor(ctx, solver.options, started)

	seeder := newEngine(&problem, solver.options, inc, deadline, ctx.Done())
	root, feasible := seeder.root()
	if !feasible {
		return Result{Status: StatusInfeasible, Stats: seeder.statistics(started)}, ErrRootInfeasible
	}
	frontier := seeder.expand(root, solver.options.Workers*subtreesPerWorker)

	subtrees := make(chan *state)
	workers := make([]*engine, solver.options.Workers)
	var wg sync.WaitGroup
	for w := range workers {
		workers[w] = newEngine(&problem, solver.options, inc, deadline, ctx.Done())
		wg.Add(1)
		go func(worker *engine) {
			defer wg.Done()
			for node := range subtrees {
				worker.search(node)
			}
		}(workers[w])
	}
	for _, node := range frontier {
		subtrees <- node
	}
	close(subtrees)
	wg.Wait()

	truncated := seeder.truncated
	stats := seeder.stats
	for _, worker := range workers {
		truncated = truncated || worker.truncated
		stats.Nodes += worker.stats.Nodes
		stats.Conflicts += worker.stats.Conflicts
		stats.Pruned += worker.stats.Pruned
		stats.Solutions += worker.stats.Solutions
	}

	makespan, starts := inc.snapshot()
	status := StatusOptimal
	if truncated {
		status = StatusFeasible
	}
	stats.Elapsed = time.Since(started)
	return Result{Status: status, Starts: starts, Makespan: makespan, Stats: stats}, nil
}

// expand grows a frontier of independent subtree roots breadth-first. Nodes
// that resolve during expansion (leaves, contradictions, dominated bounds) are
// settled here; the survivors each carry their own ordering decisions and can
// be searched without touching their siblings.
func (e *engine) expand(root *state, target int) []*state {
	queue := []*state{root}
	for len(queue) > 0 && len(queue) < target {
		if e.cutoff() {
			break
		}
		node := queue[0]
		queue = queue[1:]
		e.stats.Nodes++

		if !e.propagate(node) {
			e.stats.Conflicts++
			continue
		}
		if e.lowerBound(node) >= e.inc.bound() {
			e.stats.Pruned++
			continue
		}
		k := e.pickConflict(node)
		if k < 0 {
			e.record(node)
			continue
		}

		left := node.clone()
		left.order[k] = orderAB
		node.order[k] = orderBA
		queue = append(queue, left, node)
	}
	return queue
}
