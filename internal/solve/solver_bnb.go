package solve

import (
	"context"
	"slices"
	"time"

	"github.com/rs/zerolog"
)

type bnbSolver struct {
	options Options
}

func (solver *bnbSolver) Solve(ctx context.Context, problem Problem) (Result, error) {
	if err := problem.Validate(); err != nil {
		return Result{Status: StatusInfeasible}, err
	}

	started := time.Now()
	engine := newEngine(&problem, solver.options, newIncumbent(&problem), deadlineFor(ctx, solver.options, started), ctx.Done())

	root, feasible := engine.root()
	if !feasible {
		return Result{Status: StatusInfeasible, Stats: engine.statistics(started)}, ErrRootInfeasible
	}
	engine.search(root)

	return engine.result(started), nil
}

type pair struct {
	a, b int32
}

const (
	orderUnknown int8 = iota
	orderAB           // the pair's first interval finishes before the second starts
	orderBA
)

// state is one search node's view of the ordering decisions and the start-time
// bounds they imply. Each node owns its state exclusively: children receive
// clones and siblings never share.
type state struct {
	est   []int  // earliest start per interval
	lst   []int  // latest start per interval
	order []int8 // one of orderUnknown, orderAB, orderBA per machine pair
}

func (node *state) clone() *state {
	return &state{
		est:   slices.Clone(node.est),
		lst:   slices.Clone(node.lst),
		order: slices.Clone(node.order),
	}
}

// engine is one depth-first branch-and-bound run. Workers of the parallel
// solver each own an engine; only the incumbent is shared between them.
type engine struct {
	problem *Problem
	tail    []int  // an interval's duration plus the durations of its job successors
	load    []int  // total duration required on each machine
	pairs   []pair // unordered interval pairs sharing a machine

	inc      *incumbent
	logger   *zerolog.Logger
	maxNodes uint64
	deadline time.Time
	done     <-chan struct{}

	truncated bool
	stats     Statistics
}

func newEngine(problem *Problem, options Options, inc *incumbent, deadline time.Time, done <-chan struct{}) *engine {
	tail := make([]int, len(problem.Intervals))
	for i := len(problem.Intervals) - 1; i >= 0; i-- {
		interval := problem.Intervals[i]
		tail[i] = interval.Duration
		if interval.Next >= 0 {
			tail[i] += tail[interval.Next]
		}
	}

	load := make([]int, len(problem.Machines))
	pairs := make([]pair, 0)
	for machine, intervals := range problem.Machines {
		for _, i := range intervals {
			load[machine] += problem.Intervals[i].Duration
		}
		for x := 0; x < len(intervals)-1; x++ {
			for y := x + 1; y < len(intervals); y++ {
				pairs = append(pairs, pair{a: intervals[x], b: intervals[y]})
			}
		}
	}

	return &engine{
		problem:  problem,
		tail:     tail,
		load:     load,
		pairs:    pairs,
		inc:      inc,
		logger:   options.Logger,
		maxNodes: options.MaxNodes,
		deadline: deadline,
		done:     done,
	}
}

// root builds the initial state: earliest starts at zero, latest starts backed
// off from the horizon, then one propagation pass over the precedence chains.
// A false return means the bounds contradict before any decision was made.
func (e *engine) root() (*state, bool) {
	node := &state{
		est:   make([]int, len(e.problem.Intervals)),
		lst:   make([]int, len(e.problem.Intervals)),
		order: make([]int8, len(e.pairs)),
	}
	for i, interval := range e.problem.Intervals {
		node.lst[i] = e.problem.Horizon - interval.Duration
	}
	return node, e.propagate(node)
}

func (e *engine) search(node *state) {
	if e.cutoff() {
		return
	}
	e.stats.Nodes++

	if !e.propagate(node) {
		e.stats.Conflicts++
		return
	}
	if e.lowerBound(node) >= e.inc.bound() {
		e.stats.Pruned++
		return
	}

	k := e.pickConflict(node)
	if k < 0 {
		// Every machine order is settled: the earliest starts form a complete
		// feasible schedule.
		e.record(node)
		return
	}

	first, second := orderAB, orderBA
	if node.est[e.pairs[k].b] < node.est[e.pairs[k].a] {
		first, second = orderBA, orderAB
	}

	child := node.clone()
	child.order[k] = first
	e.search(child)

	node.order[k] = second // the parent frame no longer needs its own copy
	e.search(node)
}

// propagate tightens est/lst to a fixpoint under the job precedence chains and
// the decided machine orderings. Returns false when some interval's window
// collapses (est > lst), meaning the node is infeasible. The collapse check
// runs every sweep: a cyclic set of ordering decisions keeps raising est each
// sweep, so it is also what terminates the loop on contradictory nodes.
func (e *engine) propagate(node *state) bool {
	for changed := true; changed; {
		changed = false

		for i, interval := range e.problem.Intervals {
			if interval.Next < 0 {
				continue
			}
			next := interval.Next
			if lower := node.est[i] + interval.Duration; lower > node.est[next] {
				node.est[next] = lower
				changed = true
			}
			if upper := node.lst[next] - interval.Duration; upper < node.lst[i] {
				node.lst[i] = upper
				changed = true
			}
		}

		for k, machinePair := range e.pairs {
			first, second := machinePair.a, machinePair.b
			switch node.order[k] {
			case orderUnknown:
				continue
			case orderBA:
				first, second = machinePair.b, machinePair.a
			}
			duration := e.problem.Intervals[first].Duration
			if lower := node.est[first] + duration; lower > node.est[second] {
				node.est[second] = lower
				changed = true
			}
			if upper := node.lst[second] - duration; upper < node.lst[first] {
				node.lst[first] = upper
				changed = true
			}
		}

		for i := range e.problem.Intervals {
			if node.est[i] > node.lst[i] {
				return false
			}
		}
	}
	return true
}

// lowerBound is the larger of the longest remaining job chain and the busiest
// machine's residual load; any completion reachable from this node must fit
// both.
func (e *engine) lowerBound(node *state) int {
	bound := 0
	for i := range e.problem.Intervals {
		if chain := node.est[i] + e.tail[i]; chain > bound {
			bound = chain
		}
	}
	for machine, intervals := range e.problem.Machines {
		if len(intervals) == 0 {
			continue
		}
		earliest := node.est[intervals[0]]
		for _, i := range intervals[1:] {
			if node.est[i] < earliest {
				earliest = node.est[i]
			}
		}
		if packed := earliest + e.load[machine]; packed > bound {
			bound = packed
		}
	}
	return bound
}

// pickConflict selects the undecided pair with overlapping start windows whose
// combined duration is largest, ties broken by pair index so runs are
// reproducible. Returns -1 when every remaining pair is already separated in
// time: intervals confined to disjoint windows cannot overlap whatever their
// final starts.
func (e *engine) pickConflict(node *state) int {
	best, bestWeight := -1, -1
	for k, machinePair := range e.pairs {
		if node.order[k] != orderUnknown {
			continue
		}
		a, b := machinePair.a, machinePair.b
		durationA := e.problem.Intervals[a].Duration
		durationB := e.problem.Intervals[b].Duration
		if node.est[a] >= node.lst[b]+durationB || node.est[b] >= node.lst[a]+durationA {
			continue
		}
		if weight := durationA + durationB; weight > bestWeight {
			best, bestWeight = k, weight
		}
	}
	return best
}

func (e *engine) record(node *state) {
	e.stats.Solutions++
	makespan := 0
	for i, interval := range e.problem.Intervals {
		if end := node.est[i] + interval.Duration; end > makespan {
			makespan = end
		}
	}
	if e.inc.offer(makespan, node.est) {
		e.logger.Debug().Int("makespan", makespan).Uint64("nodes", e.stats.Nodes).Msg("incumbent improved")
	}
}

func (e *engine) cutoff() bool {
	if e.truncated {
		return true
	}
	if e.maxNodes > 0 && e.stats.Nodes >= e.maxNodes {
		e.truncated = true
		return true
	}
	if !e.deadline.IsZero() && time.Now().After(e.deadline) {
		e.truncated = true
		return true
	}
	select {
	case <-e.done:
		e.truncated = true
		return true
	default:
	}
	return false
}

func (e *engine) result(started time.Time) Result {
	makespan, starts := e.inc.snapshot()
	status := StatusOptimal
	if e.truncated {
		status = StatusFeasible
	}
	return Result{
		Status:   status,
		Starts:   starts,
		Makespan: makespan,
		Stats:    e.statistics(started),
	}
}

func (e *engine) statistics(started time.Time) Statistics {
	stats := e.stats
	stats.Elapsed = time.Since(started)
	return stats
}
