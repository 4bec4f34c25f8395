package solve

import (
	"slices"
	"sync"
	"sync/atomic"
)

// incumbent is the best complete feasible assignment found so far. It starts
// at the serial schedule so a cutoff always has something to report. Readers
// take the bound without locking and may observe a slightly stale value; a
// stale (too high) bound only delays pruning, it never admits a worse
// schedule, since offer replaces the incumbent only when strictly better.
type incumbent struct {
	best   atomic.Int64
	mu     sync.Mutex
	starts Solution
}

func newIncumbent(problem *Problem) *incumbent {
	inc := &incumbent{starts: problem.SerialStarts()}
	inc.best.Store(int64(problem.Horizon))
	return inc
}

func (inc *incumbent) bound() int {
	return int(inc.best.Load())
}

// offer installs the candidate if it strictly beats the current best.
func (inc *incumbent) offer(makespan int, starts Solution) bool {
	inc.mu.Lock()
	defer inc.mu.Unlock()
	if int64(makespan) >= inc.best.Load() {
		return false
	}
	inc.starts = slices.Clone(starts)
	inc.best.Store(int64(makespan))
	return true
}

func (inc *incumbent) snapshot() (int, Solution) {
	inc.mu.Lock()
	defer inc.mu.Unlock()
	return int(inc.best.Load()), slices.Clone(inc.starts)
}
