package model

// Indexer interface is designed to give a unique flat index to a (job, task)
// position and vice versa, matching the solver's dense interval arena
type Indexer interface {
	// Returns the flat index of the task at the given job position
	Index(job, task int) int
	// Returns the (job, task) position behind a flat index
	Attributes(index int) (job int, task int)
	// Returns the total number of indexed tasks
	Len() int
}

func NewIndexer(instance Instance) Indexer {
	offsets := make([]int, len(instance.Jobs)+1)
	for jobId, job := range instance.Jobs {
		offsets[jobId+1] = offsets[jobId] + len(job)
	}
	return &offsetIndexer{offsets: offsets}
}
