package model

import "sort"

type offsetIndexer struct {
	offsets []int // offsets[j] is the flat index of job j's first task; a trailing entry holds the total
}

func (i *offsetIndexer) Index(job, task int) int {
	return i.offsets[job] + task
}

func (i *offsetIndexer) Attributes(index int) (int, int) {
	job := sort.Search(len(i.offsets)-1, func(j int) bool { return i.offsets[j+1] > index })
	return job, index - i.offsets[job]
}

func (i *offsetIndexer) Len() int {
	return i.offsets[len(i.offsets)-1]
}
