package lookup

import (
	"sync"

	"github.com/fwojciec/dictscrape"
	"github.com/fwojciec/dictscrape/bloom"
)

// Job is one query to run against one source.
type Job struct {
	Source string
	Query  string
}

// key identifies a job for deduplication. Queries are compared after
// whitespace normalization.
func (j Job) key() string {
	return j.Source + "\x00" + dictscrape.NormalizeQuery(j.Query)
}

// Queue is an in-memory FIFO of jobs with Bloom filter deduplication.
// A false positive drops a job that was never queued, so the rate should be
// kept far below the expected batch size.
// It is safe for concurrent use by multiple goroutines.
type Queue struct {
	mu   sync.Mutex
	seen *bloom.Filter
	jobs []Job
}

// NewQueue creates a new Queue sized for n expected jobs with the given
// false positive rate.
func NewQueue(n uint, fpRate float64) *Queue {
	return &Queue{seen: bloom.NewFilter(n, fpRate)}
}

// Push appends a job. Returns false if the job has already been queued.
func (q *Queue) Push(job Job) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.seen.TestAndAdd(job.key()) {
		return false
	}
	job.Query = dictscrape.NormalizeQuery(job.Query)
	q.jobs = append(q.jobs, job)
	return true
}

// Pop returns the oldest queued job.
// The bool result is false if the queue is empty.
func (q *Queue) Pop() (Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.jobs) == 0 {
		return Job{}, false
	}
	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	return job, true
}

// Len returns the number of queued jobs.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// Seen returns true if the job has been queued.
func (q *Queue) Seen(job Job) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.seen.Test(job.key())
}
