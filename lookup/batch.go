// Package lookup runs many dictionary lookups at once. It spreads searches
// across sources with bounded concurrency, spaces out requests to each
// source, drops duplicate queries and optionally records every outcome.
package lookup

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/fwojciec/dictscrape"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when Batch.Concurrency is not positive.
const DefaultConcurrency = 4

// dedupeFPRate keeps the chance of dropping a distinct query negligible for
// batches of any realistic size.
const dedupeFPRate = 1e-6

// Batch runs lookups for many queries against one or more sources.
type Batch struct {
	Sources     *dictscrape.Registry
	RateLimiter dictscrape.DomainLimiter
	Lookups     dictscrape.LookupService
	Concurrency int
}

// Result is the outcome of a single job.
type Result struct {
	Job
	SourceURL string
	Outcome   dictscrape.Outcome
	LookupID  string
	Err       error
}

// Summary holds the outcome of a batch.
type Summary struct {
	Results []Result
	Skipped int

	// Duplicates lists the jobs the dedupe filter rejected. A distinct
	// query can land here on a filter false positive.
	Duplicates []Job

	Failed  int
	Saved   int
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Job       Job
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// Run searches every query against every named source. Duplicate and blank
// queries are skipped. Results keep input order: queries first, then
// sources in the order given. A network failure is a failed result, not an
// error; Run itself fails only for an unknown source or a canceled context.
func (b *Batch) Run(ctx context.Context, queries []string, sources []string, cfg dictscrape.SourceConfig, progress ProgressFunc) (*Summary, error) {
	if len(sources) == 0 {
		return nil, dictscrape.Errorf(dictscrape.EINVALID, "at least one source required")
	}
	resolved := make(map[string]dictscrape.Source, len(sources))
	for _, name := range sources {
		src, err := b.Sources.Get(name)
		if err != nil {
			return nil, err
		}
		resolved[name] = src
	}

	summary := &Summary{}
	queue := NewQueue(uint(len(queries)*len(sources)), dedupeFPRate)
	for _, q := range queries {
		if dictscrape.NormalizeQuery(q) == "" {
			summary.Skipped += len(sources)
			continue
		}
		for _, name := range sources {
			job := Job{Source: name, Query: dictscrape.NormalizeQuery(q)}
			if !queue.Push(job) {
				summary.Skipped++
				summary.Duplicates = append(summary.Duplicates, job)
			}
		}
	}

	jobs := make([]Job, 0, queue.Len())
	for {
		job, ok := queue.Pop()
		if !ok {
			break
		}
		jobs = append(jobs, job)
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(jobs)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	type indexed struct {
		position int
		result   Result
	}
	resultCh := make(chan indexed, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, job := range jobs {
			g.Go(func() error {
				resultCh <- indexed{position: i, result: b.search(gctx, resolved[job.Source], job, cfg)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	summary.Results = make([]Result, total)
	for r := range resultCh {
		completed.Add(1)
		summary.Results[r.position] = r.result

		if err := failure(r.result); err != nil {
			summary.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					Job:       r.result.Job,
					Error:     err,
				})
			}
			continue
		}
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				Job:       r.result.Job,
			})
		}
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}

	if b.Lookups != nil {
		for i := range summary.Results {
			r := &summary.Results[i]
			if failure(*r) != nil {
				continue
			}
			l := &dictscrape.Lookup{
				Source:    r.Source,
				Query:     r.Query,
				SourceURL: r.SourceURL,
				Outcome:   r.Outcome,
			}
			if err := b.Lookups.CreateLookup(ctx, l); err != nil {
				r.Err = err
				summary.Failed++
				continue
			}
			r.LookupID = l.ID
			summary.Saved++
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: int(completed.Load()),
			Total:     total,
		})
	}

	return summary, nil
}

// search runs one job, waiting for the source's rate limit first.
func (b *Batch) search(ctx context.Context, src dictscrape.Source, job Job, cfg dictscrape.SourceConfig) Result {
	r := Result{Job: job, SourceURL: src.SourceURL(job.Query)}

	if b.RateLimiter != nil {
		if err := b.RateLimiter.Wait(ctx, job.Source); err != nil {
			r.Err = err
			return r
		}
	}

	r.Outcome, r.Err = src.Search(ctx, job.Query, cfg)
	return r
}

// failure returns the error that made a result unusable, if any.
func failure(r Result) error {
	if r.Err != nil {
		return r.Err
	}
	if o, ok := r.Outcome.(*dictscrape.NetworkError); ok {
		if o.Err != nil {
			return o.Err
		}
		return errors.New("network error")
	}
	return nil
}
