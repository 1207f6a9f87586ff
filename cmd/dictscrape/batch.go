package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/dictscrape"
	"github.com/fwojciec/dictscrape/lookup"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) (err error) {
	queries, err := c.readQueries(deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	b := &lookup.Batch{
		Sources:     deps.Sources,
		RateLimiter: deps.RateLimiter,
		Concurrency: c.Concurrency,
	}
	if c.Save {
		b.Lookups = deps.Lookups
	}

	progress := func(event lookup.ProgressEvent) {
		switch event.Type {
		case lookup.ProgressStarted:
			fmt.Fprintf(deps.Stderr, "  Looking up %d queries\n", event.Total)
		case lookup.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s: %v\n", event.Job.Source, event.Job.Query, event.Error)
		case lookup.ProgressFinished:
			// Summary printed after the batch completes
		}
	}

	summary, err := b.Run(deps.Ctx, queries, sourceNames(deps, c.Source), sourceConfig(deps, c.Lang), progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dictscrape.ErrorMessage(err))
		return err
	}

	if deps.Notes != nil {
		defer func() {
			if err != nil {
				_ = deps.Notes.Abort()
				return
			}
			err = deps.Notes.Commit()
		}()
	}

	for _, r := range summary.Results {
		if r.Err != nil {
			continue
		}
		rec := record{ID: r.LookupID, Source: r.Source, Query: r.Query, SourceURL: r.SourceURL}
		if err := writeOutcome(deps.Stdout, deps.Converter, c.Format, rec, r.Outcome, true); err != nil {
			return err
		}
		if deps.Notes != nil && networkCause(r.Outcome) == nil {
			if err := exportNote(deps, r.Source, r.Query, r.SourceURL, r.Outcome); err != nil {
				fmt.Fprintf(deps.Stderr, "error: export: %s\n", dictscrape.ErrorMessage(err))
				return err
			}
		}
	}

	for _, job := range summary.Duplicates {
		fmt.Fprintf(deps.Stderr, "  Skipped duplicate %s: %s\n", job.Source, job.Query)
	}
	fmt.Fprintf(deps.Stderr, "  Done: %d lookups, %d failed, %d skipped", len(summary.Results), summary.Failed, summary.Skipped)
	if c.Save {
		fmt.Fprintf(deps.Stderr, ", %d saved", summary.Saved)
	}
	fmt.Fprintln(deps.Stderr)

	return nil
}

// readQueries reads one query per line from the file, or from stdin when
// the file is "-". Lines starting with '#' are comments.
func (c *BatchCmd) readQueries(stdin io.Reader) ([]string, error) {
	r := stdin
	if c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var queries []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return queries, nil
}
