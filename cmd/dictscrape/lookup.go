package main

import (
	"errors"
	"fmt"

	"github.com/fwojciec/dictscrape"
)

// errLookupsFailed marks a run where some sources could not be reached.
// Results from the others are still printed and exported.
var errLookupsFailed = errors.New("lookups failed")

// Run executes the lookup command.
func (c *LookupCmd) Run(deps *Dependencies) (err error) {
	names := sourceNames(deps, c.Source)
	cfg := sourceConfig(deps, c.Lang)

	if deps.Notes != nil {
		defer func() {
			if err != nil && !errors.Is(err, errLookupsFailed) {
				_ = deps.Notes.Abort()
				return
			}
			if cerr := deps.Notes.Commit(); cerr != nil {
				err = cerr
			}
		}()
	}

	failed := 0
	for _, name := range names {
		src, err := deps.Sources.Get(name)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", dictscrape.ErrorMessage(err))
			return err
		}

		outcome, err := src.Search(deps.Ctx, c.Query, cfg)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", name, dictscrape.ErrorMessage(err))
			return err
		}

		rec := record{Source: name, Query: dictscrape.NormalizeQuery(c.Query), SourceURL: src.SourceURL(c.Query)}

		if cause := networkCause(outcome); cause != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "warning: %s: %v\n", name, cause)
		} else {
			if c.Save {
				l := &dictscrape.Lookup{Source: name, Query: rec.Query, SourceURL: rec.SourceURL, Outcome: outcome}
				if err := deps.Lookups.CreateLookup(deps.Ctx, l); err != nil {
					fmt.Fprintf(deps.Stderr, "error: %s\n", dictscrape.ErrorMessage(err))
					return err
				}
				rec.ID = l.ID
			}
			if deps.Notes != nil {
				if err := exportNote(deps, name, rec.Query, rec.SourceURL, outcome); err != nil {
					fmt.Fprintf(deps.Stderr, "error: export: %s\n", dictscrape.ErrorMessage(err))
					return err
				}
			}
		}

		if err := writeOutcome(deps.Stdout, deps.Converter, c.Format, rec, outcome, len(names) > 1); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d %w", failed, len(names), errLookupsFailed)
	}
	return nil
}

// Run executes the url command.
func (c *URLCmd) Run(deps *Dependencies) error {
	for _, name := range sourceNames(deps, c.Source) {
		src, err := deps.Sources.Get(name)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", dictscrape.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, src.SourceURL(c.Query))
	}
	return nil
}

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	for _, name := range deps.Sources.List() {
		fmt.Fprintln(deps.Stdout, name)
	}
	return nil
}
