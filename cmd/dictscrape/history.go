package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/dictscrape"
)

// Run executes the history list command.
func (c *HistoryListCmd) Run(deps *Dependencies) error {
	filter := dictscrape.LookupFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Source != "" {
		filter.Source = &c.Source
	}
	if c.Query != "" {
		q := dictscrape.NormalizeQuery(c.Query)
		filter.Query = &q
	}
	if c.Kind != "" {
		kind := dictscrape.OutcomeKind(c.Kind)
		switch kind {
		case dictscrape.KindNotFound, dictscrape.KindRelated, dictscrape.KindLex, dictscrape.KindNetworkError:
			filter.Kind = &kind
		default:
			err := dictscrape.Errorf(dictscrape.EINVALID, "unknown outcome kind %q", c.Kind)
			fmt.Fprintf(deps.Stderr, "error: %s\n", dictscrape.ErrorMessage(err))
			return err
		}
	}

	lookups, err := deps.Lookups.FindLookups(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dictscrape.ErrorMessage(err))
		return err
	}

	if len(lookups) == 0 {
		fmt.Fprintln(deps.Stdout, "No lookups found. Use 'dictscrape lookup --save' to record one.")
		return nil
	}

	for _, l := range lookups {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-8s %-13s %s\n",
			l.ID, l.CreatedAt.Local().Format(time.DateTime), l.Source, l.Kind, l.Query)
	}

	return nil
}

// Run executes the history show command.
func (c *HistoryShowCmd) Run(deps *Dependencies) error {
	l, err := deps.Lookups.FindLookupByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dictscrape.ErrorMessage(err))
		return err
	}

	rec := record{ID: l.ID, Source: l.Source, Query: l.Query, SourceURL: l.SourceURL}
	return writeOutcome(deps.Stdout, deps.Converter, c.Format, rec, l.Outcome, false)
}

// Run executes the history delete command.
func (c *HistoryDeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Lookups.DeleteLookup(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dictscrape.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted lookup %s\n", c.ID)
	return nil
}
