package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/dictscrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Config dictscrape.Config

	Sources     *dictscrape.Registry
	Lookups     dictscrape.LookupService
	Converter   dictscrape.Converter
	Notes       dictscrape.NoteStore
	RateLimiter dictscrape.DomainLimiter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string        `help:"Config file (default ~/.dictscrape/config.toml)" env:"DICTSCRAPE_CONFIG" type:"path"`
	DB      string        `help:"Lookup history database" env:"DICTSCRAPE_DB" type:"path"`
	Timeout time.Duration `help:"Per-page fetch timeout"`
	Browser bool          `help:"Fetch pages with headless Chrome"`
	Verbose bool          `short:"v" help:"Log requests and searches to stderr"`

	Lookup  LookupCmd  `cmd:"" help:"Look up a word or phrase"`
	URL     URLCmd     `cmd:"" name:"url" help:"Print the source page URL for a query"`
	Batch   BatchCmd   `cmd:"" help:"Look up every line of a file (- for stdin)"`
	History HistoryCmd `cmd:"" help:"Browse recorded lookups"`
	Sources SourcesCmd `cmd:"" help:"List available sources"`
}

// LookupCmd is the "lookup" subcommand.
type LookupCmd struct {
	Query  string   `arg:"" help:"Word or phrase to look up"`
	Source []string `short:"s" help:"Source to search (repeatable, default from config)"`
	Lang   string   `short:"l" help:"Target language: en, jp, kr, fr, de, es, enjp"`
	Format string   `short:"f" enum:"html,markdown,json" default:"html" help:"Output format (html, markdown, json)"`
	Save   bool     `help:"Record the lookup in the history database"`
	Export string   `help:"Write the result as a Markdown note under DIR" placeholder:"DIR" type:"path"`
}

// URLCmd is the "url" subcommand.
type URLCmd struct {
	Query  string   `arg:"" help:"Word or phrase"`
	Source []string `short:"s" help:"Source (repeatable, default from config)"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	File        string   `arg:"" help:"File with one query per line, or - for stdin"`
	Source      []string `short:"s" help:"Source to search (repeatable, default from config)"`
	Lang        string   `short:"l" help:"Target language: en, jp, kr, fr, de, es, enjp"`
	Format      string   `short:"f" enum:"html,markdown,json" default:"json" help:"Output format (html, markdown, json)"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent lookup limit"`
	Rate        float64  `help:"Requests per second per source (default from config)"`
	Save        bool     `help:"Record every lookup in the history database"`
	Export      string   `help:"Write results as Markdown notes under DIR" placeholder:"DIR" type:"path"`
}

// HistoryCmd is the "history" command group.
type HistoryCmd struct {
	List   HistoryListCmd   `cmd:"" default:"withargs" help:"List recorded lookups, newest first"`
	Show   HistoryShowCmd   `cmd:"" help:"Print a recorded lookup"`
	Delete HistoryDeleteCmd `cmd:"" help:"Delete a recorded lookup"`
}

// HistoryListCmd is the "history list" subcommand.
type HistoryListCmd struct {
	Source string `short:"s" help:"Only lookups from this source"`
	Query  string `short:"q" help:"Only lookups for this query"`
	Kind   string `short:"k" help:"Only lookups with this outcome kind: notfound, related, lex, network_error"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of lookups"`
	Offset int    `help:"Skip this many lookups"`
}

// HistoryShowCmd is the "history show" subcommand.
type HistoryShowCmd struct {
	ID     string `arg:"" help:"Lookup ID"`
	Format string `short:"f" enum:"html,markdown,json" default:"html" help:"Output format (html, markdown, json)"`
}

// HistoryDeleteCmd is the "history delete" subcommand.
type HistoryDeleteCmd struct {
	ID string `arg:"" help:"Lookup ID"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}
