package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/dictscrape"
	"github.com/fwojciec/dictscrape/fs"
	"github.com/fwojciec/dictscrape/goquery"
	"github.com/fwojciec/dictscrape/htmltomarkdown"
	dshttp "github.com/fwojciec/dictscrape/http"
	"github.com/fwojciec/dictscrape/lookup"
	"github.com/fwojciec/dictscrape/rod"
	dsslog "github.com/fwojciec/dictscrape/slog"
	"github.com/fwojciec/dictscrape/sqlite"
	"github.com/fwojciec/dictscrape/toml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin feeds "batch -". Set before calling Run().
	Stdin io.Reader

	// SQLite database used by the lookup history, opened on demand.
	DB *sqlite.DB

	// Fetcher used by sources, created on demand.
	Fetcher dictscrape.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	if m.Fetcher != nil {
		if err := m.Fetcher.Close(); err != nil {
			firstErr = err
		}
	}
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("dictscrape"),
		kong.Description("Look up words on dictionary websites"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'dictscrape --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd = strings.Fields(kongCtx.Command())[0]

	cfg, err := toml.LoadConfig(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cli.Timeout > 0 {
		cfg.Timeout = cli.Timeout
	}
	if cli.DB != "" {
		cfg.DBPath = cli.DB
	}

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	deps := &Dependencies{
		Ctx:       ctx,
		Stdin:     m.Stdin,
		Stdout:    stdout,
		Stderr:    stderr,
		Config:    cfg,
		Converter: htmltomarkdown.NewConverter(),
	}
	defer m.Close()

	// Fetching commands get a live transport; the rest only build URLs.
	var fetcher dictscrape.Fetcher
	if cmd == "lookup" || cmd == "batch" {
		if cli.Browser {
			rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(cfg.Timeout))
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			m.Fetcher = rodFetcher
		} else {
			opts := []dshttp.Option{dshttp.WithTimeout(cfg.Timeout)}
			if cfg.UserAgent != "" {
				opts = append(opts, dshttp.WithUserAgent(cfg.UserAgent))
			}
			m.Fetcher = dshttp.NewFetcher(opts...)
		}
		fetcher = dsslog.NewLoggingFetcher(m.Fetcher, logger)
	}
	deps.Sources = dsslog.WrapRegistry(goquery.NewRegistry(fetcher), logger)

	if cmd == "history" || (cmd == "lookup" && cli.Lookup.Save) || (cmd == "batch" && cli.Batch.Save) {
		if cfg.DBPath == "" {
			return dictscrape.Errorf(dictscrape.EINVALID, "history is disabled: set db_path in the config or pass --db")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
		m.DB = sqlite.NewDB(cfg.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set DICTSCRAPE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cfg.DBPath, err)
		}
		deps.Lookups = dsslog.NewLoggingLookupService(sqlite.NewLookupService(m.DB), logger)
	}

	exportDir := ""
	switch cmd {
	case "lookup":
		exportDir = cli.Lookup.Export
	case "batch":
		exportDir = cli.Batch.Export
	}
	if exportDir != "" {
		deps.Notes = fs.NewFileStore(exportDir)
	}

	if cmd == "batch" {
		rate := cfg.Rate
		if cli.Batch.Rate > 0 {
			rate = cli.Batch.Rate
		}
		deps.RateLimiter = lookup.NewDomainLimiter(rate)
	}

	return kongCtx.Run(deps)
}
