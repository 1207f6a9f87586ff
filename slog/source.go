package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/dictscrape"
)

// Ensure LoggingSource implements dictscrape.Source.
var _ dictscrape.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source with logging of every search and the outcome
// it was classified as.
type LoggingSource struct {
	next   dictscrape.Source
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next dictscrape.Source, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Name delegates to the wrapped source.
func (s *LoggingSource) Name() string {
	return s.next.Name()
}

// SourceURL delegates to the wrapped source.
func (s *LoggingSource) SourceURL(query string) string {
	return s.next.SourceURL(query)
}

// Search delegates to the wrapped source and logs the outcome kind.
// Network errors are reported as outcomes, so they are logged at warn level
// with the underlying cause.
func (s *LoggingSource) Search(ctx context.Context, query string, cfg dictscrape.SourceConfig) (o dictscrape.Outcome, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"source", s.next.Name(),
			"query", query,
			"lang", string(cfg.Lang),
			"duration", time.Since(begin),
		}
		level := slog.LevelInfo
		switch v := o.(type) {
		case nil:
			attrs = append(attrs, "err", err)
		case *dictscrape.NetworkError:
			level = slog.LevelWarn
			attrs = append(attrs, "kind", string(v.Kind()), "cause", v.Err)
		case *dictscrape.LexicalEntry:
			attrs = append(attrs, "kind", string(v.Kind()), "entries", len(v.Entries))
		default:
			attrs = append(attrs, "kind", string(v.Kind()))
		}
		s.logger.Log(ctx, level, "search", attrs...)
	}(time.Now())
	return s.next.Search(ctx, query, cfg)
}

// WrapRegistry returns a registry whose sources all log their searches.
func WrapRegistry(r *dictscrape.Registry, logger *slog.Logger) *dictscrape.Registry {
	wrapped := dictscrape.NewRegistry()
	for _, name := range r.List() {
		src, err := r.Get(name)
		if err != nil {
			continue
		}
		wrapped.Register(NewLoggingSource(src, logger))
	}
	return wrapped
}
