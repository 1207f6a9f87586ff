package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/dictscrape"
)

// Ensure LoggingLookupService implements dictscrape.LookupService.
var _ dictscrape.LookupService = (*LoggingLookupService)(nil)

// LoggingLookupService wraps a LookupService with logging of writes and
// history queries.
type LoggingLookupService struct {
	next   dictscrape.LookupService
	logger *slog.Logger
}

// NewLoggingLookupService creates a new LoggingLookupService.
func NewLoggingLookupService(next dictscrape.LookupService, logger *slog.Logger) *LoggingLookupService {
	return &LoggingLookupService{next: next, logger: logger}
}

// CreateLookup delegates to the wrapped service and logs the stored lookup.
func (s *LoggingLookupService) CreateLookup(ctx context.Context, lookup *dictscrape.Lookup) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("lookup saved",
			"id", lookup.ID,
			"source", lookup.Source,
			"query", lookup.Query,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateLookup(ctx, lookup)
}

// FindLookupByID delegates to the wrapped service.
func (s *LoggingLookupService) FindLookupByID(ctx context.Context, id string) (*dictscrape.Lookup, error) {
	return s.next.FindLookupByID(ctx, id)
}

// FindLookups delegates to the wrapped service and logs the result count.
func (s *LoggingLookupService) FindLookups(ctx context.Context, filter dictscrape.LookupFilter) (lookups []*dictscrape.Lookup, err error) {
	defer func(begin time.Time) {
		s.logger.Info("lookup history",
			"count", len(lookups),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindLookups(ctx, filter)
}

// DeleteLookup delegates to the wrapped service.
func (s *LoggingLookupService) DeleteLookup(ctx context.Context, id string) error {
	return s.next.DeleteLookup(ctx, id)
}
