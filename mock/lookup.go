package mock

import (
	"context"

	"github.com/fwojciec/dictscrape"
)

var _ dictscrape.LookupService = (*LookupService)(nil)

// LookupService is a mock implementation of dictscrape.LookupService.
type LookupService struct {
	CreateLookupFn   func(ctx context.Context, lookup *dictscrape.Lookup) error
	FindLookupByIDFn func(ctx context.Context, id string) (*dictscrape.Lookup, error)
	FindLookupsFn    func(ctx context.Context, filter dictscrape.LookupFilter) ([]*dictscrape.Lookup, error)
	DeleteLookupFn   func(ctx context.Context, id string) error
}

func (s *LookupService) CreateLookup(ctx context.Context, lookup *dictscrape.Lookup) error {
	return s.CreateLookupFn(ctx, lookup)
}

func (s *LookupService) FindLookupByID(ctx context.Context, id string) (*dictscrape.Lookup, error) {
	return s.FindLookupByIDFn(ctx, id)
}

func (s *LookupService) FindLookups(ctx context.Context, filter dictscrape.LookupFilter) ([]*dictscrape.Lookup, error) {
	return s.FindLookupsFn(ctx, filter)
}

func (s *LookupService) DeleteLookup(ctx context.Context, id string) error {
	return s.DeleteLookupFn(ctx, id)
}
