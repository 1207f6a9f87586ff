package mock

import (
	"context"

	"github.com/fwojciec/dictscrape"
)

var _ dictscrape.Source = (*Source)(nil)

// Source is a mock implementation of dictscrape.Source.
type Source struct {
	NameFn      func() string
	SourceURLFn func(query string) string
	SearchFn    func(ctx context.Context, query string, cfg dictscrape.SourceConfig) (dictscrape.Outcome, error)
}

func (s *Source) Name() string {
	return s.NameFn()
}

func (s *Source) SourceURL(query string) string {
	return s.SourceURLFn(query)
}

func (s *Source) Search(ctx context.Context, query string, cfg dictscrape.SourceConfig) (dictscrape.Outcome, error) {
	return s.SearchFn(ctx, query, cfg)
}

var _ dictscrape.RandomSource = (*RandomSource)(nil)

// RandomSource is a mock implementation of dictscrape.RandomSource.
type RandomSource struct {
	IntNFn func(n int) int
}

func (r *RandomSource) IntN(n int) int {
	return r.IntNFn(n)
}
