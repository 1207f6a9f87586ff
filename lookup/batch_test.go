package lookup_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/dictscrape"
	"github.com/fwojciec/dictscrape/lookup"
	"github.com/fwojciec/dictscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoSource(name string) *mock.Source {
	return &mock.Source{
		NameFn:      func() string { return name },
		SourceURLFn: func(query string) string { return "https://" + name + ".example.com/" + query },
		SearchFn: func(ctx context.Context, query string, cfg dictscrape.SourceConfig) (dictscrape.Outcome, error) {
			return &dictscrape.Related{Content: dictscrape.Markup(name + ":" + query)}, nil
		},
	}
}

func TestBatch_Run(t *testing.T) {
	t.Parallel()

	t.Run("returns results in input order", func(t *testing.T) {
		t.Parallel()

		slow := echoSource("hjdict")
		inner := slow.SearchFn
		slow.SearchFn = func(ctx context.Context, query string, cfg dictscrape.SourceConfig) (dictscrape.Outcome, error) {
			if query == "a" {
				time.Sleep(30 * time.Millisecond)
			}
			return inner(ctx, query, cfg)
		}
		b := &lookup.Batch{
			Sources:     dictscrape.NewRegistry(slow, echoSource("jukuu")),
			Concurrency: 4,
		}

		summary, err := b.Run(context.Background(), []string{"a", "b"}, []string{"hjdict", "jukuu"}, dictscrape.SourceConfig{}, nil)

		require.NoError(t, err)
		require.Len(t, summary.Results, 4)
		var got []string
		for _, r := range summary.Results {
			got = append(got, string(dictscrape.OutcomeHTML(r.Outcome)))
		}
		assert.Equal(t, []string{"hjdict:a", "jukuu:a", "hjdict:b", "jukuu:b"}, got)
		assert.Equal(t, "https://hjdict.example.com/a", summary.Results[0].SourceURL)
	})

	t.Run("skips duplicate and blank queries", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var searched []string
		src := echoSource("hjdict")
		src.SearchFn = func(ctx context.Context, query string, cfg dictscrape.SourceConfig) (dictscrape.Outcome, error) {
			mu.Lock()
			searched = append(searched, query)
			mu.Unlock()
			return &dictscrape.NotFound{}, nil
		}
		b := &lookup.Batch{Sources: dictscrape.NewRegistry(src), Concurrency: 1}

		summary, err := b.Run(context.Background(), []string{"hello", " hello ", "", "world", "hello"}, []string{"hjdict"}, dictscrape.SourceConfig{}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"hello", "world"}, searched)
		assert.Equal(t, 3, summary.Skipped)
		assert.Len(t, summary.Results, 2)
		assert.Equal(t, []lookup.Job{
			{Source: "hjdict", Query: "hello"},
			{Source: "hjdict", Query: "hello"},
		}, summary.Duplicates)
	})

	t.Run("passes the source config through", func(t *testing.T) {
		t.Parallel()

		var got dictscrape.SourceConfig
		src := echoSource("hjdict")
		src.SearchFn = func(ctx context.Context, query string, cfg dictscrape.SourceConfig) (dictscrape.Outcome, error) {
			got = cfg
			return &dictscrape.NotFound{}, nil
		}
		b := &lookup.Batch{Sources: dictscrape.NewRegistry(src)}

		_, err := b.Run(context.Background(), []string{"x"}, []string{"hjdict"}, dictscrape.SourceConfig{Lang: dictscrape.LangKorean}, nil)

		require.NoError(t, err)
		assert.Equal(t, dictscrape.LangKorean, got.Lang)
	})

	t.Run("waits on the rate limiter per source", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		keys := map[string]int{}
		limiter := &mock.DomainLimiter{
			WaitFn: func(ctx context.Context, key string) error {
				mu.Lock()
				keys[key]++
				mu.Unlock()
				return nil
			},
		}
		b := &lookup.Batch{
			Sources:     dictscrape.NewRegistry(echoSource("hjdict"), echoSource("jukuu")),
			RateLimiter: limiter,
		}

		_, err := b.Run(context.Background(), []string{"a", "b", "c"}, []string{"hjdict", "jukuu"}, dictscrape.SourceConfig{}, nil)

		require.NoError(t, err)
		assert.Equal(t, map[string]int{"hjdict": 3, "jukuu": 3}, keys)
	})

	t.Run("counts network errors as failures", func(t *testing.T) {
		t.Parallel()

		src := echoSource("hjdict")
		src.SearchFn = func(ctx context.Context, query string, cfg dictscrape.SourceConfig) (dictscrape.Outcome, error) {
			if query == "down" {
				return &dictscrape.NetworkError{Err: errors.New("HTTP 502")}, nil
			}
			return &dictscrape.NotFound{}, nil
		}
		var failed []lookup.ProgressEvent
		progress := func(e lookup.ProgressEvent) {
			if e.Type == lookup.ProgressFailed {
				failed = append(failed, e)
			}
		}
		b := &lookup.Batch{Sources: dictscrape.NewRegistry(src)}

		summary, err := b.Run(context.Background(), []string{"up", "down"}, []string{"hjdict"}, dictscrape.SourceConfig{}, progress)

		require.NoError(t, err)
		assert.Equal(t, 1, summary.Failed)
		require.Len(t, failed, 1)
		assert.Equal(t, "down", failed[0].Job.Query)
		assert.EqualError(t, failed[0].Error, "HTTP 502")
	})

	t.Run("records successful lookups", func(t *testing.T) {
		t.Parallel()

		src := echoSource("hjdict")
		src.SearchFn = func(ctx context.Context, query string, cfg dictscrape.SourceConfig) (dictscrape.Outcome, error) {
			if query == "down" {
				return &dictscrape.NetworkError{}, nil
			}
			return &dictscrape.NotFound{}, nil
		}
		var saved []*dictscrape.Lookup
		lookups := &mock.LookupService{
			CreateLookupFn: func(ctx context.Context, l *dictscrape.Lookup) error {
				l.ID = fmt.Sprintf("id-%d", len(saved))
				saved = append(saved, l)
				return nil
			},
		}
		b := &lookup.Batch{Sources: dictscrape.NewRegistry(src), Lookups: lookups}

		summary, err := b.Run(context.Background(), []string{"up", "down", "over"}, []string{"hjdict"}, dictscrape.SourceConfig{}, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, summary.Saved)
		assert.Equal(t, 1, summary.Failed)
		require.Len(t, saved, 2)
		assert.Equal(t, "up", saved[0].Query)
		assert.Equal(t, "https://hjdict.example.com/up", saved[0].SourceURL)
		assert.Equal(t, "over", saved[1].Query)
		assert.Equal(t, "id-0", summary.Results[0].LookupID)
		assert.Empty(t, summary.Results[1].LookupID)
		assert.Equal(t, "id-1", summary.Results[2].LookupID)
	})

	t.Run("counts failed saves", func(t *testing.T) {
		t.Parallel()

		lookups := &mock.LookupService{
			CreateLookupFn: func(ctx context.Context, l *dictscrape.Lookup) error {
				return errors.New("database is locked")
			},
		}
		b := &lookup.Batch{Sources: dictscrape.NewRegistry(echoSource("hjdict")), Lookups: lookups}

		summary, err := b.Run(context.Background(), []string{"x"}, []string{"hjdict"}, dictscrape.SourceConfig{}, nil)

		require.NoError(t, err)
		assert.Equal(t, 0, summary.Saved)
		assert.Equal(t, 1, summary.Failed)
		assert.Error(t, summary.Results[0].Err)
	})

	t.Run("reports start and finish progress", func(t *testing.T) {
		t.Parallel()

		var events []lookup.ProgressEvent
		b := &lookup.Batch{Sources: dictscrape.NewRegistry(echoSource("hjdict")), Concurrency: 1}

		_, err := b.Run(context.Background(), []string{"a", "b"}, []string{"hjdict"}, dictscrape.SourceConfig{}, func(e lookup.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, lookup.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, lookup.ProgressCompleted, events[1].Type)
		assert.Equal(t, lookup.ProgressCompleted, events[2].Type)
		assert.Equal(t, lookup.ProgressFinished, events[3].Type)
		assert.Equal(t, 2, events[3].Completed)
	})

	t.Run("returns ENOTFOUND for unknown source", func(t *testing.T) {
		t.Parallel()

		b := &lookup.Batch{Sources: dictscrape.NewRegistry(echoSource("hjdict"))}

		_, err := b.Run(context.Background(), []string{"x"}, []string{"missing"}, dictscrape.SourceConfig{}, nil)

		assert.Equal(t, dictscrape.ENOTFOUND, dictscrape.ErrorCode(err))
	})

	t.Run("returns EINVALID without sources", func(t *testing.T) {
		t.Parallel()

		b := &lookup.Batch{Sources: dictscrape.NewRegistry()}

		_, err := b.Run(context.Background(), []string{"x"}, nil, dictscrape.SourceConfig{}, nil)

		assert.Equal(t, dictscrape.EINVALID, dictscrape.ErrorCode(err))
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		b := &lookup.Batch{Sources: dictscrape.NewRegistry(echoSource("hjdict"))}

		_, err := b.Run(ctx, []string{"x"}, []string{"hjdict"}, dictscrape.SourceConfig{}, nil)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
