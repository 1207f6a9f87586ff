package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/dictscrape"
	"github.com/fwojciec/dictscrape/mock"
	dsslog "github.com/fwojciec/dictscrape/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchingSource(o dictscrape.Outcome, err error) *mock.Source {
	return &mock.Source{
		NameFn:      func() string { return "hjdict" },
		SourceURLFn: func(query string) string { return "https://www.dict.hujiang.com/w/" + query },
		SearchFn: func(ctx context.Context, query string, cfg dictscrape.SourceConfig) (dictscrape.Outcome, error) {
			return o, err
		},
	}
}

func TestLoggingSource_Search(t *testing.T) {
	t.Parallel()

	t.Run("logs the outcome kind", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		want := &dictscrape.LexicalEntry{Entries: []dictscrape.Markup{"a", "b"}}
		src := dsslog.NewLoggingSource(searchingSource(want, nil), logger)

		got, err := src.Search(context.Background(), "hello", dictscrape.SourceConfig{Lang: dictscrape.LangEnglish})

		require.NoError(t, err)
		assert.Same(t, want, got)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "msg=search")
		assert.Contains(t, output, "source=hjdict")
		assert.Contains(t, output, "query=hello")
		assert.Contains(t, output, "lang=en")
		assert.Contains(t, output, "kind=lex")
		assert.Contains(t, output, "entries=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs network errors at warn level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		src := dsslog.NewLoggingSource(searchingSource(&dictscrape.NetworkError{Err: errors.New("HTTP 503")}, nil), logger)

		_, err := src.Search(context.Background(), "hello", dictscrape.SourceConfig{})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "kind=network_error")
		assert.Contains(t, output, `cause="HTTP 503"`)
	})

	t.Run("logs invalid input errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		src := dsslog.NewLoggingSource(searchingSource(nil, dictscrape.Errorf(dictscrape.EINVALID, "query required")), logger)

		_, err := src.Search(context.Background(), "", dictscrape.SourceConfig{})

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="query required"`)
	})
}

func TestLoggingSource_Delegates(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	src := dsslog.NewLoggingSource(searchingSource(nil, nil), logger)

	assert.Equal(t, "hjdict", src.Name())
	assert.Equal(t, "https://www.dict.hujiang.com/w/hello", src.SourceURL("hello"))
}

func TestWrapRegistry(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	registry := dictscrape.NewRegistry(searchingSource(&dictscrape.NotFound{}, nil))

	wrapped := dsslog.WrapRegistry(registry, logger)
	src, err := wrapped.Get("hjdict")
	require.NoError(t, err)

	_, err = src.Search(context.Background(), "hello", dictscrape.SourceConfig{})

	require.NoError(t, err)
	assert.Equal(t, []string{"hjdict"}, wrapped.List())
	assert.Contains(t, buf.String(), "kind=notfound")
}
