//go:build integration && !windows

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/dictscrape"
	"github.com/fwojciec/dictscrape/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// processAlive reports whether pid exists. Signal 0 checks without
// delivering anything.
func processAlive(pid int) bool {
	return syscall.Kill(pid, syscall.Signal(0)) == nil
}

func TestFetcher_WithRecycleAfter(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		cookies []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("HJ_UID"); err == nil {
			mu.Lock()
			cookies = append(cookies, c.Value)
			mu.Unlock()
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><div class="word-details-pane">ok</div></body></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.WithRecycleAfter(1))
	require.NoError(t, err)
	defer fetcher.Close()

	first := fetcher.LauncherPID()
	_, err = fetcher.Fetch(context.Background(), srv.URL, dictscrape.FetchOptions{
		Cookies: []dictscrape.Cookie{{Name: "HJ_UID", Value: "first-session"}},
	})
	require.NoError(t, err)

	html, err := fetcher.Fetch(context.Background(), srv.URL, dictscrape.FetchOptions{
		Cookies: []dictscrape.Cookie{{Name: "HJ_UID", Value: "second-session"}},
	})
	require.NoError(t, err)

	second := fetcher.LauncherPID()
	assert.Contains(t, html, "word-details-pane")
	assert.NotEqual(t, first, second, "browser should be relaunched after one page")

	time.Sleep(100 * time.Millisecond)
	assert.False(t, processAlive(first), "replaced launcher should be terminated")
	assert.True(t, processAlive(second))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"first-session", "second-session"}, cookies)
}

func TestFetcher_Close_TerminatesLauncher(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)

	pid := fetcher.LauncherPID()
	require.NotZero(t, pid)
	require.True(t, processAlive(pid))

	require.NoError(t, fetcher.Close())
	time.Sleep(100 * time.Millisecond)

	assert.False(t, processAlive(pid), "launcher should be terminated after Close")
}
