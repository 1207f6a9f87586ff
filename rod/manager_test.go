//go:build integration

package rod_test

import (
	"testing"

	"github.com/fwojciec/dictscrape/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserManager_Browser(t *testing.T) {
	t.Parallel()

	t.Run("relaunches once the page limit is reached", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(2))
		require.NoError(t, err)
		defer manager.Close()

		before := manager.LauncherPID()
		require.NotNil(t, manager.Browser())
		manager.IncrementPageCount()
		manager.IncrementPageCount()

		require.NotNil(t, manager.Browser())

		assert.NotEqual(t, before, manager.LauncherPID())
	})

	t.Run("starts counting again after a relaunch", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(1))
		require.NoError(t, err)
		defer manager.Close()

		manager.IncrementPageCount()
		relaunched := manager.Browser()

		assert.Same(t, relaunched, manager.Browser())
	})

	t.Run("keeps the browser below the page limit", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(3))
		require.NoError(t, err)
		defer manager.Close()

		first := manager.Browser()
		pid := manager.LauncherPID()
		manager.IncrementPageCount()
		manager.IncrementPageCount()

		assert.Same(t, first, manager.Browser())
		assert.Equal(t, pid, manager.LauncherPID())
	})

	t.Run("never relaunches without a page limit", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(0))
		require.NoError(t, err)
		defer manager.Close()

		first := manager.Browser()
		for range 10 {
			manager.IncrementPageCount()
		}

		assert.Same(t, first, manager.Browser())
	})
}

func TestBrowserManager_Close(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)
	require.NotZero(t, manager.LauncherPID())

	require.NoError(t, manager.Close())
	require.NoError(t, manager.Close())

	assert.Zero(t, manager.LauncherPID())
}
