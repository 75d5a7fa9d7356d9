//go:build integration

package rod_test

import (
	"testing"

	"github.com/fwojciec/novelsrc/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserManager_Browser(t *testing.T) {
	t.Parallel()

	t.Run("keeps the browser below the page limit", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(5))
		require.NoError(t, err)
		t.Cleanup(func() { _ = manager.Close() })

		browser := manager.Browser()
		require.NotNil(t, browser)
		for range 4 {
			manager.IncrementPageCount()
		}

		assert.Same(t, browser, manager.Browser())
	})

	t.Run("launches a new browser once the page limit is reached", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(2))
		require.NoError(t, err)
		t.Cleanup(func() { _ = manager.Close() })

		browser := manager.Browser()
		require.NotNil(t, browser)
		manager.IncrementPageCount()
		manager.IncrementPageCount()

		recycled := manager.Browser()
		require.NotNil(t, recycled)
		assert.NotSame(t, browser, recycled)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager()
		require.NoError(t, err)

		require.NoError(t, manager.Close())
		assert.NoError(t, manager.Close())
	})
}
