//go:build integration

package rod_test

import (
	"testing"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserManager_Acquire(t *testing.T) {
	t.Parallel()

	t.Run("replaces browser after budget", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(2))
		require.NoError(t, err)
		defer manager.Close()

		first, release, err := manager.Acquire()
		require.NoError(t, err)
		release()
		_, release, err = manager.Acquire()
		require.NoError(t, err)
		release()

		third, release, err := manager.Acquire()
		require.NoError(t, err)
		defer release()

		assert.NotSame(t, first, third)
	})

	t.Run("keeps browser within budget", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(5))
		require.NoError(t, err)
		defer manager.Close()

		first, release, err := manager.Acquire()
		require.NoError(t, err)
		release()
		release()

		second, release, err := manager.Acquire()
		require.NoError(t, err)
		defer release()

		assert.Same(t, first, second)
	})

	t.Run("fails after close", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager()
		require.NoError(t, err)
		require.NoError(t, manager.Close())
		require.NoError(t, manager.Close())

		_, _, err = manager.Acquire()

		assert.Equal(t, novelsrc.EINVALID, novelsrc.ErrorCode(err))
	})
}
