package pipeline_test

import (
	"testing"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/mock"
	"github.com/fwojciec/novelsrc/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubSource(id string) *mock.Source {
	return &mock.Source{IDFn: func() string { return id }}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("zero value registers sources", func(t *testing.T) {
		t.Parallel()

		var r pipeline.Registry
		require.NoError(t, r.Register(stubSource("madara")))

		src, err := r.Get("madara")

		require.NoError(t, err)
		assert.Equal(t, "madara", src.ID())
	})

	t.Run("lists sources sorted by id", func(t *testing.T) {
		t.Parallel()

		r, err := pipeline.NewRegistry(stubSource("b"), stubSource("c"), stubSource("a"))
		require.NoError(t, err)

		var ids []string
		for _, src := range r.List() {
			ids = append(ids, src.ID())
		}
		assert.Equal(t, []string{"a", "b", "c"}, ids)
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		t.Parallel()

		_, err := pipeline.NewRegistry(stubSource("a"), stubSource("a"))

		assert.Equal(t, novelsrc.EINVALID, novelsrc.ErrorCode(err))
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		t.Parallel()

		r, err := pipeline.NewRegistry()
		require.NoError(t, err)

		_, err = r.Get("missing")

		assert.Equal(t, novelsrc.ENOTFOUND, novelsrc.ErrorCode(err))
	})

	t.Run("close empties the registry", func(t *testing.T) {
		t.Parallel()

		r, err := pipeline.NewRegistry(stubSource("a"))
		require.NoError(t, err)

		require.NoError(t, r.Close())

		assert.Empty(t, r.List())
		_, err = r.Get("a")
		assert.Error(t, err)
	})
}
