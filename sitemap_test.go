package novelsrc_test

import (
	"testing"

	"github.com/fwojciec/novelsrc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewURLFilter(t *testing.T) {
	t.Parallel()

	t.Run("returns nil without patterns", func(t *testing.T) {
		t.Parallel()

		f, err := novelsrc.NewURLFilter(nil, nil)

		require.NoError(t, err)
		assert.Nil(t, f)
		assert.True(t, f.Match("https://novels.example/anything"))
	})

	t.Run("compiles include and exclude patterns", func(t *testing.T) {
		t.Parallel()

		f, err := novelsrc.NewURLFilter([]string{`/novel/`}, []string{`/chapter-`})

		require.NoError(t, err)
		assert.True(t, f.Match("https://novels.example/novel/a/"))
		assert.False(t, f.Match("https://novels.example/novel/a/chapter-1/"))
		assert.False(t, f.Match("https://novels.example/tag/a/"))
	})

	t.Run("rejects invalid patterns", func(t *testing.T) {
		t.Parallel()

		_, err := novelsrc.NewURLFilter([]string{`(`}, nil)

		assert.Equal(t, novelsrc.EINVALID, novelsrc.ErrorCode(err))
	})
}
