package main_test

import (
	"testing"

	"github.com/fwojciec/novelsrc"
	main "github.com/fwojciec/novelsrc/cmd/novelsrc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints filtered sitemap URLs", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{
			"https://novels.example/sitemap.xml": `<urlset>
<url><loc>https://novels.example/novel/alpha/</loc></url>
<url><loc>https://novels.example/novel/alpha/chapter-1/</loc></url>
<url><loc>https://novels.example/novel/beta/</loc></url>
</urlset>`,
		})
		deps, stdout, _ := newDeps(s)

		err := (&main.SitemapCmd{Source: writeConfig(t, testConfig()), Exclude: []string{`/chapter-\d+/`}}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "https://novels.example/novel/alpha/\nhttps://novels.example/novel/beta/\n", stdout.String())
	})

	t.Run("reports sites without sitemaps", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps(newSite(nil))

		err := (&main.SitemapCmd{Source: writeConfig(t, testConfig())}).Run(deps)

		require.NoError(t, err)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "No sitemap URLs found")
	})

	t.Run("rejects invalid patterns", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps(newSite(nil))

		err := (&main.SitemapCmd{Source: writeConfig(t, testConfig()), Include: []string{"("}}).Run(deps)

		assert.Equal(t, novelsrc.EINVALID, novelsrc.ErrorCode(err))
	})
}
