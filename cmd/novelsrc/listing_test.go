package main_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fwojciec/novelsrc"
	main "github.com/fwojciec/novelsrc/cmd/novelsrc"
	"github.com/fwojciec/novelsrc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const popularPage1 = `<div class="list">
<div class="novel"><a href="/novel/alpha/">Alpha Sword</a></div>
<div class="novel"><a href="/novel/beta/">Beta Tower</a></div>
</div>`

const popularPage2 = `<div class="list">
<div class="novel"><a href="/novel/gamma/">Gamma Gate</a></div>
</div>`

const novelPage = `<html><body>
<h1>Alpha Sword</h1>
<span class="author">Lin Feng</span>
<span class="status">Ongoing</span>
<span class="genre">Action</span><span class="genre">Xianxia</span>
<ul>
<li class="chapter"><a href="/novel/alpha/chapter-1/">Chapter 1: Rain</a></li>
<li class="chapter"><a href="/novel/alpha/chapter-2/">Chapter 2: Gate</a></li>
<li class="chapter"><a href="/novel/alpha/chapter-3/">Chapter 3: Storm</a></li>
</ul>
</body></html>`

func TestPopularCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints one listing page", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{
			"https://novels.example/popular?page=1": popularPage1,
		})
		deps, stdout, _ := newDeps(s)

		err := (&main.PopularCmd{Source: writeConfig(t, testConfig()), Page: 1}).Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "Alpha Sword")
		assert.Contains(t, out, "https://novels.example/novel/alpha/")
		assert.Contains(t, out, "Beta Tower")
	})

	t.Run("walks pages until an empty page", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{
			"https://novels.example/popular?page=1": popularPage1,
			"https://novels.example/popular?page=2": popularPage2,
			"https://novels.example/popular?page=3": `<div class="list"></div>`,
		})
		deps, stdout, _ := newDeps(s)

		err := (&main.PopularCmd{Source: writeConfig(t, testConfig()), Page: 1, Pages: 5, JSON: true}).Run(deps)

		require.NoError(t, err)
		var items []novelsrc.NovelItem
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &items))
		require.Len(t, items, 3)
		assert.Equal(t, "Gamma Gate", items[2].Title)
		assert.Len(t, s.urls(), 3)
	})

	t.Run("prints an empty JSON array for an empty page", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{
			"https://novels.example/popular?page=4": `<p>Nothing here</p>`,
		})
		deps, stdout, _ := newDeps(s)

		err := (&main.PopularCmd{Source: writeConfig(t, testConfig()), Page: 4, JSON: true}).Run(deps)

		require.NoError(t, err)
		assert.JSONEq(t, "[]", stdout.String())
	})

	t.Run("loads a stored source by name", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{
			"https://novels.example/popular?page=1": popularPage1,
		})
		deps, stdout, _ := newDeps(s)
		deps.Sources = &mock.SourceService{
			FindSourceByNameFn: func(_ context.Context, name string) (*novelsrc.Source, error) {
				assert.Equal(t, "Test Novels", name)
				return &novelsrc.Source{ID: "src-1", Config: testConfig()}, nil
			},
		}

		err := (&main.PopularCmd{Source: "Test Novels", Page: 1}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Alpha Sword")
	})

	t.Run("reports unknown sources", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(newSite(nil))
		deps.Sources = &mock.SourceService{FindSourceByNameFn: notFound}

		err := (&main.PopularCmd{Source: "missing", Page: 1}).Run(deps)

		assert.Equal(t, novelsrc.ENOTFOUND, novelsrc.ErrorCode(err))
		assert.Contains(t, stderr.String(), `source "missing" not found`)
	})

	t.Run("uses the browser fetcher for protected sites", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.UseCloudflareBypass = true
		s := newSite(map[string]string{
			"https://novels.example/popular?page=1": popularPage1,
		})
		deps, _, _ := newDeps(s)
		var browser bool
		deps.Fetchers = func(b bool) (novelsrc.Fetcher, error) {
			browser = b
			return s.fetcher(), nil
		}

		err := (&main.PopularCmd{Source: writeConfig(t, cfg), Page: 1}).Run(deps)

		require.NoError(t, err)
		assert.True(t, browser)
	})
}

func TestLatestCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("falls back to the popular listing", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{
			"https://novels.example/popular?page=2": popularPage2,
		})
		deps, stdout, _ := newDeps(s)

		err := (&main.LatestCmd{Source: writeConfig(t, testConfig()), Page: 2}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Gamma Gate")
	})
}

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("encodes the query into the search URL", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{
			"https://novels.example/search?q=sword%20saint&page=1": popularPage1,
		})
		deps, stdout, _ := newDeps(s)

		err := (&main.SearchCmd{Source: writeConfig(t, testConfig()), Query: "sword saint", Page: 1}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Alpha Sword")
	})

	t.Run("reports fetch failures", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(newSite(nil))

		err := (&main.SearchCmd{Source: writeConfig(t, testConfig()), Query: "x", Page: 1}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, novelsrc.ENOTFOUND, novelsrc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestNovelCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints novel details", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{
			"https://novels.example/novel/alpha/": novelPage,
		})
		deps, stdout, _ := newDeps(s)

		err := (&main.NovelCmd{Source: writeConfig(t, testConfig()), URL: "https://novels.example/novel/alpha/"}).Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "Alpha Sword")
		assert.Contains(t, out, "Lin Feng")
		assert.Contains(t, out, "ongoing")
		assert.Contains(t, out, "Action, Xianxia")
	})

	t.Run("prints JSON", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{
			"https://novels.example/novel/alpha/": novelPage,
		})
		deps, stdout, _ := newDeps(s)

		err := (&main.NovelCmd{Source: writeConfig(t, testConfig()), URL: "https://novels.example/novel/alpha/", JSON: true}).Run(deps)

		require.NoError(t, err)
		var novel novelsrc.NovelDetail
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &novel))
		assert.Equal(t, "Alpha Sword", novel.Title)
		assert.Equal(t, novelsrc.StatusOngoing, novel.Status)
		assert.Equal(t, []string{"Action", "Xianxia"}, novel.Genres)
	})
}

func TestChaptersCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists chapters in reading order", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{
			"https://novels.example/novel/alpha/": novelPage,
		})
		deps, stdout, _ := newDeps(s)

		err := (&main.ChaptersCmd{Source: writeConfig(t, testConfig()), URL: "https://novels.example/novel/alpha/", JSON: true}).Run(deps)

		require.NoError(t, err)
		var list novelsrc.ChapterList
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &list))
		require.Len(t, list.Chapters, 3)
		assert.Equal(t, 1, list.Chapters[0].Position)
		assert.Equal(t, "Chapter 1: Rain", list.Chapters[0].Name)
		assert.Equal(t, "https://novels.example/novel/alpha/chapter-3/", list.Chapters[2].URL)
	})

	t.Run("prints a message when no chapters are found", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{
			"https://novels.example/novel/empty/": `<h1>Empty</h1>`,
		})
		deps, stdout, _ := newDeps(s)

		err := (&main.ChaptersCmd{Source: writeConfig(t, testConfig()), URL: "https://novels.example/novel/empty/"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No chapters found.")
	})
}
