package scrape_test

import (
	"testing"
	"time"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/finder"
	"github.com/fwojciec/novelsrc/goquery"
	"github.com/fwojciec/novelsrc/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// engines returns both query engines; parsers must agree on well-formed
// markup.
func engines() map[string]novelsrc.QueryEngine {
	return map[string]novelsrc.QueryEngine{
		"legacy": finder.NewEngine(),
		"dom":    goquery.NewEngine(),
	}
}

func madaraConfig() *novelsrc.SourceConfig {
	return &novelsrc.SourceConfig{
		Name:               "Novels",
		BaseURL:            "https://novels.example",
		SourceType:         novelsrc.FrameworkMadara,
		PopularURLTemplate: "{baseUrl}/manga/page/{page}/?m_orderby=views",
		SearchURLTemplate:  "{baseUrl}/page/{page}/?s={query}",
		Selectors: novelsrc.SourceSelectors{
			Listing: novelsrc.ListingSelectors{
				ItemContainer: ".page-item-detail",
				Link:          ".post-title a",
				Title:         ".post-title",
				Cover:         "img",
				NextPageLink:  ".nav-previous a",
			},
			Detail: novelsrc.DetailSelectors{
				Title:       ".post-title h1",
				Author:      ".author-content a",
				Artist:      ".artist-content a",
				Description: ".summary__content",
				Genre:       ".genres-content a",
				Status:      ".post-status .summary-content",
				Cover:       ".summary_image img",
			},
			Chapters: novelsrc.ChapterListSelectors{
				ItemContainer: ".wp-manga-chapter",
				Link:          "a",
				Name:          "a",
				Date:          ".chapter-release-date",
			},
			Content: novelsrc.ContentSelectors{
				Primary:         ".reading-content",
				Fallbacks:       []string{".text-left"},
				RemoveSelectors: []string{"script", ".ads"},
			},
		},
		NovelIDSelector: "#manga-chapters-holder",
		NovelIDAttr:     "data-id",
		ReverseChapters: true,
	}
}

const listingPage = `<div class="page-listing">
<div class="page-item-detail"><a href="/novel/alpha/" title="Alpha Novel"><img data-src="/covers/alpha.jpg" src="/placeholder.gif"></a><h3 class="post-title"><a href="/novel/alpha/">Alpha</a></h3></div>
<div class="page-item-detail"><a href="/novel/beta/"><img src="https://cdn.example/beta.jpg"></a><h3 class="post-title"><a href="/novel/beta/">Beta</a></h3></div>
<div class="page-item-detail"><h3 class="post-title"><a href="/novel/alpha/">Alpha again</a></h3></div>
<div class="page-item-detail"><span>No link</span></div>
</div>
<div class="nav-previous"><a href="/manga/page/2/">Older</a></div>`

func TestParseListing(t *testing.T) {
	t.Parallel()

	for name, engine := range engines() {
		t.Run("extracts novel cards with the "+name+" engine", func(t *testing.T) {
			t.Parallel()

			page := scrape.ParseListing(engine, madaraConfig(), "https://novels.example/manga/page/1/", listingPage, false)

			require.Len(t, page.Items, 2)
			assert.Equal(t, novelsrc.NovelItem{
				Title: "Alpha",
				URL:   "https://novels.example/novel/alpha/",
				Cover: "https://novels.example/covers/alpha.jpg",
			}, page.Items[0])
			assert.Equal(t, novelsrc.NovelItem{
				Title: "Beta",
				URL:   "https://novels.example/novel/beta/",
				Cover: "https://cdn.example/beta.jpg",
			}, page.Items[1])
			assert.Equal(t, "https://novels.example/manga/page/2/", page.NextPageURL)
		})
	}

	t.Run("derives the link and title when no selectors are set", func(t *testing.T) {
		t.Parallel()

		cfg := madaraConfig()
		cfg.Selectors.Listing = novelsrc.ListingSelectors{ItemContainer: ".item"}
		html := `<div class="item"><a href="gamma.html" title=" Gamma ">Read Gamma</a></div>
<a class="item" href="/n/delta">Delta</a>`

		page := scrape.ParseListing(finder.NewEngine(), cfg, "https://x.example/list/", html, false)

		require.Len(t, page.Items, 2)
		assert.Equal(t, "Gamma", page.Items[0].Title)
		assert.Equal(t, "https://x.example/list/gamma.html", page.Items[0].URL)
		assert.Empty(t, page.Items[0].Cover)
		assert.Equal(t, "Delta", page.Items[1].Title)
		assert.Equal(t, "https://x.example/n/delta", page.Items[1].URL)
	})

	t.Run("uses search selectors for search results", func(t *testing.T) {
		t.Parallel()

		cfg := madaraConfig()
		cfg.Selectors.Search = &novelsrc.ListingSelectors{ItemContainer: ".c-tabs-item__content"}
		html := `<div class="c-tabs-item__content"><a href="/novel/omega/">Omega</a></div>`

		page := scrape.ParseListing(finder.NewEngine(), cfg, "https://novels.example/?s=o", html, true)

		require.Len(t, page.Items, 1)
		assert.Equal(t, "Omega", page.Items[0].Title)
	})

	t.Run("reports a page without cards as empty", func(t *testing.T) {
		t.Parallel()

		page := scrape.ParseListing(finder.NewEngine(), madaraConfig(), "https://novels.example/", "<p>Nothing here</p>", false)

		assert.True(t, page.Empty())
		assert.NotNil(t, page.Items)
		assert.Empty(t, page.NextPageURL)
	})
}

const detailPage = `<div class="post-title"><h1>Alpha Novel</h1></div>
<div class="author-content"><a href="/author/jane/">Jane Doe</a></div>
<div class="genres-content"><a href="/g/action/">Action</a>, <a href="/g/fantasy/">Fantasy</a>, <a href="/g/action/">Action</a></div>
<div class="summary__content"><p>First paragraph.</p><p>Second &amp; last.</p></div>
<div class="post-status"><span class="summary-content">OnGoing</span></div>
<div class="summary_image"><img src="/c/alpha.jpg"></div>
<div id="manga-chapters-holder" data-id="1234"></div>`

func TestParseDetail(t *testing.T) {
	t.Parallel()

	for name, engine := range engines() {
		t.Run("extracts novel fields with the "+name+" engine", func(t *testing.T) {
			t.Parallel()

			d := scrape.ParseDetail(engine, madaraConfig(), "https://novels.example/novel/alpha/", detailPage)

			assert.Equal(t, &novelsrc.NovelDetail{
				URL:         "https://novels.example/novel/alpha/",
				NovelID:     "1234",
				Title:       "Alpha Novel",
				Author:      "Jane Doe",
				Description: "First paragraph. Second & last.",
				Genres:      []string{"Action", "Fantasy"},
				Status:      novelsrc.StatusOngoing,
				Cover:       "https://novels.example/c/alpha.jpg",
			}, d)
		})
	}

	t.Run("splits a comma separated genre element", func(t *testing.T) {
		t.Parallel()

		cfg := madaraConfig()
		cfg.Selectors.Detail.Genre = ".genres"

		d := scrape.ParseDetail(finder.NewEngine(), cfg, "https://novels.example/n/", `<h1>T</h1><span class="genres">Action, Drama</span>`)

		assert.Equal(t, []string{"Action", "Drama"}, d.Genres)
	})

	t.Run("leaves missing fields empty", func(t *testing.T) {
		t.Parallel()

		d := scrape.ParseDetail(finder.NewEngine(), madaraConfig(), "https://novels.example/n/", `<p>Broken page</p>`)

		assert.Empty(t, d.Title)
		assert.Empty(t, d.Author)
		assert.Nil(t, d.Genres)
		assert.Equal(t, novelsrc.StatusUnknown, d.Status)
	})
}

const chapterListPage = `<ul class="main version-chap">
<li class="wp-manga-chapter"><a href="/novel/alpha/chapter-3/">Chapter 3</a><span class="chapter-release-date"><i>January 5, 2024</i></span></li>
<li class="wp-manga-chapter"><a href="/novel/alpha/chapter-2/">Chapter 2</a><span class="chapter-release-date"><i>2 days ago</i></span></li>
<li class="wp-manga-chapter"><a href="/novel/alpha/chapter-2/">Chapter 2 again</a></li>
<li class="wp-manga-chapter"><a href="/novel/alpha/chapter-1/">Chapter 1</a><span class="chapter-release-date">soon</span></li>
</ul>`

func TestParseChapters(t *testing.T) {
	t.Parallel()

	for name, engine := range engines() {
		t.Run("numbers deduplicated chapters in reading order with the "+name+" engine", func(t *testing.T) {
			t.Parallel()

			list := scrape.ParseChapters(engine, madaraConfig(), "https://novels.example/novel/alpha/", chapterListPage)

			require.Len(t, list.Chapters, 3)
			assert.Equal(t, "https://novels.example/novel/alpha/", list.NovelURL)

			first, second, third := list.Chapters[0], list.Chapters[1], list.Chapters[2]
			assert.Equal(t, 1, first.Position)
			assert.Equal(t, "Chapter 1", first.Name)
			assert.Equal(t, "https://novels.example/novel/alpha/chapter-1/", first.URL)
			assert.Nil(t, first.ReleasedAt)

			assert.Equal(t, 2, second.Position)
			require.NotNil(t, second.ReleasedAt)
			assert.WithinDuration(t, time.Now().AddDate(0, 0, -2), *second.ReleasedAt, time.Minute)

			assert.Equal(t, 3, third.Position)
			require.NotNil(t, third.ReleasedAt)
			assert.Equal(t, 2024, third.ReleasedAt.Year())
			assert.Equal(t, time.January, third.ReleasedAt.Month())
			assert.Equal(t, 5, third.ReleasedAt.Day())
		})
	}

	t.Run("keeps document order without reversal", func(t *testing.T) {
		t.Parallel()

		cfg := madaraConfig()
		cfg.ReverseChapters = false

		list := scrape.ParseChapters(finder.NewEngine(), cfg, "https://novels.example/novel/alpha/", chapterListPage)

		require.Len(t, list.Chapters, 3)
		assert.Equal(t, "Chapter 3", list.Chapters[0].Name)
		assert.Equal(t, 1, list.Chapters[0].Position)
	})

	t.Run("reports a page without chapters as empty", func(t *testing.T) {
		t.Parallel()

		list := scrape.ParseChapters(finder.NewEngine(), madaraConfig(), "https://novels.example/novel/alpha/", "<p>No chapters yet</p>")

		assert.True(t, list.Empty())
		assert.NotNil(t, list.Chapters)
	})
}

func TestExtractContent(t *testing.T) {
	t.Parallel()

	for name, engine := range engines() {
		t.Run("falls back in order to the first selector with text using the "+name+" engine", func(t *testing.T) {
			t.Parallel()

			cfg := madaraConfig()
			cfg.Selectors.Content = novelsrc.ContentSelectors{
				Primary:   ".missing",
				Fallbacks: []string{".a", ".b"},
			}
			html := `<div class="a">   </div><div class="b"><p>Fallback text</p></div>`

			ch := scrape.ExtractContent(engine, cfg, "https://novels.example/c/1", html)

			assert.Equal(t, "Fallback text", ch.Text)
			assert.Equal(t, `<div class="b"><p>Fallback text</p></div>`, ch.HTML)
			assert.Equal(t, scrape.ComputeHash("Fallback text"), ch.Hash)
		})

		t.Run("strips removed elements before extracting with the "+name+" engine", func(t *testing.T) {
			t.Parallel()

			html := `<div class="reading-content"><p>Story</p><script>ads()</script><div class="ads">Buy now</div><p>More story</p></div>`

			ch := scrape.ExtractContent(engine, madaraConfig(), "https://novels.example/c/1", html)

			assert.Equal(t, "Story More story", ch.Text)
		})
	}

	t.Run("does not repeat text inside nested content containers", func(t *testing.T) {
		t.Parallel()

		cfg := madaraConfig()
		cfg.Selectors.Content = novelsrc.ContentSelectors{Primary: ".text p"}
		html := `<div class="text"><div class="text inner"><p>Once upon a time.</p></div></div>`

		ch := scrape.ExtractContent(finder.NewEngine(), cfg, "https://novels.example/c/1", html)

		assert.Equal(t, "Once upon a time.", ch.Text)
	})

	t.Run("returns an empty chapter when every selector misses", func(t *testing.T) {
		t.Parallel()

		ch := scrape.ExtractContent(finder.NewEngine(), madaraConfig(), "https://novels.example/c/1", "<p>Cloudflare check</p>")

		assert.True(t, ch.Empty())
		assert.Equal(t, "https://novels.example/c/1", ch.URL)
		assert.Empty(t, ch.Hash)
	})
}

func TestExtractNovelID(t *testing.T) {
	t.Parallel()

	t.Run("reads an attribute of the id element", func(t *testing.T) {
		t.Parallel()

		id := scrape.ExtractNovelID(finder.Load(detailPage), madaraConfig(), "https://novels.example/novel/alpha/")

		assert.Equal(t, "1234", id)
	})

	t.Run("applies the pattern to the page URL without a selector", func(t *testing.T) {
		t.Parallel()

		cfg := &novelsrc.SourceConfig{NovelIDPattern: `/novel/([^/]+)`}

		id := scrape.ExtractNovelID(finder.Load(""), cfg, "https://novels.example/novel/alpha-123/")

		assert.Equal(t, "alpha-123", id)
	})

	t.Run("applies the pattern to the element text", func(t *testing.T) {
		t.Parallel()

		cfg := &novelsrc.SourceConfig{NovelIDSelector: "#nid", NovelIDPattern: `(\d+)`}

		id := scrape.ExtractNovelID(finder.Load(`<span id="nid">ID: 99</span>`), cfg, "https://novels.example/n/")

		assert.Equal(t, "99", id)
	})

	t.Run("returns nothing when the pattern does not match", func(t *testing.T) {
		t.Parallel()

		cfg := &novelsrc.SourceConfig{NovelIDPattern: `/book/(\d+)`}

		assert.Empty(t, scrape.ExtractNovelID(finder.Load(""), cfg, "https://novels.example/novel/a/"))
	})

	t.Run("returns nothing for a pattern that does not compile, on every call", func(t *testing.T) {
		t.Parallel()

		cfg := &novelsrc.SourceConfig{NovelIDPattern: `/novel/([^/]+`}

		for range 2 {
			assert.Empty(t, scrape.ExtractNovelID(finder.Load(""), cfg, "https://novels.example/novel/a/"))
		}
	})

	t.Run("reuses a pattern across configurations", func(t *testing.T) {
		t.Parallel()

		for _, u := range []string{"https://novels.example/novel/a-1/", "https://novels.example/novel/b-2/"} {
			cfg := &novelsrc.SourceConfig{NovelIDPattern: `/novel/[a-z]-(\d+)/`}

			id := scrape.ExtractNovelID(finder.Load(""), cfg, u)

			assert.Equal(t, u[len(u)-2:len(u)-1], id)
		}
	})

	t.Run("returns nothing without a selector or pattern", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, scrape.ExtractNovelID(finder.Load(detailPage), &novelsrc.SourceConfig{}, "https://novels.example/n/"))
	})
}
