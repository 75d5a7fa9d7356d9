package goquery_test

import (
	"testing"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Engine implements novelsrc.QueryEngine at compile time.
var _ novelsrc.QueryEngine = (*goquery.Engine)(nil)

const listingHTML = `<!DOCTYPE html>
<html>
<body>
<div class="item"><a href="/n/1" title="First">One</a><img src="/c/1.jpg"></div>
<div class="item"><a href="/n/2" title="Second">Two</a><img src="/c/2.jpg"></div>
<div class="item"><a href="/n/3" title="Third">Three</a></div>
</body>
</html>`

func TestEngine_Load(t *testing.T) {
	t.Parallel()

	t.Run("matches nested elements with the same tag", func(t *testing.T) {
		t.Parallel()

		doc := goquery.NewEngine().Load(`<div class="outer"><div>inner</div>tail</div>`)

		assert.Equal(t, "inner tail", doc.Find(".outer").Text())
	})

	t.Run("composes descendant selectors", func(t *testing.T) {
		t.Parallel()

		links := goquery.NewEngine().Load(listingHTML).Find(".item").Find("a")

		assert.Equal(t, 3, links.Length())
		assert.Equal(t, "One Two Three", links.Text())
	})

	t.Run("narrows with First, Last and Eq", func(t *testing.T) {
		t.Parallel()

		links := goquery.NewEngine().Load(listingHTML).Find(".item a")

		href, ok := links.First().Attr("href")
		require.True(t, ok)
		assert.Equal(t, "/n/1", href)

		href, ok = links.Last().Attr("href")
		require.True(t, ok)
		assert.Equal(t, "/n/3", href)

		assert.Equal(t, "Two", links.Eq(1).Text())
		assert.Equal(t, "Two", links.Eq(-2).Text())
		assert.Equal(t, 0, links.Eq(7).Length())
	})

	t.Run("maps matches in document order", func(t *testing.T) {
		t.Parallel()

		covers := goquery.NewEngine().Load(listingHTML).Find(".item").Map(func(i int, s novelsrc.Selection) string {
			src, _ := s.Find("img").Attr("src")
			return src
		})

		assert.Equal(t, []string{"/c/1.jpg", "/c/2.jpg", ""}, covers)
	})

	t.Run("iterates matches with scoped selections", func(t *testing.T) {
		t.Parallel()

		var titles []string
		goquery.NewEngine().Load(listingHTML).Find(".item").Each(func(i int, s novelsrc.Selection) {
			title, _ := s.Find("a").Attr("title")
			titles = append(titles, title)
		})

		assert.Equal(t, []string{"First", "Second", "Third"}, titles)
	})

	t.Run("returns outer markup of the first match", func(t *testing.T) {
		t.Parallel()

		html, ok := goquery.NewEngine().Load(listingHTML).Find("a").HTML()

		require.True(t, ok)
		assert.Equal(t, `<a href="/n/1" title="First">One</a>`, html)
	})

	t.Run("separates block text and skips scripts", func(t *testing.T) {
		t.Parallel()

		doc := goquery.NewEngine().Load(`<div id="c"><p>Hello <b>bi</b>g</p><script>var x;</script><p>world</p></div>`)

		assert.Equal(t, "Hello big world", doc.Find("#c").Text())
	})

	t.Run("reports missing matches without failing", func(t *testing.T) {
		t.Parallel()

		q := goquery.NewEngine().Load(listingHTML).Find(".missing")

		assert.Equal(t, 0, q.Length())
		assert.Equal(t, "", q.Text())
		assert.False(t, q.HasClass("missing"))
		_, ok := q.HTML()
		assert.False(t, ok)
		_, ok = q.Attr("href")
		assert.False(t, ok)
	})

	t.Run("treats invalid selectors as misses", func(t *testing.T) {
		t.Parallel()

		q := goquery.NewEngine().Load(listingHTML).Find("div[[")

		assert.Equal(t, 0, q.Length())
	})

	t.Run("checks class tokens with HasClass", func(t *testing.T) {
		t.Parallel()

		q := goquery.NewEngine().Load(`<div class="a b">x</div>`).Find(".a")

		assert.True(t, q.HasClass("b"))
		assert.False(t, q.HasClass("c"))
	})
}

func TestEngine_Strip(t *testing.T) {
	t.Parallel()

	t.Run("removes nested matching elements", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewEngine()
		chapter := `<div class="content"><p>Keep</p><div class="ad"><div>Buy</div></div><p>More</p></div>`

		stripped := e.Strip(chapter, []string{".ad", "script"})

		assert.NotContains(t, stripped, "Buy")
		assert.Equal(t, "Keep More", e.Load(stripped).Find(".content").Text())
	})

	t.Run("skips invalid selectors", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewEngine()

		stripped := e.Strip(`<p class="x">a</p>`, []string{"p[[", ""})

		assert.Equal(t, "a", e.Load(stripped).Find(".x").Text())
	})
}
