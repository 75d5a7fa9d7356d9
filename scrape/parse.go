package scrape

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/araddon/dateparse"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/novelsrc"
)

// imageAttrs are checked in order for an image URL. Lazy loaders keep the
// real URL in a data attribute and a placeholder in src.
var imageAttrs = []string{"data-src", "data-lazy-src", "data-original", "src"}

// ParseListing extracts novel cards from a popular, latest or search page.
// Cards without a link are skipped and duplicate links are dropped. A page
// without cards yields an empty ListingPage, not an error.
func ParseListing(engine novelsrc.QueryEngine, cfg *novelsrc.SourceConfig, pageURL, html string, search bool) *novelsrc.ListingPage {
	sel := cfg.Selectors.ListingFor(search)
	base := parseBase(pageURL)
	doc := engine.Load(html)

	page := &novelsrc.ListingPage{URL: pageURL, Items: []novelsrc.NovelItem{}}
	seen := make(map[string]bool)

	doc.Find(sel.ItemContainer).Each(func(_ int, card novelsrc.Selection) {
		link := linkIn(card, sel.Link)
		href, _ := link.Attr("href")
		u := resolveURL(base, href)
		if u == "" || seen[u] {
			return
		}
		seen[u] = true

		var title string
		if sel.Title != "" {
			title = card.Find(sel.Title).First().Text()
		}
		if title == "" {
			if t, ok := link.Attr("title"); ok {
				title = strings.TrimSpace(t)
			}
		}
		if title == "" {
			title = link.Text()
		}

		img := card.Find("img").First()
		if sel.Cover != "" {
			img = card.Find(sel.Cover).First()
		}

		page.Items = append(page.Items, novelsrc.NovelItem{
			Title: title,
			URL:   u,
			Cover: resolveURL(base, imageURL(img)),
		})
	})

	if sel.NextPageLink != "" {
		href, _ := doc.Find(sel.NextPageLink).First().Attr("href")
		if next := resolveURL(base, href); next != pageURL {
			page.NextPageURL = next
		}
	}

	return page
}

// ParseDetail extracts a novel detail page. Fields without a selector or
// without a match are left empty.
func ParseDetail(engine novelsrc.QueryEngine, cfg *novelsrc.SourceConfig, pageURL, html string) *novelsrc.NovelDetail {
	sel := cfg.Selectors.Detail
	base := parseBase(pageURL)
	doc := engine.Load(html)

	d := &novelsrc.NovelDetail{
		URL:     pageURL,
		NovelID: ExtractNovelID(doc, cfg, pageURL),
		Title:   textOf(doc, sel.Title),
		Status:  novelsrc.StatusUnknown,
	}
	d.Author = textOf(doc, sel.Author)
	d.Artist = textOf(doc, sel.Artist)
	if sel.Description != "" {
		d.Description = doc.Find(sel.Description).Text()
	}
	if sel.Genre != "" {
		d.Genres = genres(doc.Find(sel.Genre))
	}
	if sel.Status != "" {
		d.Status = novelsrc.ParseNovelStatus(doc.Find(sel.Status).Text())
	}
	if sel.Cover != "" {
		d.Cover = resolveURL(base, imageURL(doc.Find(sel.Cover).First()))
	}
	return d
}

// ParseChapters extracts the chapter list of a novel. Duplicate links are
// dropped, the order is reversed when the site lists newest first, and
// positions are numbered from 1 in reading order.
func ParseChapters(engine novelsrc.QueryEngine, cfg *novelsrc.SourceConfig, novelURL, html string) *novelsrc.ChapterList {
	sel := cfg.Selectors.Chapters
	base := parseBase(novelURL)
	doc := engine.Load(html)
	now := time.Now()

	var chapters []novelsrc.ChapterItem
	seen := make(map[string]bool)

	doc.Find(sel.ItemContainer).Each(func(_ int, item novelsrc.Selection) {
		link := linkIn(item, sel.Link)
		href, _ := link.Attr("href")
		u := resolveURL(base, href)
		if u == "" || seen[u] {
			return
		}
		seen[u] = true

		name := ""
		if sel.Name != "" {
			name = item.Find(sel.Name).First().Text()
		}
		if name == "" {
			name = link.Text()
		}

		ch := novelsrc.ChapterItem{Name: name, URL: u}
		if sel.Date != "" {
			ch.ReleasedAt = parseDate(item.Find(sel.Date).First().Text(), now)
		}
		chapters = append(chapters, ch)
	})

	if cfg.ReverseChapters {
		for i, j := 0, len(chapters)-1; i < j; i, j = i+1, j-1 {
			chapters[i], chapters[j] = chapters[j], chapters[i]
		}
	}
	for i := range chapters {
		chapters[i].Position = i + 1
	}
	if chapters == nil {
		chapters = []novelsrc.ChapterItem{}
	}

	return &novelsrc.ChapterList{NovelURL: novelURL, Chapters: chapters}
}

// ExtractContent extracts chapter text. RemoveSelectors are stripped first;
// then the primary selector and each fallback are tried in order, stopping
// at the first one with non-empty text. When all are exhausted the chapter
// is returned empty.
func ExtractContent(engine novelsrc.QueryEngine, cfg *novelsrc.SourceConfig, pageURL, html string) *novelsrc.Chapter {
	sel := cfg.Selectors.Content
	doc := engine.Load(engine.Strip(html, sel.RemoveSelectors))

	ch := &novelsrc.Chapter{URL: pageURL}
	candidates := append([]string{sel.Primary}, sel.Fallbacks...)
	for _, c := range candidates {
		if strings.TrimSpace(c) == "" {
			continue
		}
		match := doc.Find(c)
		text := strings.TrimSpace(match.Text())
		if text == "" {
			continue
		}
		ch.Text = text
		ch.HTML, _ = match.First().HTML()
		ch.Hash = ComputeHash(text)
		return ch
	}
	return ch
}

// ExtractNovelID returns the site's internal novel identifier. The value is
// read from NovelIDSelector (its NovelIDAttr attribute, or its text) or,
// without a selector, from the page URL. NovelIDPattern, when set, must
// match and its first group is returned.
func ExtractNovelID(doc novelsrc.Selection, cfg *novelsrc.SourceConfig, pageURL string) string {
	if cfg.NovelIDSelector == "" && cfg.NovelIDPattern == "" {
		return ""
	}

	value := pageURL
	if cfg.NovelIDSelector != "" {
		el := doc.Find(cfg.NovelIDSelector).First()
		if cfg.NovelIDAttr != "" {
			value, _ = el.Attr(cfg.NovelIDAttr)
		} else {
			value = el.Text()
		}
	}
	value = strings.TrimSpace(value)

	if cfg.NovelIDPattern == "" {
		return value
	}
	re := compilePattern(cfg.NovelIDPattern)
	if re == nil {
		return ""
	}
	m := re.FindStringSubmatch(value)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// patterns caches compiled novelIdPattern values. Invalid patterns are
// stored as nil.
var patterns sync.Map

func compilePattern(pattern string) *regexp.Regexp {
	if v, ok := patterns.Load(pattern); ok {
		return v.(*regexp.Regexp)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		re = nil
	}
	v, _ := patterns.LoadOrStore(pattern, re)
	return v.(*regexp.Regexp)
}

// ComputeHash computes a hash of the content using xxhash.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

// linkIn returns the link of a card or chapter entry. Without a selector the
// element itself is used when it carries an href, otherwise its first anchor.
func linkIn(s novelsrc.Selection, selector string) novelsrc.Selection {
	if selector != "" {
		return s.Find(selector).First()
	}
	if _, ok := s.Attr("href"); ok {
		return s
	}
	return s.Find("a").First()
}

func imageURL(img novelsrc.Selection) string {
	for _, attr := range imageAttrs {
		if v, ok := img.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	if v, ok := img.Attr("srcset"); ok {
		first, _, _ := strings.Cut(strings.TrimSpace(v), ",")
		src, _, _ := strings.Cut(strings.TrimSpace(first), " ")
		return src
	}
	return ""
}

func textOf(doc novelsrc.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return doc.Find(selector).First().Text()
}

// genres collects genre names, splitting a single comma separated element.
func genres(s novelsrc.Selection) []string {
	raw := s.Map(func(_ int, g novelsrc.Selection) string {
		return g.Text()
	})
	if len(raw) == 1 && strings.Contains(raw[0], ",") {
		raw = strings.Split(raw[0], ",")
	}

	var out []string
	seen := make(map[string]bool)
	for _, g := range raw {
		g = strings.TrimSpace(g)
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out
}

var relativeDateRe = regexp.MustCompile(`(?i)(\d+)\s*(second|sec|minute|min|hour|day|week|month|year)s?\s+ago`)

// parseDate parses absolute dates in common formats and relative dates such
// as "3 days ago". Returns nil when the text is not a date.
func parseDate(s string, now time.Time) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if m := relativeDateRe.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}
		var t time.Time
		switch strings.ToLower(m[2]) {
		case "second", "sec":
			t = now.Add(-time.Duration(n) * time.Second)
		case "minute", "min":
			t = now.Add(-time.Duration(n) * time.Minute)
		case "hour":
			t = now.Add(-time.Duration(n) * time.Hour)
		case "day":
			t = now.AddDate(0, 0, -n)
		case "week":
			t = now.AddDate(0, 0, -7*n)
		case "month":
			t = now.AddDate(0, -n, 0)
		case "year":
			t = now.AddDate(-n, 0, 0)
		}
		return &t
	}

	t, err := dateparse.ParseAny(s)
	if err != nil {
		return nil
	}
	return &t
}
