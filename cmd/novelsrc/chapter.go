package main

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/fs"
	"github.com/fwojciec/novelsrc/htmltomarkdown"
	"github.com/fwojciec/novelsrc/scrape"
)

// Run executes the chapter command.
func (c *ChapterCmd) Run(deps *Dependencies) error {
	cfg, err := deps.loadSource(c.Source)
	if err != nil {
		return fail(deps, err)
	}
	s, fetcher, err := deps.scraper(cfg, c.Extractor)
	if err != nil {
		return fail(deps, err)
	}
	defer fetcher.Close()

	ch, err := s.Chapter(deps.Ctx, cfg, c.URL)
	if err != nil {
		return fail(deps, err)
	}
	if c.JSON {
		return printJSON(deps.Stdout, ch)
	}
	if ch.Empty() {
		return fail(deps, novelsrc.Errorf(novelsrc.ENOTFOUND, "no chapter content found at %s", c.URL))
	}

	if !c.Markdown {
		fmt.Fprintln(deps.Stdout, ch.Text)
		return nil
	}
	md, err := htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(cfg.BaseURL)).Convert(ch.HTML)
	if err != nil {
		return fail(deps, err)
	}
	fmt.Fprintln(deps.Stdout, md)
	return nil
}

// Run executes the download command.
func (c *DownloadCmd) Run(deps *Dependencies) error {
	cfg, err := deps.loadSource(c.Source)
	if err != nil {
		return fail(deps, err)
	}
	s, fetcher, err := deps.scraper(cfg, c.Extractor)
	if err != nil {
		return fail(deps, err)
	}
	defer fetcher.Close()

	list, err := s.Chapters(deps.Ctx, cfg, c.URL)
	if err != nil {
		return fail(deps, err)
	}
	items := selectChapters(list.Chapters, c.From, c.To)
	if len(items) == 0 {
		return fail(deps, novelsrc.Errorf(novelsrc.ENOTFOUND, "no chapters found in range %d-%d", c.From, c.To))
	}

	name := c.Name
	if name == "" {
		name = novelDirName(c.URL)
	}
	store := fs.NewFileStore(c.Out, name)
	converter := htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(cfg.BaseURL))

	fmt.Fprintf(deps.Stdout, "Downloading %d chapters to %s\n", len(items), name)

	urls := make([]string, len(items))
	for i, item := range items {
		urls[i] = item.URL
	}
	progress := func(event scrape.ProgressEvent) {
		if event.Type == scrape.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}
	results, err := s.ChapterBatch(deps.Ctx, cfg, urls, progress)
	if err != nil {
		_ = store.Abort()
		return fail(deps, err)
	}

	saved, skipped := 0, 0
	for i, r := range results {
		if r.Err != nil {
			skipped++
			continue
		}
		if r.Chapter.Empty() {
			fmt.Fprintf(deps.Stderr, "  skip %s: no content\n", r.URL)
			skipped++
			continue
		}
		md, err := converter.Convert(r.Chapter.HTML)
		if err != nil {
			// Text-only chapters have no markup to convert.
			md = r.Chapter.Text
		}
		if err := store.Save(deps.Ctx, items[i], md); err != nil {
			_ = store.Abort()
			return fail(deps, err)
		}
		saved++
	}

	if saved == 0 {
		_ = store.Abort()
		return fail(deps, novelsrc.Errorf(novelsrc.ENOTFOUND, "no chapter content could be downloaded"))
	}
	if err := store.Commit(); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d chapters", saved)
	if skipped > 0 {
		fmt.Fprintf(deps.Stdout, " (%d skipped)", skipped)
	}
	fmt.Fprintln(deps.Stdout)
	return nil
}

// selectChapters returns the chapters with positions in [from, to]. A
// non-positive to means no upper bound.
func selectChapters(chapters []novelsrc.ChapterItem, from, to int) []novelsrc.ChapterItem {
	var out []novelsrc.ChapterItem
	for _, ch := range chapters {
		if ch.Position < from || (to > 0 && ch.Position > to) {
			continue
		}
		out = append(out, ch)
	}
	return out
}

// novelDirName derives a directory name from the last path segment of a
// novel URL.
func novelDirName(novelURL string) string {
	u, err := url.Parse(novelURL)
	if err != nil {
		return "novel"
	}
	name := path.Base(strings.TrimRight(u.Path, "/"))
	if name == "" || name == "." || name == "/" {
		return "novel"
	}
	return name
}
