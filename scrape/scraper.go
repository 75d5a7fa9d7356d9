// Package scrape turns source configurations into parsed listings, novel
// details, chapter lists and chapter text.
//
// The Parse and Extract functions are pure: they take a page that has
// already been fetched. Scraper adds fetching with per-domain rate limiting,
// retries and bounded concurrency for chapter batches.
package scrape

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/novelsrc"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of chapters fetched in parallel when
// Scraper.Concurrency is unset.
const DefaultConcurrency = 4

// Scraper fetches pages for a configuration and parses them.
type Scraper struct {
	Fetcher     novelsrc.Fetcher
	Engine      novelsrc.QueryEngine
	RateLimiter novelsrc.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
	Logger      LogFunc

	// Extractor, when set, finds chapter content heuristically if every
	// content selector misses.
	Extractor novelsrc.ContentExtractor

	// NewVisited creates the page set used by WalkListing.
	NewVisited func() novelsrc.VisitedSet
}

// ListingKind selects which listing a request is for.
type ListingKind int

const (
	ListingPopular ListingKind = iota
	ListingLatest
	ListingSearch
)

func (k ListingKind) String() string {
	switch k {
	case ListingPopular:
		return "popular"
	case ListingLatest:
		return "latest"
	case ListingSearch:
		return "search"
	}
	return "unknown"
}

// ListingRequest returns the request for page of a listing.
func ListingRequest(cfg *novelsrc.SourceConfig, kind ListingKind, query string, page int) novelsrc.Request {
	switch kind {
	case ListingLatest:
		return cfg.LatestRequest(page)
	case ListingSearch:
		return cfg.SearchRequest(query, page)
	}
	return cfg.PopularRequest(page)
}

// Popular fetches and parses a popular listing page.
func (s *Scraper) Popular(ctx context.Context, cfg *novelsrc.SourceConfig, page int) (*novelsrc.ListingPage, error) {
	return s.Listing(ctx, cfg, ListingPopular, "", page)
}

// Latest fetches and parses a latest-updates listing page.
func (s *Scraper) Latest(ctx context.Context, cfg *novelsrc.SourceConfig, page int) (*novelsrc.ListingPage, error) {
	return s.Listing(ctx, cfg, ListingLatest, "", page)
}

// Search fetches and parses a search results page.
func (s *Scraper) Search(ctx context.Context, cfg *novelsrc.SourceConfig, query string, page int) (*novelsrc.ListingPage, error) {
	return s.Listing(ctx, cfg, ListingSearch, query, page)
}

// Listing fetches and parses one page of a listing.
func (s *Scraper) Listing(ctx context.Context, cfg *novelsrc.SourceConfig, kind ListingKind, query string, page int) (*novelsrc.ListingPage, error) {
	req := ListingRequest(cfg, kind, query, page)
	body, err := s.fetch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s page %d: %w", kind, page, err)
	}
	return ParseListing(s.Engine, cfg, req.URL, body, kind == ListingSearch), nil
}

// Novel fetches and parses a novel detail page.
func (s *Scraper) Novel(ctx context.Context, cfg *novelsrc.SourceConfig, novelURL string) (*novelsrc.NovelDetail, error) {
	body, err := s.fetch(ctx, s.get(cfg, novelURL))
	if err != nil {
		return nil, fmt.Errorf("novel: %w", err)
	}
	return ParseDetail(s.Engine, cfg, novelURL, body), nil
}

// Chapters fetches and parses the chapter list of a novel. When chapters come
// from an AJAX endpoint, the novel page is fetched first for the novel ID,
// and its own chapter entries are used if the endpoint returns none.
func (s *Scraper) Chapters(ctx context.Context, cfg *novelsrc.SourceConfig, novelURL string) (*novelsrc.ChapterList, error) {
	if cfg.ChapterAjaxTemplate == "" && !cfg.UseAlternateChapterEndpoint {
		body, err := s.fetch(ctx, s.get(cfg, novelURL))
		if err != nil {
			return nil, fmt.Errorf("chapters: %w", err)
		}
		return ParseChapters(s.Engine, cfg, novelURL, body), nil
	}

	var page, novelID string
	if cfg.ChapterAjaxTemplate != "" {
		body, err := s.fetch(ctx, s.get(cfg, novelURL))
		if err != nil {
			return nil, fmt.Errorf("chapters: %w", err)
		}
		page = body
		novelID = ExtractNovelID(s.Engine.Load(body), cfg, novelURL)
		if novelID == "" {
			return ParseChapters(s.Engine, cfg, novelURL, body), nil
		}
	}

	body, err := s.fetch(ctx, cfg.ChapterListRequest(novelURL, novelID))
	if err != nil {
		return nil, fmt.Errorf("chapters: %w", err)
	}
	list := ParseChapters(s.Engine, cfg, novelURL, body)
	if list.Empty() && page != "" {
		return ParseChapters(s.Engine, cfg, novelURL, page), nil
	}
	return list, nil
}

// Chapter fetches a chapter page and extracts its content.
func (s *Scraper) Chapter(ctx context.Context, cfg *novelsrc.SourceConfig, chapterURL string) (*novelsrc.Chapter, error) {
	body, err := s.fetch(ctx, s.get(cfg, chapterURL))
	if err != nil {
		return nil, fmt.Errorf("chapter: %w", err)
	}
	ch := ExtractContent(s.Engine, cfg, chapterURL, body)
	if ch.Empty() && s.Extractor != nil {
		s.extractFallback(ch, body)
	}
	return ch, nil
}

func (s *Scraper) extractFallback(ch *novelsrc.Chapter, body string) {
	ex, err := s.Extractor.Extract(body, ch.URL)
	if err != nil || ex == nil {
		if err != nil && s.Logger != nil {
			s.Logger("fallback extraction %s: %v", ch.URL, err)
		}
		return
	}
	text := strings.TrimSpace(s.Engine.Load(ex.ContentHTML).Text())
	if text == "" {
		return
	}
	ch.Text = text
	ch.HTML = ex.ContentHTML
	ch.Hash = ComputeHash(text)
}

// ProgressEvent reports progress during a chapter batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// ChapterResult is the outcome of one chapter in a batch.
type ChapterResult struct {
	Position int
	URL      string
	Chapter  *novelsrc.Chapter
	Err      error
}

// ChapterBatch fetches chapters concurrently and returns one result per URL
// in input order. Individual failures are reported in the results; the
// returned error is set only when the context is canceled.
func (s *Scraper) ChapterBatch(ctx context.Context, cfg *novelsrc.SourceConfig, urls []string, progress ProgressFunc) ([]ChapterResult, error) {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(urls)
	results := make([]ChapterResult, total)
	resultCh := make(chan ChapterResult, total)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				ch, err := s.Chapter(gctx, cfg, u)
				resultCh <- ChapterResult{Position: i, URL: u, Chapter: ch, Err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	for r := range resultCh {
		completed.Add(1)
		results[r.Position] = r

		if progress == nil {
			continue
		}
		ev := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			URL:       r.URL,
		}
		if r.Err != nil {
			ev.Type = ProgressFailed
			ev.Error = r.Err
		}
		progress(ev)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// WalkListing visits listing pages starting at page 1 and calls fn for each.
// The next page is the page's next link when the configuration has one, and
// the following page number otherwise. The walk stops at an empty page, an
// already visited page, after maxPages pages (when positive), or when fn
// returns an error.
func (s *Scraper) WalkListing(ctx context.Context, cfg *novelsrc.SourceConfig, kind ListingKind, query string, maxPages int, fn func(*novelsrc.ListingPage) error) error {
	visited := s.visited()
	req := ListingRequest(cfg, kind, query, 1)

	for page := 1; maxPages <= 0 || page <= maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if visited.TestAndAdd(requestKey(req)) {
			return nil
		}

		body, err := s.fetch(ctx, req)
		if err != nil {
			return fmt.Errorf("%s page %d: %w", kind, page, err)
		}
		lp := ParseListing(s.Engine, cfg, req.URL, body, kind == ListingSearch)
		if lp.Empty() {
			return nil
		}
		if err := fn(lp); err != nil {
			return err
		}

		switch {
		case lp.NextPageURL != "":
			req = s.get(cfg, lp.NextPageURL)
		case cfg.Selectors.ListingFor(kind == ListingSearch).NextPageLink != "":
			return nil
		default:
			req = ListingRequest(cfg, kind, query, page+1)
		}
	}
	return nil
}

// Suggested Bloom filter sizing for NewVisited.
const (
	WalkExpectedPages     = 10000
	WalkFalsePositiveRate = 0.001
)

func (s *Scraper) visited() novelsrc.VisitedSet {
	if s.NewVisited != nil {
		return s.NewVisited()
	}
	return make(mapSet)
}

// mapSet is an exact VisitedSet used when no Bloom filter is configured.
type mapSet map[string]struct{}

func (m mapSet) TestAndAdd(url string) bool {
	if _, ok := m[url]; ok {
		return true
	}
	m[url] = struct{}{}
	return false
}

func requestKey(req novelsrc.Request) string {
	if req.Method == novelsrc.MethodPost {
		return req.Method + " " + req.URL + "?" + req.Form.Encode()
	}
	return req.URL
}

func (s *Scraper) get(cfg *novelsrc.SourceConfig, u string) novelsrc.Request {
	return novelsrc.Request{Method: novelsrc.MethodGet, URL: u, Headers: cfg.Headers}
}

// fetch waits for the domain's rate limit and performs req with retries.
func (s *Scraper) fetch(ctx context.Context, req novelsrc.Request) (string, error) {
	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, hostOf(req.URL)); err != nil {
			return "", err
		}
	}
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, req, s.Fetcher.Fetch, s.Logger, delays)
}
