// Package etree discovers novel pages from XML sitemaps.
package etree

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/novelsrc"
)

// Ensure SitemapService implements novelsrc.SitemapService.
var _ novelsrc.SitemapService = (*SitemapService)(nil)

// fallbackPaths are tried in order when robots.txt names no sitemap.
// WordPress core serves wp-sitemap.xml; SEO plugins serve sitemap_index.xml.
var fallbackPaths = []string{"/sitemap.xml", "/sitemap_index.xml", "/wp-sitemap.xml"}

// SitemapService discovers URLs through a novelsrc.Fetcher, so requests
// carry the source's headers and can pass a browser challenge.
type SitemapService struct {
	fetcher novelsrc.Fetcher
}

// NewSitemapService creates a new SitemapService.
func NewSitemapService(fetcher novelsrc.Fetcher) *SitemapService {
	return &SitemapService{fetcher: fetcher}
}

// DiscoverURLs finds all URLs from a site's sitemaps.
// Returns an empty slice (not nil) if no sitemaps are found.
func (s *SitemapService) DiscoverURLs(ctx context.Context, cfg *novelsrc.SourceConfig, filter *novelsrc.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, novelsrc.Errorf(novelsrc.EINVALID, "source has no base URL")
	}

	seenSitemaps := make(map[string]bool)
	var urls []string
	var err error
	if sitemaps := s.sitemapsFromRobots(ctx, cfg, base+"/robots.txt"); len(sitemaps) > 0 {
		urls, err = s.processAll(ctx, cfg, sitemaps, seenSitemaps)
	} else {
		urls, err = s.processFallback(ctx, cfg, base, seenSitemaps)
	}
	if err != nil {
		return nil, err
	}

	out := []string{}
	seen := make(map[string]bool)
	for _, u := range urls {
		if seen[u] || !filter.Match(u) {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out, nil
}

// processAll processes every sitemap, stopping at the first error.
func (s *SitemapService) processAll(ctx context.Context, cfg *novelsrc.SourceConfig, sitemaps []string, seen map[string]bool) ([]string, error) {
	var all []string
	for _, sm := range sitemaps {
		urls, err := s.processSitemap(ctx, cfg, sm, seen)
		if err != nil {
			return nil, err
		}
		all = append(all, urls...)
	}
	return all, nil
}

// processFallback uses the first conventional location that serves a
// sitemap. Fetch and parse failures move on to the next location.
func (s *SitemapService) processFallback(ctx context.Context, cfg *novelsrc.SourceConfig, base string, seen map[string]bool) ([]string, error) {
	for _, p := range fallbackPaths {
		urls, err := s.processSitemap(ctx, cfg, base+p, seen)
		if err == nil {
			return urls, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, nil
}

// sitemapsFromRobots extracts Sitemap: directives from robots.txt. A missing
// robots.txt yields none.
func (s *SitemapService) sitemapsFromRobots(ctx context.Context, cfg *novelsrc.SourceConfig, robotsURL string) []string {
	body, err := s.fetch(ctx, cfg, robotsURL)
	if err != nil {
		return nil
	}

	var sitemaps []string
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			u := strings.TrimSpace(line[len("sitemap:"):])
			if u != "" {
				sitemaps = append(sitemaps, u)
			}
		}
	}
	return sitemaps
}

// processSitemap fetches and parses a sitemap, handling both urlset and sitemapindex.
func (s *SitemapService) processSitemap(ctx context.Context, cfg *novelsrc.SourceConfig, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetch(ctx, cfg, sitemapURL)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil, novelsrc.Errorf(novelsrc.EINVALID, "parsing sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, novelsrc.Errorf(novelsrc.EINVALID, "empty sitemap %s", sitemapURL)
	}

	switch root.Tag {
	case "sitemapindex":
		return s.processIndex(ctx, cfg, root, seen)
	case "urlset":
		return locs(root, "url"), nil
	}
	return nil, novelsrc.Errorf(novelsrc.EINVALID, "%s is not a sitemap", sitemapURL)
}

// processIndex processes a <sitemapindex> element recursively.
func (s *SitemapService) processIndex(ctx context.Context, cfg *novelsrc.SourceConfig, root *etree.Element, seen map[string]bool) ([]string, error) {
	return s.processAll(ctx, cfg, locs(root, "sitemap"), seen)
}

// locs returns the trimmed <loc> text of each child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func (s *SitemapService) fetch(ctx context.Context, cfg *novelsrc.SourceConfig, u string) (string, error) {
	body, err := s.fetcher.Fetch(ctx, novelsrc.Request{Method: novelsrc.MethodGet, URL: u, Headers: cfg.Headers})
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", u, err)
	}
	return body, nil
}
