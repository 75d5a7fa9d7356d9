// Package feed reads site update feeds with gofeed.
package feed

import (
	"context"
	"strings"

	"github.com/fwojciec/novelsrc"
	"github.com/mmcdole/gofeed"
)

// Ensure Reader implements novelsrc.UpdateFeed at compile time.
var _ novelsrc.UpdateFeed = (*Reader)(nil)

// Reader fetches and parses RSS or Atom update feeds. Requests go through the
// configured fetcher so that headers and browser fetching apply as they do
// for pages.
type Reader struct {
	fetcher novelsrc.Fetcher
}

// NewReader creates a new Reader.
func NewReader(fetcher novelsrc.Fetcher) *Reader {
	return &Reader{fetcher: fetcher}
}

// Updates fetches the feed of cfg and returns its entries in feed order.
func (r *Reader) Updates(ctx context.Context, cfg *novelsrc.SourceConfig) ([]novelsrc.Update, error) {
	req := cfg.FeedRequest()
	body, err := r.fetcher.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	return Parse(body)
}

// Parse converts an RSS or Atom document to updates. Entries without a link
// are skipped.
func Parse(body string) ([]novelsrc.Update, error) {
	feed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		return nil, novelsrc.Errorf(novelsrc.EINVALID, "invalid feed: %v", err)
	}

	updates := make([]novelsrc.Update, 0, len(feed.Items))
	for _, item := range feed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}
		u := novelsrc.Update{
			Title:      strings.TrimSpace(item.Title),
			URL:        link,
			Author:     author(item),
			Categories: item.Categories,
		}
		switch {
		case item.PublishedParsed != nil:
			t := item.PublishedParsed.UTC()
			u.PublishedAt = &t
		case item.UpdatedParsed != nil:
			t := item.UpdatedParsed.UTC()
			u.PublishedAt = &t
		}
		updates = append(updates, u)
	}
	return updates, nil
}

// author prefers the item author, then Dublin Core creators.
func author(item *gofeed.Item) string {
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	for _, a := range item.Authors {
		if a != nil && a.Name != "" {
			return a.Name
		}
	}
	if item.DublinCoreExt != nil {
		for _, c := range item.DublinCoreExt.Creator {
			if c != "" {
				return c
			}
		}
	}
	return ""
}
