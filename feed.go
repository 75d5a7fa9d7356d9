package novelsrc

import (
	"context"
	"time"
)

// Update is one entry of a site's update feed, usually a newly released
// chapter.
type Update struct {
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Author      string     `json:"author,omitempty"`
	Categories  []string   `json:"categories,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// UpdateFeed reads the update feed a site publishes alongside its pages.
type UpdateFeed interface {
	// Updates returns the feed entries in feed order.
	// Returns EINVALID if the response is not an RSS or Atom feed.
	Updates(ctx context.Context, cfg *SourceConfig) ([]Update, error)
}
