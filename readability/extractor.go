// Package readability extracts chapter text with go-readability when no
// content selector of a source configuration matches.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/novelsrc"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements novelsrc.ContentExtractor at compile time.
var _ novelsrc.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes a raw chapter page and returns the main content.
// Relative links are resolved against pageURL when it parses.
func (e *Extractor) Extract(rawHTML, pageURL string) (*novelsrc.Extraction, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, novelsrc.Errorf(novelsrc.EINVALID, "empty HTML input")
	}

	var base *url.URL
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, novelsrc.Errorf(novelsrc.EINVALID, "invalid page URL %q: %v", pageURL, err)
		}
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, err
	}

	return &novelsrc.Extraction{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
