package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/novelsrc"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements novelsrc.ContentExtractor at compile time.
var _ novelsrc.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes a raw chapter page and returns the main content. A page
// without recognizable content yields an empty ContentHTML.
func (e *Extractor) Extract(rawHTML, pageURL string) (*novelsrc.Extraction, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, novelsrc.Errorf(novelsrc.EINVALID, "empty HTML input")
	}

	// Reader comments under a chapter are not chapter text.
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
	}
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, novelsrc.Errorf(novelsrc.EINVALID, "invalid page URL %q: %v", pageURL, err)
		}
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &novelsrc.Extraction{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
