package mock

import "github.com/fwojciec/novelsrc"

var _ novelsrc.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of novelsrc.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html, pageURL string) (*novelsrc.Extraction, error)
}

func (e *ContentExtractor) Extract(html, pageURL string) (*novelsrc.Extraction, error) {
	return e.ExtractFn(html, pageURL)
}
