package novelsrc

import "context"

// Converter converts chapter HTML to another text format.
type Converter interface {
	// Convert transforms an HTML fragment, typically Chapter.HTML.
	Convert(html string) (string, error)
}

// Extraction is the main content found on a page without selectors.
type Extraction struct {
	// Title is the page title taken from metadata.
	Title string

	// ContentHTML is the main content with boilerplate removed.
	ContentHTML string
}

// ContentExtractor finds the main content of a page heuristically. It backs
// up declarative extraction when every content selector of a configuration
// misses.
type ContentExtractor interface {
	// Extract processes a raw page. pageURL is used to resolve relative
	// links and may be empty.
	Extract(html, pageURL string) (*Extraction, error)
}

// ChapterStore saves downloaded chapters. Saves are staged until Commit;
// Abort discards them.
type ChapterStore interface {
	// Save stores the converted content of one chapter.
	Save(ctx context.Context, item ChapterItem, content string) error

	// Commit publishes every staged chapter.
	Commit() error

	// Abort discards staged chapters.
	Abort() error
}
