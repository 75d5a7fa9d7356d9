package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements novelsrc.ContentExtractor at compile time.
var _ novelsrc.ContentExtractor = (*trafilatura.Extractor)(nil)

const chapterURL = "https://example.com/novel/a/chapter-3/"

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Chapter 3 - A Novel - Example Novels</title>
<meta property="og:title" content="Chapter 3: The Gate">
</head>
<body>
<nav>Navigation here</nav>
<main>
<h1>Chapter 3: The Gate</h1>
<p>The rain had not stopped for three days, and the gate still stood closed.</p>
</main>
<footer>Footer content</footer>
</body>
</html>`

		result, err := trafilatura.NewExtractor().Extract(html, chapterURL)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
	})

	t.Run("extracts chapter text", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Chapter 3</title></head>
<body>
<nav><a href="/">Home</a><a href="/novel/a/">A Novel</a></nav>
<article>
<h1>Chapter 3</h1>
<p>Lin Feng opened his eyes and found the courtyard empty.</p>
<p>Somewhere beyond the wall a bell rang twice, then fell silent.</p>
</article>
<aside>Sidebar content</aside>
<footer>Copyright 2024</footer>
</body>
</html>`

		result, err := trafilatura.NewExtractor().Extract(html, chapterURL)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "found the courtyard empty")
		assert.Contains(t, result.ContentHTML, "a bell rang twice")
	})

	t.Run("removes navigation boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav class="main-nav">
<ul>
<li><a href="/">Home</a></li>
<li><a href="/novels/">Novels</a></li>
<li><a href="/genres/">Genres</a></li>
</ul>
</nav>
<main>
<h1>Chapter 3</h1>
<p>This paragraph contains the actual chapter text we want.</p>
</main>
</body>
</html>`

		result, err := trafilatura.NewExtractor().Extract(html, chapterURL)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "actual chapter text we want")
		assert.NotContains(t, result.ContentHTML, "main-nav")
	})

	t.Run("removes footer boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article>
<h1>Chapter 3</h1>
<p>Chapter body with substantive content for readers of the novel.</p>
</article>
<footer>
<p>Copyright 2024 Example Novels</p>
<nav>Privacy | Terms | Contact</nav>
</footer>
</body>
</html>`

		result, err := trafilatura.NewExtractor().Extract(html, chapterURL)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "substantive content")
		assert.NotContains(t, result.ContentHTML, "Copyright 2024 Example Novels")
	})

	t.Run("accepts an empty page URL", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Simple content</p></body></html>`

		result, err := trafilatura.NewExtractor().Extract(html, "")

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Simple content")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract("", chapterURL)

		require.Error(t, err)
		assert.Equal(t, novelsrc.EINVALID, novelsrc.ErrorCode(err))
	})

	t.Run("returns error for an unparsable page URL", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract(`<p>text</p>`, "://bad")

		require.Error(t, err)
		assert.Equal(t, novelsrc.EINVALID, novelsrc.ErrorCode(err))
	})
}
