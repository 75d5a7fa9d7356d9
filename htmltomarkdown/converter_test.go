package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements novelsrc.Converter at compile time.
var _ novelsrc.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts chapter paragraphs", func(t *testing.T) {
		t.Parallel()

		html := `<p>The rain had not stopped for three days.</p><p>Lin Feng opened his eyes.</p>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Equal(t, "The rain had not stopped for three days.\n\nLin Feng opened his eyes.", md)
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Volume 1</h1><h2>Chapter 3: The Gate</h2>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Volume 1")
		assert.Contains(t, md, "## Chapter 3: The Gate")
	})

	t.Run("converts bold and italic", func(t *testing.T) {
		t.Parallel()

		html := `<p><strong>Bang!</strong> The door <em>shattered</em>.</p>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "**Bang!**")
		assert.Contains(t, md, "*shattered*")
	})

	t.Run("converts blockquotes", func(t *testing.T) {
		t.Parallel()

		html := `<blockquote><p>Translator note: cultivation ranks are listed below.</p></blockquote>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "> Translator note: cultivation ranks are listed below.")
	})

	t.Run("converts status tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Stat</th><th>Value</th></tr></thead>
<tbody><tr><td>Strength</td><td>12</td></tr><tr><td>Agility</td><td>9</td></tr></tbody>
</table>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Strength")
		assert.Contains(t, md, "Agility")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("keeps absolute links", func(t *testing.T) {
		t.Parallel()

		html := `<p>Read on <a href="https://example.com/novel/a/">the site</a>.</p>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[the site](https://example.com/novel/a/)")
	})

	t.Run("resolves relative links against the domain", func(t *testing.T) {
		t.Parallel()

		html := `<p><a href="/novel/a/chapter-4/">Next chapter</a></p>`

		md, err := htmltomarkdown.NewConverter(htmltomarkdown.WithDomain("https://example.com")).Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[Next chapter](https://example.com/novel/a/chapter-4/)")
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert("\n\n<p>Text</p>\n\n")

		require.NoError(t, err)
		assert.Equal(t, "Text", md)
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert("")

		require.Error(t, err)
		assert.Equal(t, novelsrc.EINVALID, novelsrc.ErrorCode(err))
	})

	t.Run("returns error for whitespace input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert("  \n\t ")

		require.Error(t, err)
		assert.Equal(t, novelsrc.EINVALID, novelsrc.ErrorCode(err))
	})
}
