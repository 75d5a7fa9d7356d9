package finder

import (
	stdhtml "html"
	"regexp"
	"strings"

	"github.com/fwojciec/novelsrc"
)

// Ensure Query implements novelsrc.Selection at compile time.
var _ novelsrc.Selection = (*Query)(nil)

// Query is a declarative selection: an (html, selector) pair that re-runs the
// finder whenever it is read. Nothing is materialized between calls, which
// keeps memory bounded on large pages.
type Query struct {
	src      string
	selector string

	// scoped marks src as a single element; Find skips its root tag.
	scoped bool

	narrowed bool
	index    int
}

// Load returns a selector-less query over a whole document.
func Load(html string) *Query {
	return &Query{src: html}
}

// scope returns a selector-less query over one matched fragment.
func scope(fragment string) *Query {
	return &Query{src: fragment, scoped: true}
}

func (q *Query) matches() []string {
	var all []string
	switch {
	case q.selector != "":
		all = findAll(q.src, q.selector, q.scoped)
	case q.src != "":
		all = []string{q.src}
	}
	if !q.narrowed {
		return all
	}

	i := q.index
	if i < 0 {
		i += len(all)
	}
	if i < 0 || i >= len(all) {
		return nil
	}
	return all[i : i+1]
}

// Find returns a query for descendants of the current matches. Selectors are
// composed with a space; a narrowed query searches inside its one match.
func (q *Query) Find(selector string) novelsrc.Selection {
	selector = strings.TrimSpace(selector)
	if q.narrowed {
		m := q.matches()
		if len(m) == 0 {
			return &Query{}
		}
		return &Query{src: m[0], selector: selector, scoped: true}
	}
	if q.selector == "" {
		return &Query{src: q.src, selector: selector, scoped: q.scoped}
	}
	return &Query{src: q.src, selector: q.selector + " " + selector, scoped: q.scoped}
}

// Each calls fn with a query scoped to each match in document order.
func (q *Query) Each(fn func(i int, s novelsrc.Selection)) {
	for i, m := range q.matches() {
		fn(i, scope(m))
	}
}

// Map collects fn's result for each match in document order.
func (q *Query) Map(fn func(i int, s novelsrc.Selection) string) []string {
	matches := q.matches()
	out := make([]string, 0, len(matches))
	for i, m := range matches {
		out = append(out, fn(i, scope(m)))
	}
	return out
}

// Text returns the combined text of all matches.
func (q *Query) Text() string {
	matches := q.matches()
	if len(matches) == 0 {
		return ""
	}
	return Text(strings.Join(matches, " "))
}

// HTML returns the raw markup of the first match.
func (q *Query) HTML() (string, bool) {
	m := q.matches()
	if len(m) == 0 {
		return "", false
	}
	return m[0], true
}

// Attr returns an attribute from the open tag of the first match.
func (q *Query) Attr(name string) (string, bool) {
	m := q.matches()
	if len(m) == 0 {
		return "", false
	}
	return Attr(m[0], name)
}

// HasClass reports whether the first match carries class.
func (q *Query) HasClass(class string) bool {
	v, ok := q.Attr("class")
	return ok && hasToken(v, class)
}

// Length returns the number of matches.
func (q *Query) Length() int {
	return len(q.matches())
}

// First narrows to the first match.
func (q *Query) First() novelsrc.Selection {
	return q.Eq(0)
}

// Last narrows to the last match.
func (q *Query) Last() novelsrc.Selection {
	return q.Eq(-1)
}

// Eq narrows to the i-th match. Negative indexes count from the end.
func (q *Query) Eq(i int) novelsrc.Selection {
	if q.narrowed {
		if i == 0 || i == -1 {
			return q
		}
		return &Query{}
	}
	return &Query{src: q.src, selector: q.selector, scoped: q.scoped, narrowed: true, index: i}
}

var (
	blockTagRe = regexp.MustCompile(`(?i)</?(?:p|div|br|li|ul|ol|h[1-6]|tr|td|th|table|section|article|blockquote|dd|dt|hr)\b[^>]*>`)
	tagRe      = regexp.MustCompile(`<[^>]*>`)
)

// Text strips tags from markup, decodes entities and collapses whitespace
// runs to single spaces. Block-level tags separate words; inline tags do not.
func Text(markup string) string {
	s := blockTagRe.ReplaceAllString(markup, " ")
	s = tagRe.ReplaceAllString(s, "")
	s = stdhtml.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// Attr returns an attribute of an element's open tag. Values may be double
// quoted, single quoted or unquoted; entities are decoded.
func Attr(element, name string) (string, bool) {
	tag := openTag(element)
	if tag == "" {
		return "", false
	}
	name = asciiLower(name)

	// Skip "<tagname".
	i := 1
	for i < len(tag) && !isNameEnd(tag[i]) {
		i++
	}

	for i < len(tag) {
		for i < len(tag) && (isSpace(tag[i]) || tag[i] == '/') {
			i++
		}
		if i >= len(tag) || tag[i] == '>' {
			break
		}

		start := i
		for i < len(tag) && tag[i] != '=' && tag[i] != '>' && !isSpace(tag[i]) && tag[i] != '/' {
			i++
		}
		attr := asciiLower(tag[start:i])

		for i < len(tag) && isSpace(tag[i]) {
			i++
		}
		if i >= len(tag) || tag[i] != '=' {
			if attr == name {
				return "", true
			}
			continue
		}
		i++
		for i < len(tag) && isSpace(tag[i]) {
			i++
		}

		var value string
		if i < len(tag) && (tag[i] == '"' || tag[i] == '\'') {
			quote := tag[i]
			end := strings.IndexByte(tag[i+1:], quote)
			if end < 0 {
				value = tag[i+1:]
				i = len(tag)
			} else {
				value = tag[i+1 : i+1+end]
				i += end + 2
			}
		} else {
			start := i
			for i < len(tag) && !isSpace(tag[i]) && tag[i] != '>' {
				i++
			}
			value = tag[start:i]
		}

		if attr == name {
			return stdhtml.UnescapeString(value), true
		}
	}
	return "", false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
