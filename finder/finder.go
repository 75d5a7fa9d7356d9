// Package finder implements the legacy element finder: a substring-based
// matcher for the tag, .class and #id selector subset used by source
// configurations.
//
// Matching is intentionally approximate. An element ends at the first close
// tag with the same name, so same-named descendants cut it short. Stored
// configurations rely on this behavior; the goquery package provides a
// tree-based alternative.
package finder

import (
	"regexp"
	"sort"
	"strings"
)

var (
	classAttrRe = regexp.MustCompile(`(?i)\sclass\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	idAttrRe    = regexp.MustCompile(`(?i)\sid\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

// voidElements never have a close tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// simpleSelector is one selector part such as "div.post-title".
type simpleSelector struct {
	tag   string // lowercase; empty matches any tag
	class string
	id    string
}

// parseSimple parses a single selector part. Attribute, pseudo-class and
// combinator suffixes are ignored, as are classes after the first.
func parseSimple(s string) simpleSelector {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "[:>+~,"); i >= 0 {
		s = s[:i]
	}

	var sel simpleSelector
	i := strings.IndexAny(s, ".#")
	if i < 0 {
		sel.tag = asciiLower(s)
	} else {
		sel.tag = asciiLower(s[:i])
		name := s[i+1:]
		if j := strings.IndexAny(name, ".#"); j >= 0 {
			name = name[:j]
		}
		if s[i] == '.' {
			sel.class = name
		} else {
			sel.id = name
		}
	}
	if sel.tag == "*" {
		sel.tag = ""
	}
	return sel
}

// elemSpan is the byte range of a matched element within the searched markup.
type elemSpan struct {
	start, end int
}

// FindElements returns the outer markup of every element matching a single
// simple selector, in document order. Elements that are void or never closed
// are returned as their open tag.
func FindElements(html, selector string) []string {
	var out []string
	for _, el := range findSpans(html, selector) {
		out = append(out, html[el.start:el.end])
	}
	return out
}

func findSpans(html, selector string) []elemSpan {
	sel := parseSimple(selector)
	lower := asciiLower(html)

	switch {
	case sel.class != "":
		return findByAttr(html, lower, sel, classAttrRe, func(v string) bool {
			return hasToken(v, sel.class)
		}, false)
	case sel.id != "":
		return findByAttr(html, lower, sel, idAttrRe, func(v string) bool {
			return v == sel.id
		}, true)
	case sel.tag != "":
		return findByTag(html, lower, sel.tag)
	}
	return nil
}

// findByAttr locates attribute occurrences, walks back to the enclosing open
// tag and emits the element span. With first set, at most one element is
// returned.
func findByAttr(html, lower string, sel simpleSelector, re *regexp.Regexp, match func(string) bool, first bool) []elemSpan {
	var out []elemSpan
	for _, m := range re.FindAllStringSubmatchIndex(html, -1) {
		value := submatch(html, m)
		if !match(value) {
			continue
		}

		openStart := strings.LastIndexByte(html[:m[0]], '<')
		if openStart < 0 || strings.IndexByte(html[openStart:m[0]], '>') >= 0 {
			continue // attribute text outside a tag
		}
		name := tagName(lower[openStart+1:])
		if name == "" || (sel.tag != "" && name != sel.tag) {
			continue
		}
		openEnd := strings.IndexByte(html[m[1]:], '>')
		if openEnd < 0 {
			continue
		}
		openEnd += m[1]

		end := span(html, lower, openStart, openEnd, name)
		out = append(out, elemSpan{openStart, end})
		if first {
			break
		}
	}
	return out
}

// findByTag emits every non-overlapping element with the given tag name.
func findByTag(html, lower, tag string) []elemSpan {
	var out []elemSpan
	needle := "<" + tag
	pos := 0
	for pos < len(html) {
		idx := strings.Index(lower[pos:], needle)
		if idx < 0 {
			break
		}
		openStart := pos + idx
		after := openStart + len(needle)
		if after < len(html) && !isNameEnd(html[after]) {
			pos = after
			continue
		}
		openEnd := strings.IndexByte(html[openStart:], '>')
		if openEnd < 0 {
			break
		}
		openEnd += openStart

		end := span(html, lower, openStart, openEnd, tag)
		out = append(out, elemSpan{openStart, end})
		pos = end
	}
	return out
}

// span returns the offset just past the element starting at openStart whose
// open tag ends at openEnd. The first close tag with the same name terminates
// the element.
func span(html, lower string, openStart, openEnd int, name string) int {
	if voidElements[name] || selfClosing(html, openStart, openEnd, name) {
		return openEnd + 1
	}

	closeTag := "</" + name
	from := openEnd + 1
	for {
		idx := strings.Index(lower[from:], closeTag)
		if idx < 0 {
			return openEnd + 1
		}
		closeStart := from + idx
		after := closeStart + len(closeTag)
		if after < len(html) && !isNameEnd(html[after]) {
			from = after
			continue
		}
		gt := strings.IndexByte(html[closeStart:], '>')
		if gt < 0 {
			return len(html)
		}
		return closeStart + gt + 1
	}
}

// selfClosing reports whether the open tag ends with "/>". A slash that ends
// an unquoted attribute value, as in href=/novel/>, does not count.
func selfClosing(html string, openStart, openEnd int, name string) bool {
	slash := openEnd - 1
	if html[slash] != '/' {
		return false
	}
	if slash == openStart+1+len(name) {
		return true
	}
	switch html[slash-1] {
	case ' ', '\t', '\n', '\r', '\f', '"', '\'':
		return true
	}
	return false
}

// findAll evaluates a descendant selector ("a b c") part by part. Parts after
// the first search inside the previous matches, excluding the matched element
// itself. With skipRoot, the first part also excludes the root of html.
//
// Nested ancestor matches overlap, so a descendant may be found from several
// of them. Each element is reported once, at its first match, and results
// are in document order.
func findAll(html, selector string, skipRoot bool) []string {
	parts := strings.Fields(selector)
	if len(parts) == 0 {
		return nil
	}

	frames := []elemSpan{{0, len(html)}}
	for i, part := range parts {
		seen := make(map[int]bool)
		var next []elemSpan
		for _, f := range frames {
			from := f.start
			if i > 0 || skipRoot {
				from = innerStart(html, f)
			}
			for _, el := range findSpans(html[from:f.end], part) {
				el.start += from
				el.end += from
				if seen[el.start] {
					continue
				}
				seen[el.start] = true
				next = append(next, el)
			}
		}
		if len(next) == 0 {
			return nil
		}
		sort.SliceStable(next, func(a, b int) bool { return next[a].start < next[b].start })
		frames = next
	}

	out := make([]string, len(frames))
	for i, f := range frames {
		out[i] = html[f.start:f.end]
	}
	return out
}

// innerStart returns the offset just past an element's open tag.
func innerStart(html string, el elemSpan) int {
	if el.start >= el.end || html[el.start] != '<' {
		return el.start
	}
	gt := strings.IndexByte(html[el.start:el.end], '>')
	if gt < 0 {
		return el.end
	}
	return el.start + gt + 1
}

// openTag returns the first open tag of an element.
func openTag(element string) string {
	start := strings.IndexByte(element, '<')
	if start < 0 {
		return ""
	}
	gt := strings.IndexByte(element[start:], '>')
	if gt < 0 {
		return element[start:]
	}
	return element[start : start+gt+1]
}

// tagName reads the tag name following '<'.
func tagName(s string) string {
	end := 0
	for end < len(s) && !isNameEnd(s[end]) {
		end++
	}
	name := s[:end]
	if name == "" || name[0] == '/' || name[0] == '!' || name[0] == '?' {
		return ""
	}
	return name
}

func isNameEnd(c byte) bool {
	return c == ' ' || c == '>' || c == '/' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func submatch(s string, m []int) string {
	if m[2] >= 0 {
		return s[m[2]:m[3]]
	}
	if len(m) > 4 && m[4] >= 0 {
		return s[m[4]:m[5]]
	}
	return ""
}

func hasToken(list, token string) bool {
	for _, f := range strings.Fields(list) {
		if f == token {
			return true
		}
	}
	return false
}

// asciiLower lowercases ASCII letters only, keeping byte offsets stable.
func asciiLower(s string) string {
	b := []byte(s)
	changed := false
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}
