package finder

import (
	"bytes"
	"encoding/json"
	"strings"
)

// The Bridge functions are the native surface exposed to script sandboxes.
// They take an HTML string and a selector so that hosts can marshal calls
// without holding Go values between them.

// BridgeText returns the text of every element matching selector.
func BridgeText(html, selector string) string {
	return query(html, selector).Text()
}

// BridgeHTML returns the outer markup of the first match, or "".
func BridgeHTML(html, selector string) string {
	s, _ := query(html, selector).HTML()
	return s
}

// BridgeAttr returns an attribute of the first match. The second result is
// false when there is no match or no such attribute.
func BridgeAttr(html, selector, name string) (string, bool) {
	return query(html, selector).Attr(name)
}

// BridgeEach returns every matched fragment encoded as a JSON array.
func BridgeEach(html, selector string) string {
	matches := query(html, selector).matches()
	if matches == nil {
		matches = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(matches); err != nil {
		return "[]"
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// BridgeLength returns the number of matches.
func BridgeLength(html, selector string) int {
	return query(html, selector).Length()
}

// BridgeHasClass reports whether the first match carries class.
func BridgeHasClass(html, selector, class string) bool {
	return query(html, selector).HasClass(class)
}

// query treats an empty selector as the whole document.
func query(html, selector string) *Query {
	q := Load(html)
	if selector == "" {
		return q
	}
	return q.Find(selector).(*Query)
}
