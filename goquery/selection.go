package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/novelsrc"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Selection implements novelsrc.Selection at compile time.
var _ novelsrc.Selection = (*Selection)(nil)

// Selection adapts a goquery selection to novelsrc.Selection.
type Selection struct {
	sel *goquery.Selection

	// root marks the document selection, whose HTML is the whole page.
	root bool
}

// compile parses a selector, returning an error for invalid CSS instead of
// panicking the way goquery's Find does.
func compile(selector string) (goquery.Matcher, error) {
	return cascadia.Compile(selector)
}

func (s *Selection) Find(selector string) novelsrc.Selection {
	m, err := compile(strings.TrimSpace(selector))
	if err != nil {
		return &Selection{sel: s.sel.FindNodes()}
	}
	return &Selection{sel: s.sel.FindMatcher(m)}
}

func (s *Selection) Each(fn func(i int, s novelsrc.Selection)) {
	s.sel.Each(func(i int, sel *goquery.Selection) {
		fn(i, &Selection{sel: sel})
	})
}

func (s *Selection) Map(fn func(i int, s novelsrc.Selection) string) []string {
	out := make([]string, 0, s.sel.Length())
	s.sel.Each(func(i int, sel *goquery.Selection) {
		out = append(out, fn(i, &Selection{sel: sel}))
	})
	return out
}

// Text returns the visible text of all matches. Block elements separate
// words; whitespace runs collapse to single spaces.
func (s *Selection) Text() string {
	var sb strings.Builder
	for _, n := range s.sel.Nodes {
		collectText(&sb, n)
		sb.WriteByte(' ')
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func (s *Selection) HTML() (string, bool) {
	if s.sel.Length() == 0 {
		return "", false
	}
	var (
		out string
		err error
	)
	if s.root {
		out, err = s.sel.Html()
	} else {
		out, err = goquery.OuterHtml(s.sel.First())
	}
	if err != nil {
		return "", false
	}
	return out, true
}

func (s *Selection) Attr(name string) (string, bool) {
	if s.sel.Length() == 0 {
		return "", false
	}
	return s.sel.First().Attr(name)
}

func (s *Selection) HasClass(class string) bool {
	if s.sel.Length() == 0 {
		return false
	}
	return s.sel.First().HasClass(class)
}

func (s *Selection) Length() int {
	return s.sel.Length()
}

func (s *Selection) First() novelsrc.Selection {
	return &Selection{sel: s.sel.First()}
}

func (s *Selection) Last() novelsrc.Selection {
	return &Selection{sel: s.sel.Last()}
}

// Eq narrows to the i-th match. Negative indexes count from the end.
func (s *Selection) Eq(i int) novelsrc.Selection {
	return &Selection{sel: s.sel.Eq(i)}
}

// collectText writes the text of a node subtree, separating block elements
// with spaces and skipping scripts and styles.
func collectText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript:
			return
		}
	}

	block := n.Type == html.ElementNode && isBlock(n.DataAtom)
	if block {
		sb.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(sb, c)
	}
	if block {
		sb.WriteByte(' ')
	}
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Br, atom.Li, atom.Ul, atom.Ol,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Tr, atom.Td, atom.Th, atom.Table, atom.Section, atom.Article,
		atom.Blockquote, atom.Dd, atom.Dt, atom.Hr:
		return true
	}
	return false
}
