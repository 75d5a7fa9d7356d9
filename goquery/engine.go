// Package goquery provides a tree-based query engine built on goquery.
//
// Unlike the legacy finder it parses markup into a DOM, so nested elements
// with the same tag name are matched correctly and the full CSS selector
// grammar is accepted.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/novelsrc"
)

// Ensure Engine implements novelsrc.QueryEngine at compile time.
var _ novelsrc.QueryEngine = (*Engine)(nil)

// Engine is a novelsrc.QueryEngine backed by goquery.
type Engine struct{}

// NewEngine creates a new Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Load parses html and returns a selection over the document. Markup that
// cannot be parsed yields an empty selection.
func (e *Engine) Load(html string) novelsrc.Selection {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return &Selection{sel: &goquery.Selection{}}
	}
	return &Selection{sel: doc.Selection, root: true}
}

// Strip removes every element matching any selector and re-renders the
// document. Invalid selectors are skipped.
func (e *Engine) Strip(html string, selectors []string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	for _, sel := range selectors {
		if strings.TrimSpace(sel) == "" {
			continue
		}
		matcher, err := compile(sel)
		if err != nil {
			continue
		}
		doc.FindMatcher(matcher).Remove()
	}
	out, err := doc.Html()
	if err != nil {
		return html
	}
	return out
}
