package finder

import (
	"strings"

	"github.com/fwojciec/novelsrc"
)

// Ensure Engine implements novelsrc.QueryEngine at compile time.
var _ novelsrc.QueryEngine = (*Engine)(nil)

// Engine is the legacy query engine. The zero value is ready to use.
type Engine struct{}

// NewEngine creates a new Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Load returns a query over the whole document.
func (e *Engine) Load(html string) novelsrc.Selection {
	return Load(html)
}

// Strip removes every element matching any of selectors, one selector at a
// time. Each matched fragment is removed once, at its first occurrence.
func (e *Engine) Strip(html string, selectors []string) string {
	for _, sel := range selectors {
		if strings.TrimSpace(sel) == "" {
			continue
		}
		for _, frag := range findAll(html, sel, false) {
			html = strings.Replace(html, frag, "", 1)
		}
	}
	return html
}
