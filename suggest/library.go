// Package suggest provides prioritized selector candidates for each site
// framework and configuration wizard step.
package suggest

import (
	"sort"

	"github.com/fwojciec/novelsrc"
)

// Ensure Library implements novelsrc.SuggestionLibrary at compile time.
var _ novelsrc.SuggestionLibrary = (*Library)(nil)

// Library serves suggestions from the static catalog. It holds no state and
// is safe for concurrent use.
type Library struct{}

// NewLibrary creates a new Library.
func NewLibrary() *Library {
	return &Library{}
}

// Suggest returns the catalog entries for framework and step, highest
// priority first. Entries with equal priority keep catalog order. Unknown
// frameworks use the Custom catalog; StepComplete yields nothing.
func (l *Library) Suggest(framework novelsrc.SiteFramework, step novelsrc.WizardStep) []novelsrc.SelectorSuggestion {
	if step == novelsrc.StepComplete {
		return []novelsrc.SelectorSuggestion{}
	}
	if !framework.Valid() {
		framework = novelsrc.FrameworkCustom
	}

	entries := catalog[key{framework, step}]
	out := make([]novelsrc.SelectorSuggestion, 0, len(entries))
	for _, e := range entries {
		out = append(out, novelsrc.SelectorSuggestion{
			Label:     e.label,
			Selector:  e.selector,
			Priority:  e.priority,
			Step:      step,
			Framework: framework,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

// AvailableFrameworks returns every framework except Custom in declaration
// order.
func (l *Library) AvailableFrameworks() []novelsrc.SiteFramework {
	var out []novelsrc.SiteFramework
	for _, f := range novelsrc.Frameworks() {
		if f != novelsrc.FrameworkCustom {
			out = append(out, f)
		}
	}
	return out
}

// Evaluation is a suggestion tried against a sample page.
type Evaluation struct {
	novelsrc.SelectorSuggestion
	Matches int    `json:"matches"`
	Sample  string `json:"sample,omitempty"`
}

// sampleLen caps the text preview of an evaluation.
const sampleLen = 80

// Evaluate runs every suggestion for framework and step against html and
// reports how many elements each matches, with a text preview of the first.
// Order follows Suggest.
func (l *Library) Evaluate(engine novelsrc.QueryEngine, html string, framework novelsrc.SiteFramework, step novelsrc.WizardStep) []Evaluation {
	suggestions := l.Suggest(framework, step)
	doc := engine.Load(html)

	out := make([]Evaluation, 0, len(suggestions))
	for _, s := range suggestions {
		sel := doc.Find(s.Selector)
		ev := Evaluation{SelectorSuggestion: s, Matches: sel.Length()}
		if ev.Matches > 0 {
			ev.Sample = truncate(sel.First().Text(), sampleLen)
		}
		out = append(out, ev)
	}
	return out
}

// Best returns the highest-priority suggestion that matches html, or false
// when none does.
func (l *Library) Best(engine novelsrc.QueryEngine, html string, framework novelsrc.SiteFramework, step novelsrc.WizardStep) (novelsrc.SelectorSuggestion, bool) {
	for _, ev := range l.Evaluate(engine, html, framework, step) {
		if ev.Matches > 0 {
			return ev.SelectorSuggestion, true
		}
	}
	return novelsrc.SelectorSuggestion{}, false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
