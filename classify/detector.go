// Package classify identifies web novel site frameworks from raw HTML.
package classify

import (
	ahocorasick "github.com/cloudflare/ahocorasick"
	"github.com/fwojciec/novelsrc"
)

// Ensure Detector implements novelsrc.FrameworkDetector at compile time.
var _ novelsrc.FrameworkDetector = (*Detector)(nil)

// MinHits is the number of keywords a framework must match to be a
// candidate. A single shared class name is common on generic WordPress
// markup and is not enough.
const MinHits = 2

// keywords lists the characteristic class names and path fragments of each
// framework, in detection order. Matching is case-sensitive.
var keywords = []struct {
	framework novelsrc.SiteFramework
	words     []string
}{
	{novelsrc.FrameworkMadara, []string{
		"page-item-detail",
		"wp-manga-chapter",
		"manga-title-badges",
		"summary_image",
		"reading-content",
	}},
	{novelsrc.FrameworkLightNovelWP, []string{
		"listupd",
		"bsx",
		"eplisterfull",
		"epheader",
		"ts-breadcrumb",
	}},
	{novelsrc.FrameworkReadNovelFull, []string{
		"list-novel",
		"novel-title",
		"list-chapter",
		"chr-name",
	}},
	{novelsrc.FrameworkReadWN, []string{
		"novel-item",
		"novel-cover",
		"header-stats",
		"chapter-container",
		"novel-list",
	}},
	{novelsrc.FrameworkWordPress, []string{
		"wp-content",
		"entry-content",
		"wp-block-",
		"wp-json",
	}},
}

// Score is the keyword evidence found for one framework.
type Score struct {
	Framework novelsrc.SiteFramework
	Hits      []string
}

// Candidate reports whether the framework matched enough keywords.
func (s Score) Candidate() bool {
	return len(s.Hits) >= MinHits
}

// Detector classifies pages by keyword scoring. All keywords are matched in a
// single pass over the page. Detector is safe for concurrent use.
type Detector struct {
	matcher *ahocorasick.Matcher

	// owner maps a dictionary index to its framework's position in keywords.
	owner []int
	words []string
}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	d := &Detector{}
	for i, k := range keywords {
		for _, w := range k.words {
			d.words = append(d.words, w)
			d.owner = append(d.owner, i)
		}
	}
	d.matcher = ahocorasick.NewStringMatcher(d.words)
	return d
}

// Detect returns the framework with the most keyword hits among those with
// at least MinHits. Ties go to the framework declared first. Returns
// FrameworkCustom when no framework qualifies.
func (d *Detector) Detect(html string) novelsrc.SiteFramework {
	best := novelsrc.FrameworkCustom
	bestHits := 0
	for _, s := range d.Scores(html) {
		if !s.Candidate() {
			continue
		}
		if len(s.Hits) > bestHits {
			best = s.Framework
			bestHits = len(s.Hits)
		}
	}
	return best
}

// Scores returns the keyword hits of every framework in detection order.
// Hits are listed in keyword order, not page order.
func (d *Detector) Scores(html string) []Score {
	found := make([]bool, len(d.words))
	for _, i := range d.matcher.MatchThreadSafe([]byte(html)) {
		if i < len(found) {
			found[i] = true
		}
	}

	scores := make([]Score, len(keywords))
	for i, k := range keywords {
		scores[i].Framework = k.framework
	}
	for i, ok := range found {
		if ok {
			s := &scores[d.owner[i]]
			s.Hits = append(s.Hits, d.words[i])
		}
	}
	return scores
}

// Keywords returns a copy of the keywords checked for framework.
func Keywords(framework novelsrc.SiteFramework) []string {
	for _, k := range keywords {
		if k.framework == framework {
			return append([]string(nil), k.words...)
		}
	}
	return nil
}
