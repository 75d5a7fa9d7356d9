package novelsrc

import (
	"strings"
	"time"
)

// NovelItem is one card on a listing page.
type NovelItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Cover string `json:"cover,omitempty"`
}

// ListingPage is a parsed popular, latest or search page.
type ListingPage struct {
	URL         string      `json:"url"`
	Items       []NovelItem `json:"items"`
	NextPageURL string      `json:"nextPageUrl,omitempty"`
}

// Empty reports whether the page yielded no items. An empty page is a normal
// outcome, not an error.
func (p *ListingPage) Empty() bool {
	return p == nil || len(p.Items) == 0
}

// NovelStatus is the publication status of a novel.
type NovelStatus string

// Known publication statuses.
const (
	StatusUnknown   NovelStatus = "unknown"
	StatusOngoing   NovelStatus = "ongoing"
	StatusCompleted NovelStatus = "completed"
	StatusHiatus    NovelStatus = "hiatus"
)

// ParseNovelStatus normalizes free-form status text as shown on sites.
func ParseNovelStatus(s string) NovelStatus {
	s = strings.ToLower(s)
	switch {
	case s == "":
		return StatusUnknown
	case strings.Contains(s, "complete"), strings.Contains(s, "finished"), strings.Contains(s, "end"):
		return StatusCompleted
	case strings.Contains(s, "hiatus"), strings.Contains(s, "pause"), strings.Contains(s, "dropped"):
		return StatusHiatus
	case strings.Contains(s, "ongoing"), strings.Contains(s, "updating"), strings.Contains(s, "publishing"):
		return StatusOngoing
	}
	return StatusUnknown
}

// NovelDetail is a parsed novel page. Fields the page does not provide are
// left empty.
type NovelDetail struct {
	URL         string      `json:"url"`
	NovelID     string      `json:"novelId,omitempty"`
	Title       string      `json:"title"`
	Author      string      `json:"author,omitempty"`
	Artist      string      `json:"artist,omitempty"`
	Description string      `json:"description,omitempty"`
	Genres      []string    `json:"genres,omitempty"`
	Status      NovelStatus `json:"status"`
	Cover       string      `json:"cover,omitempty"`
}

// ChapterItem is one entry of a chapter list. Position is 1-based in reading
// order.
type ChapterItem struct {
	Position   int        `json:"position"`
	Name       string     `json:"name"`
	URL        string     `json:"url"`
	ReleasedAt *time.Time `json:"releasedAt,omitempty"`
}

// ChapterList is the parsed chapter list of a novel.
type ChapterList struct {
	NovelURL string        `json:"novelUrl"`
	Chapters []ChapterItem `json:"chapters"`
}

// Empty reports whether no chapters were found.
func (l *ChapterList) Empty() bool {
	return l == nil || len(l.Chapters) == 0
}

// Chapter is extracted chapter content. Text is empty when neither the
// primary nor any fallback selector yielded text.
type Chapter struct {
	URL  string `json:"url"`
	Text string `json:"text"`
	HTML string `json:"html,omitempty"`
	Hash string `json:"hash,omitempty"`
}

// Empty reports whether no content was extracted.
func (c *Chapter) Empty() bool {
	return c == nil || c.Text == ""
}
