package novelsrc

// Selection is a chainable, jQuery-like view over matched HTML fragments.
// Absent matches never fail: they yield empty strings, false, or zero length.
type Selection interface {
	// Find narrows to descendants matching selector.
	Find(selector string) Selection

	// Each calls fn for every match in document order with a selection scoped
	// to that one fragment.
	Each(fn func(i int, s Selection))

	// Map collects fn's results for every match in document order.
	Map(fn func(i int, s Selection) string) []string

	// Text returns the tag-stripped, whitespace-collapsed text of all matches.
	Text() string

	// HTML returns the raw markup of the first match.
	HTML() (string, bool)

	// Attr returns an attribute of the first match.
	Attr(name string) (string, bool)

	// HasClass reports whether the first match carries the class.
	HasClass(class string) bool

	// Length returns the number of matches.
	Length() int

	First() Selection
	Last() Selection
	Eq(i int) Selection
}

// QueryEngine loads HTML into selections and strips unwanted elements.
type QueryEngine interface {
	// Load returns a selection over the whole document.
	Load(html string) Selection

	// Strip returns html with every element matching any selector removed.
	Strip(html string, selectors []string) string
}
