package suggest

import "github.com/fwojciec/novelsrc"

// entry is one catalog row. Selectors stay within the tag, .class and #id
// subset so that both query engines accept them.
type entry struct {
	label    string
	selector string
	priority int
}

// Priorities used by the catalog. Gaps leave room for site-specific entries.
const (
	PriorityPrimary     = 100
	PriorityAlternative = 80
	PriorityGeneric     = 50
	PriorityLastResort  = 10
)

type key struct {
	framework novelsrc.SiteFramework
	step      novelsrc.WizardStep
}

// catalog is built once at init and never mutated.
var catalog = map[key][]entry{
	// Madara
	{novelsrc.FrameworkMadara, novelsrc.StepTrending}: {
		{"Manga item", ".page-item-detail", PriorityPrimary},
		{"Listing badge item", ".c-tabs-item__content", PriorityAlternative},
		{"Slider item", ".slider__item", PriorityGeneric},
	},
	{novelsrc.FrameworkMadara, novelsrc.StepSearchResult}: {
		{"Search result", ".c-tabs-item__content", PriorityPrimary},
		{"Search row", ".row.c-tabs-item__content", PriorityAlternative},
		{"Manga item", ".page-item-detail", PriorityGeneric},
	},
	{novelsrc.FrameworkMadara, novelsrc.StepNovelCard}: {
		{"Title link", ".post-title a", PriorityPrimary},
		{"Heading link", "h3 a", PriorityAlternative},
		{"Cover image", ".item-thumb img", PriorityAlternative},
		{"Summary cover", ".tab-thumb img", PriorityGeneric},
		{"Next page", ".nav-previous a", PriorityGeneric},
	},
	{novelsrc.FrameworkMadara, novelsrc.StepNovelDetail}: {
		{"Title", ".post-title h1", PriorityPrimary},
		{"Author", ".author-content a", PriorityPrimary},
		{"Artist", ".artist-content a", PriorityAlternative},
		{"Description", ".summary__content", PriorityPrimary},
		{"Genres", ".genres-content a", PriorityAlternative},
		{"Status", ".post-status .summary-content", PriorityAlternative},
		{"Cover", ".summary_image img", PriorityAlternative},
		{"Novel ID holder", "#manga-chapters-holder", PriorityGeneric},
	},
	{novelsrc.FrameworkMadara, novelsrc.StepChapterList}: {
		{"Chapter item", ".wp-manga-chapter", PriorityPrimary},
		{"Chapter link", ".wp-manga-chapter a", PriorityAlternative},
		{"Release date", ".chapter-release-date", PriorityGeneric},
		{"Version list item", ".version-chap li", PriorityLastResort},
	},
	{novelsrc.FrameworkMadara, novelsrc.StepChapterContent}: {
		{"Reading content", ".reading-content", PriorityPrimary},
		{"Text left", ".text-left", PriorityAlternative},
		{"Entry content", ".entry-content", PriorityGeneric},
	},

	// LightNovelWP
	{novelsrc.FrameworkLightNovelWP, novelsrc.StepTrending}: {
		{"Series card", ".bsx", PriorityPrimary},
		{"Update list", ".listupd .bs", PriorityAlternative},
		{"Article card", "article.bs", PriorityGeneric},
	},
	{novelsrc.FrameworkLightNovelWP, novelsrc.StepSearchResult}: {
		{"Series card", ".bsx", PriorityPrimary},
		{"Update list", ".listupd article", PriorityAlternative},
	},
	{novelsrc.FrameworkLightNovelWP, novelsrc.StepNovelCard}: {
		{"Card link", ".bsx a", PriorityPrimary},
		{"Card title", ".tt", PriorityPrimary},
		{"Cover image", ".limit img", PriorityAlternative},
		{"Next page", ".hpage .r", PriorityGeneric},
		{"Pagination next", ".pagination .next", PriorityGeneric},
	},
	{novelsrc.FrameworkLightNovelWP, novelsrc.StepNovelDetail}: {
		{"Title", ".entry-title", PriorityPrimary},
		{"Author", ".serl a", PriorityAlternative},
		{"Description", ".entry-content", PriorityPrimary},
		{"Synopsis", ".sertostat", PriorityGeneric},
		{"Genres", ".sertogenre a", PriorityAlternative},
		{"Status", ".sertostat span", PriorityAlternative},
		{"Cover", ".sertothumb img", PriorityAlternative},
	},
	{novelsrc.FrameworkLightNovelWP, novelsrc.StepChapterList}: {
		{"Chapter item", ".eplister li", PriorityPrimary},
		{"Full chapter list", ".eplisterfull li", PriorityAlternative},
		{"Chapter title", ".epl-title", PriorityGeneric},
		{"Release date", ".epl-date", PriorityGeneric},
	},
	{novelsrc.FrameworkLightNovelWP, novelsrc.StepChapterContent}: {
		{"Entry content", ".epcontent", PriorityPrimary},
		{"Entry content", ".entry-content", PriorityAlternative},
		{"Text content", "#readerarea", PriorityGeneric},
	},

	// ReadNovelFull
	{novelsrc.FrameworkReadNovelFull, novelsrc.StepTrending}: {
		{"Novel row", ".list-novel .row", PriorityPrimary},
		{"Novel list row", ".list-truyen .row", PriorityAlternative},
	},
	{novelsrc.FrameworkReadNovelFull, novelsrc.StepSearchResult}: {
		{"Novel row", ".list-novel .row", PriorityPrimary},
		{"Novel list row", ".list-truyen .row", PriorityAlternative},
	},
	{novelsrc.FrameworkReadNovelFull, novelsrc.StepNovelCard}: {
		{"Title link", ".novel-title a", PriorityPrimary},
		{"Truyen title", ".truyen-title a", PriorityAlternative},
		{"Cover image", ".cover", PriorityAlternative},
		{"Next page", ".next a", PriorityGeneric},
	},
	{novelsrc.FrameworkReadNovelFull, novelsrc.StepNovelDetail}: {
		{"Title", "h3.title", PriorityPrimary},
		{"Author", ".info a", PriorityAlternative},
		{"Description", ".desc-text", PriorityPrimary},
		{"Genres", ".info a", PriorityGeneric},
		{"Status", ".info .text-primary", PriorityGeneric},
		{"Cover", ".book img", PriorityAlternative},
		{"Novel ID holder", "#rating", PriorityGeneric},
	},
	{novelsrc.FrameworkReadNovelFull, novelsrc.StepChapterList}: {
		{"Chapter item", ".list-chapter li", PriorityPrimary},
		{"Chapter name", ".chapter-text", PriorityAlternative},
		{"Chapter link", ".list-chapter a", PriorityGeneric},
	},
	{novelsrc.FrameworkReadNovelFull, novelsrc.StepChapterContent}: {
		{"Chapter content", "#chr-content", PriorityPrimary},
		{"Chapter content", "#chapter-content", PriorityAlternative},
		{"Chapter container", ".chr-c", PriorityGeneric},
	},

	// ReadWN
	{novelsrc.FrameworkReadWN, novelsrc.StepTrending}: {
		{"Novel item", ".novel-item", PriorityPrimary},
		{"Novel list item", ".novel-list li", PriorityAlternative},
	},
	{novelsrc.FrameworkReadWN, novelsrc.StepSearchResult}: {
		{"Novel item", ".novel-item", PriorityPrimary},
		{"Search list item", ".novel-list li", PriorityAlternative},
	},
	{novelsrc.FrameworkReadWN, novelsrc.StepNovelCard}: {
		{"Item link", ".novel-item a", PriorityPrimary},
		{"Item title", ".novel-title", PriorityPrimary},
		{"Cover image", ".novel-cover img", PriorityAlternative},
		{"Next page", ".PagedList-skipToNext a", PriorityGeneric},
	},
	{novelsrc.FrameworkReadWN, novelsrc.StepNovelDetail}: {
		{"Title", ".novel-title", PriorityPrimary},
		{"Author", ".author span", PriorityAlternative},
		{"Description", ".summary .content", PriorityPrimary},
		{"Genres", ".categories a", PriorityAlternative},
		{"Status", ".header-stats span", PriorityGeneric},
		{"Cover", ".cover img", PriorityAlternative},
	},
	{novelsrc.FrameworkReadWN, novelsrc.StepChapterList}: {
		{"Chapter item", ".chapter-list li", PriorityPrimary},
		{"Chapter title", ".chapter-title", PriorityAlternative},
		{"Chapter date", ".chapter-update", PriorityGeneric},
	},
	{novelsrc.FrameworkReadWN, novelsrc.StepChapterContent}: {
		{"Chapter container", ".chapter-content", PriorityPrimary},
		{"Chapter container", "#chapter-container", PriorityAlternative},
	},

	// WordPress
	{novelsrc.FrameworkWordPress, novelsrc.StepTrending}: {
		{"Post article", "article", PriorityPrimary},
		{"Post block", ".wp-block-post", PriorityAlternative},
		{"Post class", ".post", PriorityGeneric},
	},
	{novelsrc.FrameworkWordPress, novelsrc.StepSearchResult}: {
		{"Post article", "article", PriorityPrimary},
		{"Search result", ".search-result", PriorityAlternative},
	},
	{novelsrc.FrameworkWordPress, novelsrc.StepNovelCard}: {
		{"Entry title link", ".entry-title a", PriorityPrimary},
		{"Post title link", ".wp-block-post-title a", PriorityAlternative},
		{"Thumbnail", ".wp-post-image", PriorityAlternative},
		{"Next page", ".next", PriorityGeneric},
	},
	{novelsrc.FrameworkWordPress, novelsrc.StepNovelDetail}: {
		{"Title", ".entry-title", PriorityPrimary},
		{"Author", ".author a", PriorityGeneric},
		{"Description", ".entry-content p", PriorityAlternative},
		{"Categories", ".cat-links a", PriorityGeneric},
		{"Cover", ".wp-post-image", PriorityGeneric},
	},
	{novelsrc.FrameworkWordPress, novelsrc.StepChapterList}: {
		{"Content list item", ".entry-content li", PriorityPrimary},
		{"Content paragraph link", ".entry-content p", PriorityAlternative},
		{"Content link", ".entry-content a", PriorityGeneric},
	},
	{novelsrc.FrameworkWordPress, novelsrc.StepChapterContent}: {
		{"Entry content", ".entry-content", PriorityPrimary},
		{"Post content", ".wp-block-post-content", PriorityAlternative},
		{"Article", "article", PriorityGeneric},
	},

	// Custom
	{novelsrc.FrameworkCustom, novelsrc.StepTrending}: {
		{"List item", "li", PriorityGeneric},
		{"Article", "article", PriorityGeneric},
		{"Card", ".card", PriorityAlternative},
		{"Item", ".item", PriorityAlternative},
	},
	{novelsrc.FrameworkCustom, novelsrc.StepSearchResult}: {
		{"Search result", ".search-result", PriorityAlternative},
		{"Result item", ".result", PriorityGeneric},
		{"List item", "li", PriorityLastResort},
	},
	{novelsrc.FrameworkCustom, novelsrc.StepNovelCard}: {
		{"Link", "a", PriorityGeneric},
		{"Title", ".title", PriorityAlternative},
		{"Heading link", "h3 a", PriorityAlternative},
		{"Image", "img", PriorityGeneric},
		{"Next page", ".next", PriorityLastResort},
	},
	{novelsrc.FrameworkCustom, novelsrc.StepNovelDetail}: {
		{"Heading", "h1", PriorityAlternative},
		{"Title", ".title", PriorityGeneric},
		{"Author", ".author", PriorityGeneric},
		{"Description", ".description", PriorityGeneric},
		{"Summary", ".summary", PriorityLastResort},
		{"Genres", ".genres a", PriorityLastResort},
		{"Status", ".status", PriorityLastResort},
	},
	{novelsrc.FrameworkCustom, novelsrc.StepChapterList}: {
		{"Chapter item", ".chapter", PriorityAlternative},
		{"Chapter list item", ".chapters li", PriorityAlternative},
		{"List item", "li", PriorityLastResort},
	},
	{novelsrc.FrameworkCustom, novelsrc.StepChapterContent}: {
		{"Content", ".content", PriorityAlternative},
		{"Chapter content", "#content", PriorityAlternative},
		{"Article", "article", PriorityGeneric},
		{"Paragraphs", "p", PriorityLastResort},
	},
}
