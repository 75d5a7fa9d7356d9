// Package preset provides ready-made source configurations for the common
// site frameworks.
package preset

import (
	"strings"

	"github.com/fwojciec/novelsrc"
)

// DefaultLanguage is the language assigned to new configurations.
const DefaultLanguage = "en"

// builders return a fresh configuration on every call so that callers may
// modify the result.
var builders = map[novelsrc.SiteFramework]func() *novelsrc.SourceConfig{
	novelsrc.FrameworkMadara:        madara,
	novelsrc.FrameworkLightNovelWP:  lightNovelWP,
	novelsrc.FrameworkReadNovelFull: readNovelFull,
	novelsrc.FrameworkReadWN:        readWN,
	novelsrc.FrameworkWordPress:     wordPress,
}

// New returns a valid configuration for framework named name and rooted at
// baseURL. Returns ENOTFOUND for frameworks without a preset, and a
// *novelsrc.ConfigValidationError when name or baseURL is empty.
func New(framework novelsrc.SiteFramework, name, baseURL string) (*novelsrc.SourceConfig, error) {
	build, ok := builders[framework]
	if !ok {
		return nil, novelsrc.Errorf(novelsrc.ENOTFOUND, "no preset for framework %q", string(framework))
	}

	cfg := build()
	cfg.Name = name
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	cfg.Language = DefaultLanguage
	cfg.SourceType = framework
	cfg.Headers = map[string]string{}
	if cfg.BaseURL != "" {
		cfg.Headers["Referer"] = cfg.BaseURL + "/"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Frameworks returns the frameworks that have a preset, in declaration order.
func Frameworks() []novelsrc.SiteFramework {
	var out []novelsrc.SiteFramework
	for _, f := range novelsrc.Frameworks() {
		if _, ok := builders[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

func madara() *novelsrc.SourceConfig {
	return &novelsrc.SourceConfig{
		PopularURLTemplate: "{baseUrl}/manga/page/{page}/?m_orderby=views",
		LatestURLTemplate:  "{baseUrl}/manga/page/{page}/?m_orderby=latest",
		SearchURLTemplate:  "{baseUrl}/page/{page}/?s={query}&post_type=wp-manga",
		Selectors: novelsrc.SourceSelectors{
			Listing: novelsrc.ListingSelectors{
				ItemContainer: ".page-item-detail",
				Link:          ".post-title a",
				Title:         ".post-title",
				Cover:         "img",
				NextPageLink:  ".nav-previous a",
			},
			Search: &novelsrc.ListingSelectors{
				ItemContainer: ".c-tabs-item__content",
				Link:          ".post-title a",
				Title:         ".post-title",
				Cover:         "img",
			},
			Detail: novelsrc.DetailSelectors{
				Title:       ".post-title h1",
				Author:      ".author-content a",
				Artist:      ".artist-content a",
				Description: ".summary__content",
				Genre:       ".genres-content a",
				Status:      ".post-status .summary-content",
				Cover:       ".summary_image img",
			},
			Chapters: novelsrc.ChapterListSelectors{
				ItemContainer: ".wp-manga-chapter",
				Link:          "a",
				Name:          "a",
				Date:          ".chapter-release-date",
			},
			Content: novelsrc.ContentSelectors{
				Primary:         ".reading-content",
				Fallbacks:       []string{".text-left", ".entry-content"},
				RemoveSelectors: []string{"script", ".ads", ".code-block"},
			},
		},
		ChapterAjaxTemplate: "{baseUrl}/wp-admin/admin-ajax.php?action=manga_get_chapters&manga={novelId}",
		NovelIDSelector:     "#manga-chapters-holder",
		NovelIDAttr:         "data-id",
		ReverseChapters:     true,
	}
}

func lightNovelWP() *novelsrc.SourceConfig {
	return &novelsrc.SourceConfig{
		PopularURLTemplate: "{baseUrl}/series/?page={page}&order=popular",
		LatestURLTemplate:  "{baseUrl}/series/?page={page}&order=update",
		SearchURLTemplate:  "{baseUrl}/page/{page}/?s={query}",
		Selectors: novelsrc.SourceSelectors{
			Listing: novelsrc.ListingSelectors{
				ItemContainer: ".bsx",
				Link:          "a",
				Title:         ".tt",
				Cover:         "img",
				NextPageLink:  ".hpage .r",
			},
			Detail: novelsrc.DetailSelectors{
				Title:       ".entry-title",
				Author:      ".serl a",
				Description: ".entry-content",
				Genre:       ".sertogenre a",
				Status:      ".sertostat span",
				Cover:       ".sertothumb img",
			},
			Chapters: novelsrc.ChapterListSelectors{
				ItemContainer: ".eplister li",
				Link:          "a",
				Name:          ".epl-title",
				Date:          ".epl-date",
			},
			Content: novelsrc.ContentSelectors{
				Primary:         ".epcontent",
				Fallbacks:       []string{".entry-content", "#readerarea"},
				RemoveSelectors: []string{"script", ".code-block", ".sharedaddy"},
			},
		},
		ReverseChapters: true,
	}
}

func readNovelFull() *novelsrc.SourceConfig {
	return &novelsrc.SourceConfig{
		PopularURLTemplate: "{baseUrl}/novel-list/most-popular-novel?page={page}",
		LatestURLTemplate:  "{baseUrl}/novel-list/latest-release-novel?page={page}",
		SearchURLTemplate:  "{baseUrl}/novel-list/search?keyword={query}&page={page}",
		Selectors: novelsrc.SourceSelectors{
			Listing: novelsrc.ListingSelectors{
				ItemContainer: ".list-novel .row",
				Link:          ".novel-title a",
				Title:         ".novel-title",
				Cover:         ".cover",
				NextPageLink:  ".next a",
			},
			Detail: novelsrc.DetailSelectors{
				Title:       "h3.title",
				Author:      ".info a",
				Description: ".desc-text",
				Status:      ".info .text-primary",
				Cover:       ".book img",
			},
			Chapters: novelsrc.ChapterListSelectors{
				ItemContainer: ".list-chapter li",
				Link:          "a",
				Name:          ".chapter-text",
			},
			Content: novelsrc.ContentSelectors{
				Primary:         "#chr-content",
				Fallbacks:       []string{"#chapter-content", ".chr-c"},
				RemoveSelectors: []string{"script", "iframe", ".ads"},
			},
		},
		ChapterAjaxTemplate: "{baseUrl}/ajax/chapter-archive?novelId={novelId}",
		NovelIDSelector:     "#rating",
		NovelIDAttr:         "data-novel-id",
	}
}

func readWN() *novelsrc.SourceConfig {
	return &novelsrc.SourceConfig{
		PopularURLTemplate: "{baseUrl}/list/all/all-onclick-{page}.html",
		LatestURLTemplate:  "{baseUrl}/list/all/all-newstime-{page}.html",
		SearchURLTemplate:  "{baseUrl}/e/search/index.php?show=title&tempid=1&tbname=news&keyboard={query}&page={page}",
		Selectors: novelsrc.SourceSelectors{
			Listing: novelsrc.ListingSelectors{
				ItemContainer: ".novel-item",
				Link:          "a",
				Title:         ".novel-title",
				Cover:         ".novel-cover img",
				NextPageLink:  ".PagedList-skipToNext a",
			},
			Detail: novelsrc.DetailSelectors{
				Title:       ".novel-title",
				Author:      ".author span",
				Description: ".summary .content",
				Genre:       ".categories a",
				Status:      ".header-stats span",
				Cover:       ".cover img",
			},
			Chapters: novelsrc.ChapterListSelectors{
				ItemContainer: ".chapter-list li",
				Link:          "a",
				Name:          ".chapter-title",
				Date:          ".chapter-update",
			},
			Content: novelsrc.ContentSelectors{
				Primary:         ".chapter-content",
				Fallbacks:       []string{"#chapter-container"},
				RemoveSelectors: []string{"script"},
			},
		},
		NovelIDPattern: `/novel/([^/.]+)`,
		PostSearch:     true,
	}
}

func wordPress() *novelsrc.SourceConfig {
	return &novelsrc.SourceConfig{
		PopularURLTemplate: "{baseUrl}/page/{page}/",
		SearchURLTemplate:  "{baseUrl}/page/{page}/?s={query}",
		Selectors: novelsrc.SourceSelectors{
			Listing: novelsrc.ListingSelectors{
				ItemContainer: "article",
				Link:          ".entry-title a",
				Title:         ".entry-title",
				Cover:         ".wp-post-image",
				NextPageLink:  ".next",
			},
			Detail: novelsrc.DetailSelectors{
				Title:       ".entry-title",
				Description: ".entry-content p",
				Cover:       ".wp-post-image",
			},
			Chapters: novelsrc.ChapterListSelectors{
				ItemContainer: ".entry-content li",
				Link:          "a",
			},
			Content: novelsrc.ContentSelectors{
				Primary:         ".entry-content",
				Fallbacks:       []string{".wp-block-post-content", "article"},
				RemoveSelectors: []string{"script", ".sharedaddy", ".jp-relatedposts", ".wp-block-buttons"},
			},
		},
	}
}
