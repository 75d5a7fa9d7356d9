package novelsrc

import (
	"bytes"
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// URL template placeholders.
const (
	PlaceholderBaseURL = "{baseUrl}"
	PlaceholderPage    = "{page}"
	PlaceholderQuery   = "{query}"
	PlaceholderNovelID = "{novelId}"
)

// Resolver parameter keys matching the placeholders above.
const (
	ParamBaseURL = "baseUrl"
	ParamPage    = "page"
	ParamQuery   = "query"
	ParamNovelID = "novelId"
)

// SourceConfig describes how to scrape one site. It is authored once and is
// read-only at scrape time.
type SourceConfig struct {
	Name               string            `json:"name" yaml:"name"`
	BaseURL            string            `json:"baseUrl" yaml:"baseUrl"`
	Language           string            `json:"language" yaml:"language"`
	SourceType         SiteFramework     `json:"sourceType" yaml:"sourceType"`
	PopularURLTemplate string            `json:"popularUrlTemplate" yaml:"popularUrlTemplate"`
	LatestURLTemplate  string            `json:"latestUrlTemplate,omitempty" yaml:"latestUrlTemplate,omitempty"`
	SearchURLTemplate  string            `json:"searchUrlTemplate" yaml:"searchUrlTemplate"`
	FeedURLTemplate    string            `json:"feedUrlTemplate,omitempty" yaml:"feedUrlTemplate,omitempty"`
	Headers            map[string]string `json:"headers" yaml:"headers"`
	Selectors          SourceSelectors   `json:"selectors" yaml:"selectors"`

	ChapterAjaxTemplate         string `json:"chapterAjaxTemplate,omitempty" yaml:"chapterAjaxTemplate,omitempty"`
	NovelIDSelector             string `json:"novelIdSelector,omitempty" yaml:"novelIdSelector,omitempty"`
	NovelIDAttr                 string `json:"novelIdAttr,omitempty" yaml:"novelIdAttr,omitempty"`
	NovelIDPattern              string `json:"novelIdPattern,omitempty" yaml:"novelIdPattern,omitempty"`
	ReverseChapters             bool   `json:"reverseChapters" yaml:"reverseChapters"`
	UseCloudflareBypass         bool   `json:"useCloudflareBypass" yaml:"useCloudflareBypass"`
	UseAlternateChapterEndpoint bool   `json:"useAlternateChapterEndpoint" yaml:"useAlternateChapterEndpoint"`
	PostSearch                  bool   `json:"postSearch" yaml:"postSearch"`
}

// SourceSelectors groups the selector sets of a configuration.
type SourceSelectors struct {
	Listing  ListingSelectors     `json:"listing" yaml:"listing"`
	Search   *ListingSelectors    `json:"search,omitempty" yaml:"search,omitempty"`
	Detail   DetailSelectors      `json:"detail" yaml:"detail"`
	Chapters ChapterListSelectors `json:"chapters" yaml:"chapters"`
	Content  ContentSelectors     `json:"content" yaml:"content"`
}

// ListingFor returns the selectors for a listing page. Search results use the
// search selectors when present.
func (s *SourceSelectors) ListingFor(search bool) ListingSelectors {
	if search && s.Search != nil {
		return *s.Search
	}
	return s.Listing
}

// ListingSelectors locate novel cards on popular, latest and search pages.
// Empty optional fields are derived from the container or its link.
type ListingSelectors struct {
	ItemContainer string `json:"itemContainer" yaml:"itemContainer"`
	Link          string `json:"link,omitempty" yaml:"link,omitempty"`
	Title         string `json:"title,omitempty" yaml:"title,omitempty"`
	Cover         string `json:"cover,omitempty" yaml:"cover,omitempty"`
	NextPageLink  string `json:"nextPageLink,omitempty" yaml:"nextPageLink,omitempty"`
}

// DetailSelectors locate fields on a novel detail page.
type DetailSelectors struct {
	Title       string `json:"title" yaml:"title"`
	Author      string `json:"author,omitempty" yaml:"author,omitempty"`
	Artist      string `json:"artist,omitempty" yaml:"artist,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Genre       string `json:"genre,omitempty" yaml:"genre,omitempty"`
	Status      string `json:"status,omitempty" yaml:"status,omitempty"`
	Cover       string `json:"cover,omitempty" yaml:"cover,omitempty"`
}

// ChapterListSelectors locate chapter entries.
type ChapterListSelectors struct {
	ItemContainer string `json:"itemContainer" yaml:"itemContainer"`
	Link          string `json:"link,omitempty" yaml:"link,omitempty"`
	Name          string `json:"name,omitempty" yaml:"name,omitempty"`
	Date          string `json:"date,omitempty" yaml:"date,omitempty"`
}

// ContentSelectors locate chapter text. Fallbacks are tried in order when
// Primary yields no text. RemoveSelectors are stripped before extraction.
type ContentSelectors struct {
	Primary         string   `json:"primary" yaml:"primary"`
	Fallbacks       []string `json:"fallbacks" yaml:"fallbacks"`
	RemoveSelectors []string `json:"removeSelectors" yaml:"removeSelectors"`
}

// Validate returns a *ConfigValidationError for the first problem found.
func (c *SourceConfig) Validate() error {
	if c.Name == "" {
		return &ConfigValidationError{Field: "name"}
	}
	if c.BaseURL == "" {
		return &ConfigValidationError{Field: "baseUrl"}
	}
	if c.SourceType != "" && !c.SourceType.Valid() {
		return &ConfigValidationError{Field: "sourceType", Reason: "unknown framework " + string(c.SourceType)}
	}

	if err := requirePlaceholders("searchUrlTemplate", c.SearchURLTemplate, PlaceholderQuery, PlaceholderPage); err != nil {
		return err
	}
	if err := requirePlaceholders("popularUrlTemplate", c.PopularURLTemplate, PlaceholderPage); err != nil {
		return err
	}
	if c.LatestURLTemplate != "" {
		if err := requirePlaceholders("latestUrlTemplate", c.LatestURLTemplate, PlaceholderPage); err != nil {
			return err
		}
	}
	if c.ChapterAjaxTemplate != "" {
		if err := requirePlaceholders("chapterAjaxTemplate", c.ChapterAjaxTemplate, PlaceholderBaseURL, PlaceholderNovelID); err != nil {
			return err
		}
	}

	required := []struct {
		field string
		value string
	}{
		{"selectors.listing.itemContainer", c.Selectors.Listing.ItemContainer},
		{"selectors.detail.title", c.Selectors.Detail.Title},
		{"selectors.chapters.itemContainer", c.Selectors.Chapters.ItemContainer},
		{"selectors.content.primary", c.Selectors.Content.Primary},
	}
	if c.Selectors.Search != nil {
		required = append(required, struct {
			field string
			value string
		}{"selectors.search.itemContainer", c.Selectors.Search.ItemContainer})
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ConfigValidationError{Field: r.field}
		}
	}

	if c.NovelIDPattern != "" {
		re, err := regexp.Compile(c.NovelIDPattern)
		if err != nil {
			return &ConfigValidationError{Field: "novelIdPattern", Reason: err.Error()}
		}
		if re.NumSubexp() < 1 {
			return &ConfigValidationError{Field: "novelIdPattern", Reason: "needs one capture group"}
		}
	}

	return nil
}

func requirePlaceholders(field, template string, placeholders ...string) error {
	if template == "" {
		return &ConfigValidationError{Field: field}
	}
	for _, p := range placeholders {
		if !strings.Contains(template, p) {
			return &ConfigValidationError{Field: field, Placeholder: p}
		}
	}
	return nil
}

// Framework returns the configured framework, treating an empty source type
// as Custom.
func (c *SourceConfig) Framework() SiteFramework {
	if c.SourceType == "" {
		return FrameworkCustom
	}
	return c.SourceType
}

// Normalize replaces empty headers, content fallbacks and remove selectors
// with nil. Decoders call it so that an absent list and an empty one load
// the same in every format.
func (c *SourceConfig) Normalize() {
	if len(c.Headers) == 0 {
		c.Headers = nil
	}
	if len(c.Selectors.Content.Fallbacks) == 0 {
		c.Selectors.Content.Fallbacks = nil
	}
	if len(c.Selectors.Content.RemoveSelectors) == 0 {
		c.Selectors.Content.RemoveSelectors = nil
	}
}

// DecodeSourceConfig parses a JSON configuration and validates it.
// Unknown fields are rejected so that typos surface before activation.
func DecodeSourceConfig(data []byte) (*SourceConfig, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var cfg SourceConfig
	if err := dec.Decode(&cfg); err != nil {
		return nil, Errorf(EINVALID, "invalid source config: %v", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// EncodeSourceConfig serializes a configuration as indented JSON.
func EncodeSourceConfig(cfg *SourceConfig) ([]byte, error) {
	if cfg == nil {
		return nil, Errorf(EINVALID, "nil source config")
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Source is a persisted configuration.
type Source struct {
	ID        string        `json:"id"`
	Config    *SourceConfig `json:"config"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Validate returns an error if the source contains invalid fields.
func (s *Source) Validate() error {
	if s.Config == nil {
		return Errorf(EINVALID, "source config required")
	}
	return s.Config.Validate()
}

// SourceService represents a service for managing stored configurations.
type SourceService interface {
	// CreateSource stores a new source.
	// Returns ECONFLICT if a source with the same name exists.
	CreateSource(ctx context.Context, source *Source) error

	// FindSourceByID retrieves a source by ID.
	// Returns ENOTFOUND if the source does not exist.
	FindSourceByID(ctx context.Context, id string) (*Source, error)

	// FindSourceByName retrieves a source by its configuration name.
	// Returns ENOTFOUND if the source does not exist.
	FindSourceByName(ctx context.Context, name string) (*Source, error)

	// FindSources retrieves sources matching the filter.
	FindSources(ctx context.Context, filter SourceFilter) ([]*Source, error)

	// UpdateSource replaces the configuration of an existing source.
	// Returns ENOTFOUND if the source does not exist.
	UpdateSource(ctx context.Context, id string, cfg *SourceConfig) (*Source, error)

	// DeleteSource permanently removes a source.
	// Returns ENOTFOUND if the source does not exist.
	DeleteSource(ctx context.Context, id string) error
}

// SourceFilter represents a filter for FindSources.
type SourceFilter struct {
	Name       *string        `json:"name"`
	SourceType *SiteFramework `json:"sourceType"`
	Language   *string        `json:"language"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
