package novelsrc

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Resolve substitutes every {key} in template with params[key]. The query
// parameter is percent-encoded; other values are inserted verbatim.
// Placeholders without a matching key are left intact.
func Resolve(template string, params map[string]string) string {
	return resolve(template, params, true)
}

func resolve(template string, params map[string]string, encodeQuery bool) string {
	if len(params) == 0 {
		return template
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		v := params[k]
		if k == ParamQuery && encodeQuery {
			v = EncodeQuery(v)
		}
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// EncodeQuery percent-encodes a search query for use anywhere in a URL.
// Spaces become %20 rather than +.
func EncodeQuery(q string) string {
	return strings.ReplaceAll(url.QueryEscape(q), "+", "%20")
}

var placeholderRe = regexp.MustCompile(`\{[A-Za-z][A-Za-z0-9_]*\}`)

// UnresolvedPlaceholders returns the {name} tokens remaining in s, in order
// of first appearance.
func UnresolvedPlaceholders(s string) []string {
	matches := placeholderRe.FindAllString(s, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// Request describes one HTTP request produced from a configuration.
// Form is set only for POST requests.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Form    url.Values
}

// HTTP methods used by requests.
const (
	MethodGet  = "GET"
	MethodPost = "POST"
)

// baseURL returns the configured base URL without a trailing slash.
func (c *SourceConfig) baseURL() string {
	return strings.TrimRight(c.BaseURL, "/")
}

func (c *SourceConfig) get(u string) Request {
	return Request{Method: MethodGet, URL: u, Headers: c.Headers}
}

// PopularRequest returns the request for a popular listing page (1-based).
func (c *SourceConfig) PopularRequest(page int) Request {
	return c.get(Resolve(c.PopularURLTemplate, map[string]string{
		ParamBaseURL: c.baseURL(),
		ParamPage:    strconv.Itoa(page),
	}))
}

// LatestRequest returns the request for a latest-updates listing page.
// Configurations without a latest template fall back to popular.
func (c *SourceConfig) LatestRequest(page int) Request {
	if c.LatestURLTemplate == "" {
		return c.PopularRequest(page)
	}
	return c.get(Resolve(c.LatestURLTemplate, map[string]string{
		ParamBaseURL: c.baseURL(),
		ParamPage:    strconv.Itoa(page),
	}))
}

// SearchRequest returns the request for a search results page. With
// PostSearch the same parameters are sent as a form body instead.
func (c *SourceConfig) SearchRequest(query string, page int) Request {
	params := map[string]string{
		ParamBaseURL: c.baseURL(),
		ParamPage:    strconv.Itoa(page),
		ParamQuery:   query,
	}
	if !c.PostSearch {
		return c.get(Resolve(c.SearchURLTemplate, params))
	}
	return c.post(c.SearchURLTemplate, params, []string{ParamQuery, ParamPage})
}

// post builds a form request from a template. Query string parameters of the
// template become form fields resolved with raw values; a template without a
// query string sends the named params keyed by placeholder name.
func (c *SourceConfig) post(template string, params map[string]string, keys []string) Request {
	target, rawQuery, hasQuery := strings.Cut(template, "?")

	form := url.Values{}
	if hasQuery && rawQuery != "" {
		for _, part := range strings.Split(rawQuery, "&") {
			if part == "" {
				continue
			}
			k, v, _ := strings.Cut(part, "=")
			form.Add(resolve(k, params, false), resolve(v, params, false))
		}
	} else {
		for _, k := range keys {
			form.Set(k, params[k])
		}
	}

	return Request{
		Method:  MethodPost,
		URL:     Resolve(target, params),
		Headers: c.Headers,
		Form:    form,
	}
}

// ChapterListRequest returns the request that yields the chapter list of a
// novel. The novel page itself is used unless an AJAX endpoint is configured.
func (c *SourceConfig) ChapterListRequest(novelURL, novelID string) Request {
	if c.UseAlternateChapterEndpoint {
		return Request{
			Method:  MethodPost,
			URL:     strings.TrimRight(novelURL, "/") + "/ajax/chapters/",
			Headers: c.Headers,
			Form:    url.Values{},
		}
	}
	if c.ChapterAjaxTemplate == "" {
		return c.get(novelURL)
	}

	params := map[string]string{
		ParamBaseURL: c.baseURL(),
		ParamNovelID: novelID,
	}
	if c.Framework() == FrameworkMadara {
		return c.post(c.ChapterAjaxTemplate, params, []string{ParamNovelID})
	}
	return c.get(Resolve(c.ChapterAjaxTemplate, params))
}

// FeedRequest returns the request for the site's update feed. WordPress
// themes publish one at {baseUrl}/feed/, which is used when no feed template
// is configured.
func (c *SourceConfig) FeedRequest() Request {
	if c.FeedURLTemplate == "" {
		return c.get(c.baseURL() + "/feed/")
	}
	return c.get(Resolve(c.FeedURLTemplate, map[string]string{
		ParamBaseURL: c.baseURL(),
	}))
}
