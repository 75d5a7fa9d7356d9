package scrape

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/novelsrc"
)

// challengeMarkers appear in interstitial pages served instead of content
// while a bot challenge runs.
var challengeMarkers = []string{
	"<title>Just a moment",
	"<title>Attention Required",
	"cf-browser-verification",
	"/cdn-cgi/challenge-platform/",
}

// Probe is the outcome of ProbeSource.
type Probe struct {
	Framework novelsrc.SiteFramework

	// NeedsBrowser recommends useCloudflareBypass for the source.
	NeedsBrowser bool

	Reason string
}

// ProbeSource decides whether a site must be fetched through a browser.
//
// Decision flow:
//   - Plain fetch fails or returns a challenge page: browser, when the
//     browser can load the page
//   - Known theme: plain HTTP, themes render server side
//   - Custom site: fetch with the browser and compare extracted content
//
// browser may be nil, in which case custom sites are reported as plain
// HTTP.
func ProbeSource(
	ctx context.Context,
	pageURL string,
	plain novelsrc.Fetcher,
	browser novelsrc.Fetcher,
	detector novelsrc.FrameworkDetector,
	extractor novelsrc.ContentExtractor,
) (*Probe, error) {
	req := novelsrc.Request{Method: novelsrc.MethodGet, URL: pageURL}

	plainHTML, plainErr := plain.Fetch(ctx, req)
	if plainErr == nil && !isChallenge(plainHTML) {
		p := &Probe{Framework: detector.Detect(plainHTML)}
		if p.Framework != novelsrc.FrameworkCustom {
			p.Reason = fmt.Sprintf("%s themes render server side", p.Framework)
			return p, nil
		}
		if browser == nil {
			p.Reason = "no browser available for comparison"
			return p, nil
		}
		browserHTML, err := browser.Fetch(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			p.Reason = fmt.Sprintf("browser fetch failed: %v", err)
			return p, nil
		}
		if ContentDiffers(plainHTML, browserHTML, pageURL, extractor) {
			p.NeedsBrowser = true
			p.Reason = "rendered page has substantially more content"
			return p, nil
		}
		p.Reason = "plain and rendered content match"
		return p, nil
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	reason := "plain fetch returned a challenge page"
	if plainErr != nil {
		reason = fmt.Sprintf("plain fetch failed: %v", plainErr)
	}
	if browser == nil {
		if plainErr != nil {
			return nil, plainErr
		}
		return nil, novelsrc.Errorf(novelsrc.EINTERNAL, "%s and no browser is available", reason)
	}

	browserHTML, err := browser.Fetch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s; browser fetch: %w", reason, err)
	}
	return &Probe{
		Framework:    detector.Detect(browserHTML),
		NeedsBrowser: true,
		Reason:       reason,
	}, nil
}

// ContentDiffers reports whether the rendered page yields main content more
// than 50% longer than the plain page. Extraction failures count as a
// difference.
func ContentDiffers(plainHTML, renderedHTML, pageURL string, extractor novelsrc.ContentExtractor) bool {
	plain, err := extractor.Extract(plainHTML, pageURL)
	if err != nil {
		return true
	}
	rendered, err := extractor.Extract(renderedHTML, pageURL)
	if err != nil {
		return true
	}

	plainLen := len(plain.ContentHTML)
	renderedLen := len(rendered.ContentHTML)
	if plainLen == 0 {
		return renderedLen > 0
	}
	return renderedLen*2 > plainLen*3
}

func isChallenge(html string) bool {
	for _, m := range challengeMarkers {
		if strings.Contains(html, m) {
			return true
		}
	}
	return false
}
