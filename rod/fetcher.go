// Package rod provides a browser-backed novelsrc.Fetcher for sources that sit
// behind JavaScript challenges such as Cloudflare's interstitial page.
package rod

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/novelsrc"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 10 * time.Second

// challengeTitles mark interstitial pages shown while a challenge runs.
var challengeTitles = []string{"Just a moment", "Attention Required", "Checking your browser"}

// Ensure Fetcher implements novelsrc.Fetcher at compile time.
var _ novelsrc.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation. Only GET
// requests are supported; request headers are sent as extra headers.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager   *BrowserManager
	timeout   time.Duration
	challenge time.Duration
	closed    atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout for a single page load.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithChallengeWait sets how long to wait for a challenge page to clear.
// Zero disables waiting.
func WithChallengeWait(d time.Duration) Option {
	return func(f *Fetcher) {
		f.challenge = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		challenge: 15 * time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}

	m, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.manager = m
	return f, nil
}

// Fetch navigates to the request URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, req novelsrc.Request) (string, error) {
	if req.Method != "" && req.Method != novelsrc.MethodGet {
		return "", novelsrc.Errorf(novelsrc.ENOTIMPLEMENTED, "browser fetcher does not support %s requests", req.Method)
	}
	if f.closed.Load() || f.manager == nil {
		return "", novelsrc.Errorf(novelsrc.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout+f.challenge)
	defer cancel()

	browser := f.manager.Browser()
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	page = page.Context(ctx)

	if len(req.Headers) > 0 {
		dict := make([]string, 0, len(req.Headers)*2)
		for k, v := range req.Headers {
			dict = append(dict, k, v)
		}
		cleanup, err := page.SetExtraHeaders(dict)
		if err != nil {
			return "", err
		}
		defer cleanup()
	}

	if err := page.Timeout(f.timeout).Navigate(req.URL); err != nil {
		return "", err
	}
	if err := page.Timeout(f.timeout).WaitLoad(); err != nil {
		return "", err
	}

	deadline := time.Now().Add(f.challenge)
	for {
		info, err := page.Info()
		if err != nil {
			return "", err
		}
		if !isChallenge(info.Title) || time.Now().After(deadline) {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}

	return page.HTML()
}

func isChallenge(title string) bool {
	for _, t := range challengeTitles {
		if strings.Contains(title, t) {
			return true
		}
	}
	return false
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	if f.manager == nil {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	if f.manager == nil {
		return 0
	}
	return f.manager.LauncherPID()
}
