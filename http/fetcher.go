// Package http provides an HTTP-based implementation of novelsrc.Fetcher
// for sites that serve their listings and chapters as static HTML.
package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/novelsrc"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent is sent when a request carries no User-Agent header.
// Several novel sites reject Go's default agent.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// Ensure Fetcher implements novelsrc.Fetcher at compile time.
var _ novelsrc.Fetcher = (*Fetcher)(nil)

// Fetcher performs configuration requests over plain HTTP. Unlike rod.Fetcher,
// it does not execute JavaScript, but it supports POST form bodies.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch performs the request and returns the body decoded to UTF-8.
// The charset is taken from the Content-Type header or sniffed from the
// document. A 404 response is reported as ENOTFOUND.
func (f *Fetcher) Fetch(ctx context.Context, r novelsrc.Request) (string, error) {
	method := r.Method
	if method == "" {
		method = novelsrc.MethodGet
	}

	var body io.Reader
	if method == novelsrc.MethodPost && r.Form != nil {
		body = strings.NewReader(r.Form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, r.URL, body)
	if err != nil {
		return "", novelsrc.Errorf(novelsrc.EINVALID, "invalid request %s %s: %v", method, r.URL, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", novelsrc.Errorf(novelsrc.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, r.URL)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", novelsrc.Errorf(novelsrc.EINTERNAL, "HTTP %d for %s", resp.StatusCode, r.URL)
	}

	utf8, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(utf8)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
