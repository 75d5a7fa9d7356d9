package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/classify"
	main "github.com/fwojciec/novelsrc/cmd/novelsrc"
	"github.com/fwojciec/novelsrc/finder"
	"github.com/fwojciec/novelsrc/fs"
	"github.com/fwojciec/novelsrc/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() *novelsrc.SourceConfig {
	return &novelsrc.SourceConfig{
		Name:               "Test Novels",
		BaseURL:            "https://novels.example",
		Language:           "en",
		SourceType:         novelsrc.FrameworkCustom,
		PopularURLTemplate: "{baseUrl}/popular?page={page}",
		SearchURLTemplate:  "{baseUrl}/search?q={query}&page={page}",
		Selectors: novelsrc.SourceSelectors{
			Listing: novelsrc.ListingSelectors{ItemContainer: ".novel"},
			Detail: novelsrc.DetailSelectors{
				Title:  "h1",
				Author: ".author",
				Genre:  ".genre",
				Status: ".status",
			},
			Chapters: novelsrc.ChapterListSelectors{ItemContainer: "li.chapter"},
			Content:  novelsrc.ContentSelectors{Primary: "#content"},
		},
	}
}

// writeConfig saves cfg as JSON in a temporary directory and returns its path.
func writeConfig(t *testing.T, cfg *novelsrc.SourceConfig) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.json")
	require.NoError(t, fs.SaveConfig(path, cfg))
	return path
}

// writeRaw writes cfg as JSON without validating it.
func writeRaw(path string, cfg *novelsrc.SourceConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// site is a fake fetcher serving fixed pages by URL. Unknown URLs are not
// found.
type site struct {
	mu       sync.Mutex
	pages    map[string]string
	requests []novelsrc.Request
}

func newSite(pages map[string]string) *site {
	return &site{pages: pages}
}

func (s *site) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, req novelsrc.Request) (string, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.requests = append(s.requests, req)
			body, ok := s.pages[req.URL]
			if !ok {
				return "", novelsrc.Errorf(novelsrc.ENOTFOUND, "page %s not found", req.URL)
			}
			return body, nil
		},
		CloseFn: func() error { return nil },
	}
}

func (s *site) urls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	for i, r := range s.requests {
		out[i] = r.URL
	}
	return out
}

// newDeps returns dependencies wired to the fake site, with the output
// buffers.
func newDeps(s *site) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:         context.Background(),
		Stdout:      stdout,
		Stderr:      stderr,
		Engine:      finder.NewEngine(),
		Detector:    classify.NewDetector(),
		RetryDelays: []time.Duration{},
		Concurrency: 2,
	}
	if s != nil {
		deps.Fetchers = func(bool) (novelsrc.Fetcher, error) {
			return s.fetcher(), nil
		}
	}
	return deps, stdout, stderr
}
