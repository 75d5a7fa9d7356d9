package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/fwojciec/novelsrc"
	novelhttp "github.com/fwojciec/novelsrc/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(u string) novelsrc.Request {
	return novelsrc.Request{Method: novelsrc.MethodGet, URL: u}
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := novelhttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), get(server.URL))
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", html)
	})

	t.Run("sends configured headers and a default user agent", func(t *testing.T) {
		t.Parallel()

		var got http.Header
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := novelhttp.NewFetcher()
		req := get(server.URL)
		req.Headers = map[string]string{"Referer": "https://novels.example/"}

		_, err := fetcher.Fetch(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "https://novels.example/", got.Get("Referer"))
		assert.Equal(t, novelhttp.DefaultUserAgent, got.Get("User-Agent"))
	})

	t.Run("keeps a user agent from the request headers", func(t *testing.T) {
		t.Parallel()

		var ua string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ua = r.UserAgent()
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := novelhttp.NewFetcher(novelhttp.WithUserAgent("fallback"))
		req := get(server.URL)
		req.Headers = map[string]string{"User-Agent": "custom/1.0"}

		_, err := fetcher.Fetch(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "custom/1.0", ua)
	})

	t.Run("posts form bodies", func(t *testing.T) {
		t.Parallel()

		var method, contentType string
		var form url.Values
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method = r.Method
			contentType = r.Header.Get("Content-Type")
			_ = r.ParseForm()
			form = r.PostForm
			_, _ = w.Write([]byte(`<li class="wp-manga-chapter"></li>`))
		}))
		defer server.Close()

		fetcher := novelhttp.NewFetcher()
		req := novelsrc.Request{
			Method: novelsrc.MethodPost,
			URL:    server.URL + "/wp-admin/admin-ajax.php",
			Form:   url.Values{"action": {"manga_get_chapters"}, "manga": {"1234"}},
		}

		_, err := fetcher.Fetch(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, method)
		assert.Contains(t, contentType, "application/x-www-form-urlencoded")
		assert.Equal(t, "manga_get_chapters", form.Get("action"))
		assert.Equal(t, "1234", form.Get("manga"))
	})

	t.Run("decodes legacy charsets to UTF-8", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			_, _ = w.Write([]byte("<p>caf\xe9</p>"))
		}))
		defer server.Close()

		html, err := novelhttp.NewFetcher().Fetch(context.Background(), get(server.URL))
		require.NoError(t, err)
		assert.Equal(t, "<p>café</p>", html)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := novelhttp.NewFetcher(novelhttp.WithTimeout(10 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), get(server.URL))
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := novelhttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, get(server.URL))
		require.Error(t, err)
	})

	t.Run("returns error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := novelhttp.NewFetcher(novelhttp.WithTimeout(100 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), get("http://non-existent-host.invalid/page"))
		require.Error(t, err)
	})

	t.Run("reports missing pages as not found", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		_, err := novelhttp.NewFetcher().Fetch(context.Background(), get(server.URL))
		require.Error(t, err)
		assert.Equal(t, novelsrc.ENOTFOUND, novelsrc.ErrorCode(err))
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("reports other error statuses as internal", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := novelhttp.NewFetcher().Fetch(context.Background(), get(server.URL))
		require.Error(t, err)
		assert.Equal(t, novelsrc.EINTERNAL, novelsrc.ErrorCode(err))
		assert.Contains(t, err.Error(), "503")
	})
}
