package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/fwojciec/madara"
	madarahttp "github.com/fwojciec/madara/http"
	"github.com/fwojciec/madara/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := madarahttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", html)
	})

	t.Run("sends user agent and referer", func(t *testing.T) {
		t.Parallel()

		var ua, referer string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ua = r.Header.Get("User-Agent")
			referer = r.Header.Get("Referer")
		}))
		defer server.Close()

		fetcher := madarahttp.NewFetcher(madarahttp.WithUserAgent("madara-test"))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL+"/manga/foo/")
		require.NoError(t, err)
		assert.Equal(t, "madara-test", ua)
		assert.Equal(t, server.URL+"/", referer)
	})

	t.Run("keeps cookies between requests", func(t *testing.T) {
		t.Parallel()

		var got string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/login" {
				http.SetCookie(w, &http.Cookie{Name: "cf_clearance", Value: "ok", Path: "/"})
				return
			}
			if c, err := r.Cookie("cf_clearance"); err == nil {
				got = c.Value
			}
		}))
		defer server.Close()

		fetcher := madarahttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL+"/login")
		require.NoError(t, err)
		_, err = fetcher.Fetch(context.Background(), server.URL+"/manga/")
		require.NoError(t, err)

		assert.Equal(t, "ok", got)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		// Use a very short timeout that will expire before server responds
		fetcher := madarahttp.NewFetcher(madarahttp.WithTimeout(10 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := madarahttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("waits on the limiter with the host", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer server.Close()

		var host string
		limiter := &mock.DomainLimiter{
			WaitFn: func(_ context.Context, domain string) error {
				host = domain
				return nil
			},
		}
		fetcher := madarahttp.NewFetcher(madarahttp.WithLimiter(limiter))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)

		u, err := url.Parse(server.URL)
		require.NoError(t, err)
		assert.Equal(t, u.Hostname(), host)
	})

	t.Run("returns limiter errors without requesting", func(t *testing.T) {
		t.Parallel()

		requested := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requested = true
		}))
		defer server.Close()

		limiter := &mock.DomainLimiter{
			WaitFn: func(context.Context, string) error { return errors.New("limited") },
		}
		fetcher := madarahttp.NewFetcher(madarahttp.WithLimiter(limiter))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.False(t, requested)
	})

	t.Run("returns not found for 404", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		fetcher := madarahttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, madara.ENOTFOUND, madara.ErrorCode(err))
	})

	t.Run("returns error for other non-200 status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		fetcher := madarahttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("returns error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := madarahttp.NewFetcher(madarahttp.WithTimeout(100 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")
		require.Error(t, err)
	})
}

func TestFetcher_Post(t *testing.T) {
	t.Parallel()

	t.Run("posts url-encoded form as AJAX", func(t *testing.T) {
		t.Parallel()

		var (
			method, contentType, requestedWith string
			form                               url.Values
		)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method = r.Method
			contentType = r.Header.Get("Content-Type")
			requestedWith = r.Header.Get("X-Requested-With")
			_ = r.ParseForm()
			form = r.PostForm
			_, _ = w.Write([]byte(`<div class="page-item-detail"></div>`))
		}))
		defer server.Close()

		fetcher := madarahttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Post(context.Background(), server.URL+"/wp-admin/admin-ajax.php", url.Values{
			"action": {"madara_load_more"},
			"page":   {"1"},
		})

		require.NoError(t, err)
		assert.Equal(t, `<div class="page-item-detail"></div>`, html)
		assert.Equal(t, http.MethodPost, method)
		assert.Contains(t, contentType, "application/x-www-form-urlencoded")
		assert.Equal(t, "XMLHttpRequest", requestedWith)
		assert.Equal(t, "madara_load_more", form.Get("action"))
		assert.Equal(t, "1", form.Get("page"))
	})
}
