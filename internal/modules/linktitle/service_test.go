package linktitle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/articlekit/core/internal/config"
)

type memCache struct {
	values map[string]string
	sets   int
}

func newMemCache() *memCache { return &memCache{values: map[string]string{}} }

func (m *memCache) Get(_ context.Context, key string) (string, error) {
	return m.values[key], nil
}

func (m *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.sets++
	m.values[key] = value.(string)
	return nil
}

func boolPtr(b bool) *bool { return &b }

func testConfig(lookup bool) config.LinkConfig {
	return config.LinkConfig{
		Lookup:         boolPtr(lookup),
		TimeoutSeconds: 2,
		MaxRedirects:   3,
		MaxBodyBytes:   64 * 1024,
	}
}

func TestTitleForLookupDisabled(t *testing.T) {
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
	}))
	defer srv.Close()

	cache := newMemCache()
	svc := NewService(cache, testConfig(false), nil)

	got := svc.TitleFor(context.Background(), srv.URL, "click here")
	if got != "click here" {
		t.Errorf("TitleFor = %q, want link text", got)
	}
	if fetches != 0 {
		t.Errorf("expected no fetch with lookup disabled, got %d", fetches)
	}

	// second call served from cache
	got = svc.TitleFor(context.Background(), srv.URL, "different text")
	if got != "click here" {
		t.Errorf("second TitleFor = %q, want cached %q", got, "click here")
	}
	if cache.sets != 1 {
		t.Errorf("expected 1 cache set, got %d", cache.sets)
	}
}

func TestTitleForFetchesTitle(t *testing.T) {
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		w.Write([]byte(`<html><head><TITLE>Remote Page</TITLE></head><body></body></html>`))
	}))
	defer srv.Close()

	svc := NewService(newMemCache(), testConfig(true), nil)

	got := svc.TitleFor(context.Background(), srv.URL, "click here")
	if got != "Remote Page" {
		t.Errorf("TitleFor = %q, want %q", got, "Remote Page")
	}

	// cached: no second fetch
	svc.TitleFor(context.Background(), srv.URL, "click here")
	if fetches != 1 {
		t.Errorf("expected 1 fetch, got %d", fetches)
	}
}

func TestTitleForFailureFallsBackAndCaches(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-2xx", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"no title tag", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html><body>binary-ish content</body></html>`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetches := 0
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fetches++
				tt.handler(w, r)
			}))
			defer srv.Close()

			cache := newMemCache()
			svc := NewService(cache, testConfig(true), nil)

			got := svc.TitleFor(context.Background(), srv.URL, "link text")
			if got != "link text" {
				t.Errorf("TitleFor = %q, want fallback %q", got, "link text")
			}

			// the fallback is cached too; failures are not retried
			svc.TitleFor(context.Background(), srv.URL, "link text")
			if fetches != 1 {
				t.Errorf("expected 1 fetch, got %d", fetches)
			}
		})
	}
}

func TestTitleForUnreachableHost(t *testing.T) {
	svc := NewService(newMemCache(), testConfig(true), nil)
	got := svc.TitleFor(context.Background(), "http://127.0.0.1:1", "visible text")
	if got != "visible text" {
		t.Errorf("TitleFor = %q, want fallback", got)
	}
}

func TestCacheKeyStable(t *testing.T) {
	a := cacheKey("http://example.com/page")
	b := cacheKey("http://example.com/page")
	c := cacheKey("http://example.com/other")
	if a != b {
		t.Error("cache key not deterministic")
	}
	if a == c {
		t.Error("distinct URLs share a cache key")
	}
}
