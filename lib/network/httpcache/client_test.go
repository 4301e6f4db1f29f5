package httpcache

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseCacheControl(t *testing.T) {
	cases := []struct {
		value string
		ttl   time.Duration
		ok    bool
	}{
		{"public, max-age=60", time.Minute, true},
		{"max-age=60, public, immutable", time.Minute, true},
		{"public", 0, false},
		{"max-age=60", 0, false},
		{"public, max-age=0", 0, false},
		{"public, no-store, max-age=60", 0, false},
		{"public, max-age=abc", 0, false},
		{"", 0, false},
	}

	for _, c := range cases {
		ttl, ok := parseCacheControl(c.value)
		require.Equal(t, c.ok, ok, c.value)
		require.Equal(t, c.ttl, ttl, c.value)
	}
}

func TestMiddleware(t *testing.T) {
	a, err := NewMemCacheAdapter(10)
	require.NoError(t, err)

	c, err := NewClient(WithAdapter(a))
	require.NoError(t, err)

	var calls int
	handler := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("immutable") == "1" {
			w.Header().Set("Cache-Control", "public, max-age=60")
		}
		if r.URL.Query().Get("missing") == "1" {
			w.Header().Set("Cache-Control", "public, max-age=60")
			w.WriteHeader(http.StatusNotFound)
		}
		w.Write([]byte(fmt.Sprintf("value:%d", calls)))
	}))

	serve := func(method, target string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(method, target, nil))
		return w
	}

	{ // cacheable, query order does not matter
		w := serve("GET", "/p?immutable=1&a=1")
		require.Equal(t, "value:1", w.Body.String())
		require.Equal(t, "MISS", w.Header().Get(HeaderCacheStatus))

		w = serve("GET", "/p?a=1&immutable=1")
		require.Equal(t, "value:1", w.Body.String())
		require.Equal(t, "HIT", w.Header().Get(HeaderCacheStatus))
		require.Equal(t, "public, max-age=60", w.Header().Get("Cache-Control"))
		require.Equal(t, 1, calls)
	}

	{ // not marked
		require.Equal(t, "value:2", serve("GET", "/q").Body.String())
		require.Equal(t, "value:3", serve("GET", "/q").Body.String())
	}

	{ // errors are not cached
		w := serve("GET", "/r?missing=1")
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, "value:4", w.Body.String())
		require.Equal(t, "value:5", serve("GET", "/r?missing=1").Body.String())
	}

	{ // other methods pass through
		require.Equal(t, "value:6", serve("POST", "/p?immutable=1&a=1").Body.String())
	}

	require.Equal(t, 1, a.Len())
}

func TestMiddlewareExpired(t *testing.T) {
	a, err := NewMemCacheAdapter(10)
	require.NoError(t, err)
	a.Set("/p", &Response{Value: []byte("stale"), StatusCode: http.StatusOK}, time.Now().Add(-time.Second))

	c, err := NewClient(WithAdapter(a), WithMaxTTL(time.Second))
	require.NoError(t, err)

	handler := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=60")
		w.Write([]byte("fresh"))
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/p", nil))
	require.Equal(t, "fresh", w.Body.String())

	resp, ok := a.Get("/p")
	require.True(t, ok)
	require.True(t, resp.Expiration.Before(time.Now().Add(2*time.Second)))
}

func TestNewClientWithoutAdapter(t *testing.T) {
	_, err := NewClient()
	require.Error(t, err)
}
