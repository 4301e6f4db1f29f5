package httpcache

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"boscoin.io/council/lib/errors"
)

const HeaderCacheStatus = "X-Cache"

// Client caches the responses which the handler marks as shareable with
// `Cache-Control: public, max-age=<seconds>`. Everything else is passed
// through untouched.
type Client struct {
	adapter Adapter
	maxTTL  time.Duration
	methods map[string]bool
}

type ClientOption func(c *Client) error

func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		methods: map[string]bool{"GET": true},
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.adapter == nil {
		return nil, errors.HTTPCacheInvalidConfig.Clone().SetData("reason", "adapter is nil")
	}

	return c, nil
}

func WithAdapter(a Adapter) ClientOption {
	return func(c *Client) error {
		c.adapter = a
		return nil
	}
}

// WithMaxTTL caps the lifetime of cached responses; 0 keeps `max-age`.
func WithMaxTTL(ttl time.Duration) ClientOption {
	return func(c *Client) error {
		c.maxTTL = ttl
		return nil
	}
}

func WithMethods(methods ...string) ClientOption {
	return func(c *Client) error {
		for _, m := range methods {
			c.methods[m] = true
		}
		return nil
	}
}

func (c *Client) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ok := c.methods[r.Method]; !ok {
			next.ServeHTTP(w, r)
			return
		}
		c.handleCache(next, w, r)
	})
}

func (c *Client) handleCache(next http.Handler, w http.ResponseWriter, r *http.Request) {
	key := cacheKey(r.URL)
	if resp, ok := c.adapter.Get(key); ok {
		if !resp.IsExpired() {
			writeResponse(w, resp.StatusCode, resp.Header, resp.Value, "HIT")
			log.Debug("return cache", "url", key)
			return
		}
		c.adapter.Remove(key)
	}

	rec := httptest.NewRecorder()
	next.ServeHTTP(rec, r)

	result := rec.Result()
	value := rec.Body.Bytes()
	if ttl, ok := c.cachingTTL(result); ok {
		expiration := time.Now().Add(ttl)
		c.adapter.Set(key, &Response{
			Value:      value,
			StatusCode: result.StatusCode,
			Header:     result.Header,
		}, expiration)
		log.Debug("page cached", "url", key, "code", result.StatusCode, "expiration", expiration)
	}

	writeResponse(w, result.StatusCode, result.Header, value, "MISS")
}

func (c *Client) cachingTTL(result *http.Response) (time.Duration, bool) {
	if result.StatusCode != http.StatusOK {
		return 0, false
	}

	ttl, ok := parseCacheControl(result.Header.Get("Cache-Control"))
	if !ok {
		return 0, false
	}
	if c.maxTTL > 0 && ttl > c.maxTTL {
		ttl = c.maxTTL
	}

	return ttl, true
}

// parseCacheControl returns the `max-age` of a `public` response.
func parseCacheControl(v string) (time.Duration, bool) {
	var public bool
	var maxAge int64
	for _, d := range strings.Split(v, ",") {
		d = strings.TrimSpace(strings.ToLower(d))
		switch {
		case d == "public":
			public = true
		case d == "no-store", d == "no-cache", d == "private":
			return 0, false
		case strings.HasPrefix(d, "max-age="):
			i, err := strconv.ParseInt(strings.TrimPrefix(d, "max-age="), 10, 64)
			if err != nil {
				return 0, false
			}
			maxAge = i
		}
	}

	if !public || maxAge < 1 {
		return 0, false
	}

	return time.Duration(maxAge) * time.Second, true
}

func writeResponse(w http.ResponseWriter, code int, header http.Header, body []byte, status string) {
	for k, v := range header {
		w.Header()[k] = v
	}
	w.Header().Set(HeaderCacheStatus, status)
	w.WriteHeader(code)
	w.Write(body)
}

func cacheKey(u *url.URL) string {
	params := u.Query()
	for _, p := range params {
		sort.Strings(p)
	}

	k := url.URL{Path: u.Path, RawQuery: params.Encode()}
	return k.String()
}
