package httpcache

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/council/lib/errors"
)

var (
	_ Adapter = (*MemCacheAdapter)(nil)
	_ Adapter = (*RedisCacheAdapter)(nil)
	_ Adapter = NopAdapter{}
)

func TestMemCacheAdapter(t *testing.T) {
	a, err := NewMemCacheAdapter(1)
	require.NoError(t, err)

	expiration := time.Now().Add(time.Minute)
	resp := &Response{Value: []byte("hello"), StatusCode: http.StatusOK}
	a.Set("key", resp, expiration)

	cached, ok := a.Get("key")
	require.True(t, ok)
	require.Equal(t, resp, cached)
	require.Equal(t, expiration, cached.Expiration)

	a.Set("other", &Response{Value: []byte("world")}, time.Time{})
	_, ok = a.Get("key")
	require.False(t, ok)

	a.Remove("other")
	require.Equal(t, 0, a.Len())
}

func TestNewAdapter(t *testing.T) {
	a, err := NewAdapter(Config{})
	require.NoError(t, err)
	require.IsType(t, NopAdapter{}, a)

	a, err = NewAdapter(Config{Adapter: MemoryAdapterName})
	require.NoError(t, err)
	require.IsType(t, &MemCacheAdapter{}, a)

	_, err = NewAdapter(Config{Adapter: RedisAdapterName})
	require.True(t, errors.HTTPCacheInvalidConfig.Is(err))

	_, err = NewAdapter(Config{Adapter: "memcached"})
	require.True(t, errors.HTTPCacheInvalidConfig.Is(err))
}

// Set COUNCIL_TEST_REDIS to a redis address to run.
func TestRedisCacheAdapter(t *testing.T) {
	addr := os.Getenv("COUNCIL_TEST_REDIS")
	if addr == "" {
		t.Skip("COUNCIL_TEST_REDIS is not set")
	}

	a := NewRedisCacheAdapter(&RedisRingOptions{Addrs: map[string]string{"server": addr}})
	defer a.Close()
	require.NoError(t, a.Ping())

	resp := &Response{
		Value:      []byte("value 1"),
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/hal+json"}},
	}
	a.Set("council-test", resp, time.Now().Add(time.Minute))

	cached, ok := a.Get("council-test")
	require.True(t, ok)
	require.Equal(t, resp.Value, cached.Value)
	require.Equal(t, resp.Header, cached.Header)

	a.Remove("council-test")
	_, ok = a.Get("council-test")
	require.False(t, ok)
}
