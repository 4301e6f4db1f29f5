package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRateLimitStoreFromURI(t *testing.T) {
	_, err := RateLimitStoreFromURI("memory://")
	require.NoError(t, err)

	_, err = RateLimitStoreFromURI("memory://?cleanup-interval=1m&prefix=showme")
	require.NoError(t, err)

	_, err = RateLimitStoreFromURI("memory://?cleanup-interval=killme")
	require.Error(t, err)

	_, err = RateLimitStoreFromURI("file:///tmp/limiter")
	require.Error(t, err)
}

func TestRateLimitMiddleware(t *testing.T) {
	store, err := RateLimitStoreFromURI("memory://")
	require.NoError(t, err)

	_, err = RateLimitMiddleware(store, "two-per-minute")
	require.Error(t, err)

	middleware, err := RateLimitMiddleware(store, "2-M")
	require.NoError(t, err)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := func() int {
		req := httptest.NewRequest("GET", "/api/v1/config", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, request())
	require.Equal(t, http.StatusOK, request())
	require.Equal(t, http.StatusTooManyRequests, request())
}
