package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-redis/redis"
	"github.com/ulule/limiter"
	"github.com/ulule/limiter/drivers/middleware/stdlib"
	"github.com/ulule/limiter/drivers/store/memory"
	redisstore "github.com/ulule/limiter/drivers/store/redis"

	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/metrics"
	"boscoin.io/council/lib/network/httputils"
)

const DefaultRateLimitPrefix = "council:limiter"

// RateLimitStoreFromURI makes the store of the rate limiter from
// "memory://" or "redis://<host>:<port>/<db>". The `prefix` query sets the
// key prefix, and `cleanup-interval` the memory store cleanup interval.
func RateLimitStoreFromURI(s string) (limiter.Store, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, errors.BadRequestParameter.Clone().SetData("rate-limit-store", s)
	}

	prefix := DefaultRateLimitPrefix
	if i := u.Query().Get("prefix"); len(i) > 0 {
		prefix = i
	}

	switch u.Scheme {
	case "memory":
		cleanup := limiter.DefaultCleanUpInterval
		if i := u.Query().Get("cleanup-interval"); len(i) > 0 {
			d, err := time.ParseDuration(i)
			if err != nil {
				return nil, errors.BadRequestParameter.Clone().SetData("cleanup-interval", i)
			}
			cleanup = d
		}

		return memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          prefix,
			CleanUpInterval: cleanup,
		}), nil
	case "redis":
		q := u.Query()
		q.Del("prefix")
		u.RawQuery = q.Encode()

		option, err := redis.ParseURL(u.String())
		if err != nil {
			return nil, errors.BadRequestParameter.Clone().SetData("rate-limit-store", s)
		}

		return redisstore.NewStoreWithOptions(redis.NewClient(option), limiter.StoreOptions{
			Prefix:   prefix,
			MaxRetry: limiter.DefaultMaxRetry,
		})
	default:
		return nil, errors.BadRequestParameter.Clone().SetData("rate-limit-store", s)
	}
}

// RateLimitMiddleware limits the requests per client IP; `rate` is
// formatted like "100-M", "10-S".
func RateLimitMiddleware(store limiter.Store, rate string) (func(http.Handler) http.Handler, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, errors.BadRequestParameter.Clone().SetData("rate-limit", rate)
	}

	m := stdlib.NewMiddleware(limiter.New(store, r))
	m.OnLimitReached = func(w http.ResponseWriter, r *http.Request) {
		metrics.API.RateLimitedTotal.Add(1)
		httputils.WriteJSON(w, http.StatusTooManyRequests, httputils.NewStatusProblem(http.StatusTooManyRequests))
	}
	m.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Error("rate limiter failed", "error", err)
		httputils.WriteJSON(w, http.StatusInternalServerError, errors.HTTPServerError)
	}

	return m.Handler, nil
}
