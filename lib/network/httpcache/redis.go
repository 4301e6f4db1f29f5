package httpcache

import (
	"time"

	redisCache "github.com/go-redis/cache"
	"github.com/go-redis/redis"
	"github.com/vmihailenco/msgpack"
)

type RedisCacheAdapter struct {
	ring  *redis.Ring
	store *redisCache.Codec
}

type RedisRingOptions redis.RingOptions

func NewRedisCacheAdapter(opt *RedisRingOptions) *RedisCacheAdapter {
	ropt := redis.RingOptions(*opt)
	ring := redis.NewRing(&ropt)

	return &RedisCacheAdapter{
		ring: ring,
		store: &redisCache.Codec{
			Redis: ring,
			Marshal: func(v interface{}) ([]byte, error) {
				return msgpack.Marshal(v)
			},
			Unmarshal: func(b []byte, v interface{}) error {
				return msgpack.Unmarshal(b, v)
			},
		},
	}
}

func (a *RedisCacheAdapter) Ping() error {
	return a.ring.Ping().Err()
}

func (a *RedisCacheAdapter) Close() error {
	return a.ring.Close()
}

func (a *RedisCacheAdapter) Get(key string) (*Response, bool) {
	var resp Response
	if err := a.store.Get(key, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func (a *RedisCacheAdapter) Set(key string, resp *Response, expiration time.Time) {
	var ttl time.Duration
	if !expiration.IsZero() {
		if ttl = time.Until(expiration); ttl <= 0 {
			return
		}
	}

	resp.Expiration = expiration
	err := a.store.Set(&redisCache.Item{
		Key:        key,
		Object:     resp,
		Expiration: ttl,
	})
	if err != nil {
		log.Error("failed to store response", "key", key, "error", err)
	}
}

func (a *RedisCacheAdapter) Remove(key string) {
	if err := a.store.Delete(key); err != nil && err != redisCache.ErrCacheMiss {
		log.Error("failed to remove response", "key", key, "error", err)
	}
}
