package httpcache

import (
	"boscoin.io/council/lib/errors"
)

const (
	NopAdapterName    = ""
	MemoryAdapterName = "mem"
	RedisAdapterName  = "redis"

	DefaultPoolSize = 10000
)

type Config struct {
	Adapter    string
	PoolSize   int
	RedisAddrs map[string]string
}

func NewAdapter(cfg Config) (Adapter, error) {
	switch cfg.Adapter {
	case NopAdapterName:
		return NopAdapter{}, nil
	case MemoryAdapterName:
		size := cfg.PoolSize
		if size < 1 {
			size = DefaultPoolSize
		}
		return NewMemCacheAdapter(size)
	case RedisAdapterName:
		if len(cfg.RedisAddrs) < 1 {
			return nil, errors.HTTPCacheInvalidConfig.Clone().SetData("reason", "redis address is empty")
		}
		return NewRedisCacheAdapter(&RedisRingOptions{Addrs: cfg.RedisAddrs}), nil
	default:
		return nil, errors.HTTPCacheInvalidConfig.Clone().SetData("adapter", cfg.Adapter)
	}
}
