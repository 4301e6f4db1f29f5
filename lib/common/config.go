package common

import (
	"time"
)

//
// Config holds the runtime settings of a council node. None of them changes
// the governance rules; those live in the stored governance config.
//
type Config struct {
	BlockTime     time.Duration
	GenesisHeight uint64

	// RateLimitAPI is formatted like "100-M"; empty disables the limit.
	RateLimitAPI   string
	RateLimitStore string

	HTTPCacheAdapter    string
	HTTPCachePoolSize   int
	HTTPCacheRedisAddrs map[string]string

	TerminalCacheSize int
	CORSOrigins       []string
}

func NewConfig() Config {
	p := Config{}

	p.BlockTime = DefaultBlockTime
	p.GenesisHeight = DefaultGenesisHeight

	p.RateLimitAPI = DefaultRateLimitAPI
	p.RateLimitStore = DefaultRateLimitStore

	p.HTTPCachePoolSize = HTTPCachePoolSize
	p.TerminalCacheSize = DefaultTerminalCacheSize

	return p
}
