package common

import "time"

const (
	DefaultBlockTime     time.Duration = 5 * time.Second
	DefaultGenesisHeight uint64        = 1

	// DefaultRateLimitAPI allows 100 requests per second for each client
	// ip.
	DefaultRateLimitAPI   = "100-S"
	DefaultRateLimitStore = "memory://"

	HTTPCachePoolSize        = 10000
	DefaultTerminalCacheSize = 1024

	DefaultPort int = 12345
)
