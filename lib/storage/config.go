package storage

import (
	"net/url"
	"strings"

	"boscoin.io/council/lib/errors"
)

// Config is the parsed storage URI.
//
// Supported schemes:
//  * `file:///var/lib/council/db`: leveldb files under the path
//  * `memory://`: in-memory leveldb, lost on exit
type Config struct {
	Scheme string
	Path   string
}

func NewConfigFromString(s string) (*Config, error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.StorageInvalidConfig.Clone().SetData("uri", s).SetData("error", err.Error())
	}

	config := &Config{Scheme: u.Scheme}
	switch u.Scheme {
	case "memory":
	case "file":
		config.Path = u.Path
		if len(config.Path) < 1 {
			return nil, errors.StorageInvalidConfig.Clone().SetData("uri", s).SetData("error", "empty path")
		}
	default:
		return nil, errors.StorageInvalidConfig.Clone().SetData("uri", s).SetData("error", "unknown scheme")
	}

	return config, nil
}

func (c Config) String() string {
	if c.Scheme == "memory" {
		return "memory://"
	}

	return (&url.URL{Scheme: c.Scheme, Path: c.Path}).String()
}
