package network

import (
	"errors"
	"strings"
	"time"

	"boscoin.io/council/lib/common"
)

type HTTP2ServerConfig struct {
	Endpoint *common.Endpoint
	Addr     string

	ReadTimeout,
	ReadHeaderTimeout,
	WriteTimeout,
	IdleTimeout time.Duration

	TLSCertFile,
	TLSKeyFile string
}

func parseDuration(query map[string][]string, key, defaultValue string) (time.Duration, error) {
	s := defaultValue
	if v, found := query[key]; found && len(v) > 0 && len(v[0]) > 0 {
		s = v[0]
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, errors.New("invalid '" + key + "'")
	}

	return d, nil
}

// NewHTTP2ServerConfigFromEndpoint reads the server settings from the
// endpoint query, e.g.
// `https://0.0.0.0:12345?TLSCertFile=council.crt&TLSKeyFile=council.key&IdleTimeout=5s`.
func NewHTTP2ServerConfigFromEndpoint(endpoint *common.Endpoint) (config HTTP2ServerConfig, err error) {
	query := endpoint.Query()

	config = HTTP2ServerConfig{
		Endpoint:    endpoint,
		Addr:        endpoint.Host,
		TLSCertFile: query.Get("TLSCertFile"),
		TLSKeyFile:  query.Get("TLSKeyFile"),
	}

	if config.ReadTimeout, err = parseDuration(query, "ReadTimeout", "0s"); err != nil {
		return
	}
	if config.ReadHeaderTimeout, err = parseDuration(query, "ReadHeaderTimeout", "0s"); err != nil {
		return
	}
	if config.WriteTimeout, err = parseDuration(query, "WriteTimeout", "0s"); err != nil {
		return
	}
	if config.IdleTimeout, err = parseDuration(query, "IdleTimeout", "5s"); err != nil {
		return
	}

	if strings.ToLower(endpoint.Scheme) == "https" && !config.IsHTTPS() {
		err = errors.New("HTTPS needs `TLSCertFile` and `TLSKeyFile`")
		return
	}

	return
}

func (config HTTP2ServerConfig) IsHTTPS() bool {
	return len(config.TLSCertFile) > 0 && len(config.TLSKeyFile) > 0
}
