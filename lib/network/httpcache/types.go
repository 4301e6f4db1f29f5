package httpcache

import (
	"net/http"
	"time"
)

type Adapter interface {
	Get(key string) (*Response, bool)
	Set(key string, response *Response, expiration time.Time)
	Remove(key string)
}

// Response is a recorded http response. A zero `Expiration` never expires.
type Response struct {
	Value      []byte      `msgpack:"value"`
	StatusCode int         `msgpack:"status_code"`
	Header     http.Header `msgpack:"header"`
	Expiration time.Time   `msgpack:"expiration"`
}

func (r *Response) IsExpired() bool {
	return !r.Expiration.IsZero() && !r.Expiration.After(time.Now())
}
