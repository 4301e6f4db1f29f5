package httpcache

import "time"

// NopAdapter never stores anything.
type NopAdapter struct{}

func (NopAdapter) Get(string) (*Response, bool) { return nil, false }

func (NopAdapter) Set(string, *Response, time.Time) {}

func (NopAdapter) Remove(string) {}
