package common

// MustParseEndpoint is `ParseEndpoint` for endpoints known to be valid.
func MustParseEndpoint(endpoint string) *Endpoint {
	if ret, err := ParseEndpoint(endpoint); err != nil {
		panic(err)
	} else {
		return ret
	}
}
