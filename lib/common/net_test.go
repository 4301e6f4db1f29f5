package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEndpoint(t *testing.T) {
	e, err := ParseEndpoint("https://Localhost")
	require.NoError(t, err)
	require.Equal(t, "https://localhost:12345", e.String())

	e, err = ParseEndpoint("http://0.0.0.0:8080?TLSCertFile=a.crt")
	require.NoError(t, err)
	require.Equal(t, "8080", e.Port())
	require.Equal(t, "a.crt", e.Query().Get("TLSCertFile"))

	_, err = ParseEndpoint("localhost:8080")
	require.Error(t, err)

	_, err = ParseEndpoint("memory://localhost")
	require.Error(t, err)

	_, err = ParseEndpoint("http://localhost:0")
	require.Error(t, err)
}

func TestEndpointUnmarshalJSON(t *testing.T) {
	var e Endpoint
	require.NoError(t, json.Unmarshal([]byte(`"http://localhost:8080"`), &e))
	require.Equal(t, "http://localhost:8080", e.String())
}
