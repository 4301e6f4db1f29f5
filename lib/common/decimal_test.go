package common

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"

	"boscoin.io/council/lib/errors"
)

func TestParseDecimal(t *testing.T) {
	cases := map[string]string{
		"0":                    "0",
		"1":                    "1",
		"0.51":                 "0.51",
		"0.500":                "0.5",
		"0.000000000000000001": "0.000000000000000001",
		"12.34":                "12.34",
	}

	for input, expected := range cases {
		d, err := ParseDecimal(input)
		require.NoError(t, err, input)
		require.Equal(t, expected, d.String(), input)
	}

	for _, input := range []string{"", "abc", "-0.1", "0.0000000000000000001"} {
		_, err := ParseDecimal(input)
		require.Error(t, err, input)
		require.True(t, errors.InvalidDecimal.Is(err), input)
	}
}

func TestDecimalCompare(t *testing.T) {
	require.True(t, DecimalOne.GT(MustParseDecimal("0.999999999999999999")))
	require.True(t, MustParseDecimal("0.5").GTE(MustParseDecimal("0.50")))
	require.False(t, MustParseDecimal("0.49").GTE(MustParseDecimal("0.5")))
	require.Equal(t, 0, DecimalZero.Cmp(MustParseDecimal("0")))
	require.True(t, DecimalZero.IsZero())
}

func TestDecimalFromRatio(t *testing.T) {
	d, err := DecimalFromRatio(1, 3)
	require.NoError(t, err)
	require.Equal(t, "0.333333333333333333", d.String())

	d, err = DecimalFromRatio(100, 100)
	require.NoError(t, err)
	require.Equal(t, 0, d.Cmp(DecimalOne))

	d, err = DecimalFromRatio(0, 100)
	require.NoError(t, err)
	require.True(t, d.IsZero())

	// the 256-bit backing word keeps the full uint64 range
	d, err = DecimalFromRatio(Amount(math.MaxUint64), 1)
	require.NoError(t, err)
	require.Equal(t, "18446744073709551615", d.String())

	_, err = DecimalFromRatio(1, 0)
	require.Equal(t, errors.DivisionByZero, err)
}

func TestDecimalJSONAndYAML(t *testing.T) {
	d := MustParseDecimal("0.51")

	b, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"0.51"`, string(b))

	var decoded Decimal
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, 0, d.Cmp(decoded))

	var holder struct {
		Quorum Decimal `yaml:"quorum"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(`quorum: "0.1"`), &holder))
	require.Equal(t, "0.1", holder.Quorum.String())
}
