package common

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"boscoin.io/council/lib/errors"
)

// DecimalFractional is the number of fractional digits a `Decimal` carries.
const DecimalFractional int32 = 18

var decimalUnit = uint256.NewInt(1000000000000000000)

//
// Decimal is an unsigned fixed-point number with 18 fractional digits.
//
// The value is kept as an integer scaled by 10^18 in a 256-bit word, so
// ratios of two `Amount`s never lose the integer part.
//
type Decimal struct {
	v uint256.Int
}

var (
	DecimalZero = Decimal{}
	DecimalOne  = Decimal{v: *decimalUnit}
)

//
// DecimalFromRatio returns `numerator / denominator`, truncated to 18
// fractional digits.
//
// A zero denominator returns `errors.DivisionByZero`; callers that want the
// ratio to be 0 in that case check the denominator themselves.
//
func DecimalFromRatio(numerator, denominator Amount) (Decimal, error) {
	if denominator == 0 {
		return DecimalZero, errors.DivisionByZero
	}

	scaled, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(uint64(numerator)), decimalUnit)
	if overflow {
		return DecimalZero, errors.ArithmeticOverflow.Clone().
			SetData("op", "ratio").
			SetData("a", numerator.String())
	}

	var d Decimal
	d.v.Div(scaled, uint256.NewInt(uint64(denominator)))
	return d, nil
}

//
// ParseDecimal parses a non-negative decimal string like "0.51" or "1".
//
// More than 18 fractional digits, negative values and anything
// `shopspring/decimal` can not parse return `errors.InvalidDecimal`.
//
func ParseDecimal(s string) (Decimal, error) {
	parsed, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return DecimalZero, errors.InvalidDecimal.Clone().SetData("value", s).SetData("error", err.Error())
	}
	if parsed.Sign() < 0 {
		return DecimalZero, errors.InvalidDecimal.Clone().SetData("value", s).SetData("error", "negative")
	}

	shifted := parsed.Shift(DecimalFractional)
	if !shifted.IsInteger() {
		return DecimalZero, errors.InvalidDecimal.Clone().SetData("value", s).SetData("error", "too many fractional digits")
	}

	v, overflow := uint256.FromBig(shifted.BigInt())
	if overflow {
		return DecimalZero, errors.InvalidDecimal.Clone().SetData("value", s).SetData("error", "overflow")
	}

	return Decimal{v: *v}, nil
}

func MustParseDecimal(s string) Decimal {
	if d, err := ParseDecimal(s); err != nil {
		panic(err)
	} else {
		return d
	}
}

func (d Decimal) IsZero() bool {
	return d.v.IsZero()
}

// Cmp returns -1, 0 or +1 like `big.Int.Cmp`.
func (d Decimal) Cmp(o Decimal) int {
	return d.v.Cmp(&o.v)
}

func (d Decimal) GTE(o Decimal) bool {
	return d.Cmp(o) >= 0
}

func (d Decimal) GT(o Decimal) bool {
	return d.Cmp(o) > 0
}

func (d Decimal) String() string {
	return decimal.NewFromBigInt(d.v.ToBig(), -DecimalFractional).String()
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", d.String())), nil
}

func (d *Decimal) UnmarshalJSON(b []byte) (err error) {
	*d, err = ParseDecimal(strings.Trim(string(b), "\""))
	return
}

func (d Decimal) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Decimal) UnmarshalYAML(unmarshal func(interface{}) error) (err error) {
	var s string
	if err = unmarshal(&s); err != nil {
		return
	}

	*d, err = ParseDecimal(s)
	return
}
