//
// Define the `Amount` type, the unsigned token amount used for deposits,
// voting power and tallies.
//
// Arithmetic is checked: `Add` / `Sub` / `MultUint64` return
// `errors.ArithmeticOverflow` or `errors.ArithmeticUnderflow` instead of
// wrapping or saturating. `MustAdd` / `MustSub` turn any `error` into a
// `panic`; they are provided for tests and should not be in production code.
//
package common

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"boscoin.io/council/lib/errors"
)

type Amount uint64

// Stringer interface implementation
func (a Amount) String() string {
	return strconv.FormatUint(uint64(a), 10)
}

func (a Amount) IsZero() bool {
	return a == 0
}

//
// Add an `Amount` to this `Amount`
//
// If the result does not fit in 64 bits, `errors.ArithmeticOverflow` is
// returned along with a zero value.
//
func (a Amount) Add(added Amount) (Amount, error) {
	n, carry := bits.Add64(uint64(a), uint64(added), 0)
	if carry != 0 {
		return 0, errors.ArithmeticOverflow.Clone().
			SetData("op", "add").
			SetData("a", a.String()).
			SetData("b", added.String())
	}

	return Amount(n), nil
}

// Counterpart of `Add` which panic instead of returning an error
func (a Amount) MustAdd(added Amount) Amount {
	if v, err := a.Add(added); err != nil {
		panic(err)
	} else {
		return v
	}
}

//
// Substract an `Amount` from this `Amount`
//
// If the result would be negative, `errors.ArithmeticUnderflow` is returned.
//
func (a Amount) Sub(sub Amount) (Amount, error) {
	if a < sub {
		return 0, errors.ArithmeticUnderflow.Clone().
			SetData("op", "sub").
			SetData("a", a.String()).
			SetData("b", sub.String())
	}

	return a - sub, nil
}

// Counterpart of `Sub` which panic instead of returning an error
func (a Amount) MustSub(sub Amount) Amount {
	if v, err := a.Sub(sub); err != nil {
		panic(err)
	} else {
		return v
	}
}

func (a Amount) MultUint64(n uint64) (Amount, error) {
	hi, lo := bits.Mul64(uint64(a), n)
	if hi != 0 {
		return 0, errors.ArithmeticOverflow.Clone().
			SetData("op", "mul").
			SetData("a", a.String()).
			SetData("b", strconv.FormatUint(n, 10))
	}

	return Amount(lo), nil
}

// Implement JSON's Marshaler interface
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", a.String())), nil
}

// Implement JSON's Unmarshaler interface. Both quoted and bare numbers are
// accepted.
func (a *Amount) UnmarshalJSON(b []byte) (err error) {
	*a, err = AmountFromString(strings.Trim(string(b), "\""))
	return
}

// Implement yaml.v2's Unmarshaler interface
func (a *Amount) UnmarshalYAML(unmarshal func(interface{}) error) (err error) {
	var s string
	if err = unmarshal(&s); err != nil {
		return
	}

	*a, err = AmountFromString(s)
	return
}

// Parse an `Amount` from a string consisting only of digits.
func AmountFromString(str string) (Amount, error) {
	if value, err := strconv.ParseUint(str, 10, 64); err != nil {
		return 0, err
	} else {
		return Amount(value), nil
	}
}

// Same as AmountFromString, except it `panic`s if an error happens
func MustAmountFromString(str string) Amount {
	if value, err := AmountFromString(str); err != nil {
		panic(err)
	} else {
		return value
	}
}
