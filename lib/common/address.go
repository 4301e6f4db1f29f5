package common

import (
	"boscoin.io/council/lib/common/keypair"
	"boscoin.io/council/lib/errors"
)

//
// ValidateAddress checks that `address` is a well-formed account address.
//
// Only public addresses are accepted; a secret seed parses as a keypair as
// well but is rejected.
//
func ValidateAddress(address string) error {
	kp, err := keypair.Parse(address)
	if err != nil {
		return errors.InvalidAddress.Clone().SetData("address", address)
	}
	if _, ok := kp.(*keypair.FromAddress); !ok {
		return errors.InvalidAddress.Clone().SetData("address", address)
	}

	return nil
}
