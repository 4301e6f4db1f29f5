package api

import (
	"fmt"

	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/common/keypair"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/governance"
)

// VoteSigningData is what a voter signs to cast `option` on proposal `id`
// of the module `self`.
func VoteSigningData(self string, id uint64, option governance.VoteOption) []byte {
	return []byte(fmt.Sprintf("council:%s:vote:%d:%s", self, id, option))
}

type depositSubmission struct {
	Deposit  governance.Deposit
	Proposal governance.SubmitProposalMsg
}

//
// SubmitSigningData is what the governance token signs when it forwards a
// deposit with the proposal it funds to the module `self`. The deposit and
// the proposal are bound by their object hash.
//
func SubmitSigningData(self string, deposit governance.Deposit, proposal governance.SubmitProposalMsg) ([]byte, error) {
	h, err := common.MakeObjectHash(depositSubmission{Deposit: deposit, Proposal: proposal})
	if err != nil {
		return nil, err
	}

	return []byte(fmt.Sprintf("council:%s:deposit:%s", self, base58.Encode(h))), nil
}

// Sign returns the base58 encoded signature of `data`.
func Sign(kp *keypair.Full, data []byte) (string, error) {
	sig, err := kp.Sign(data)
	if err != nil {
		return "", err
	}
	return base58.Encode(sig), nil
}

func verifySignature(address string, data []byte, signature string) error {
	kp, err := keypair.Parse(address)
	if err != nil {
		return errors.InvalidAddress.Clone().SetData("address", address)
	}

	sig := base58.Decode(signature)
	if len(sig) < 1 {
		return errors.InvalidSignature.Clone().SetData("address", address)
	}
	if err := kp.Verify(data, sig); err != nil {
		return errors.InvalidSignature.Clone().SetData("address", address)
	}

	return nil
}
