package governance

import (
	"boscoin.io/council/lib/common"
)

// Storage layout:
//  * `gov-config`: `Config`
//  * `gov-state`: `GlobalState`
//  * `gov-proposal-<big-endian id>`: `Proposal`
//  * `gov-vote-<big-endian id><voter>`: `Vote`
//  * `gov-deposit-<token>-<receipt>`: `depositReceipt`
//
// Ids are encoded as 8 byte big-endian integers, so the byte order of the
// keys is the numeric order of the ids.
const (
	ConfigKey      string = "gov-config"
	GlobalStateKey string = "gov-state"
	ProposalPrefix string = "gov-proposal-"
	VotePrefix     string = "gov-vote-"
	DepositPrefix  string = "gov-deposit-"
)

func encodeID(id uint64) string {
	b := common.EncodeUint64ToByteSlice(id)
	return string(b[:])
}

func GetProposalKey(id uint64) string {
	return ProposalPrefix + encodeID(id)
}

func GetProposalVotesPrefix(id uint64) string {
	return VotePrefix + encodeID(id)
}

func GetVoteKey(id uint64, voter string) string {
	return GetProposalVotesPrefix(id) + voter
}

func GetDepositReceiptKey(token, receipt string) string {
	return DepositPrefix + token + "-" + receipt
}
