package governance

import (
	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/storage"
)

// Vote is the ballot of one voter on one proposal. It is written once and
// never updated: `Power` is the balance at the snapshot height, whatever
// the voter holds later.
type Vote struct {
	Option VoteOption    `json:"option"`
	Power  common.Amount `json:"power"`
}

// VoterVote is a `Vote` with the voter it belongs to.
type VoterVote struct {
	Voter  string        `json:"voter_address"`
	Option VoteOption    `json:"option"`
	Power  common.Amount `json:"power"`
}

// Save stores the vote; a second vote of the same voter on the same
// proposal fails with `errors.AlreadyVoted`.
func (v Vote) Save(st *storage.LevelDBBackend, proposalID uint64, voter string) error {
	err := st.New(GetVoteKey(proposalID, voter), v)
	if errors.StorageRecordAlreadyExists.Is(err) {
		return errors.AlreadyVoted.Clone().
			SetData("proposal_id", proposalID).
			SetData("voter", voter)
	}

	return err
}

func ExistsVote(st *storage.LevelDBBackend, proposalID uint64, voter string) (bool, error) {
	return st.Has(GetVoteKey(proposalID, voter))
}

func GetVote(st *storage.LevelDBBackend, proposalID uint64, voter string) (v Vote, err error) {
	if err = st.Get(GetVoteKey(proposalID, voter), &v); err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			err = errors.VoteNotFound.Clone().
				SetData("proposal_id", proposalID).
				SetData("voter", voter)
		}
		return
	}

	return
}

//
// GetProposalVotes returns at most `limit` votes of a proposal ordered by
// voter address, starting after `startAfter` (exclusive). An empty
// `startAfter` starts from the first voter.
//
func GetProposalVotes(st *storage.LevelDBBackend, proposalID uint64, startAfter string, limit uint64) (votes []VoterVote, err error) {
	prefix := GetProposalVotesPrefix(proposalID)

	var cursor string
	if len(startAfter) > 0 {
		// smallest key strictly greater than the `startAfter` voter
		cursor = prefix + startAfter + "\x00"
	}

	err = st.Walk(prefix, storage.NewWalkOption(cursor, limit, false), func(key, value []byte) (bool, error) {
		var v Vote
		if err := common.DecodeJSONValue(value, &v); err != nil {
			return false, err
		}
		votes = append(votes, VoterVote{
			Voter:  string(key[len(prefix):]),
			Option: v.Option,
			Power:  v.Power,
		})
		return true, nil
	})

	return
}
