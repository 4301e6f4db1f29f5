package governance

import (
	"boscoin.io/council/lib/storage"
)

const (
	DefaultPageLimit uint32 = 10
	MaxPageLimit     uint32 = 30
)

type ProposalsListResponse struct {
	ProposalCount uint64     `json:"proposal_count"`
	ProposalList  []Proposal `json:"proposal_list"`
}

type ProposalVotesResponse struct {
	ProposalID uint64      `json:"proposal_id"`
	Votes      []VoterVote `json:"votes"`
}

// PageLimit applies the default and the cap to a requested page size.
func PageLimit(limit *uint32) uint64 {
	if limit == nil {
		return uint64(DefaultPageLimit)
	}
	if *limit > MaxPageLimit {
		return uint64(MaxPageLimit)
	}

	return uint64(*limit)
}

func QueryConfig(st *storage.LevelDBBackend) (Config, error) {
	return GetConfig(st)
}

func QueryProposal(st *storage.LevelDBBackend, id uint64) (Proposal, error) {
	return GetProposal(st, id)
}

//
// QueryProposals lists proposals by ascending id from `start` (inclusive,
// 0 when absent).
//
// A zero limit returns an empty page.
//
func QueryProposals(st *storage.LevelDBBackend, start *uint64, limit *uint32) (resp ProposalsListResponse, err error) {
	var state GlobalState
	if state, err = GetGlobalState(st); err != nil {
		return
	}
	resp.ProposalCount = state.ProposalCount
	resp.ProposalList = []Proposal{}

	n := PageLimit(limit)
	if n < 1 {
		return
	}

	var from uint64
	if start != nil {
		from = *start
	}

	var proposals []Proposal
	if proposals, err = GetProposals(st, from, n); err != nil {
		return
	}
	resp.ProposalList = append(resp.ProposalList, proposals...)

	return
}

//
// QueryProposalVotes lists the votes of a proposal by ascending voter
// address, after `startAfter` (exclusive) when given.
//
func QueryProposalVotes(st *storage.LevelDBBackend, id uint64, startAfter *string, limit *uint32) (resp ProposalVotesResponse, err error) {
	resp.ProposalID = id
	resp.Votes = []VoterVote{}

	n := PageLimit(limit)
	if n < 1 {
		return
	}

	var after string
	if startAfter != nil {
		after = *startAfter
	}

	var votes []VoterVote
	if votes, err = GetProposalVotes(st, id, after, n); err != nil {
		return
	}
	resp.Votes = append(resp.Votes, votes...)

	return
}

func QueryVote(st *storage.LevelDBBackend, id uint64, voter string) (VoterVote, error) {
	v, err := GetVote(st, id, voter)
	if err != nil {
		return VoterVote{}, err
	}

	return VoterVote{Voter: voter, Option: v.Option, Power: v.Power}, nil
}
