package governance

import (
	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/storage"
)

const (
	MinTitleLength       int = 4
	MaxTitleLength       int = 64
	MinDescriptionLength int = 4
	MaxDescriptionLength int = 1024
	MinLinkLength        int = 12
	MaxLinkLength        int = 128
)

// ExecuteCall is one call dispatched when a passed proposal is executed.
// `Msg` is opaque and is sent to `Target` untouched.
type ExecuteCall struct {
	ExecutionOrder uint64 `json:"execution_order"`
	Target         string `json:"target_contract_address"`
	Msg            []byte `json:"msg"`
}

// Proposal model
//
// Created by submission; only the tallies and the status change afterwards,
// and a proposal is never removed.
type Proposal struct {
	ID           uint64         `json:"proposal_id"`
	Submitter    string         `json:"submitter_address"`
	Status       ProposalStatus `json:"status"`
	ForVotes     common.Amount  `json:"for_votes"`
	AgainstVotes common.Amount  `json:"against_votes"`
	StartHeight  uint64         `json:"start_height"`
	EndHeight    uint64         `json:"end_height"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Link         *string        `json:"link"`
	ExecuteCalls []ExecuteCall  `json:"execute_calls"`
	Deposit      common.Amount  `json:"deposit_amount"`
}

func (p Proposal) String() string {
	return string(common.MustMarshalJSON(p))
}

func (p *Proposal) Save(st *storage.LevelDBBackend) (err error) {
	key := GetProposalKey(p.ID)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	}

	if exists {
		err = st.Set(key, p)
	} else {
		err = st.New(key, p)
	}

	return
}

// SnapshotHeight is the height voting power and total supply are read at:
// the block before the proposal was submitted.
func (p Proposal) SnapshotHeight() (uint64, error) {
	if p.StartHeight < 1 {
		return 0, errors.ArithmeticUnderflow.Clone().
			SetData("field", "start_height").
			SetData("proposal_id", p.ID)
	}

	return p.StartHeight - 1, nil
}

// TotalVotes is `ForVotes + AgainstVotes`.
func (p Proposal) TotalVotes() (common.Amount, error) {
	return p.ForVotes.Add(p.AgainstVotes)
}

// Transit moves the proposal to the status reached by `event`.
func (p *Proposal) Transit(event ProposalEvent) error {
	next, err := p.Status.Transit(event)
	if err != nil {
		return err
	}

	p.Status = next
	return nil
}

func ExistsProposal(st *storage.LevelDBBackend, id uint64) (bool, error) {
	return st.Has(GetProposalKey(id))
}

func GetProposal(st *storage.LevelDBBackend, id uint64) (p Proposal, err error) {
	if err = st.Get(GetProposalKey(id), &p); err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			err = errors.ProposalNotFound.Clone().SetData("proposal_id", id)
		}
		return
	}

	return
}

//
// GetProposals returns at most `limit` proposals in ascending id order,
// starting with id `start` (inclusive).
//
func GetProposals(st *storage.LevelDBBackend, start, limit uint64) (proposals []Proposal, err error) {
	option := storage.NewWalkOption(GetProposalKey(start), limit, false)

	err = st.Walk(ProposalPrefix, option, func(key, value []byte) (bool, error) {
		var p Proposal
		if err := common.DecodeJSONValue(value, &p); err != nil {
			return false, err
		}
		proposals = append(proposals, p)
		return true, nil
	})

	return
}
