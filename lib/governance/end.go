package governance

import (
	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/storage"
)

// Tally is the outcome of the votes of a proposal.
type Tally struct {
	TotalVotes  common.Amount  `json:"total_votes"`
	TotalSupply common.Amount  `json:"total_supply"`
	Quorum      common.Decimal `json:"quorum"`
	Threshold   common.Decimal `json:"threshold"`
}

//
// NewTally computes quorum, `(for + against) / totalSupply`, and threshold,
// `for / (for + against)`. Each ratio is 0 when its denominator is 0.
//
func NewTally(forVotes, againstVotes, totalSupply common.Amount) (t Tally, err error) {
	if t.TotalVotes, err = forVotes.Add(againstVotes); err != nil {
		return
	}
	t.TotalSupply = totalSupply

	if !totalSupply.IsZero() {
		if t.Quorum, err = common.DecimalFromRatio(t.TotalVotes, totalSupply); err != nil {
			return
		}
	}
	if !t.TotalVotes.IsZero() {
		if t.Threshold, err = common.DecimalFromRatio(forVotes, t.TotalVotes); err != nil {
			return
		}
	}

	return
}

// Passes is true only when both quorum and threshold reach the required
// ratios.
func (t Tally) Passes(config Config) bool {
	return t.Quorum.GTE(config.RequiredQuorum) && t.Threshold.GTE(config.RequiredThreshold)
}

//
// EndProposal closes the voting of a proposal once its voting window is
// over.
//
// A passed proposal gets its deposit refunded to the submitter; a rejected
// one has it transferred to the staking contract. Either way exactly one
// transfer message is emitted.
//
func (e *Engine) EndProposal(st *storage.LevelDBBackend, env Env, id uint64) (resp EndProposalResponse, err error) {
	var config Config
	var proposal Proposal
	if config, proposal, err = e.load(st, id); err != nil {
		return
	}

	if proposal.Status != StatusActive {
		err = errors.ProposalNotActive.Clone().SetData("proposal_id", id).SetData("status", string(proposal.Status))
		return
	}
	if env.Height <= proposal.EndHeight {
		err = errors.VotingPeriodNotEnded.Clone().SetData("proposal_id", id).SetData("end_height", proposal.EndHeight)
		return
	}

	var registry AddressRegistry
	if registry, err = e.registry(config); err != nil {
		return
	}
	var addresses []string
	if addresses, err = resolveRoles(registry, RoleGovernanceToken, RoleStaking, RoleVotingToken); err != nil {
		return
	}
	token, staking, votingToken := addresses[0], addresses[1], addresses[2]

	var oracle VotingPowerOracle
	if oracle, err = e.oracle(votingToken); err != nil {
		return
	}

	var snapshot uint64
	if snapshot, err = proposal.SnapshotHeight(); err != nil {
		return
	}

	var totalSupply common.Amount
	if totalSupply, err = oracle.TotalSupplyAt(snapshot); err != nil {
		err = collaboratorError(err, "block", snapshot)
		return
	}

	var tally Tally
	if tally, err = NewTally(proposal.ForVotes, proposal.AgainstVotes, totalSupply); err != nil {
		return
	}

	recipient := staking
	resp.Result = ResultRejected
	event := EventReject
	if tally.Passes(config) {
		recipient = proposal.Submitter
		resp.Result = ResultPassed
		event = EventPass
	}

	if err = proposal.Transit(event); err != nil {
		return
	}

	var transfer Message
	if transfer, err = NewTransferMessage(token, recipient, proposal.Deposit); err != nil {
		return
	}

	if err = proposal.Save(st); err != nil {
		return
	}

	resp.AddMessage(transfer)
	resp.AddAttribute("action", "end_proposal").
		AddAttribute("proposal_id", id).
		AddAttribute("proposal_result", resp.Result)

	log.Debug(
		"proposal ended",
		"proposal_id", id,
		"result", resp.Result,
		"quorum", tally.Quorum,
		"threshold", tally.Threshold,
		"total_supply", totalSupply,
	)

	return
}
