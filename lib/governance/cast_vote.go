package governance

import (
	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/storage"
)

//
// CastVote records the vote of `voter` on an active proposal.
//
// The voting power is the voter's balance of the voting token at the block
// before the proposal was submitted, so buying tokens after a proposal shows
// up does not add power.
//
func (e *Engine) CastVote(st *storage.LevelDBBackend, env Env, voter string, id uint64, option VoteOption) (resp Response, err error) {
	var config Config
	var proposal Proposal
	if config, proposal, err = e.load(st, id); err != nil {
		return
	}

	if proposal.Status != StatusActive {
		err = errors.ProposalNotActive.Clone().SetData("proposal_id", id).SetData("status", string(proposal.Status))
		return
	}
	if env.Height > proposal.EndHeight {
		err = errors.VotingPeriodEnded.Clone().SetData("proposal_id", id).SetData("end_height", proposal.EndHeight)
		return
	}

	var voted bool
	if voted, err = ExistsVote(st, id, voter); err != nil {
		return
	} else if voted {
		err = errors.AlreadyVoted.Clone().SetData("proposal_id", id).SetData("voter", voter)
		return
	}

	if !option.IsValid() {
		err = errors.InvalidMessage.Clone().SetData("vote", string(option))
		return
	}
	if err = common.ValidateAddress(voter); err != nil {
		return
	}

	var snapshot uint64
	if snapshot, err = proposal.SnapshotHeight(); err != nil {
		return
	}

	var registry AddressRegistry
	if registry, err = e.registry(config); err != nil {
		return
	}
	var addresses []string
	if addresses, err = resolveRoles(registry, RoleVotingToken); err != nil {
		return
	}
	var oracle VotingPowerOracle
	if oracle, err = e.oracle(addresses[0]); err != nil {
		return
	}

	var power common.Amount
	if power, err = oracle.BalanceAt(voter, snapshot); err != nil {
		err = collaboratorError(err, "voter", voter, "block", snapshot)
		return
	}
	if power.IsZero() {
		err = errors.NoVotingPower.Clone().SetData("block", snapshot)
		return
	}

	switch option {
	case VoteFor:
		proposal.ForVotes, err = proposal.ForVotes.Add(power)
	case VoteAgainst:
		proposal.AgainstVotes, err = proposal.AgainstVotes.Add(power)
	}
	if err != nil {
		return
	}

	if err = (Vote{Option: option, Power: power}).Save(st, id, voter); err != nil {
		return
	}
	if err = proposal.Save(st); err != nil {
		return
	}

	resp.AddAttribute("action", "cast_vote").
		AddAttribute("proposal_id", id).
		AddAttribute("voter", voter).
		AddAttribute("vote", option).
		AddAttribute("voting_power", power)

	log.Debug("vote cast", resp.LogContext()...)

	return
}
