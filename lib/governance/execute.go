package governance

import (
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/storage"
)

//
// ExecuteProposal marks a passed proposal executed and dispatches its calls.
//
// Execution is allowed from `EndHeight + EffectiveDelay` up to and including
// `EndHeight + EffectiveDelay + ExpirationPeriod`. The proposal is saved as
// executed before the dispatch messages are built; whatever happens to those
// messages later does not revert it.
//
func (e *Engine) ExecuteProposal(st *storage.LevelDBBackend, env Env, id uint64) (resp Response, err error) {
	var config Config
	var proposal Proposal
	if config, proposal, err = e.load(st, id); err != nil {
		return
	}

	if _, err = proposal.Status.Transit(EventExecute); err != nil {
		err = errors.NotPassed.Clone().SetData("proposal_id", id).SetData("status", string(proposal.Status))
		return
	}

	var opens, closes uint64
	if opens, err = addHeights(proposal.EndHeight, config.EffectiveDelay); err != nil {
		return
	}
	if closes, err = addHeights(opens, config.ExpirationPeriod); err != nil {
		return
	}

	if env.Height < opens {
		err = errors.DelayNotEnded.Clone().SetData("proposal_id", id).SetData("executable_height", opens)
		return
	}
	if env.Height > closes {
		err = errors.Expired.Clone().SetData("proposal_id", id).SetData("expired_height", closes)
		return
	}

	if err = proposal.Transit(EventExecute); err != nil {
		return
	}
	if err = proposal.Save(st); err != nil {
		return
	}

	for _, m := range DispatchMessages(proposal.ExecuteCalls) {
		resp.AddMessage(m)
	}
	resp.AddAttribute("action", "execute_proposal").
		AddAttribute("proposal_id", id)

	log.Debug("proposal executed", "proposal_id", id, "calls", len(resp.Messages))

	return
}
