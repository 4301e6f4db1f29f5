package node

import (
	"strconv"
	"sync"

	"boscoin.io/council/lib/common/observer"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/governance"
	"boscoin.io/council/lib/metrics"
	"boscoin.io/council/lib/outbox"
	"boscoin.io/council/lib/storage"
)

const (
	ActionInstantiate     = "instantiate"
	ActionSubmitProposal  = "submit_proposal"
	ActionCastVote        = "cast_vote"
	ActionEndProposal     = "end_proposal"
	ActionExecuteProposal = "execute_proposal"
	ActionUpdateConfig    = "update_config"
)

//
// Host runs the governance engine against the node storage.
//
// Every state-changing operation is one unit of work: the host takes its
// lock, opens a transaction, runs the engine and stores the emitted messages
// into the outbox. The transaction is committed only when all of this
// succeeded, otherwise nothing is written.
//
// Messages addressed to the module itself are stored like the others and
// are applied by `ApplyInternal` when the relay reaches them, so every
// message runs in emission order.
//
type Host struct {
	sync.Mutex

	st     *storage.LevelDBBackend
	engine *governance.Engine
	clock  Clock
	self   string
}

func NewHost(st *storage.LevelDBBackend, engine *governance.Engine, clock Clock, self string) *Host {
	return &Host{
		st:     st,
		engine: engine,
		clock:  clock,
		self:   self,
	}
}

func (h *Host) Storage() *storage.LevelDBBackend {
	return h.st
}

func (h *Host) Self() string {
	return h.self
}

func (h *Host) Env() governance.Env {
	return governance.Env{Height: h.clock.Height(), Self: h.self}
}

type unitOfWork func(ts *storage.LevelDBBackend, env governance.Env) (governance.Response, error)

func responseProposalID(resp governance.Response) uint64 {
	v, found := resp.Attribute("proposal_id")
	if !found {
		return 0
	}

	id, _ := strconv.ParseUint(v, 10, 64)
	return id
}

func errorCode(err error) string {
	if e, ok := err.(*errors.Error); ok {
		return strconv.FormatUint(uint64(e.Code), 10)
	}
	return "unknown"
}

// run must be called with the lock held.
func (h *Host) run(action string, fn unitOfWork) (resp governance.Response, err error) {
	env := h.Env()

	defer func() {
		if err != nil {
			metrics.Governance.AddFailure(action, errorCode(err))
			log.Debug("operation failed", "action", action, "height", env.Height, "error", err)
		}
	}()

	var ts *storage.LevelDBBackend
	if ts, err = h.st.OpenTransaction(); err != nil {
		return
	}

	if resp, err = fn(ts, env); err != nil {
		ts.Discard()
		return
	}

	if _, err = outbox.Push(ts, env.Height, action, responseProposalID(resp), resp.Messages...); err != nil {
		ts.Discard()
		return
	}

	if err = ts.Commit(); err != nil {
		ts.Discard()
		return
	}

	metrics.Governance.AddOperation(action)
	metrics.Governance.AddOutboxMessages(len(resp.Messages))
	log.Debug("operation committed", append(resp.LogContext(), "height", env.Height, "outbox", len(resp.Messages))...)

	return
}

//
// ApplyInternal runs the outbox entry `e`, addressed to the module itself,
// and marks it delivered in the same unit of work.
//
// A message the engine rejects is logged and counted as a failure; the
// entry is then done, the proposal which emitted it stays executed. Only
// storage failures are returned, so the entry is tried again.
//
func (h *Host) ApplyInternal(e outbox.Entry) error {
	if e.Message.Target != h.self {
		return errors.InvalidMessage.Clone().SetData("target", e.Message.Target)
	}

	msg, err := governance.ParseExecuteMsg(e.Message.Msg)
	if err != nil {
		metrics.Governance.AddFailure(ActionUpdateConfig, errorCode(err))
		log.Error("failed to parse internal message", "sequence", e.Sequence, "proposal_id", e.ProposalID, "error", err)
		return nil
	}

	h.Lock()
	defer h.Unlock()

	_, err = h.run(ActionUpdateConfig, func(ts *storage.LevelDBBackend, env governance.Env) (governance.Response, error) {
		resp, err := h.engine.UpdateConfig(ts, env, h.self, msg.UpdateConfig.Config)
		if err != nil {
			return resp, err
		}
		return resp, outbox.SetDelivered(ts, e.Sequence)
	})
	if err != nil {
		if errors.StorageCoreError.Is(err) {
			return err
		}
		log.Error("failed to update config", "sequence", e.Sequence, "proposal_id", e.ProposalID, "error", err)
		return nil
	}

	log.Info("config updated by proposal", "sequence", e.Sequence, "proposal_id", e.ProposalID)
	return nil
}

// Instantiate stores the initial config. It fails once the module is
// instantiated.
func (h *Host) Instantiate(msg governance.CreateOrUpdateConfig) (config governance.Config, err error) {
	h.Lock()
	defer h.Unlock()

	_, err = h.run(ActionInstantiate, func(ts *storage.LevelDBBackend, env governance.Env) (resp governance.Response, err error) {
		config, err = governance.Instantiate(ts, msg)
		resp.AddAttribute("action", ActionInstantiate)
		return
	})

	return
}

func (h *Host) SubmitProposal(deposit governance.Deposit, msg governance.SubmitProposalMsg) (resp governance.SubmitProposalResponse, err error) {
	h.Lock()
	defer h.Unlock()

	_, err = h.run(ActionSubmitProposal, func(ts *storage.LevelDBBackend, env governance.Env) (governance.Response, error) {
		var err error
		resp, err = h.engine.SubmitProposal(ts, env, deposit, msg)
		return resp.Response, err
	})
	if err != nil {
		return
	}

	h.triggerProposal(observer.ProposalSubmitted, resp.ProposalID)
	return
}

func (h *Host) CastVote(voter string, id uint64, option governance.VoteOption) (resp governance.Response, err error) {
	h.Lock()
	defer h.Unlock()

	resp, err = h.run(ActionCastVote, func(ts *storage.LevelDBBackend, env governance.Env) (governance.Response, error) {
		return h.engine.CastVote(ts, env, voter, id, option)
	})
	if err != nil {
		return
	}

	vote, err := governance.GetVote(h.st, id, voter)
	if err != nil {
		log.Error("failed to load committed vote", "proposal_id", id, "voter", voter, "error", err)
		return resp, nil
	}
	metrics.Governance.AddVote(string(vote.Option), uint64(vote.Power))

	v := governance.VoterVote{Voter: voter, Option: vote.Option, Power: vote.Power}
	idString := strconv.FormatUint(id, 10)
	observer.VoteObserver.Trigger(observer.NewEvent(observer.VoteCast, observer.ConditionAll, "").String(), id, v)
	observer.VoteObserver.Trigger(observer.NewEvent(observer.VoteCast, observer.ConditionID, idString).String(), id, v)

	return
}

func (h *Host) EndProposal(id uint64) (resp governance.EndProposalResponse, err error) {
	h.Lock()
	defer h.Unlock()

	_, err = h.run(ActionEndProposal, func(ts *storage.LevelDBBackend, env governance.Env) (governance.Response, error) {
		var err error
		resp, err = h.engine.EndProposal(ts, env, id)
		return resp.Response, err
	})
	if err != nil {
		return
	}

	metrics.Governance.AddResult(string(resp.Result))
	if resp.Result == governance.ResultPassed {
		h.triggerProposal(observer.ProposalPassed, id)
	} else {
		h.triggerProposal(observer.ProposalRejected, id)
	}

	return
}

func (h *Host) ExecuteProposal(id uint64) (resp governance.Response, err error) {
	h.Lock()
	defer h.Unlock()

	resp, err = h.run(ActionExecuteProposal, func(ts *storage.LevelDBBackend, env governance.Env) (governance.Response, error) {
		return h.engine.ExecuteProposal(ts, env, id)
	})
	if err != nil {
		return
	}

	h.triggerProposal(observer.ProposalExecuted, id)

	return
}

// UpdateConfig runs a config update sent by `sender`; only the module
// itself is allowed.
func (h *Host) UpdateConfig(sender string, msg governance.CreateOrUpdateConfig) (resp governance.Response, err error) {
	h.Lock()
	defer h.Unlock()

	resp, err = h.run(ActionUpdateConfig, func(ts *storage.LevelDBBackend, env governance.Env) (governance.Response, error) {
		return h.engine.UpdateConfig(ts, env, sender, msg)
	})

	return
}

func (h *Host) triggerProposal(resource string, id uint64) {
	proposal, err := governance.GetProposal(h.st, id)
	if err != nil {
		log.Error("failed to load committed proposal", "proposal_id", id, "error", err)
		return
	}

	log.Info("proposal status changed", "event", resource, "proposal_id", id, "status", proposal.Status)

	idString := strconv.FormatUint(id, 10)
	observer.ProposalObserver.Trigger(observer.NewEvent(resource, observer.ConditionAll, "").String(), proposal)
	observer.ProposalObserver.Trigger(observer.NewEvent(resource, observer.ConditionID, idString).String(), proposal)
}
