package governance

import (
	"boscoin.io/council/lib/errors"
)

type ProposalStatus string

const (
	StatusActive   ProposalStatus = "active"
	StatusPassed   ProposalStatus = "passed"
	StatusRejected ProposalStatus = "rejected"
	StatusExecuted ProposalStatus = "executed"
)

type ProposalEvent string

const (
	EventPass    ProposalEvent = "pass"
	EventReject  ProposalEvent = "reject"
	EventExecute ProposalEvent = "execute"
)

var proposalTransitions = map[ProposalStatus]map[ProposalEvent]ProposalStatus{
	StatusActive: {
		EventPass:   StatusPassed,
		EventReject: StatusRejected,
	},
	StatusPassed: {
		EventExecute: StatusExecuted,
	},
}

//
// Transit returns the status reached from `s` by `event`.
//
// The only transitions are Active+pass -> Passed, Active+reject -> Rejected
// and Passed+execute -> Executed; anything else returns
// `errors.InvalidStatusTransition`.
//
func (s ProposalStatus) Transit(event ProposalEvent) (ProposalStatus, error) {
	if next, found := proposalTransitions[s][event]; found {
		return next, nil
	}

	return s, errors.InvalidStatusTransition.Clone().
		SetData("status", string(s)).
		SetData("event", string(event))
}

// IsTerminal is true when no event can move the status any more.
func (s ProposalStatus) IsTerminal() bool {
	return len(proposalTransitions[s]) < 1
}

type VoteOption string

const (
	VoteFor     VoteOption = "for"
	VoteAgainst VoteOption = "against"
)

func (o VoteOption) IsValid() bool {
	return o == VoteFor || o == VoteAgainst
}

func (o *VoteOption) UnmarshalJSON(b []byte) error {
	var s string
	switch string(b) {
	case `"for"`:
		s = string(VoteFor)
	case `"against"`:
		s = string(VoteAgainst)
	default:
		return errors.InvalidMessage.Clone().SetData("vote", string(b))
	}

	*o = VoteOption(s)
	return nil
}

type ProposalResult string

const (
	ResultPassed   ProposalResult = "passed"
	ResultRejected ProposalResult = "rejected"
)
