package resource

import (
	"github.com/nvellon/hal"

	"boscoin.io/council/lib/governance"
)

type Vote struct {
	proposalID uint64
	v          governance.VoterVote
}

func NewVote(proposalID uint64, v governance.VoterVote) *Vote {
	return &Vote{proposalID: proposalID, v: v}
}

func (r Vote) GetMap() hal.Entry {
	return hal.Entry{
		"proposal_id":   r.proposalID,
		"voter_address": r.v.Voter,
		"option":        r.v.Option,
		"power":         r.v.Power,
	}
}

func (r Vote) Resource() *hal.Resource {
	res := hal.NewResource(r, r.LinkSelf())
	res.AddLink("proposal", hal.NewLink(expand(URLProposal, "id", formatUint(r.proposalID))))
	return res
}

func (r Vote) LinkSelf() string {
	return expand(URLVote, "id", formatUint(r.proposalID), "voter", r.v.Voter)
}
