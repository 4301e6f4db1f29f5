package resource

import (
	"github.com/nvellon/hal"

	"boscoin.io/council/lib/governance"
)

type Proposal struct {
	p governance.Proposal
}

func NewProposal(p governance.Proposal) *Proposal {
	return &Proposal{p: p}
}

func (r Proposal) GetMap() hal.Entry {
	p := r.p
	calls := p.ExecuteCalls
	if calls == nil {
		calls = []governance.ExecuteCall{}
	}

	return hal.Entry{
		"proposal_id":       p.ID,
		"submitter_address": p.Submitter,
		"status":            p.Status,
		"for_votes":         p.ForVotes,
		"against_votes":     p.AgainstVotes,
		"start_height":      p.StartHeight,
		"end_height":        p.EndHeight,
		"title":             p.Title,
		"description":       p.Description,
		"link":              p.Link,
		"execute_calls":     calls,
		"deposit_amount":    p.Deposit,
	}
}

func (r Proposal) Resource() *hal.Resource {
	res := hal.NewResource(r, r.LinkSelf())
	res.AddLink("votes", hal.NewLink(expand(URLProposalVotes, "id", formatUint(r.p.ID))))
	return res
}

func (r Proposal) LinkSelf() string {
	return expand(URLProposal, "id", formatUint(r.p.ID))
}
