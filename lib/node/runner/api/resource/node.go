package resource

import (
	"github.com/nvellon/hal"
)

type NodeInfo struct {
	Address       string `json:"address"`
	Height        uint64 `json:"height"`
	ProposalCount uint64 `json:"proposal_count"`
	Version       string `json:"version"`
	GitCommit     string `json:"git_commit"`
}

func NewNodeInfo(info NodeInfo) *NodeInfo {
	return &info
}

func (r NodeInfo) GetMap() hal.Entry {
	return hal.Entry{
		"address":        r.Address,
		"height":         r.Height,
		"proposal_count": r.ProposalCount,
		"version":        r.Version,
		"git_commit":     r.GitCommit,
	}
}

func (r NodeInfo) Resource() *hal.Resource {
	res := hal.NewResource(r, r.LinkSelf())
	res.AddLink("config", hal.NewLink(URLConfig))
	res.AddLink("proposals", hal.NewLink(URLProposals))
	res.AddLink("outbox", hal.NewLink(URLOutbox))
	return res
}

func (r NodeInfo) LinkSelf() string {
	return URLNode
}
