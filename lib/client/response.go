package client

import (
	"boscoin.io/council/lib/common"
)

type Link struct {
	Href      string `json:"href"`
	Templated bool   `json:"templated,omitempty"`
}

type RoleAddress struct {
	Provider string `json:"provider"`
	Role     string `json:"role"`
	Address  string `json:"address"`
}

type Balance struct {
	Token   string        `json:"token"`
	Address string        `json:"address"`
	Height  uint64        `json:"height"`
	Balance common.Amount `json:"balance"`
}

type TotalSupply struct {
	Token       string        `json:"token"`
	Height      uint64        `json:"height"`
	TotalSupply common.Amount `json:"total_supply"`
}
