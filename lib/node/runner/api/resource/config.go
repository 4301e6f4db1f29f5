package resource

import (
	"github.com/nvellon/hal"

	"boscoin.io/council/lib/governance"
)

type Config struct {
	c governance.Config
}

func NewConfig(c governance.Config) *Config {
	return &Config{c: c}
}

func (r Config) GetMap() hal.Entry {
	c := r.c
	return hal.Entry{
		"address_provider_address":    c.AddressProvider,
		"proposal_voting_period":      c.VotingPeriod,
		"proposal_effective_delay":    c.EffectiveDelay,
		"proposal_expiration_period":  c.ExpirationPeriod,
		"proposal_required_deposit":   c.RequiredDeposit,
		"proposal_required_quorum":    c.RequiredQuorum,
		"proposal_required_threshold": c.RequiredThreshold,
	}
}

func (r Config) Resource() *hal.Resource {
	return hal.NewResource(r, r.LinkSelf())
}

func (r Config) LinkSelf() string {
	return URLConfig
}
