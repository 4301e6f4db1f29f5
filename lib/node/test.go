package node

import (
	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/common/keypair"
	"boscoin.io/council/lib/governance"
	"boscoin.io/council/lib/storage"
)

// TestHost is a host over a memory storage with in-memory collaborators
// and a clock moved by hand.
type TestHost struct {
	*Host
	Clock    *FixedClock
	Registry *governance.TestRegistry
	Oracle   *governance.TestOracle

	// GovernanceToken is registered as the governance token role.
	GovernanceToken *keypair.Full
}

func NewTestHost(height uint64) *TestHost {
	registry := governance.NewTestRegistry()
	oracle := governance.NewTestOracle()
	clock := NewFixedClock(height)

	token := keypair.Random()
	registry.Set(governance.RoleGovernanceToken, token.Address())

	return &TestHost{
		Host:            NewHost(storage.NewTestStorage(), governance.NewTestEngine(registry, oracle), clock, keypair.RandomAddress()),
		Clock:           clock,
		Registry:        registry,
		Oracle:          oracle,
		GovernanceToken: token,
	}
}

// NewTestInstantiatedHost returns a host instantiated with
// `governance.NewTestConfig`.
func NewTestInstantiatedHost(height uint64) (*TestHost, governance.Config) {
	h := NewTestHost(height)
	config, err := h.Instantiate(governance.NewTestConfig())
	if err != nil {
		panic(err)
	}

	return h, config
}

func (h *TestHost) Deposit(config governance.Config, submitter string) governance.Deposit {
	return governance.Deposit{
		Token:     h.Registry.MustResolve(governance.RoleGovernanceToken),
		Submitter: submitter,
		Amount:    config.RequiredDeposit,
		Receipt:   common.GenerateUUID(),
	}
}
