package governance

import (
	"sync"

	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/common/keypair"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/storage"
)

// TestRegistry is an in-memory `AddressRegistry`.
type TestRegistry struct {
	sync.RWMutex
	addresses map[Role]string
}

// NewTestRegistry returns a registry with a random address for every role.
func NewTestRegistry() *TestRegistry {
	return &TestRegistry{
		addresses: map[Role]string{
			RoleGovernanceToken: keypair.RandomAddress(),
			RoleStaking:         keypair.RandomAddress(),
			RoleVotingToken:     keypair.RandomAddress(),
		},
	}
}

func (r *TestRegistry) Resolve(role Role) (string, error) {
	r.RLock()
	defer r.RUnlock()

	address, found := r.addresses[role]
	if !found {
		return "", errors.RoleNotRegistered.Clone().SetData("role", string(role))
	}
	return address, nil
}

func (r *TestRegistry) Set(role Role, address string) {
	r.Lock()
	defer r.Unlock()

	r.addresses[role] = address
}

func (r *TestRegistry) Unset(role Role) {
	r.Lock()
	defer r.Unlock()

	delete(r.addresses, role)
}

// MustResolve is `Resolve` for roles known to be registered.
func (r *TestRegistry) MustResolve(role Role) string {
	address, err := r.Resolve(role)
	if err != nil {
		panic(err)
	}
	return address
}

// TestOracle is an in-memory `VotingPowerOracle`. Balances are recorded per
// exact height; an unrecorded height has a zero balance.
type TestOracle struct {
	sync.RWMutex
	balances map[string]map[uint64]common.Amount
	supply   map[uint64]common.Amount
}

func NewTestOracle() *TestOracle {
	return &TestOracle{
		balances: map[string]map[uint64]common.Amount{},
		supply:   map[uint64]common.Amount{},
	}
}

func (o *TestOracle) SetBalance(address string, height uint64, amount common.Amount) {
	o.Lock()
	defer o.Unlock()

	if _, found := o.balances[address]; !found {
		o.balances[address] = map[uint64]common.Amount{}
	}
	o.balances[address][height] = amount
}

func (o *TestOracle) SetTotalSupply(height uint64, amount common.Amount) {
	o.Lock()
	defer o.Unlock()

	o.supply[height] = amount
}

func (o *TestOracle) BalanceAt(address string, height uint64) (common.Amount, error) {
	o.RLock()
	defer o.RUnlock()

	return o.balances[address][height], nil
}

func (o *TestOracle) TotalSupplyAt(height uint64) (common.Amount, error) {
	o.RLock()
	defer o.RUnlock()

	return o.supply[height], nil
}

func NewTestEngine(registry AddressRegistry, oracle VotingPowerOracle) *Engine {
	return NewEngine(
		func(string) (AddressRegistry, error) { return registry, nil },
		func(string) (VotingPowerOracle, error) { return oracle, nil },
	)
}

// NewTestConfig returns a complete config: 100 blocks of voting, 10 blocks
// of delay, 100 blocks to execute, 10000 tokens of deposit, quorum 0.1 and
// threshold 0.05.
func NewTestConfig() CreateOrUpdateConfig {
	provider := keypair.RandomAddress()
	votingPeriod := uint64(100)
	effectiveDelay := uint64(10)
	expirationPeriod := uint64(100)
	deposit := common.Amount(10000)
	quorum := common.MustParseDecimal("0.1")
	threshold := common.MustParseDecimal("0.05")

	return CreateOrUpdateConfig{
		AddressProvider:   &provider,
		VotingPeriod:      &votingPeriod,
		EffectiveDelay:    &effectiveDelay,
		ExpirationPeriod:  &expirationPeriod,
		RequiredDeposit:   &deposit,
		RequiredQuorum:    &quorum,
		RequiredThreshold: &threshold,
	}
}

// NewTestStorage returns an instantiated memory storage.
func NewTestStorage(msg CreateOrUpdateConfig) (*storage.LevelDBBackend, Config) {
	st := storage.NewTestStorage()
	config, err := Instantiate(st, msg)
	if err != nil {
		panic(err)
	}

	return st, config
}

// NewTestProposalMsg returns a valid submission without execute-calls.
func NewTestProposalMsg() SubmitProposalMsg {
	return SubmitProposalMsg{
		Title:       "A valid title",
		Description: "A valid description",
	}
}
