package governance

import (
	"math/bits"

	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/storage"
)

// Env is the environment an operation runs in.
type Env struct {
	// Height is the current block height.
	Height uint64
	// Self is the address of the governance module itself.
	Self string
}

//
// Engine runs the proposal lifecycle: submission, vote casting, ending and
// execution, plus the config update reachable through executed proposals.
//
// The engine holds no state and no lock. Every operation reads and writes
// through the `*storage.LevelDBBackend` it is given; the caller runs it in
// a transaction and discards the transaction when an error is returned.
//
type Engine struct {
	registryFactory RegistryFactory
	oracleFactory   OracleFactory
}

func NewEngine(registryFactory RegistryFactory, oracleFactory OracleFactory) *Engine {
	return &Engine{
		registryFactory: registryFactory,
		oracleFactory:   oracleFactory,
	}
}

func (e *Engine) registry(config Config) (AddressRegistry, error) {
	registry, err := e.registryFactory(config.AddressProvider)
	if err != nil {
		return nil, collaboratorError(err, "address_provider_address", config.AddressProvider)
	}

	return registry, nil
}

func (e *Engine) oracle(votingToken string) (VotingPowerOracle, error) {
	oracle, err := e.oracleFactory(votingToken)
	if err != nil {
		return nil, collaboratorError(err, "voting_token", votingToken)
	}

	return oracle, nil
}

func (e *Engine) load(st *storage.LevelDBBackend, id uint64) (config Config, proposal Proposal, err error) {
	if proposal, err = GetProposal(st, id); err != nil {
		return
	}
	config, err = GetConfig(st)

	return
}

func addHeights(heights ...uint64) (uint64, error) {
	var sum, carry uint64
	for _, h := range heights {
		if sum, carry = bits.Add64(sum, h, 0); carry != 0 {
			return 0, errors.ArithmeticOverflow.Clone().SetData("op", "height")
		}
	}

	return sum, nil
}
