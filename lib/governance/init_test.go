package governance

import (
	"testing"

	logging "github.com/inconshreveable/log15"
	"github.com/stretchr/testify/require"

	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/common/keypair"
	"boscoin.io/council/lib/common/test"
	"boscoin.io/council/lib/storage"
)

func init() {
	SetLogging(logging.LvlDebug, test.LogHandler())
}

type testGovernance struct {
	st       *storage.LevelDBBackend
	config   Config
	registry *TestRegistry
	oracle   *TestOracle
	engine   *Engine
	self     string
}

func newTestGovernance(msg CreateOrUpdateConfig) *testGovernance {
	st, config := NewTestStorage(msg)
	registry := NewTestRegistry()
	oracle := NewTestOracle()

	return &testGovernance{
		st:       st,
		config:   config,
		registry: registry,
		oracle:   oracle,
		engine:   NewTestEngine(registry, oracle),
		self:     keypair.RandomAddress(),
	}
}

func (g *testGovernance) env(height uint64) Env {
	return Env{Height: height, Self: g.self}
}

func (g *testGovernance) deposit(submitter string) Deposit {
	return Deposit{
		Token:     g.registry.MustResolve(RoleGovernanceToken),
		Submitter: submitter,
		Amount:    g.config.RequiredDeposit,
		Receipt:   common.GenerateUUID(),
	}
}

func (g *testGovernance) submit(t *testing.T, height uint64, msg SubmitProposalMsg) Proposal {
	resp, err := g.engine.SubmitProposal(g.st, g.env(height), g.deposit(keypair.RandomAddress()), msg)
	require.NoError(t, err)

	p, err := GetProposal(g.st, resp.ProposalID)
	require.NoError(t, err)
	return p
}

// voter returns a new voter holding `power` at the snapshot height of `p`.
func (g *testGovernance) voter(p Proposal, power common.Amount) string {
	address := keypair.RandomAddress()
	g.oracle.SetBalance(address, p.StartHeight-1, power)
	return address
}

func (g *testGovernance) vote(t *testing.T, p Proposal, height uint64, option VoteOption, power common.Amount) string {
	voter := g.voter(p, power)
	_, err := g.engine.CastVote(g.st, g.env(height), voter, p.ID, option)
	require.NoError(t, err)
	return voter
}
