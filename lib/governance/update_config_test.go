package governance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/common/keypair"
	"boscoin.io/council/lib/errors"
)

func TestUpdateConfig(t *testing.T) {
	g := newTestGovernance(NewTestConfig())
	defer g.st.Close()

	deposit := common.Amount(500)
	quorum := common.MustParseDecimal("0.3")
	msg := CreateOrUpdateConfig{RequiredDeposit: &deposit, RequiredQuorum: &quorum}

	_, err := g.engine.UpdateConfig(g.st, g.env(10), keypair.RandomAddress(), msg)
	require.True(t, errors.Unauthorized.Is(err))

	resp, err := g.engine.UpdateConfig(g.st, g.env(10), g.self, msg)
	require.NoError(t, err)
	action, _ := resp.Attribute("action")
	require.Equal(t, "update_config", action)

	config, err := GetConfig(g.st)
	require.NoError(t, err)
	require.Equal(t, deposit, config.RequiredDeposit)
	require.Equal(t, "0.3", config.RequiredQuorum.String())
	require.Equal(t, g.config.VotingPeriod, config.VotingPeriod)
	require.Equal(t, g.config.AddressProvider, config.AddressProvider)
	require.Equal(t, 0, g.config.RequiredThreshold.Cmp(config.RequiredThreshold))
}

func TestUpdateConfigInvalid(t *testing.T) {
	g := newTestGovernance(NewTestConfig())
	defer g.st.Close()

	deposit := common.Amount(1)
	threshold := common.MustParseDecimal("1.01")
	_, err := g.engine.UpdateConfig(g.st, g.env(10), g.self, CreateOrUpdateConfig{
		RequiredDeposit:   &deposit,
		RequiredThreshold: &threshold,
	})
	require.True(t, errors.InvalidRatio.Is(err))

	provider := "bad provider"
	_, err = g.engine.UpdateConfig(g.st, g.env(10), g.self, CreateOrUpdateConfig{AddressProvider: &provider})
	require.True(t, errors.InvalidAddress.Is(err))

	config, err := GetConfig(g.st)
	require.NoError(t, err)
	require.Equal(t, g.config, config)
}

func TestParseExecuteMsg(t *testing.T) {
	period := uint64(42)
	b := NewUpdateConfigMsg(CreateOrUpdateConfig{VotingPeriod: &period})

	msg, err := ParseExecuteMsg(b)
	require.NoError(t, err)
	require.NotNil(t, msg.UpdateConfig)
	require.Equal(t, uint64(42), *msg.UpdateConfig.Config.VotingPeriod)
	require.Nil(t, msg.UpdateConfig.Config.RequiredQuorum)

	_, err = ParseExecuteMsg([]byte(`{"transfer":{}}`))
	require.True(t, errors.InvalidMessage.Is(err))

	_, err = ParseExecuteMsg([]byte(`not json`))
	require.True(t, errors.InvalidMessage.Is(err))
}
