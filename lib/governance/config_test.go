package governance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"

	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/errors"
	"boscoin.io/council/lib/storage"
)

func TestConfigValidate(t *testing.T) {
	config := NewTestConfig().Apply(Config{})
	require.NoError(t, config.Validate())

	config.RequiredQuorum = common.DecimalOne
	config.RequiredThreshold = common.DecimalZero
	require.NoError(t, config.Validate())

	config.RequiredQuorum = common.MustParseDecimal("1.000000000000000001")
	err := config.Validate()
	require.True(t, errors.InvalidRatio.Is(err))
	require.Equal(t, "proposal_required_quorum", err.(*errors.Error).Data["field"])

	config.RequiredQuorum = common.DecimalOne
	config.RequiredThreshold = common.MustParseDecimal("1.1")
	err = config.Validate()
	require.True(t, errors.InvalidRatio.Is(err))
	require.Equal(t, "proposal_required_threshold", err.(*errors.Error).Data["field"])
}

func TestInstantiate(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, err := GetConfig(st)
	require.Equal(t, errors.NotInstantiated, err)

	msg := NewTestConfig()
	config, err := Instantiate(st, msg)
	require.NoError(t, err)
	require.Equal(t, *msg.AddressProvider, config.AddressProvider)
	require.Equal(t, *msg.VotingPeriod, config.VotingPeriod)

	stored, err := GetConfig(st)
	require.NoError(t, err)
	require.Equal(t, config, stored)

	state, err := GetGlobalState(st)
	require.NoError(t, err)
	require.Equal(t, uint64(0), state.ProposalCount)

	_, err = Instantiate(st, msg)
	require.Equal(t, errors.AlreadyInstantiated, err)
}

func TestInstantiateIncomplete(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	msg := NewTestConfig()
	msg.RequiredThreshold = nil

	_, err := Instantiate(st, msg)
	require.Equal(t, errors.ConfigIncomplete, err)

	exists, _ := st.Has(ConfigKey)
	require.False(t, exists)
}

func TestInstantiateInvalid(t *testing.T) {
	{ // ratio
		st := storage.NewTestStorage()
		msg := NewTestConfig()
		quorum := common.MustParseDecimal("1.5")
		msg.RequiredQuorum = &quorum

		_, err := Instantiate(st, msg)
		require.True(t, errors.InvalidRatio.Is(err))
		st.Close()
	}

	{ // address provider
		st := storage.NewTestStorage()
		msg := NewTestConfig()
		provider := "not-an-address"
		msg.AddressProvider = &provider

		_, err := Instantiate(st, msg)
		require.True(t, errors.InvalidAddress.Is(err))
		st.Close()
	}
}

func TestCreateOrUpdateConfigApply(t *testing.T) {
	base := NewTestConfig().Apply(Config{})

	votingPeriod := uint64(7)
	updated := CreateOrUpdateConfig{VotingPeriod: &votingPeriod}.Apply(base)

	require.Equal(t, uint64(7), updated.VotingPeriod)
	require.Equal(t, base.AddressProvider, updated.AddressProvider)
	require.Equal(t, base.EffectiveDelay, updated.EffectiveDelay)
	require.Equal(t, base.RequiredDeposit, updated.RequiredDeposit)
	require.Equal(t, 0, base.RequiredQuorum.Cmp(updated.RequiredQuorum))

	require.Equal(t, base, CreateOrUpdateConfig{}.Apply(base))
}

func TestCreateOrUpdateConfigDecode(t *testing.T) {
	var fromJSON CreateOrUpdateConfig
	require.NoError(t, json.Unmarshal(
		[]byte(`{"proposal_voting_period": 5, "proposal_required_quorum": "0.25"}`),
		&fromJSON,
	))
	require.Equal(t, uint64(5), *fromJSON.VotingPeriod)
	require.Equal(t, "0.25", fromJSON.RequiredQuorum.String())
	require.Nil(t, fromJSON.RequiredThreshold)
	require.False(t, fromJSON.IsComplete())

	var fromYAML CreateOrUpdateConfig
	require.NoError(t, yaml.Unmarshal([]byte(`
address_provider_address: GABC
proposal_voting_period: 10
proposal_effective_delay: 2
proposal_expiration_period: 20
proposal_required_deposit: 1000
proposal_required_quorum: "0.1"
proposal_required_threshold: "0.51"
`), &fromYAML))
	require.True(t, fromYAML.IsComplete())
	require.Equal(t, common.Amount(1000), *fromYAML.RequiredDeposit)
	require.Equal(t, "0.51", fromYAML.RequiredThreshold.String())
}
