package cmd

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/stretchr/testify/require"

	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/common/keypair"
	"boscoin.io/council/lib/governance"
	"boscoin.io/council/lib/node/runner/api"
)

func TestParseRedisAddrs(t *testing.T) {
	addrs, err := parseRedisAddrs("")
	require.NoError(t, err)
	require.Equal(t, 0, len(addrs))

	addrs, err = parseRedisAddrs("a=localhost:6379, b=localhost:6380")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"a": "localhost:6379", "b": "localhost:6380"}, addrs)

	addrs, err = parseRedisAddrs("localhost:6379")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"server0": "localhost:6379"}, addrs)

	_, err = parseRedisAddrs("a=localhost:6379,a=localhost:6380")
	require.Error(t, err)

	_, err = parseRedisAddrs("=localhost:6379")
	require.Error(t, err)
}

func TestParsePositiveInt(t *testing.T) {
	i, err := parsePositiveInt("10")
	require.NoError(t, err)
	require.Equal(t, 10, i)

	_, err = parsePositiveInt("0")
	require.Error(t, err)

	_, err = parsePositiveInt("ten")
	require.Error(t, err)
}

func writeConfigFile(t *testing.T, body string) string {
	f, err := ioutil.TempFile("", "council-config")
	require.NoError(t, err)
	defer f.Close()

	_, err = f.WriteString(body)
	require.NoError(t, err)

	return f.Name()
}

func TestInstantiateFromConfigFile(t *testing.T) {
	provider := keypair.RandomAddress()
	path := writeConfigFile(t, `
address_provider_address: `+provider+`
proposal_voting_period: 100
proposal_effective_delay: 10
proposal_expiration_period: 100
proposal_required_deposit: 10000
proposal_required_quorum: "0.1"
proposal_required_threshold: "0.5"
`)
	defer os.Remove(path)

	msg, err := readConfigFile(path)
	require.NoError(t, err)
	require.True(t, msg.IsComplete())

	config, err := instantiate("memory://", msg)
	require.NoError(t, err)
	require.Equal(t, provider, config.AddressProvider)
	require.Equal(t, uint64(100), config.VotingPeriod)
	require.Equal(t, common.Amount(10000), config.RequiredDeposit)
	require.Equal(t, "0.5", config.RequiredThreshold.String())
}

func TestReadConfigFileInvalid(t *testing.T) {
	_, err := readConfigFile("/not/exists/council.yml")
	require.Error(t, err)

	path := writeConfigFile(t, "proposal_voting_period: 100\nunknown_field: 1\n")
	defer os.Remove(path)

	_, err = readConfigFile(path)
	require.Error(t, err)

	incomplete := writeConfigFile(t, "proposal_voting_period: 100\n")
	defer os.Remove(incomplete)

	msg, err := readConfigFile(incomplete)
	require.NoError(t, err)

	_, err = instantiate("memory://", msg)
	require.Error(t, err)
}

func TestSignSubmission(t *testing.T) {
	path := writeConfigFile(t, `{
  "title": "Lower the deposit",
  "description": "Lower the required deposit",
  "execute_calls": [{"execution_order": 1, "target_contract_address": "`+keypair.RandomAddress()+`", "msg": "e30="}]
}`)
	defer os.Remove(path)

	proposal, err := readProposalFile(path)
	require.NoError(t, err)
	require.Equal(t, "Lower the deposit", proposal.Title)
	require.Equal(t, []byte(`{}`), proposal.ExecuteCalls[0].Msg)

	token := keypair.Random()
	module := keypair.RandomAddress()
	deposit := governance.Deposit{
		Token:     token.Address(),
		Submitter: keypair.RandomAddress(),
		Amount:    10000,
		Receipt:   "transfer-1",
	}

	req, err := signSubmission(token, module, deposit, proposal)
	require.NoError(t, err)
	require.Equal(t, deposit, req.Deposit)

	data, err := api.SubmitSigningData(module, deposit, proposal)
	require.NoError(t, err)
	require.NoError(t, token.Verify(data, base58.Decode(req.Signature)))

	// another module does not accept it
	other, err := api.SubmitSigningData(keypair.RandomAddress(), deposit, proposal)
	require.NoError(t, err)
	require.Error(t, token.Verify(other, base58.Decode(req.Signature)))

	_, err = readProposalFile("/not/exists/proposal.json")
	require.Error(t, err)
}
