package governance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/common/keypair"
	"boscoin.io/council/lib/errors"
)

func TestSubmitProposalValidation(t *testing.T) {
	g := newTestGovernance(NewTestConfig())
	defer g.st.Close()

	link := func(n int) *string {
		s := strings.Repeat("l", n)
		return &s
	}

	cases := []struct {
		name   string
		msg    SubmitProposalMsg
		reason string
	}{
		{"title too short", SubmitProposalMsg{Title: "abc", Description: "valid"}, "title too short"},
		{"title too long", SubmitProposalMsg{Title: strings.Repeat("t", 65), Description: "valid"}, "title too long"},
		{"description too short", SubmitProposalMsg{Title: "valid", Description: "abc"}, "description too short"},
		{"description too long", SubmitProposalMsg{Title: "valid", Description: strings.Repeat("d", 1025)}, "description too long"},
		{"link too short", SubmitProposalMsg{Title: "valid", Description: "valid", Link: link(11)}, "link too short"},
		{"link too long", SubmitProposalMsg{Title: "valid", Description: "valid", Link: link(129)}, "link too long"},
	}

	submitter := keypair.RandomAddress()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := g.engine.SubmitProposal(g.st, g.env(10), g.deposit(submitter), c.msg)
			require.True(t, errors.InvalidProposal.Is(err))
			require.Equal(t, c.reason, err.(*errors.Error).Data["reason"])
		})
	}

	// bounds are inclusive
	_, err := g.engine.SubmitProposal(g.st, g.env(10), g.deposit(submitter), SubmitProposalMsg{
		Title:       strings.Repeat("t", 64),
		Description: strings.Repeat("d", 1024),
		Link:        link(128),
	})
	require.NoError(t, err)

	_, err = g.engine.SubmitProposal(g.st, g.env(10), g.deposit(submitter), SubmitProposalMsg{
		Title:       "four",
		Description: "four",
		Link:        link(12),
	})
	require.NoError(t, err)

	state, _ := GetGlobalState(g.st)
	require.Equal(t, uint64(2), state.ProposalCount)
}

func TestSubmitProposalDeposit(t *testing.T) {
	g := newTestGovernance(NewTestConfig())
	defer g.st.Close()

	submitter := keypair.RandomAddress()

	{ // not enough
		deposit := g.deposit(submitter)
		deposit.Amount = g.config.RequiredDeposit - 1

		_, err := g.engine.SubmitProposal(g.st, g.env(10), deposit, NewTestProposalMsg())
		require.True(t, errors.InvalidProposal.Is(err))
		require.Equal(t, "must deposit at least 10000 tokens", err.(*errors.Error).Data["reason"])
	}

	{ // wrong token surfaces the same way
		deposit := g.deposit(submitter)
		deposit.Token = keypair.RandomAddress()
		deposit.Amount = g.config.RequiredDeposit * 2

		_, err := g.engine.SubmitProposal(g.st, g.env(10), deposit, NewTestProposalMsg())
		require.True(t, errors.InvalidProposal.Is(err))
		require.Equal(t, "must deposit at least 10000 tokens", err.(*errors.Error).Data["reason"])
	}

	{ // no receipt
		deposit := g.deposit(submitter)
		deposit.Receipt = ""

		_, err := g.engine.SubmitProposal(g.st, g.env(10), deposit, NewTestProposalMsg())
		require.True(t, errors.InvalidProposal.Is(err))
		require.Equal(t, "deposit receipt is missing", err.(*errors.Error).Data["reason"])
	}

	state, _ := GetGlobalState(g.st)
	require.Equal(t, uint64(0), state.ProposalCount)
}

func TestSubmitProposal(t *testing.T) {
	g := newTestGovernance(NewTestConfig())
	defer g.st.Close()

	submitter := keypair.RandomAddress()
	target := keypair.RandomAddress()
	link := "https://council.example/proposals/1"
	msg := SubmitProposalMsg{
		Title:       "Update the deposit",
		Description: "Raise the deposit",
		Link:        &link,
		ExecuteCalls: []ExecuteCall{
			{ExecutionOrder: 1, Target: target, Msg: []byte(`{"noop":{}}`)},
		},
	}

	deposit := g.deposit(submitter)
	deposit.Amount = g.config.RequiredDeposit + 5

	resp, err := g.engine.SubmitProposal(g.st, g.env(100000), deposit, msg)
	require.NoError(t, err)
	require.Equal(t, uint64(1), resp.ProposalID)
	require.Empty(t, resp.Messages)

	for key, expected := range map[string]string{
		"action":              "submit_proposal",
		"proposal_submitter":  submitter,
		"proposal_id":         "1",
		"proposal_end_height": "100100",
	} {
		value, found := resp.Attribute(key)
		require.True(t, found, key)
		require.Equal(t, expected, value, key)
	}

	p, err := GetProposal(g.st, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(1), p.ID)
	require.Equal(t, submitter, p.Submitter)
	require.Equal(t, StatusActive, p.Status)
	require.Equal(t, common.Amount(0), p.ForVotes)
	require.Equal(t, common.Amount(0), p.AgainstVotes)
	require.Equal(t, uint64(100000), p.StartHeight)
	require.Equal(t, uint64(100100), p.EndHeight)
	require.Equal(t, link, *p.Link)
	require.Equal(t, msg.ExecuteCalls, p.ExecuteCalls)
	require.Equal(t, g.config.RequiredDeposit+5, p.Deposit)

	// a receipt funds one proposal
	_, err = g.engine.SubmitProposal(g.st, g.env(100001), deposit, NewTestProposalMsg())
	require.True(t, errors.DepositAlreadyUsed.Is(err))

	deposit.Receipt = common.GenerateUUID()
	resp, err = g.engine.SubmitProposal(g.st, g.env(100001), deposit, NewTestProposalMsg())
	require.NoError(t, err)
	require.Equal(t, uint64(2), resp.ProposalID)

	p, err = GetProposal(g.st, 2)
	require.NoError(t, err)
	require.Nil(t, p.Link)
	require.Nil(t, p.ExecuteCalls)
}

func TestSubmitProposalInvalidAddress(t *testing.T) {
	g := newTestGovernance(NewTestConfig())
	defer g.st.Close()

	msg := NewTestProposalMsg()
	msg.ExecuteCalls = []ExecuteCall{{ExecutionOrder: 0, Target: "nowhere", Msg: []byte(`{}`)}}

	_, err := g.engine.SubmitProposal(g.st, g.env(10), g.deposit(keypair.RandomAddress()), msg)
	require.True(t, errors.InvalidAddress.Is(err))

	_, err = g.engine.SubmitProposal(g.st, g.env(10), g.deposit("nobody"), NewTestProposalMsg())
	require.True(t, errors.InvalidAddress.Is(err))
}

func TestSubmitProposalRegistryFailure(t *testing.T) {
	g := newTestGovernance(NewTestConfig())
	defer g.st.Close()

	deposit := g.deposit(keypair.RandomAddress())
	g.registry.Unset(RoleGovernanceToken)

	_, err := g.engine.SubmitProposal(g.st, g.env(10), deposit, NewTestProposalMsg())
	require.True(t, errors.RoleNotRegistered.Is(err))
}
