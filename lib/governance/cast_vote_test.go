package governance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/common/keypair"
	"boscoin.io/council/lib/errors"
)

func TestCastVote(t *testing.T) {
	g := newTestGovernance(NewTestConfig())
	defer g.st.Close()

	p := g.submit(t, 1000, NewTestProposalMsg())

	voter := g.voter(p, 100)
	resp, err := g.engine.CastVote(g.st, g.env(1001), voter, p.ID, VoteFor)
	require.NoError(t, err)
	require.Empty(t, resp.Messages)

	for key, expected := range map[string]string{
		"action":       "cast_vote",
		"proposal_id":  "1",
		"voter":        voter,
		"vote":         "for",
		"voting_power": "100",
	} {
		value, _ := resp.Attribute(key)
		require.Equal(t, expected, value, key)
	}

	g.vote(t, p, 1002, VoteAgainst, 40)
	g.vote(t, p, p.EndHeight, VoteAgainst, 2)

	p, err = GetProposal(g.st, p.ID)
	require.NoError(t, err)
	require.Equal(t, common.Amount(100), p.ForVotes)
	require.Equal(t, common.Amount(42), p.AgainstVotes)

	v, err := GetVote(g.st, p.ID, voter)
	require.NoError(t, err)
	require.Equal(t, VoteFor, v.Option)
	require.Equal(t, common.Amount(100), v.Power)
}

func TestCastVoteErrors(t *testing.T) {
	g := newTestGovernance(NewTestConfig())
	defer g.st.Close()

	p := g.submit(t, 1000, NewTestProposalMsg())
	voter := g.voter(p, 100)

	{ // unknown proposal
		_, err := g.engine.CastVote(g.st, g.env(1001), voter, 99, VoteFor)
		require.True(t, errors.ProposalNotFound.Is(err))
	}

	{ // unknown option
		_, err := g.engine.CastVote(g.st, g.env(1001), voter, p.ID, VoteOption("abstain"))
		require.True(t, errors.InvalidMessage.Is(err))
	}

	{ // the proposal is checked before the vote itself
		_, err := g.engine.CastVote(g.st, g.env(1001), "nobody", 99, VoteOption("abstain"))
		require.True(t, errors.ProposalNotFound.Is(err))

		_, err = g.engine.CastVote(g.st, g.env(p.EndHeight+1), "nobody", p.ID, VoteOption("abstain"))
		require.True(t, errors.VotingPeriodEnded.Is(err))

		_, err = g.engine.CastVote(g.st, g.env(1001), "nobody", p.ID, VoteFor)
		require.True(t, errors.InvalidAddress.Is(err))
	}

	{ // window closed
		_, err := g.engine.CastVote(g.st, g.env(p.EndHeight+1), voter, p.ID, VoteFor)
		require.True(t, errors.VotingPeriodEnded.Is(err))
	}

	{ // no power at the snapshot, even with power now
		poor := keypair.RandomAddress()
		g.oracle.SetBalance(poor, 1001, 1000)

		_, err := g.engine.CastVote(g.st, g.env(1001), poor, p.ID, VoteFor)
		require.True(t, errors.NoVotingPower.Is(err))
		require.Equal(t, uint64(999), err.(*errors.Error).Data["block"])
	}

	{ // second vote, whatever the option
		_, err := g.engine.CastVote(g.st, g.env(1001), voter, p.ID, VoteFor)
		require.NoError(t, err)

		_, err = g.engine.CastVote(g.st, g.env(1002), voter, p.ID, VoteFor)
		require.True(t, errors.AlreadyVoted.Is(err))
		_, err = g.engine.CastVote(g.st, g.env(1002), voter, p.ID, VoteAgainst)
		require.True(t, errors.AlreadyVoted.Is(err))

		p, _ = GetProposal(g.st, p.ID)
		require.Equal(t, common.Amount(100), p.ForVotes)
		require.Equal(t, common.Amount(0), p.AgainstVotes)
	}

	{ // not active
		g.oracle.SetTotalSupply(p.StartHeight-1, 100)
		_, err := g.engine.EndProposal(g.st, g.env(p.EndHeight+1), p.ID)
		require.NoError(t, err)

		late := g.voter(p, 10)
		_, err = g.engine.CastVote(g.st, g.env(p.EndHeight), late, p.ID, VoteFor)
		require.True(t, errors.ProposalNotActive.Is(err))
	}
}

func TestCastVoteOverflow(t *testing.T) {
	g := newTestGovernance(NewTestConfig())
	defer g.st.Close()

	p := g.submit(t, 1000, NewTestProposalMsg())
	g.vote(t, p, 1001, VoteFor, common.Amount(^uint64(0)))

	whale := g.voter(p, 1)
	_, err := g.engine.CastVote(g.st, g.env(1001), whale, p.ID, VoteFor)
	require.True(t, errors.ArithmeticOverflow.Is(err))

	_, err = GetVote(g.st, p.ID, whale)
	require.True(t, errors.VoteNotFound.Is(err))
}

// Voting power is read at the block before submission: later balance
// changes do not change a cast vote.
func TestCastVoteSnapshot(t *testing.T) {
	g := newTestGovernance(NewTestConfig())
	defer g.st.Close()

	p := g.submit(t, 100000, NewTestProposalMsg())
	require.Equal(t, uint64(100000), p.StartHeight)

	voter := keypair.RandomAddress()
	g.oracle.SetBalance(voter, 99999, 100)
	g.oracle.SetBalance(voter, 100000, 5000)
	g.oracle.SetBalance(voter, 100001, 7)

	_, err := g.engine.CastVote(g.st, g.env(100001), voter, p.ID, VoteFor)
	require.NoError(t, err)

	g.oracle.SetBalance(voter, 99999, 1)

	v, err := GetVote(g.st, p.ID, voter)
	require.NoError(t, err)
	require.Equal(t, common.Amount(100), v.Power)

	p, _ = GetProposal(g.st, p.ID)
	require.Equal(t, common.Amount(100), p.ForVotes)
}

func TestCastVoteSubmittedAtGenesis(t *testing.T) {
	g := newTestGovernance(NewTestConfig())
	defer g.st.Close()

	p := g.submit(t, 0, NewTestProposalMsg())

	_, err := g.engine.CastVote(g.st, g.env(1), keypair.RandomAddress(), p.ID, VoteFor)
	require.True(t, errors.ArithmeticUnderflow.Is(err))
}
