package resource

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/governance"
	"boscoin.io/council/lib/outbox"
)

func toMap(t *testing.T, r Resource) map[string]interface{} {
	b, err := json.Marshal(r.Resource())
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

func TestResourceProposal(t *testing.T) {
	p := governance.Proposal{
		ID:          3,
		Submitter:   "GSUBMITTER",
		Status:      governance.StatusPassed,
		ForVotes:    100,
		StartHeight: 10,
		EndHeight:   110,
		Title:       "title",
		Description: "description",
		Deposit:     1000,
	}

	m := toMap(t, NewProposal(p))
	require.Equal(t, float64(3), m["proposal_id"])
	require.Equal(t, "passed", m["status"])
	require.Equal(t, "100", m["for_votes"])
	require.Equal(t, "0", m["against_votes"])
	require.Equal(t, "1000", m["deposit_amount"])
	require.Equal(t, []interface{}{}, m["execute_calls"])

	links := m["_links"].(map[string]interface{})
	require.Equal(t, "/api/v1/proposals/3", links["self"].(map[string]interface{})["href"])
	require.Equal(t, "/api/v1/proposals/3/votes", links["votes"].(map[string]interface{})["href"])
}

func TestResourceList(t *testing.T) {
	votes := []Resource{
		NewVote(1, governance.VoterVote{Voter: "GA", Option: governance.VoteFor, Power: 5}),
		NewVote(1, governance.VoterVote{Voter: "GB", Option: governance.VoteAgainst, Power: 7}),
	}

	list := NewResourceList(votes, "/api/v1/proposals/1/votes", "/api/v1/proposals/1/votes?start_after=x")
	list.SetExtra("proposal_id", 1)

	m := toMap(t, list)
	require.Equal(t, float64(1), m["proposal_id"])

	records := m["_embedded"].(map[string]interface{})["records"].([]interface{})
	require.Equal(t, 2, len(records))
	require.Equal(t, "GB", records[1].(map[string]interface{})["voter_address"])
	require.Equal(t, "7", records[1].(map[string]interface{})["power"])

	links := m["_links"].(map[string]interface{})
	require.Equal(t, "/api/v1/proposals/1/votes?start_after=x", links["next"].(map[string]interface{})["href"])
}

func TestResourceOperation(t *testing.T) {
	var resp governance.Response
	resp.AddAttribute("action", "end_proposal").AddAttribute("proposal_id", 1)
	resp.AddMessage(governance.Message{Target: "GTOKEN", Msg: []byte(`{"transfer":{}}`)})

	m := toMap(t, NewOperation("/api/v1/proposals/1/end", resp).Set("result", governance.ResultPassed))
	require.Equal(t, "passed", m["result"])

	messages := m["messages"].([]interface{})
	require.Equal(t, 1, len(messages))
	require.Equal(t, map[string]interface{}{"transfer": map[string]interface{}{}}, messages[0].(map[string]interface{})["msg"])

	attributes := m["attributes"].([]interface{})
	require.Equal(t, map[string]interface{}{"key": "proposal_id", "value": "1"}, attributes[1])
}

func TestResourceOutboxEntry(t *testing.T) {
	e := outbox.Entry{
		Sequence: 9,
		Action:   "execute_proposal",
		Message:  governance.Message{Target: "GTARGET", Msg: []byte("not json")},
		Created:  common.NowISO8601(),
	}

	m := toMap(t, NewOutboxEntry(e))
	require.Equal(t, float64(9), m["sequence"])
	// raw bytes are base64 encoded
	require.Equal(t, "bm90IGpzb24=", m["msg"])
}
