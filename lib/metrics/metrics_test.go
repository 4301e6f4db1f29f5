package metrics

import (
	"io/ioutil"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"
)

func TestNopMetrics(t *testing.T) {
	Governance.SetHeight(10)
	Governance.AddOperation("submit_proposal")
	Governance.AddVote("for", 100)
	Governance.AddFailure("cast_vote", "140")
	API.RequestsTotal.With("endpoint", "/", "method", "GET", "status", "200").Add(1)
}

func TestPrometheusMetrics(t *testing.T) {
	InitPrometheusMetrics()
	SetVersion()

	Governance.SetHeight(42)
	Governance.AddOperation("submit_proposal")
	Governance.AddVote("against", 7)
	Governance.AddResult("passed")
	Governance.AddOutboxMessages(2)
	Governance.AddRelayed(true)
	Governance.AddRelayed(false)

	server := httptest.NewServer(promhttp.Handler())
	defer server.Close()

	resp, err := server.Client().Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(b)

	for _, expected := range []string{
		"council_governance_height 42",
		`council_governance_operations_total{action="submit_proposal"} 1`,
		`council_governance_relayed_total{status="ok"} 1`,
		`council_governance_votes_total{option="against"} 1`,
		`council_governance_voting_power_total{option="against"} 7`,
		`council_governance_proposal_results_total{result="passed"} 1`,
		"council_governance_outbox_messages_total 2",
		"council_version{",
	} {
		require.True(t, strings.Contains(body, expected), expected)
	}
}
