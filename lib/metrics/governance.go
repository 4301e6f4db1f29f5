package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type GovernanceMetrics struct {
	Height          metrics.Gauge
	Operations      metrics.Counter
	Votes           metrics.Counter
	VotingPower     metrics.Counter
	ProposalResults metrics.Counter
	OutboxMessages  metrics.Counter
	Relayed         metrics.Counter
	Failures        metrics.Counter
}

func (g *GovernanceMetrics) SetHeight(height uint64) {
	g.Height.Set(float64(height))
}

// AddOperation counts a committed state-changing operation, by action.
func (g *GovernanceMetrics) AddOperation(action string) {
	g.Operations.With("action", action).Add(1)
}

func (g *GovernanceMetrics) AddVote(option string, power uint64) {
	g.Votes.With("option", option).Add(1)
	g.VotingPower.With("option", option).Add(float64(power))
}

func (g *GovernanceMetrics) AddResult(result string) {
	g.ProposalResults.With("result", result).Add(1)
}

func (g *GovernanceMetrics) AddOutboxMessages(n int) {
	g.OutboxMessages.Add(float64(n))
}

func (g *GovernanceMetrics) AddRelayed(ok bool) {
	status := "ok"
	if !ok {
		status = "failed"
	}
	g.Relayed.With("status", status).Add(1)
}

// AddFailure counts an operation which returned an error, by action and
// error code.
func (g *GovernanceMetrics) AddFailure(action, code string) {
	g.Failures.With("action", action, "code", code).Add(1)
}

func PromGovernanceMetrics() *GovernanceMetrics {
	return &GovernanceMetrics{
		Height: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "height",
			Help:      "Current block height.",
		}, []string{}),
		Operations: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "operations_total",
			Help:      "Total number of committed operations.",
		}, []string{"action"}),
		Votes: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "votes_total",
			Help:      "Total number of votes cast.",
		}, []string{"option"}),
		VotingPower: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "voting_power_total",
			Help:      "Total voting power cast.",
		}, []string{"option"}),
		ProposalResults: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "proposal_results_total",
			Help:      "Total number of ended proposals.",
		}, []string{"result"}),
		OutboxMessages: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "outbox_messages_total",
			Help:      "Total number of outbound messages queued.",
		}, []string{}),
		Relayed: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "relayed_total",
			Help:      "Total number of outbound message deliveries, by status.",
		}, []string{"status"}),
		Failures: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "failures_total",
			Help:      "Total number of failed operations.",
		}, []string{"action", "code"}),
	}
}

func NopGovernanceMetrics() *GovernanceMetrics {
	return &GovernanceMetrics{
		Height:          discard.NewGauge(),
		Operations:      discard.NewCounter(),
		Votes:           discard.NewCounter(),
		VotingPower:     discard.NewCounter(),
		ProposalResults: discard.NewCounter(),
		OutboxMessages:  discard.NewCounter(),
		Relayed:         discard.NewCounter(),
		Failures:        discard.NewCounter(),
	}
}
