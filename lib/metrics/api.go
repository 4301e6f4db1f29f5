package metrics

import (
	"strconv"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type APIMetrics struct {
	RequestsTotal          metrics.Counter
	RequestErrorsTotal     metrics.Counter
	RequestDurationSeconds metrics.Histogram
	RateLimitedTotal       metrics.Counter
}

// ObserveRequest records one served request. `endpoint` is the route
// template, not the raw path, to keep the label set small.
func (a *APIMetrics) ObserveRequest(endpoint, method string, status int, begin time.Time) {
	lvs := []string{"endpoint", endpoint, "method", method, "status", strconv.Itoa(status)}

	a.RequestsTotal.With(lvs...).Add(1)
	a.RequestDurationSeconds.With(lvs...).Observe(time.Since(begin).Seconds())
	if status >= 400 {
		a.RequestErrorsTotal.With(lvs...).Add(1)
	}
}

func PromAPIMetrics() *APIMetrics {
	return &APIMetrics{
		RequestsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "requests_total",
			Help:      "Total number of requests.",
		}, []string{"endpoint", "method", "status"}),
		RequestErrorsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "request_errors_total",
			Help:      "Total number of request errors.",
		}, []string{"endpoint", "method", "status"}),
		RequestDurationSeconds: prometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "request_duration_seconds",
			Help:      "Request duration in seconds.",
		}, []string{"endpoint", "method", "status"}),
		RateLimitedTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "rate_limited_total",
			Help:      "Total number of requests refused by the rate limiter.",
		}, []string{}),
	}
}

func NopAPIMetrics() *APIMetrics {
	return &APIMetrics{
		RequestsTotal:          discard.NewCounter(),
		RequestErrorsTotal:     discard.NewCounter(),
		RequestDurationSeconds: discard.NewHistogram(),
		RateLimitedTotal:       discard.NewCounter(),
	}
}
