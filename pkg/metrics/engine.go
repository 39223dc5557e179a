package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics records report aggregation and payout activity.
type EngineMetrics struct {
	reportDuration *prometheus.HistogramVec
	upstreamFetch  *prometheus.CounterVec
	payoutChanges  *prometheus.CounterVec
}

// NewEngineMetrics registers the engine metrics on the provided registerer.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	if reg == nil {
		return &EngineMetrics{}
	}
	reportDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "report_build_seconds",
		Help:    "Duration of report aggregation runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"report"})
	upstreamFetch := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_fetch_total",
		Help: "Upstream order-store fetches by source and outcome.",
	}, []string{"source", "outcome"})
	payoutChanges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payout_transitions_total",
		Help: "Payout request state transitions.",
	}, []string{"from", "to"})
	reg.MustRegister(reportDuration, upstreamFetch, payoutChanges)
	return &EngineMetrics{
		reportDuration: reportDuration,
		upstreamFetch:  upstreamFetch,
		payoutChanges:  payoutChanges,
	}
}

// ObserveReportBuild records the duration for the named report.
func (e *EngineMetrics) ObserveReportBuild(report string, duration time.Duration) {
	if e == nil || e.reportDuration == nil {
		return
	}
	e.reportDuration.WithLabelValues(jobLabel(report)).Observe(duration.Seconds())
}

// IncUpstreamFetch counts one upstream fetch attempt.
func (e *EngineMetrics) IncUpstreamFetch(source, outcome string) {
	if e == nil || e.upstreamFetch == nil {
		return
	}
	e.upstreamFetch.WithLabelValues(jobLabel(source), jobLabel(outcome)).Inc()
}

// IncPayoutTransition counts one payout state change.
func (e *EngineMetrics) IncPayoutTransition(from, to string) {
	if e == nil || e.payoutChanges == nil {
		return
	}
	e.payoutChanges.WithLabelValues(jobLabel(from), jobLabel(to)).Inc()
}
