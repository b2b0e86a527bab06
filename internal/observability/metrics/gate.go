package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GateDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_gate_decisions_total",
			Help: "Total number of auth gate decisions by gate kind and outcome",
		},
		[]string{"gate", "outcome"},
	)

	AuthProbesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_probes_total",
			Help: "Total number of auth service liveness probes by result",
		},
		[]string{"result"},
	)

	AuthProbeCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_probe_cache_hits_total",
			Help: "Total number of liveness probes answered from cache",
		},
	)

	AuthProbeDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_probe_duration_seconds",
			Help:    "Duration of auth service liveness probes in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	TokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_verifications_total",
			Help: "Total number of access token verifications by result",
		},
		[]string{"result"},
	)
)
