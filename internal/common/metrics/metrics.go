// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesRouted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_queries_routed_total",
			Help: "Total number of utterances routed, by outcome",
		},
		[]string{"outcome"},
	)

	DomainDispatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_domain_dispatches_total",
			Help: "Total number of collaborator dispatches, by domain and status",
		},
		[]string{"domain", "status"},
	)

	RoutingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assistant_routing_duration_seconds",
			Help: "End-to-end duration of route-and-execute per utterance",
		},
		[]string{"outcome"},
	)

	AgentCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assistant_agent_call_duration_seconds",
			Help: "Duration of remote agent calls",
		},
		[]string{"agent"},
	)
)
