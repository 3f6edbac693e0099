package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "furrymatch"

var (
	// HTTPRequestDuration measures request latency.
	// Labels: method, route (gin route template), status
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// LikesTotal counts recorded likes.
	// Labels: outcome (liked, matched, repeat)
	LikesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "likes_total",
		Help:      "Total likes recorded, by outcome",
	}, []string{"outcome"})

	// MatchesTotal counts matches created.
	MatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "matches_total",
		Help:      "Total matches created",
	})

	// MessagesTotal counts chat messages sent.
	// Labels: kind (owner, system)
	MessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "chat",
		Name:      "messages_total",
		Help:      "Total chat messages stored",
	}, []string{"kind"})

	// ContractTransitions counts contract workflow steps.
	// Labels: status
	ContractTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "contract",
		Name:      "transitions_total",
		Help:      "Total contract status transitions",
	}, []string{"status"})

	// RealtimeConnections tracks open websocket connections.
	RealtimeConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "realtime",
		Name:      "connections",
		Help:      "Open chat websocket connections",
	})
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
