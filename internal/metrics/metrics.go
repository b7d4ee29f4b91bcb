package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Relay outcomes, labelled by error code ("OK" on success).
	RelayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "biocryptor_relay_requests_total",
			Help: "Total chat relay requests by outcome",
		},
		[]string{"code"},
	)

	SessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "biocryptor_sessions_started_total",
			Help: "Chat sessions started without a client supplied session id",
		},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "biocryptor_upstream_duration_seconds",
			Help:    "Langflow run-flow call latency",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"status"},
	)

	// ReplyShape counts which accessor path produced the reply text.
	ReplyShape = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "biocryptor_upstream_reply_shape_total",
			Help: "Upstream reply shapes seen, by accessor path",
		},
		[]string{"shape"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "biocryptor_http_requests_total",
			Help: "Total HTTP requests served by the dev server",
		},
		[]string{"method", "path", "status"},
	)
)
