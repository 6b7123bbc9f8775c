package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Gateway request metrics
	gatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commercehub_requests_total",
			Help: "Total number of CommerceHub gateway requests",
		},
		[]string{"path", "outcome"},
	)

	gatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "commercehub_request_duration_seconds",
			Help:    "Duration of CommerceHub gateway requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	cardReadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "card_reads_total",
			Help: "Total number of card read attempts",
		},
		[]string{"kind", "outcome"},
	)
)

// Request outcomes recorded on the gateway counter.
const (
	OutcomeSuccess   = "success"
	OutcomeTransport = "transport_error"
	OutcomeDecode    = "decode_error"
	OutcomeRejected  = "rejected"
)

// ObserveGatewayRequest records one gateway call.
func ObserveGatewayRequest(path, outcome string, start time.Time) {
	gatewayRequestsTotal.WithLabelValues(path, outcome).Inc()
	gatewayRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
}

// ObserveCardRead records one card read or verify attempt.
func ObserveCardRead(kind string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = "error"
	}
	cardReadsTotal.WithLabelValues(kind, outcome).Inc()
}
