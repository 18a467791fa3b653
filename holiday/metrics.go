package holiday

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "checkiday_client",
			Name:      "requests_total",
			Help:      "Requests sent to the Holiday and Event API by endpoint and outcome.",
		},
		[]string{"endpoint", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "checkiday_client",
			Name:      "request_duration_seconds",
			Help:      "Round trip time of Holiday and Event API requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	rateLimitRemaining = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "checkiday_client",
			Name:      "rate_limit_remaining_month",
			Help:      "Requests remaining this month as last reported by the API.",
		},
	)
)

// outcomeError labels requests that never produced a status code.
const outcomeError = "error"
