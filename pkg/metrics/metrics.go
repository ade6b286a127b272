package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// AI gateway call latency in milliseconds
	AIGatewayCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_gateway_call_latency_ms",
			Help:    "Chat-completion gateway call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~100s
		},
		[]string{"status"}, // HTTP status code, or an error class for transport failures
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 16), // 1ms to ~32s
		},
		[]string{"method", "path", "status"},
	)

	EmailGenerationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_generation_count",
			Help: "Total number of email generation requests",
		},
		[]string{"email_type", "status"}, // status: success, not_configured, invalid_type, rate_limited, credits_depleted, failed
	)
)

func RecordAIGatewayCallLatency(status string, duration time.Duration) {
	AIGatewayCallLatency.WithLabelValues(status).Observe(float64(duration.Milliseconds()))
}

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func IncrementEmailGeneration(emailType, status string) {
	EmailGenerationCount.WithLabelValues(emailType, status).Inc()
}

// Handler serves the default registry in the exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
