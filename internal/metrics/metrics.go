package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Tracks the number of outbound API calls to PayPal.
	PayPalRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paypal_api_requests_total",
			Help: "Total number of PayPal API requests made (by method and status).",
		},
		[]string{"method", "status"},
	)

	// Measures duration of API requests to PayPal.
	PayPalRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "paypal_api_request_duration_seconds",
			Help:    "Duration of PayPal API requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms → ~16s
		},
		[]string{"method"},
	)

	// Counts webhook deliveries handled by the relay, by outcome.
	WebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paypal_webhook_events_total",
			Help: "Webhook deliveries processed by the relay (verified, rejected, duplicate, invalid).",
		},
		[]string{"outcome"},
	)

	PublishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_publish_errors_total",
			Help: "Number of event bus publish failures",
		},
		[]string{"subject"},
	)
)

// IncPayPalRequest records one outbound API call.
func IncPayPalRequest(method string, status int) {
	PayPalRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// ObserveDuration records the time taken since start on the given histogram.
func ObserveDuration(v *prometheus.HistogramVec, start time.Time, labels ...string) {
	v.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
}

// IncWebhookEvent records one relay delivery outcome.
func IncWebhookEvent(outcome string) {
	WebhookEventsTotal.WithLabelValues(outcome).Inc()
}

// StartServer exposes /metrics on addr in a background goroutine.
func StartServer(addr string) {
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		http.ListenAndServe(addr, nil) //nolint:errcheck
	}()
}
