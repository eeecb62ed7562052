// Package metrics exposes Prometheus collectors for upstream calls and
// outbound notifications.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values for the outcome dimension.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeCached  = "cached"
)

// Label values for the notification channel dimension.
const (
	ChannelGoogleIndexing = "google_indexing"
	ChannelLinkedIn       = "linkedin"
)

var (
	// UpstreamRequests counts CMS fetches by endpoint and outcome.
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tbm_upstream_requests_total",
			Help: "CMS API requests by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	// Notifications counts outbound notification attempts by channel and
	// outcome.
	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tbm_notifications_total",
			Help: "Outbound notifications by channel and outcome.",
		},
		[]string{"channel", "outcome"},
	)

	// WebhookRequests counts indexing webhook calls by result.
	WebhookRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tbm_webhook_requests_total",
			Help: "Indexing webhook requests by result.",
		},
		[]string{"result"},
	)
)

// RecordUpstream increments the upstream request counter.
func RecordUpstream(endpoint, outcome string) {
	UpstreamRequests.WithLabelValues(endpoint, outcome).Inc()
}

// RecordNotification increments the notification counter.
func RecordNotification(channel string, success bool) {
	outcome := OutcomeError
	if success {
		outcome = OutcomeSuccess
	}
	Notifications.WithLabelValues(channel, outcome).Inc()
}
