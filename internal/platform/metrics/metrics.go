package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the ingestion gateway.
type Metrics struct {
	SubmissionsReceived  prometheus.Counter
	SubmissionsStored    prometheus.Counter
	SubmissionsFailed    prometheus.Counter
	AttachmentsUploaded  prometheus.Counter
	NotificationFailures prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		SubmissionsReceived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "originform_submissions_received_total",
			Help: "Total number of submission requests received",
		}),
		SubmissionsStored: promauto.NewCounter(prometheus.CounterOpts{
			Name: "originform_submissions_stored_total",
			Help: "Total number of submissions durably recorded",
		}),
		SubmissionsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "originform_submissions_failed_total",
			Help: "Total number of submissions that failed to record",
		}),
		AttachmentsUploaded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "originform_attachments_uploaded_total",
			Help: "Total number of attachment objects uploaded to blob storage",
		}),
		NotificationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "originform_notification_failures_total",
			Help: "Total number of notification side-effects that failed",
		}),
	}
}

// Increment helpers tolerate a nil receiver so tests can run without
// registered collectors.

func (m *Metrics) IncSubmissionsReceived() {
	if m != nil {
		m.SubmissionsReceived.Inc()
	}
}

func (m *Metrics) IncSubmissionsStored() {
	if m != nil {
		m.SubmissionsStored.Inc()
	}
}

func (m *Metrics) IncSubmissionsFailed() {
	if m != nil {
		m.SubmissionsFailed.Inc()
	}
}

func (m *Metrics) IncAttachmentsUploaded() {
	if m != nil {
		m.AttachmentsUploaded.Inc()
	}
}

func (m *Metrics) IncNotificationFailures() {
	if m != nil {
		m.NotificationFailures.Inc()
	}
}
