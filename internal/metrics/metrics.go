package metrics

import "github.com/prometheus/client_golang/prometheus"

// ActionUnknown labels attempts whose action matched no transition row.
const ActionUnknown = "unknown"

// Transition outcomes recorded on WorkflowTransitions.
const (
	OutcomeCommitted = "committed"
	OutcomeDegraded  = "degraded"
	OutcomeRejected  = "rejected"
	OutcomeConflict  = "conflict"
	OutcomeError     = "error"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pa_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pa_http_request_duration_seconds",
			Help:    "Histogram of response durations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	// WorkflowTransitions counts every execute call by action and outcome.
	WorkflowTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pa_workflow_transitions_total",
			Help: "Number of workflow transition attempts by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	// NotificationMessages counts MessageLog entries by channel and status.
	NotificationMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pa_notification_messages_total",
			Help: "Number of notification delivery outcomes",
		},
		[]string{"channel", "status"},
	)
)

func Init() {
	prometheus.MustRegister(HTTPRequests, RequestDuration, WorkflowTransitions, NotificationMessages)
}
