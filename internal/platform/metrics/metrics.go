package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	AnimalTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "animal_transitions_total",
			Help: "Lifecycle transition attempts by transition and result.",
		},
		[]string{"transition", "result"},
	)

	AnimalClaimConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "animal_claim_conflicts_total",
			Help: "Claims lost to a concurrent claim on the same animal.",
		},
	)

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Appointment notifications by result.",
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

// Register publica los collectors en el registry default. Idempotente.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			AnimalTransitionsTotal,
			AnimalClaimConflictsTotal,
			NotificationsTotal,
		)
	})
}
