// Package metrics exposes Prometheus counters and histograms for the
// assignment engine, scraped over the HTTP /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssignmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leadrouter_assignments_total",
		Help: "Total number of lead assignment outcomes, partitioned by reason.",
	}, []string{"reason", "status"})

	AssignmentDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "leadrouter_assignment_duration_seconds",
		Help:    "Time spent selecting and committing a lead assignment, in seconds.",
		Buckets: prometheus.DefBuckets,
	})

	ReassignmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leadrouter_reassignments_total",
		Help: "Total number of manual reassignment operations, partitioned by outcome status.",
	}, []string{"status"})
)

// ObserveAssignment records the outcome of a single assignment attempt.
func ObserveAssignment(reason, status string, seconds float64) {
	AssignmentsTotal.WithLabelValues(reason, status).Inc()
	AssignmentDuration.Observe(seconds)
}

// ObserveReassignment records the outcome of a manual reassignment.
func ObserveReassignment(status string) {
	ReassignmentsTotal.WithLabelValues(status).Inc()
}
