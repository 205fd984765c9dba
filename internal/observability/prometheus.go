package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ChecksTotal counts plagiarism checks by mode and outcome.
	ChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plagiarism_checks_total",
			Help: "Total number of plagiarism checks",
		},
		[]string{"mode", "status"},
	)

	// CheckDuration measures whole-check duration.
	CheckDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plagiarism_check_duration_seconds",
			Help:    "Plagiarism check duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		},
		[]string{"mode"},
	)

	// BatchFailures counts per-submission persistence failures inside
	// batch runs.
	BatchFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "plagiarism_batch_submission_failures_total",
			Help: "Submissions whose results failed to persist during batch checks",
		},
	)
)

// InitPrometheus registers all collectors.
func InitPrometheus() {
	prometheus.MustRegister(ChecksTotal)
	prometheus.MustRegister(CheckDuration)
	prometheus.MustRegister(BatchFailures)
}

// MetricsHandler returns the Prometheus scrape handler.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
