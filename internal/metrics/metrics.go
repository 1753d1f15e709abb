// Package metrics exposes Prometheus metrics for the HTTP API and the file relay.
//
// Usage:
//
//	metrics.RecordRequest("GET", "/api/skills", 200, 12*time.Millisecond)
//	metrics.RecordUpload("artwork", metrics.ResultOK)
//	metrics.RecordSessionCheck(true)
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

var (
	// HTTPRequestsTotal counts requests by method, route template and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// UploadsTotal counts file relay uploads by kind and result.
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_uploads_total",
			Help: "Total number of file uploads through the relay",
		},
		[]string{"kind", "result"},
	)

	// RemoteDeleteFailuresTotal counts best-effort deletions that failed.
	RemoteDeleteFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_remote_delete_failures_total",
			Help: "Total number of failed best-effort remote file deletions",
		},
	)

	// SessionChecksTotal counts admin session checks on mutating requests.
	SessionChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_session_checks_total",
			Help: "Total number of admin session checks",
		},
		[]string{"authenticated"},
	)
)

func RecordRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordUpload(kind, result string) {
	UploadsTotal.WithLabelValues(kind, result).Inc()
}

func RecordRemoteDeleteFailure() {
	RemoteDeleteFailuresTotal.Inc()
}

func RecordSessionCheck(authenticated bool) {
	SessionChecksTotal.WithLabelValues(strconv.FormatBool(authenticated)).Inc()
}
