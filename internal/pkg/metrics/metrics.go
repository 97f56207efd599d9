// Package metrics provides Prometheus instrumentation for the KaryaKarta
// admin platform.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts server HTTP requests by method, path, and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "karyakarta",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes server request latency by method and path.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "karyakarta",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// ClientAttemptsTotal counts outbound request attempts by method.
	ClientAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "karyakarta",
			Subsystem: "client",
			Name:      "attempts_total",
			Help:      "Outbound request attempts, retries included.",
		},
		[]string{"method"},
	)

	// ClientRetriesTotal counts outbound retries by method.
	ClientRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "karyakarta",
			Subsystem: "client",
			Name:      "retries_total",
			Help:      "Outbound request retries after a retryable failure.",
		},
		[]string{"method"},
	)

	// ClientFailuresTotal counts outbound requests that surfaced an error
	// to the caller, by failure kind.
	ClientFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "karyakarta",
			Subsystem: "client",
			Name:      "failures_total",
			Help:      "Outbound requests that ultimately failed, by kind.",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		ClientAttemptsTotal,
		ClientRetriesTotal,
		ClientFailuresTotal,
	)
}

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request counts and latency for server routes.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		path := routePattern(r)
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// routePattern labels by the matched chi pattern, not the raw URL, keeping
// label cardinality bounded once ids show up in paths.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
