// Package metrics exposes the server's Prometheus collectors. A nil *Metrics
// is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gym"

// Metrics holds the collectors registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	logins       *prometheus.CounterVec
	enrollments  *prometheus.CounterVec
	deletions    *prometheus.CounterVec
	repairs      *prometheus.CounterVec
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds", Help: "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "login_attempts_total", Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		enrollments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "enrollment_operations_total", Help: "Enroll and unenroll requests by outcome",
		}, []string{"operation", "outcome"}),
		deletions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "deletions_total", Help: "Deleted records by entity, cascades included",
		}, []string{"entity"}),
		repairs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "reconcile_repairs_total", Help: "Dangling references removed by reconciliation",
		}, []string{"kind"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration, m.logins, m.enrollments, m.deletions, m.repairs,
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency, labelled by the matched chi
// route pattern so identifiers do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// LoginAttempt counts a login by outcome (success, unknown_user,
// bad_credentials, rate_limited, error).
func (m *Metrics) LoginAttempt(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

// Enrollment counts an enroll or unenroll request by outcome.
func (m *Metrics) Enrollment(operation, outcome string) {
	if m == nil {
		return
	}
	m.enrollments.WithLabelValues(operation, outcome).Inc()
}

// Deleted counts a deleted record of entity.
func (m *Metrics) Deleted(entity string) {
	if m == nil {
		return
	}
	m.deletions.WithLabelValues(entity).Inc()
}

// Repaired adds reconciliation repairs of kind.
func (m *Metrics) Repaired(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.repairs.WithLabelValues(kind).Add(float64(n))
}
