package observability

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce            sync.Once
	dashboardRequestsTotal  *prometheus.CounterVec
	dashboardLatencySeconds *prometheus.HistogramVec
	guardDecisionsTotal     *prometheus.CounterVec
	backendLatencySeconds   *prometheus.HistogramVec
	backendFailuresTotal    *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the web tier.
func RegisterMetrics() {
	registerOnce.Do(func() {
		dashboardRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "asdos",
			Name:      "dashboard_requests_total",
			Help:      "Total number of dashboard requests served.",
		}, []string{"method", "route", "status"})

		dashboardLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "asdos",
			Name:      "dashboard_latency_seconds",
			Help:      "Latency distribution for dashboard requests.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		guardDecisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "asdos",
			Name:      "guard_decisions_total",
			Help:      "Route guard outcomes per guarded prefix.",
		}, []string{"prefix", "outcome"})

		backendLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "asdos",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Duration of calls to the backend REST API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint", "method"})

		backendFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "asdos",
			Subsystem: "backend",
			Name:      "failures_total",
			Help:      "Backend calls that failed or returned an error status.",
		}, []string{"endpoint", "status"})

		prometheus.MustRegister(
			dashboardRequestsTotal,
			dashboardLatencySeconds,
			guardDecisionsTotal,
			backendLatencySeconds,
			backendFailuresTotal,
		)
	})
}

// DashboardRequests exposes the counter for dashboard requests.
func DashboardRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return dashboardRequestsTotal
}

// DashboardLatency exposes the latency histogram for dashboard requests.
func DashboardLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return dashboardLatencySeconds
}

// GuardDecisions exposes the route guard outcome counter.
func GuardDecisions() *prometheus.CounterVec {
	RegisterMetrics()
	return guardDecisionsTotal
}

// BackendLatency exposes the backend call duration histogram.
func BackendLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return backendLatencySeconds
}

// BackendFailures exposes the backend failure counter.
func BackendFailures() *prometheus.CounterVec {
	RegisterMetrics()
	return backendFailuresTotal
}

// MetricsHandler serves the default registry for Prometheus scrapes.
func MetricsHandler() fiber.Handler {
	RegisterMetrics()
	return adaptor.HTTPHandler(promhttp.Handler())
}
