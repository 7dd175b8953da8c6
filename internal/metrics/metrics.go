package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	DepartementsCreated prometheus.Counter
	VillesCreated       prometheus.Counter
	SyncRuns            *prometheus.CounterVec
	Exports             *prometheus.CounterVec
}

// New creates and registers all metrics on the default registerer
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the metrics on reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "territoire_http_requests_total",
			Help: "Total number of HTTP requests by method, route pattern and status",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "territoire_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DepartementsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "territoire_departements_created_total",
			Help: "Total number of départements created",
		}),
		VillesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "territoire_villes_created_total",
			Help: "Total number of villes created, imports included",
		}),
		SyncRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "territoire_sync_runs_total",
			Help: "External département synchronisations by result",
		}, []string{"result"}),
		Exports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "territoire_exports_total",
			Help: "Generated exports by format",
		}, []string{"format"}),
	}
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// IncrementDepartementsCreated increments the départements created counter by 1
func (m *Metrics) IncrementDepartementsCreated() {
	if m == nil {
		return
	}
	m.DepartementsCreated.Inc()
}

// AddVillesCreated increments the villes created counter by n
func (m *Metrics) AddVillesCreated(n int) {
	if m == nil {
		return
	}
	m.VillesCreated.Add(float64(n))
}

// IncrementSyncRuns counts a sync run with result "success" or "failure"
func (m *Metrics) IncrementSyncRuns(result string) {
	if m == nil {
		return
	}
	m.SyncRuns.WithLabelValues(result).Inc()
}

// IncrementExports counts a generated export ("pdf", "csv")
func (m *Metrics) IncrementExports(format string) {
	if m == nil {
		return
	}
	m.Exports.WithLabelValues(format).Inc()
}
