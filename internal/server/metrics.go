package server

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/picalc/internal/orchestration"
)

// Metrics holds the Prometheus collectors for one run. Each Metrics value has
// its own registry, so several can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	points         prometheus.Gauge
	inside         prometheus.Gauge
	estimate       prometheus.Gauge
	progress       prometheus.Gauge
	workers        prometheus.Gauge
	workerPoints   *prometheus.GaugeVec
	requestsTotal  *prometheus.CounterVec
	activeRequests prometheus.Gauge
}

// NewMetrics creates the collectors and registers them together with the Go
// runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		points: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "picalc_points",
			Help: "Points drawn so far across all workers.",
		}),
		inside: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "picalc_inside",
			Help: "Points that fell inside the unit circle.",
		}),
		estimate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "picalc_pi_estimate",
			Help: "Current estimate of pi (NaN before the first point).",
		}),
		progress: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "picalc_progress_ratio",
			Help: "Fraction of the total iteration budget completed.",
		}),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "picalc_workers",
			Help: "Number of sampling workers in the run.",
		}),
		workerPoints: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "picalc_worker_points",
			Help: "Points drawn by each worker.",
		}, []string{"worker"}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "picalc_http_requests_total",
			Help: "HTTP requests served, by path.",
		}, []string{"path"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "picalc_http_active_requests",
			Help: "HTTP requests currently being served.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.points, m.inside, m.estimate, m.progress, m.workers,
		m.workerPoints, m.requestsTotal, m.activeRequests,
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// Observe records a progress report. It is meant to be passed to
// orchestration.TeeReporter.
func (m *Metrics) Observe(r orchestration.ProgressReport) {
	m.points.Set(float64(r.TotalPoints))
	m.inside.Set(float64(r.Inside))
	m.estimate.Set(r.Estimate)
	m.progress.Set(r.Progress)
	m.workers.Set(float64(len(r.Workers)))
	for _, w := range r.Workers {
		m.workerPoints.WithLabelValues(strconv.Itoa(w.Index)).Set(float64(w.Points))
	}
}

// IncrementActiveRequests marks the start of a request.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
}

// DecrementActiveRequests marks the end of a request.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// CountRequest increments the request counter for path.
func (m *Metrics) CountRequest(path string) {
	m.requestsTotal.WithLabelValues(path).Inc()
}

// WritePrometheus serves the registry in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
