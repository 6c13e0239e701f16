// Package server exposes solve-run metrics over HTTP in Prometheus format.
// The Metrics type doubles as the orchestrator's Recorder, so every scenario
// solve is counted, timed and reflected in the active-solve gauge without
// the orchestration layer knowing about Prometheus.
package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/scenmip/scenmip/internal/orchestration"
	"github.com/scenmip/scenmip/internal/scenario"
)

// Metrics holds the Prometheus instruments for a solve run. It uses its own
// registry so tests never collide on the global default.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	solvesTotal   *prometheus.CounterVec
	solveDuration prometheus.Histogram
	activeSolves  prometheus.Gauge
}

// Verify interface compliance.
var _ orchestration.Recorder = (*Metrics)(nil)

// NewMetrics creates the instruments and registers them, along with the Go
// runtime and process collectors, on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		solvesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scenmip_solves_total",
			Help: "Number of scenario solves completed, by classified status.",
		}, []string{"status"}),
		solveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scenmip_solve_duration_seconds",
			Help:    "Wall time spent solving one scenario.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		activeSolves: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scenmip_active_solves",
			Help: "Number of scenarios currently being solved (0 or 1).",
		}),
	}

	registry.MustRegister(
		m.solvesTotal,
		m.solveDuration,
		m.activeSolves,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// SolveStarted marks the scenario as actively solving.
func (m *Metrics) SolveStarted(scenario.ID) {
	m.activeSolves.Inc()
}

// SolveFinished records one completed scenario solve.
func (m *Metrics) SolveFinished(_ scenario.ID, status orchestration.Status, d time.Duration) {
	m.activeSolves.Dec()
	m.solvesTotal.WithLabelValues(status.String()).Inc()
	m.solveDuration.Observe(d.Seconds())
}

// WritePrometheus serves the registry contents in Prometheus exposition
// format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
