// Package metrics exposes workflow counters to Prometheus.
package metrics

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WorkflowMetrics counts maker actions and checker decisions
type WorkflowMetrics struct {
	transitions *prometheus.CounterVec
	registerer  prometheus.Registerer
	gatherer    prometheus.Gatherer
}

// New registers the workflow collectors on a dedicated registry together with the
// Go runtime and process collectors.
func New() *WorkflowMetrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegisterer(registry, registry)
}

// NewWithRegisterer registers the workflow collectors on reg and serves them from gatherer
func NewWithRegisterer(reg prometheus.Registerer, gatherer prometheus.Gatherer) *WorkflowMetrics {
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rms",
		Subsystem: "workflow",
		Name:      "transitions_total",
		Help:      "Workflow operations by entity, action and outcome.",
	}, []string{"entity", "action", "outcome"})
	reg.MustRegister(transitions)

	return &WorkflowMetrics{
		transitions: transitions,
		registerer:  reg,
		gatherer:    gatherer,
	}
}

// RecordTransition implements workflow.Recorder
func (m *WorkflowMetrics) RecordTransition(entity, action, outcome string) {
	m.transitions.WithLabelValues(entity, action, outcome).Inc()
}

// WatchDB exports the connection pool statistics of db labelled with name
func (m *WorkflowMetrics) WatchDB(db *sql.DB, name string) error {
	return m.registerer.Register(collectors.NewDBStatsCollector(db, name))
}

// Handler serves the registered metrics in the Prometheus exposition format
func (m *WorkflowMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
