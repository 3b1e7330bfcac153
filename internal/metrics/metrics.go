// Package metrics exposes Prometheus collectors for macro activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "toolbox"

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	MacrosExecuted   *prometheus.CounterVec
	CommandsExecuted *prometheus.CounterVec
	MacrosLoaded     *prometheus.CounterVec
	LoadSkipped      *prometheus.CounterVec
	ShelvesLoaded    prometheus.Counter
}

// New creates the collectors and registers them with reg.
// Pass prometheus.NewRegistry() in tests to avoid the global registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		MacrosExecuted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "macros_executed_total",
			Help:      "Macros executed, labeled by collection.",
		}, []string{"collection"}),
		CommandsExecuted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_executed_total",
			Help:      "Macro commands executed, labeled by kind and result.",
		}, []string{"kind", "result"}),
		MacrosLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "macros_loaded_total",
			Help:      "Macros created from XML files, labeled by collection.",
		}, []string{"collection"}),
		LoadSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_skipped_total",
			Help:      "Entries or files skipped while loading, labeled by reason.",
		}, []string{"reason"}),
		ShelvesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shelves_loaded_total",
			Help:      "Shelf files turned into toolbars.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.MacrosExecuted, m.CommandsExecuted, m.MacrosLoaded, m.LoadSkipped, m.ShelvesLoaded)
	}
	return m
}

// MacroExecuted counts one macro run.
func (m *Metrics) MacroExecuted(collection string) {
	if m == nil {
		return
	}
	m.MacrosExecuted.WithLabelValues(collection).Inc()
}

// CommandExecuted counts one command run.
func (m *Metrics) CommandExecuted(kind string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.CommandsExecuted.WithLabelValues(kind, result).Inc()
}

// MacroLoaded counts one macro read from a file.
func (m *Metrics) MacroLoaded(collection string) {
	if m == nil {
		return
	}
	m.MacrosLoaded.WithLabelValues(collection).Inc()
}

// Skipped counts one skipped entry or file.
func (m *Metrics) Skipped(reason string) {
	if m == nil {
		return
	}
	m.LoadSkipped.WithLabelValues(reason).Inc()
}

// ShelfLoaded counts one shelf toolbar.
func (m *Metrics) ShelfLoaded() {
	if m == nil {
		return
	}
	m.ShelvesLoaded.Inc()
}
