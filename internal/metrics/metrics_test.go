package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.MacroExecuted("toolbox")
	m.MacroExecuted("toolbox")
	m.CommandExecuted("script", nil)
	m.CommandExecuted("script", errors.New("boom"))
	m.MacroLoaded("shelf")
	m.Skipped("duplicate-title")
	m.ShelfLoaded()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.MacrosExecuted.WithLabelValues("toolbox")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommandsExecuted.WithLabelValues("script", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommandsExecuted.WithLabelValues("script", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MacrosLoaded.WithLabelValues("shelf")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoadSkipped.WithLabelValues("duplicate-title")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ShelvesLoaded))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.MacroExecuted("toolbox")
	m.CommandExecuted("console", nil)
	m.MacroLoaded("toolbox")
	m.Skipped("capacity")
	m.ShelfLoaded()
}

func TestRegisterTwicePanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
