package sema

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "orbitc"
	metricsSubsystem = "sema"
)

// Metrics instruments the pass driver (SPEC_FULL.md §B): per-pass duration
// and the definition count it left behind, so a caller can dump Prometheus
// text exposition via `--metrics` without the pass driver itself knowing
// anything about HTTP or text-format encoding (that is
// cmd/orbitc/internal/backend's job).
//
// Unlike the rest of the pack's promauto usage (which registers onto the
// global default registerer, fine for a single long-lived service), Metrics
// is always built with promauto.With(registerer) against a registry the
// caller owns: orbitc's own test suite builds many independent Trees in one
// process, and the default registerer panics on a second registration of
// the same metric name.
type Metrics struct {
	PassDuration    *prometheus.HistogramVec
	DefinitionCount *prometheus.GaugeVec
}

// NewMetrics registers orbitc's pass-driver metrics onto reg. Pass a fresh
// *prometheus.Registry per compilation unit that wants its own metrics
// (cmd/orbitc's `--metrics` flag), or nil to disable instrumentation
// entirely.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}
	factory := promauto.With(reg)
	return &Metrics{
		PassDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "pass_duration_seconds",
			Help:      "Wall-clock duration of each pass driver stage.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"pass"}),
		DefinitionCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "definitions",
			Help:      "Number of global definitions after each pass stage.",
		}, []string{"pass"}),
	}
}

// observe times fn, recording its duration and the tree's resulting
// definition count under the given pass label. A nil Metrics (no
// instrumentation requested) makes this a plain call.
func (t *Tree) observe(pass string, fn func()) {
	if t.metrics == nil {
		fn()
		return
	}
	start := time.Now()
	fn()
	t.metrics.PassDuration.WithLabelValues(pass).Observe(time.Since(start).Seconds())
	t.metrics.DefinitionCount.WithLabelValues(pass).Set(float64(len(t.GlobalDefinitions)))
}

// WithMetrics attaches reg-backed instrumentation to t; pass nil to detach.
func (t *Tree) WithMetrics(m *Metrics) *Tree {
	t.metrics = m
	return t
}
