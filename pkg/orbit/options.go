package orbit

import "github.com/prometheus/client_golang/prometheus"

// Option configures an Engine, following the functional-options shape the
// teacher's pkg/dwscript facade exposes (`New(WithTypeCheck(false))`).
type Option func(*Engine)

// WithMetrics attaches Prometheus instrumentation to every Compile call the
// Engine makes, registered onto reg (SPEC_FULL.md §B). Pass nil to disable
// instrumentation, which is also the default.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(e *Engine) { e.metricsRegisterer = reg }
}

// WithBuildIDFunc overrides how Engine mints a build ID, defaulting to
// uuid.NewString. Exposed so callers that need reproducible output (golden
// tests, build caches keyed some other way) can supply a deterministic
// generator.
func WithBuildIDFunc(f func() string) Option {
	return func(e *Engine) { e.buildID = f }
}
