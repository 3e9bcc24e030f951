package orbit

import (
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// Engine is the facade a caller (cmd/orbitc, or an embedder) drives:
// load a manifest's inputs, ingest them, run the pass pipeline, and collect
// the resulting back-end contract. Its test-visible shape in the teacher
// package was `New(WithTypeCheck(false))`; Engine keeps the same
// functional-options constructor for the options orbitc actually has.
type Engine struct {
	metricsRegisterer prometheus.Registerer
	buildID           func() string
}

// New builds an Engine with opts applied over the defaults: no metrics
// registry, build IDs minted with uuid.NewString.
func New(opts ...Option) *Engine {
	e := &Engine{buildID: uuid.NewString}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
