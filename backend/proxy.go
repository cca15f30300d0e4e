package backend

import (
	"go.uber.org/zap"
)

// Proxy is the dispatch-table backend: one generic double type backed by the
// resolver map, exposing every capability in the wiring directly. It has no
// sibling limitation, so the composer never synthesizes for it.
type Proxy struct{}

// NewProxy creates the proxy backend.
func NewProxy() *Proxy {
	return &Proxy{}
}

// Name returns "proxy".
func (p *Proxy) Name() string {
	return "proxy"
}

// SupportsSiblingCapabilities is true: the dispatch table carries any number
// of sibling capabilities on one object.
func (p *Proxy) SupportsSiblingCapabilities() bool {
	return true
}

// Wire validates the wiring and returns the finished double.
func (p *Proxy) Wire(w Wiring) (*Double, error) {
	if err := w.validate(); err != nil {
		return nil, err
	}
	d := newDouble(p.Name(), w)
	Logger().Debug("wired double",
		zap.String("backend", p.Name()),
		zap.String("entity_type", w.EntityType),
		zap.Int("methods", len(w.Resolvers)))
	return d, nil
}
