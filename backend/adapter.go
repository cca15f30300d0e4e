package backend

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Adapter is the one-shape-per-object backend: each wired double is attached
// to exactly one capability shape. Sibling capability sets reach it already
// combined under a synthesized identifier; the composer guarantees that by
// consulting SupportsSiblingCapabilities before wiring.
//
// Shapes are cached per capability set for the backend's lifetime, so
// identical requests reuse the same shape instead of rebuilding it.
type Adapter struct {
	mu     sync.Mutex
	shapes map[string]*shape
}

// shape is one concrete adapter form: the capability it stands for and the
// method names it carries.
type shape struct {
	name    string
	methods []string
}

// NewAdapter creates the adapter backend with an empty shape cache.
func NewAdapter() *Adapter {
	return &Adapter{shapes: make(map[string]*shape)}
}

// Name returns "adapter".
func (a *Adapter) Name() string {
	return "adapter"
}

// SupportsSiblingCapabilities is false: one capability shape per object.
func (a *Adapter) SupportsSiblingCapabilities() bool {
	return false
}

// Wire validates the wiring, resolves the adapter shape for its capability
// set, and returns the finished double. Dispatch is identical to the proxy
// backend; the shape only fixes which single capability the object is
// attached as.
func (a *Adapter) Wire(w Wiring) (*Double, error) {
	if err := w.validate(); err != nil {
		return nil, err
	}

	s := a.shapeFor(w)
	d := newDouble(a.Name(), w)
	Logger().Debug("wired double",
		zap.String("backend", a.Name()),
		zap.String("entity_type", w.EntityType),
		zap.String("shape", s.name),
		zap.Int("methods", len(w.Resolvers)))
	return d, nil
}

// shapeFor returns the cached shape for the wiring's capability set,
// building it on first use. The synthesized identifier names the shape when
// present; a single capability set names itself.
func (a *Adapter) shapeFor(w Wiring) *shape {
	caps := append([]string(nil), w.Capabilities...)
	sort.Strings(caps)
	key := strings.Join(caps, "+")

	a.mu.Lock()
	defer a.mu.Unlock()

	if s, ok := a.shapes[key]; ok {
		return s
	}

	name := w.Synthesized
	if name == "" {
		name = key
	}
	methods := make([]string, 0, len(w.Resolvers))
	for m := range w.Resolvers {
		methods = append(methods, m)
	}
	sort.Strings(methods)

	s := &shape{name: name, methods: methods}
	a.shapes[key] = s
	Logger().Debug("built adapter shape",
		zap.String("shape", name), zap.String("capabilities", key))
	return s
}
