package factory

import (
	"go.uber.org/zap"

	entitydoubles "github.com/doubleforge/entity-doubles"
	"github.com/doubleforge/entity-doubles/backend"
	"github.com/doubleforge/entity-doubles/binder"
	"github.com/doubleforge/entity-doubles/capability"
	"github.com/doubleforge/entity-doubles/definition"
	"github.com/doubleforge/entity-doubles/guardrail"
	"github.com/doubleforge/entity-doubles/state"
)

// Option configures a Factory.
type Option func(*Factory)

// WithRegistry replaces the built-in capability catalog.
func WithRegistry(reg *capability.Registry) Option {
	return func(f *Factory) {
		f.registry = reg
	}
}

// Factory creates doubles against one backend. Long-lived: the composer's
// synthesized-capability cache spans every Create call.
type Factory struct {
	backend  backend.Backend
	registry *capability.Registry
	composer *capability.Composer
}

// New creates a factory over the given backend, defaulting to the built-in
// capability catalog.
func New(b backend.Backend, opts ...Option) *Factory {
	f := &Factory{backend: b}
	for _, opt := range opts {
		opt(f)
	}
	if f.registry == nil {
		f.registry = capability.Builtin()
	}
	f.composer = capability.NewComposer(f.registry)
	return f
}

// Backend returns the active backend.
func (f *Factory) Backend() backend.Backend {
	return f.backend
}

// Registry returns the capability catalog in use.
func (f *Factory) Registry() *capability.Registry {
	return f.registry
}

// Create turns a definition into a wired double: validate, compose the
// capability set for the active backend, build the per-method dispatch
// chain, and wire.
func (f *Factory) Create(def *definition.Entity) (*backend.Double, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	comp, err := f.composer.Compose(def.Interfaces(), f.backend.SupportsSiblingCapabilities())
	if err != nil {
		return nil, err
	}

	var st *state.Container
	if def.Mutable() {
		st = state.New()
	}
	guard := guardrail.New(def.Lenient())
	bind := binder.NewEntity(def, st, guard)
	core := bind.Resolvers()

	// The chaining self-reference is late-bound: resolvers close over the
	// pointer and the finished double fills it in below.
	var self *backend.Double

	names := map[string]bool{}
	for _, m := range comp.Methods {
		names[m] = true
	}
	for m := range core {
		names[m] = true
	}
	for _, m := range def.OverrideNames() {
		names[m] = true
	}

	resolvers := make(map[string]entitydoubles.Resolver, len(names))
	for name := range names {
		resolvers[name] = f.dispatch(name, def, core, comp.Capabilities, guard, &self)
	}

	wiring := backend.Wiring{
		EntityType:   def.EntityType(),
		Context:      def.Context(),
		Capabilities: f.registry.Closure(comp.Capabilities),
		Synthesized:  comp.Synthesized,
		Resolvers:    resolvers,
		PropertyGet: func(ctx entitydoubles.Context, args ...any) (any, error) {
			return bind.Property(ctx, argString(args, 0))
		},
		PropertySet: func(ctx entitydoubles.Context, args ...any) (any, error) {
			var value any
			if len(args) > 1 {
				value = args[1]
			}
			if err := bind.Set(ctx, argString(args, 0), value); err != nil {
				return nil, err
			}
			return self, nil
		},
		Items: binder.NewItem,
	}

	d, err := f.backend.Wire(wiring)
	if err != nil {
		return nil, err
	}
	self = d
	// The backend (or a decorator around it) may have replaced the item
	// factory before wiring; nested item doubles must come from the factory
	// it settled on.
	bind.SetItemFactory(d.ItemFactory())

	Logger().Debug("double created",
		zap.String("entity_type", def.EntityType()),
		zap.String("backend", f.backend.Name()),
		zap.Strings("capabilities", comp.Capabilities),
		zap.Bool("mutable", def.Mutable()),
		zap.Bool("lenient", def.Lenient()))
	return d, nil
}

// dispatch builds the per-method resolver. The override / core / guardrail
// order is decided inside the returned closure, on every call, never
// memoized across calls.
func (f *Factory) dispatch(
	method string,
	def *definition.Entity,
	core map[string]entitydoubles.Resolver,
	caps []string,
	guard *guardrail.Enforcer,
	self **backend.Double,
) entitydoubles.Resolver {
	return func(ctx entitydoubles.Context, args ...any) (any, error) {
		if v, ok := def.Override(method); ok {
			return entitydoubles.CallMethod(v, ctx, args...), nil
		}
		if r, ok := core[method]; ok {
			v, err := r(ctx, args...)
			if err != nil {
				return nil, err
			}
			if method == "set" {
				// The mutation happened in the core resolver; hand back the
				// double itself for chaining.
				return *self, nil
			}
			return v, nil
		}
		iface, _ := f.registry.DeclaringInterface(method, caps)
		return guard.Fallback(method, iface)(ctx, args...)
	}
}

func argString(args []any, i int) string {
	if i < len(args) {
		if s, ok := args[i].(string); ok {
			return s
		}
	}
	return ""
}
