package binder

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	entitydoubles "github.com/doubleforge/entity-doubles"
	"github.com/doubleforge/entity-doubles/definition"
	"github.com/doubleforge/entity-doubles/errors"
	"github.com/doubleforge/entity-doubles/guardrail"
	"github.com/doubleforge/entity-doubles/state"
)

// ItemFactory realizes one field-item double for a field-list double. The
// backend wiring contract carries a factory so nested doubles can be
// realized on demand; NewItem is the default.
type ItemFactory func(list *FieldList, delta int, value any) *FieldItem

// Entity builds and owns the resolvers for one entity double. It closes
// over the immutable definition, routes writes through the state container
// (mutable doubles only), and caches field-list doubles by name.
type Entity struct {
	def   *definition.Entity
	state *state.Container
	guard *guardrail.Enforcer
	items ItemFactory

	genUUID string
	fields  map[string]*FieldList
}

// NewEntity creates the entity binder for a definition. st is nil for
// immutable doubles. The guard is held for the backends that consult it
// through the binder; the binder itself never invokes it.
func NewEntity(def *definition.Entity, st *state.Container, guard *guardrail.Enforcer) *Entity {
	return &Entity{
		def:    def,
		state:  st,
		guard:  guard,
		items:  NewItem,
		fields: make(map[string]*FieldList),
	}
}

// SetItemFactory replaces the factory used to realize field-item doubles.
// Must be called before the first field access.
func (b *Entity) SetItemFactory(f ItemFactory) {
	if f != nil {
		b.items = f
	}
}

// Definition returns the definition this binder closes over.
func (b *Entity) Definition() *definition.Entity {
	return b.def
}

// State returns the mutable state container, nil for immutable doubles.
func (b *Entity) State() *state.Container {
	return b.state
}

// Guard returns the guardrail enforcer for this construction.
func (b *Entity) Guard() *guardrail.Enforcer {
	return b.guard
}

// Mutable reports whether this binder accepts writes.
func (b *Entity) Mutable() bool {
	return b.state != nil
}

// Resolvers returns the core resolver map: the methods the engine answers
// itself, before the guardrail is ever consulted. The map is built once but
// every resolver decides its answer per call.
//
// The set resolver performs the mutation and returns nil; the factory wraps
// it to substitute the double itself as the chaining self-reference.
func (b *Entity) Resolvers() map[string]entitydoubles.Resolver {
	return map[string]entitydoubles.Resolver{
		"id": func(ctx entitydoubles.Context, args ...any) (any, error) {
			return entitydoubles.Call(b.def.ID(), ctx), nil
		},
		"uuid": func(ctx entitydoubles.Context, args ...any) (any, error) {
			return b.UUID(ctx), nil
		},
		"label": func(ctx entitydoubles.Context, args ...any) (any, error) {
			return entitydoubles.Call(b.def.Label(), ctx), nil
		},
		"bundle": func(ctx entitydoubles.Context, args ...any) (any, error) {
			return b.def.Bundle(), nil
		},
		"getEntityTypeId": func(ctx entitydoubles.Context, args ...any) (any, error) {
			return b.def.EntityType(), nil
		},
		"hasField": func(ctx entitydoubles.Context, args ...any) (any, error) {
			return b.HasField(argString(args, 0)), nil
		},
		"get": func(ctx entitydoubles.Context, args ...any) (any, error) {
			return b.Get(ctx, argString(args, 0))
		},
		"set": func(ctx entitydoubles.Context, args ...any) (any, error) {
			var value any
			if len(args) > 1 {
				value = args[1]
			}
			return nil, b.Set(ctx, argString(args, 0), value)
		},
	}
}

// UUID resolves the uuid: the definition value when present, otherwise one
// generated uuid held stable for this double's lifetime.
func (b *Entity) UUID(ctx entitydoubles.Context) any {
	if v := b.def.UUID(); v != nil {
		return entitydoubles.Call(v, ctx)
	}
	if b.genUUID == "" {
		b.genUUID = uuid.NewString()
	}
	return b.genUUID
}

// HasField reports whether the field is declared by the definition or
// present in mutable state.
func (b *Entity) HasField(name string) bool {
	if b.def.HasField(name) {
		return true
	}
	return b.state != nil && b.state.Has(name)
}

// Get returns the field-list double for a declared field, caching it by
// name for the lifetime of the entity double. Repeated access returns the
// identical object. Undeclared names fail with the undefined-field usage
// error, never a guardrail error.
func (b *Entity) Get(ctx entitydoubles.Context, name string) (*FieldList, error) {
	if fl, ok := b.fields[name]; ok {
		return fl, nil
	}
	if !b.HasField(name) {
		return nil, errors.UndefinedField(name, b.def.EntityType())
	}

	fl := newFieldList(b, name)
	b.fields[name] = fl
	Logger().Debug("field list cached",
		zap.String("entity_type", b.def.EntityType()), zap.String("field", name))
	return fl, nil
}

// Set writes a field override. Immutable doubles always reject the write;
// mutable doubles require the field to be declared, record the value, and
// invalidate the cached field list so the next Get reflects the change.
// The notify argument of the wire-level set has no effect and is dropped
// before reaching here; there is no observer mechanism.
func (b *Entity) Set(ctx entitydoubles.Context, name string, value any) error {
	if b.state == nil {
		return errors.ImmutableMutation(name)
	}
	if !b.def.HasField(name) {
		return errors.UndefinedField(name, b.def.EntityType())
	}

	b.state.Set(name, value)
	b.invalidate(name)
	return nil
}

// Property resolves property-style access: field names map to their field
// lists, anything else is the undefined-field usage error.
func (b *Entity) Property(ctx entitydoubles.Context, name string) (any, error) {
	return b.Get(ctx, name)
}

// invalidate drops the cached field list for a field.
func (b *Entity) invalidate(name string) {
	if _, ok := b.fields[name]; ok {
		delete(b.fields, name)
		Logger().Debug("field list invalidated",
			zap.String("entity_type", b.def.EntityType()), zap.String("field", name))
	}
}

// rawFor returns the raw value a field list resolves from: the state
// override when one is recorded, the definition value otherwise.
func (b *Entity) rawFor(name string) any {
	if b.state != nil && b.state.Has(name) {
		v, _ := b.state.Get(name)
		return v
	}
	if f, ok := b.def.Field(name); ok {
		return f.Value()
	}
	return nil
}

func argString(args []any, i int) string {
	if i < len(args) {
		if s, ok := args[i].(string); ok {
			return s
		}
	}
	return ""
}
