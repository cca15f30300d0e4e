package definition

import (
	entitydoubles "github.com/doubleforge/entity-doubles"
	"github.com/doubleforge/entity-doubles/capability"
	"github.com/doubleforge/entity-doubles/errors"
)

// Entity is the immutable definition of one entity double.
//
// The zero value is not usable; construct through NewBuilder. Derivations
// (WithMutable, WithOverride, ...) produce new instances and leave the
// receiver untouched.
type Entity struct {
	entityType string
	bundle     string

	// id, uuid and label each hold a scalar or a callable(context)->scalar.
	id    any
	uuid  any
	label any

	fieldOrder []string
	fields     map[string]Field

	interfaces []string
	overrides  map[string]any
	context    entitydoubles.Context

	mutable bool
	lenient bool
}

// EntityType returns the entity type id.
func (e *Entity) EntityType() string {
	return e.entityType
}

// Bundle returns the bundle, which defaults to the entity type id.
func (e *Entity) Bundle() string {
	return e.bundle
}

// ID returns the raw id value: a scalar or a callable.
func (e *Entity) ID() any {
	return e.id
}

// UUID returns the raw uuid value: a scalar, a callable, or nil when the
// definition leaves uuid generation to the binder.
func (e *Entity) UUID() any {
	return e.uuid
}

// Label returns the raw label value: a scalar or a callable.
func (e *Entity) Label() any {
	return e.label
}

// FieldNames returns the declared field names in definition order.
func (e *Entity) FieldNames() []string {
	out := make([]string, len(e.fieldOrder))
	copy(out, e.fieldOrder)
	return out
}

// Field returns the named field definition.
func (e *Entity) Field(name string) (Field, bool) {
	f, ok := e.fields[name]
	return f, ok
}

// HasField reports whether the definition declares the named field.
func (e *Entity) HasField(name string) bool {
	_, ok := e.fields[name]
	return ok
}

// Interfaces returns the requested capability names in request order.
func (e *Entity) Interfaces() []string {
	out := make([]string, len(e.interfaces))
	copy(out, e.interfaces)
	return out
}

// HasInterface reports whether the named capability was requested.
func (e *Entity) HasInterface(name string) bool {
	for _, iface := range e.interfaces {
		if iface == name {
			return true
		}
	}
	return false
}

// Override returns the methodOverrides entry for a method name.
func (e *Entity) Override(method string) (any, bool) {
	v, ok := e.overrides[method]
	return v, ok
}

// OverrideNames returns the overridden method names in registration order.
func (e *Entity) OverrideNames() []string {
	out := make([]string, 0, len(e.overrides))
	for m := range e.overrides {
		out = append(out, m)
	}
	return out
}

// Context returns the shared context map passed to every resolver call.
func (e *Entity) Context() entitydoubles.Context {
	return e.context
}

// Mutable reports whether doubles built from this definition accept writes.
func (e *Entity) Mutable() bool {
	return e.mutable
}

// Lenient reports whether guardrail failures surface as neutral nil values
// instead of errors.
func (e *Entity) Lenient() bool {
	return e.lenient
}

// Validate checks the definition invariants. Violations are configuration
// errors and are raised here, at construction, never deferred.
func (e *Entity) Validate() error {
	if e.entityType == "" {
		return errors.Configuration("entity type id must not be empty")
	}
	if len(e.fieldOrder) > 0 && !e.HasInterface(capability.Fieldable) {
		return errors.Configuration(
			"definition for '%s' declares %d field(s) but does not request the '%s' capability",
			e.entityType, len(e.fieldOrder), capability.Fieldable)
	}
	return nil
}

// clone returns a deep-enough copy for derivation: container copies of every
// map and slice, shared leaf values.
func (e *Entity) clone() *Entity {
	c := &Entity{
		entityType: e.entityType,
		bundle:     e.bundle,
		id:         e.id,
		uuid:       e.uuid,
		label:      e.label,
		fieldOrder: append([]string(nil), e.fieldOrder...),
		fields:     make(map[string]Field, len(e.fields)),
		interfaces: append([]string(nil), e.interfaces...),
		overrides:  make(map[string]any, len(e.overrides)),
		context:    make(entitydoubles.Context, len(e.context)),
		mutable:    e.mutable,
		lenient:    e.lenient,
	}
	for k, v := range e.fields {
		c.fields[k] = v
	}
	for k, v := range e.overrides {
		c.overrides[k] = v
	}
	for k, v := range e.context {
		c.context[k] = v
	}
	return c
}

// WithMutable derives a new definition with the mutable flag set to m.
func (e *Entity) WithMutable(m bool) *Entity {
	c := e.clone()
	c.mutable = m
	return c
}

// WithLenient derives a new definition with the lenient flag set to l.
func (e *Entity) WithLenient(l bool) *Entity {
	c := e.clone()
	c.lenient = l
	return c
}

// WithOverride derives a new definition with an additional methodOverrides
// entry. An existing entry for the method is replaced.
func (e *Entity) WithOverride(method string, value any) *Entity {
	c := e.clone()
	c.overrides[method] = value
	return c
}

// WithField derives a new definition with an additional declared field.
// The fieldable invariant is re-checked, since this derivation can be the
// first to introduce fields.
func (e *Entity) WithField(name string, value any) (*Entity, error) {
	c := e.clone()
	if !c.HasField(name) {
		c.fieldOrder = append(c.fieldOrder, name)
	}
	c.fields[name] = NewField(value)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// WithContextValue derives a new definition with one shared-context entry
// added or replaced.
func (e *Entity) WithContextValue(key string, value any) *Entity {
	c := e.clone()
	c.context[key] = value
	return c
}
