package definition

import (
	entitydoubles "github.com/doubleforge/entity-doubles"
)

// Builder assembles an Entity definition fluently. Build validates the
// result; a Builder is single-use and not safe for concurrent use.
type Builder struct {
	e Entity
}

// NewBuilder starts a definition for the given entity type id.
func NewBuilder(entityType string) *Builder {
	return &Builder{
		e: Entity{
			entityType: entityType,
			fields:     make(map[string]Field),
			overrides:  make(map[string]any),
			context:    make(entitydoubles.Context),
		},
	}
}

// Bundle sets the bundle. Unset, the bundle defaults to the entity type id.
func (b *Builder) Bundle(bundle string) *Builder {
	b.e.bundle = bundle
	return b
}

// ID sets the id value: a scalar or a callable(context)->scalar.
func (b *Builder) ID(id any) *Builder {
	b.e.id = id
	return b
}

// UUID sets the uuid value: a scalar or a callable(context)->scalar. Unset,
// the binder generates one stable uuid per double instance.
func (b *Builder) UUID(uuid any) *Builder {
	b.e.uuid = uuid
	return b
}

// Label sets the label value: a scalar or a callable(context)->scalar.
func (b *Builder) Label(label any) *Builder {
	b.e.label = label
	return b
}

// Field declares a field with its value. Declaration order is preserved.
// Redeclaring a name replaces the value and keeps the original position.
func (b *Builder) Field(name string, value any) *Builder {
	if _, ok := b.e.fields[name]; !ok {
		b.e.fieldOrder = append(b.e.fieldOrder, name)
	}
	b.e.fields[name] = NewField(value)
	return b
}

// Interfaces requests capabilities by name. Duplicates are dropped.
func (b *Builder) Interfaces(names ...string) *Builder {
	for _, name := range names {
		if !b.e.HasInterface(name) {
			b.e.interfaces = append(b.e.interfaces, name)
		}
	}
	return b
}

// Override registers a methodOverrides entry: a scalar returned as-is, or a
// callable(context, ...args)->value invoked per call.
func (b *Builder) Override(method string, value any) *Builder {
	b.e.overrides[method] = value
	return b
}

// Context replaces the shared context map.
func (b *Builder) Context(ctx entitydoubles.Context) *Builder {
	if ctx == nil {
		ctx = make(entitydoubles.Context)
	}
	b.e.context = ctx
	return b
}

// ContextValue sets one shared-context entry.
func (b *Builder) ContextValue(key string, value any) *Builder {
	b.e.context[key] = value
	return b
}

// Mutable marks doubles built from this definition as accepting writes.
func (b *Builder) Mutable() *Builder {
	b.e.mutable = true
	return b
}

// Lenient makes guardrail failures surface as neutral nil values instead of
// errors. The flag is per construction, not global.
func (b *Builder) Lenient() *Builder {
	b.e.lenient = true
	return b
}

// Build validates and returns the immutable definition.
func (b *Builder) Build() (*Entity, error) {
	e := b.e.clone()
	if b.e.bundle == "" {
		e.bundle = e.entityType
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}
