package definition

import (
	entitydoubles "github.com/doubleforge/entity-doubles"
)

// Field describes one field's value on an entity double: a scalar, an
// ordered list of scalars/records, or a callable computed from context.
type Field struct {
	value any
}

// NewField wraps a raw value as a field definition.
func NewField(value any) Field {
	return Field{value: value}
}

// Value returns the raw definition value. Callables are returned as-is, not
// invoked; resolution happens lazily in the binder.
func (f Field) Value() any {
	return f.value
}

// IsCallable reports whether the value is computed from context.
func (f Field) IsCallable() bool {
	return entitydoubles.Callable(f.value)
}

// IsMultiValue reports whether the raw value normalizes to a multi-value
// item list. Callables report false; their result is classified after
// invocation.
func (f Field) IsMultiValue() bool {
	if f.IsCallable() {
		return false
	}
	return MultiValue(f.value)
}

// MultiValue reports whether v is treated as a multi-value item list: a
// list whose every top-level element is itself record/array-like. An empty
// list qualifies and stays empty. A single reference record such as
// map[string]any{"target_id": 1} is NOT multi-value; it wraps as one item.
func MultiValue(v any) bool {
	switch list := v.(type) {
	case []any:
		for _, e := range list {
			if !recordLike(e) {
				return false
			}
		}
		return true
	case []map[string]any:
		return true
	}
	return false
}

func recordLike(v any) bool {
	switch v.(type) {
	case map[string]any, []any, []map[string]any:
		return true
	}
	return false
}
