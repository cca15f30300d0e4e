package binder

import (
	"github.com/doubleforge/entity-doubles/errors"
)

// FieldItem is the double for a single item within a field: a bare scalar
// or a record of named properties.
type FieldItem struct {
	list  *FieldList
	delta int
	value any
	null  bool
}

// NewItem is the default item factory.
func NewItem(list *FieldList, delta int, value any) *FieldItem {
	return &FieldItem{list: list, delta: delta, value: value}
}

// Delta returns the item's zero-based position, -1 for the null-equivalent.
func (i *FieldItem) Delta() int {
	return i.delta
}

// IsNull reports whether this is the null-equivalent item returned for
// empty or out-of-range access.
func (i *FieldItem) IsNull() bool {
	return i.null
}

// Value returns the item's raw value.
func (i *FieldItem) Value() any {
	if i.null {
		return nil
	}
	return i.value
}

// IsEmpty reports whether the resolved value is null, an empty string, or
// an empty record.
func (i *FieldItem) IsEmpty() bool {
	if i.null || i.value == nil {
		return true
	}
	switch v := i.value.(type) {
	case string:
		return v == ""
	case map[string]any:
		return len(v) == 0
	}
	return false
}

// Property returns the named key of the item's record, or the bare scalar
// when the requested name is "value" and the item is a bare scalar.
// Unknown names resolve to nil.
func (i *FieldItem) Property(name string) any {
	if i.null {
		return nil
	}
	if rec, ok := i.value.(map[string]any); ok {
		return rec[name]
	}
	if name == "value" {
		return i.value
	}
	return nil
}

// SetValue replaces the item's value on a mutable double; subsequent reads
// through the owning list reflect it immediately. Immutable items always
// fail with the mutation-rejected error naming the owning field; the
// null-equivalent item rejects writes with its own error, since there is no
// delta to write to.
func (i *FieldItem) SetValue(value any) (*FieldItem, error) {
	if i.list != nil && !i.list.Mutable() {
		return nil, errors.ImmutableMutation(i.fieldName())
	}
	if i.null {
		return nil, errors.NullItem(i.fieldName())
	}
	i.value = value
	i.list.setItem(i.delta, value)
	return i, nil
}

// SetProperty sets one named key on a record item, or the value itself when
// the name is "value" on a bare scalar. The record is copied on write so
// definition values are never aliased.
func (i *FieldItem) SetProperty(name string, value any) (*FieldItem, error) {
	if i.list != nil && !i.list.Mutable() {
		return nil, errors.ImmutableMutation(i.fieldName())
	}
	if i.null {
		return nil, errors.NullItem(i.fieldName())
	}

	if rec, ok := i.value.(map[string]any); ok {
		next := make(map[string]any, len(rec)+1)
		for k, v := range rec {
			next[k] = v
		}
		next[name] = value
		return i.SetValue(next)
	}
	if name == "value" {
		return i.SetValue(value)
	}
	return i.SetValue(map[string]any{name: value})
}

func (i *FieldItem) fieldName() string {
	if i.list != nil {
		return i.list.name
	}
	return ""
}
