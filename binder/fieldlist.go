package binder

import (
	entitydoubles "github.com/doubleforge/entity-doubles"
	"github.com/doubleforge/entity-doubles/errors"
)

// FieldList is the double for one field's ordered item collection. It
// resolves the raw definition value lazily, invoking a callable exactly
// once, normalizes it to an item list, and caches item doubles per delta.
type FieldList struct {
	owner *Entity
	name  string

	rawDef   any
	raw      any
	hasRaw   bool
	items    []any
	resolved bool

	cache    map[int]*FieldItem
	nullItem *FieldItem
}

func newFieldList(owner *Entity, name string) *FieldList {
	return &FieldList{
		owner:  owner,
		name:   name,
		rawDef: owner.rawFor(name),
		cache:  make(map[int]*FieldItem),
	}
}

// Name returns the owning field name.
func (l *FieldList) Name() string {
	return l.name
}

// Mutable reports whether this field list accepts writes.
func (l *FieldList) Mutable() bool {
	return l.owner.Mutable()
}

// resolve materializes the item list. The raw callable is invoked at most
// once per definition instance; repeated access reuses the cached result.
func (l *FieldList) resolve(ctx entitydoubles.Context) []any {
	if !l.hasRaw {
		l.raw = entitydoubles.Call(l.rawDef, ctx)
		l.hasRaw = true
	}
	if !l.resolved {
		l.items = Normalize(l.raw)
		l.resolved = true
	}
	return l.items
}

// IsEmpty reports whether the field resolves to zero items.
func (l *FieldList) IsEmpty(ctx entitydoubles.Context) bool {
	return len(l.resolve(ctx)) == 0
}

// Value returns the normalized item list. The slice is a copy; mutating it
// does not affect the double.
func (l *FieldList) Value(ctx entitydoubles.Context) []any {
	items := l.resolve(ctx)
	return append([]any(nil), items...)
}

// First returns the item double at delta 0, or a null-equivalent item when
// the field is empty.
func (l *FieldList) First(ctx entitydoubles.Context) *FieldItem {
	return l.Get(ctx, 0)
}

// Get returns the item double at the given delta. Out-of-range access
// returns a null-equivalent item and never raises. In-range items are
// cached per delta for this field list's lifetime.
func (l *FieldList) Get(ctx entitydoubles.Context, delta int) *FieldItem {
	items := l.resolve(ctx)
	if delta < 0 || delta >= len(items) {
		return l.null()
	}
	if item, ok := l.cache[delta]; ok {
		return item
	}
	item := l.owner.items(l, delta, items[delta])
	l.cache[delta] = item
	return item
}

// Property resolves property-style access by proxying to the first item's
// property resolver, so a field list's "value"/"target_id" shorthand
// mirrors its first item. An empty list yields the null-equivalent nil
// rather than failing.
func (l *FieldList) Property(ctx entitydoubles.Context, name string) any {
	return l.First(ctx).Property(name)
}

// SetValue replaces the raw value of a mutable field list: the raw-value
// and delta caches are cleared, the override is recorded so a rebuilt list
// sees it, and the owning entity double's field cache is invalidated.
// Returns the field list itself for chaining. Immutable field lists always
// fail with the mutation-rejected error naming the owning field. The
// notify flag is accepted and has no effect.
func (l *FieldList) SetValue(ctx entitydoubles.Context, values any, notify bool) (*FieldList, error) {
	if !l.Mutable() {
		return nil, errors.ImmutableMutation(l.name)
	}

	l.rawDef = values
	l.hasRaw = false
	l.resolved = false
	l.items = nil
	l.cache = make(map[int]*FieldItem)

	l.owner.state.Set(l.name, values)
	l.owner.invalidate(l.name)
	return l, nil
}

// SetProperty resolves property-style assignment. "value" replaces the
// whole raw value; any other name is forwarded to the first item, creating
// a single record item when the list is empty.
func (l *FieldList) SetProperty(ctx entitydoubles.Context, name string, value any) (*FieldList, error) {
	if !l.Mutable() {
		return nil, errors.ImmutableMutation(l.name)
	}
	if name == "value" {
		return l.SetValue(ctx, value, false)
	}
	if l.IsEmpty(ctx) {
		return l.SetValue(ctx, map[string]any{name: value}, false)
	}
	if _, err := l.First(ctx).SetProperty(name, value); err != nil {
		return nil, err
	}
	return l, nil
}

// setItem is the write-back path for mutable item doubles.
func (l *FieldList) setItem(delta int, value any) {
	if l.resolved && delta >= 0 && delta < len(l.items) {
		l.items[delta] = value
	}
}

// null returns the shared null-equivalent item for this list.
func (l *FieldList) null() *FieldItem {
	if l.nullItem == nil {
		l.nullItem = &FieldItem{list: l, delta: -1, null: true}
	}
	return l.nullItem
}
