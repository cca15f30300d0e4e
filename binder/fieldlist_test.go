package binder

import (
	"strings"
	"testing"

	entitydoubles "github.com/doubleforge/entity-doubles"
	"github.com/doubleforge/entity-doubles/definition"
)

func TestMultiValueDeltas(t *testing.T) {
	refs := []any{
		map[string]any{"target_id": 1},
		map[string]any{"target_id": 2},
		map[string]any{"target_id": 3},
	}
	b := immutableBinder(t, func(d *definition.Builder) {
		d.Field("field_tags", refs)
	})

	fl, _ := b.Get(nil, "field_tags")
	for i := 0; i < len(refs); i++ {
		got := fl.Get(nil, i).Property("target_id")
		if got != i+1 {
			t.Errorf("delta %d target_id = %v, want %d", i, got, i+1)
		}
	}
}

func TestOutOfRangeNeverRaises(t *testing.T) {
	b := immutableBinder(t, func(d *definition.Builder) {
		d.Field("field_tags", []any{map[string]any{"target_id": 1}})
	})

	fl, _ := b.Get(nil, "field_tags")
	item := fl.Get(nil, 5)
	if item == nil {
		t.Fatal("out-of-range access must return a null-equivalent, not nil")
	}
	if !item.IsNull() || item.Value() != nil {
		t.Error("out-of-range item must be the null-equivalent")
	}
	if fl.Get(nil, -1).Value() != nil {
		t.Error("negative delta must resolve to the null-equivalent")
	}
}

func TestSingleRecordIsOneItem(t *testing.T) {
	// A single reference record must not be mistaken for a multi-value
	// list of scalars.
	b := immutableBinder(t, func(d *definition.Builder) {
		d.Field("field_ref", map[string]any{"target_id": 1})
	})

	fl, _ := b.Get(nil, "field_ref")
	if got := len(fl.Value(nil)); got != 1 {
		t.Fatalf("items = %d, want 1", got)
	}
	if got := fl.First(nil).Property("target_id"); got != 1 {
		t.Errorf("target_id = %v, want 1", got)
	}
}

func TestNilValueIsEmpty(t *testing.T) {
	b := immutableBinder(t, func(d *definition.Builder) {
		d.Field("empty", nil)
	})

	fl, _ := b.Get(nil, "empty")
	if !fl.IsEmpty(nil) {
		t.Error("nil raw value must normalize to an empty list")
	}
	if fl.First(nil).Value() != nil {
		t.Error("first item of an empty list must be the null-equivalent")
	}
	if fl.Property(nil, "value") != nil {
		t.Error("property access on an empty list yields nil, never an error")
	}
}

func TestItemCachePerDelta(t *testing.T) {
	b := immutableBinder(t, func(d *definition.Builder) {
		d.Field("field_tags", []any{
			map[string]any{"target_id": 1},
			map[string]any{"target_id": 2},
		})
	})

	fl, _ := b.Get(nil, "field_tags")
	if fl.Get(nil, 0) != fl.Get(nil, 0) {
		t.Error("items must be cached per delta")
	}
	if fl.Get(nil, 0) == fl.Get(nil, 1) {
		t.Error("distinct deltas must get distinct items")
	}
}

func TestSetValueOnImmutableFails(t *testing.T) {
	b := immutableBinder(t, func(d *definition.Builder) {
		d.Field("field_tags", []any{map[string]any{"target_id": 1}})
	})

	fl, _ := b.Get(nil, "field_tags")
	_, err := fl.SetValue(nil, []any{map[string]any{"target_id": 9}}, false)
	if err == nil {
		t.Fatal("expected immutable-mutation error")
	}
	if !strings.Contains(err.Error(), "cannot modify field 'field_tags' on an immutable double") {
		t.Errorf("error %q must name the owning field", err.Error())
	}
}

func TestSetValueClearsCachesAndInvalidatesOwner(t *testing.T) {
	b := mutableBinder(t, func(d *definition.Builder) {
		d.Field("field_tags", []any{map[string]any{"target_id": 1}})
	})

	fl, _ := b.Get(nil, "field_tags")
	oldItem := fl.Get(nil, 0)

	self, err := fl.SetValue(nil, []any{
		map[string]any{"target_id": 7},
		map[string]any{"target_id": 8},
	}, false)
	if err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if self != fl {
		t.Error("SetValue must return the field list itself for chaining")
	}

	if got := fl.Get(nil, 0).Property("target_id"); got != 7 {
		t.Errorf("target_id after SetValue = %v, want 7", got)
	}
	if fl.Get(nil, 0) == oldItem {
		t.Error("delta cache must be cleared by SetValue")
	}

	// The owning entity's field cache is invalidated and rebuilt lists see
	// the override.
	rebuilt, _ := b.Get(nil, "field_tags")
	if rebuilt == fl {
		t.Error("owner field cache must be invalidated by SetValue")
	}
	if got := rebuilt.Get(nil, 1).Property("target_id"); got != 8 {
		t.Errorf("rebuilt list target_id = %v, want 8", got)
	}
}

func TestCallableNotInvokedAfterSetValue(t *testing.T) {
	calls := 0
	b := mutableBinder(t, func(d *definition.Builder) {
		d.Field("title", entitydoubles.ValueFunc(func(entitydoubles.Context) any {
			calls++
			return "computed"
		}))
	})

	fl, _ := b.Get(nil, "title")
	if _, err := fl.SetValue(nil, "literal", false); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if got := fl.First(nil).Property("value"); got != "literal" {
		t.Errorf("value = %v, want literal", got)
	}
	if calls != 0 {
		t.Errorf("definition callable invoked %d times, want 0 after override", calls)
	}
}

func TestPropertyProxiesToFirstItem(t *testing.T) {
	b := immutableBinder(t, func(d *definition.Builder) {
		d.Field("field_ref", []any{
			map[string]any{"target_id": 4, "weight": 0},
			map[string]any{"target_id": 5, "weight": 1},
		})
	})

	fl, _ := b.Get(nil, "field_ref")
	if got := fl.Property(nil, "target_id"); got != 4 {
		t.Errorf("target_id = %v, want first item's 4", got)
	}
	if got := fl.Property(nil, "weight"); got != 0 {
		t.Errorf("weight = %v, want 0", got)
	}
}

func TestSetPropertyValueShorthand(t *testing.T) {
	b := mutableBinder(t, func(d *definition.Builder) {
		d.Field("title", "Hello")
	})

	fl, _ := b.Get(nil, "title")
	if _, err := fl.SetProperty(nil, "value", "Bye"); err != nil {
		t.Fatalf("SetProperty: %v", err)
	}
	if got := fl.First(nil).Property("value"); got != "Bye" {
		t.Errorf("value = %v, want Bye", got)
	}
}

func TestSetPropertyOnEmptyCreatesRecord(t *testing.T) {
	b := mutableBinder(t, func(d *definition.Builder) {
		d.Field("field_ref", nil)
	})

	fl, _ := b.Get(nil, "field_ref")
	if _, err := fl.SetProperty(nil, "target_id", 12); err != nil {
		t.Fatalf("SetProperty: %v", err)
	}
	if got := fl.First(nil).Property("target_id"); got != 12 {
		t.Errorf("target_id = %v, want 12", got)
	}
}
