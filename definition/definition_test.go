package definition

import (
	stderrors "errors"
	"reflect"
	"testing"

	entitydoubles "github.com/doubleforge/entity-doubles"
	"github.com/doubleforge/entity-doubles/capability"
	doubleerrors "github.com/doubleforge/entity-doubles/errors"
)

func TestBuilderDefaults(t *testing.T) {
	def, err := NewBuilder("node").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if def.EntityType() != "node" {
		t.Errorf("EntityType = %q, want node", def.EntityType())
	}
	if def.Bundle() != "node" {
		t.Errorf("Bundle = %q, want entity type as default", def.Bundle())
	}
	if def.Mutable() || def.Lenient() {
		t.Error("definitions default to immutable and strict")
	}
	if def.UUID() != nil {
		t.Error("uuid defaults to nil, leaving generation to the binder")
	}
}

func TestBuilderEmptyEntityType(t *testing.T) {
	_, err := NewBuilder("").Build()
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if !stderrors.Is(err, &doubleerrors.Error{Phase: doubleerrors.PhaseConstruct, Kind: doubleerrors.KindConfiguration}) {
		t.Errorf("error = %v, want configuration kind", err)
	}
}

func TestFieldsRequireFieldable(t *testing.T) {
	_, err := NewBuilder("node").
		Field("title", "Hello").
		Build()
	if err == nil {
		t.Fatal("fields without the fieldable capability must fail at construction")
	}
	if !stderrors.Is(err, &doubleerrors.Error{Phase: doubleerrors.PhaseConstruct, Kind: doubleerrors.KindConfiguration}) {
		t.Errorf("error = %v, want configuration kind", err)
	}

	if _, err := NewBuilder("node").
		Field("title", "Hello").
		Interfaces(capability.Fieldable).
		Build(); err != nil {
		t.Errorf("fieldable definition with fields: %v", err)
	}
}

func TestFieldOrderAndRedeclare(t *testing.T) {
	def, err := NewBuilder("node").
		Interfaces(capability.Fieldable).
		Field("title", "Hello").
		Field("body", "text").
		Field("title", "Replaced").
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := def.FieldNames(); !reflect.DeepEqual(got, []string{"title", "body"}) {
		t.Errorf("FieldNames = %v, want declaration order with stable positions", got)
	}
	f, _ := def.Field("title")
	if f.Value() != "Replaced" {
		t.Errorf("title = %v, want Replaced", f.Value())
	}
}

func TestInterfacesDeduplicated(t *testing.T) {
	def, err := NewBuilder("node").
		Interfaces(capability.Fieldable, capability.Publishable).
		Interfaces(capability.Fieldable).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []string{capability.Fieldable, capability.Publishable}
	if got := def.Interfaces(); !reflect.DeepEqual(got, want) {
		t.Errorf("Interfaces = %v, want %v", got, want)
	}
	if !def.HasInterface(capability.Publishable) || def.HasInterface(capability.Config) {
		t.Error("HasInterface must track exactly the requested names")
	}
}

func TestFieldClassification(t *testing.T) {
	callable := NewField(entitydoubles.ValueFunc(func(entitydoubles.Context) any { return "x" }))
	if !callable.IsCallable() {
		t.Error("ValueFunc must classify as callable")
	}
	if callable.IsMultiValue() {
		t.Error("callables classify after invocation, never as multi-value")
	}

	if NewField("Hello").IsCallable() {
		t.Error("scalar must not classify as callable")
	}
	if !NewField([]any{map[string]any{"target_id": 1}}).IsMultiValue() {
		t.Error("record list must classify as multi-value")
	}
	if NewField(map[string]any{"target_id": 1}).IsMultiValue() {
		t.Error("single record must not classify as multi-value")
	}
}

func TestDerivationsDoNotMutateReceiver(t *testing.T) {
	base, err := NewBuilder("node").
		Interfaces(capability.Fieldable).
		Field("title", "Hello").
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	mut := base.WithMutable(true)
	if base.Mutable() {
		t.Error("WithMutable must not touch the receiver")
	}
	if !mut.Mutable() {
		t.Error("derived definition must carry the flag")
	}

	len1 := base.WithLenient(true)
	if base.Lenient() || !len1.Lenient() {
		t.Error("WithLenient must derive, not mutate")
	}

	ov := base.WithOverride("access", true)
	if _, ok := base.Override("access"); ok {
		t.Error("WithOverride must not touch the receiver")
	}
	if v, ok := ov.Override("access"); !ok || v != true {
		t.Errorf("derived override = %v, %v", v, ok)
	}

	withBody, err := base.WithField("body", "text")
	if err != nil {
		t.Fatalf("WithField: %v", err)
	}
	if base.HasField("body") {
		t.Error("WithField must not touch the receiver")
	}
	if got := withBody.FieldNames(); !reflect.DeepEqual(got, []string{"title", "body"}) {
		t.Errorf("derived FieldNames = %v", got)
	}

	cv := base.WithContextValue("user", "alice")
	if _, ok := base.Context()["user"]; ok {
		t.Error("WithContextValue must not touch the receiver")
	}
	if cv.Context()["user"] != "alice" {
		t.Error("derived context must carry the entry")
	}
}

func TestWithFieldRevalidates(t *testing.T) {
	base, err := NewBuilder("node").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// The derivation introduces the first field on a definition that never
	// requested the fieldable capability.
	if _, err := base.WithField("title", "Hello"); err == nil {
		t.Error("expected configuration error from the derived definition")
	}
}

func TestContextReplacedAndAugmented(t *testing.T) {
	def, err := NewBuilder("node").
		Context(entitydoubles.Context{"user": "alice"}).
		ContextValue("lang", "en").
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ctx := def.Context()
	if ctx["user"] != "alice" || ctx["lang"] != "en" {
		t.Errorf("context = %v", ctx)
	}
}
