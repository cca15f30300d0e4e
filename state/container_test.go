package state

import (
	stderrors "errors"
	"testing"

	doubleerrors "github.com/doubleforge/entity-doubles/errors"
)

func TestContainerRoundTrip(t *testing.T) {
	c := New()

	if c.Has("title") {
		t.Error("empty container should have no entries")
	}

	c.Set("title", "Hello")
	if !c.Has("title") {
		t.Fatal("Has = false after Set")
	}

	v, err := c.Get("title")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "Hello" {
		t.Errorf("Get = %v, want Hello", v)
	}
}

func TestGetAbsentFails(t *testing.T) {
	c := New()

	_, err := c.Get("missing")
	if err == nil {
		t.Fatal("expected error for absent field")
	}
	if !stderrors.Is(err, &doubleerrors.Error{Phase: doubleerrors.PhaseState, Kind: doubleerrors.KindMissingValue}) {
		t.Errorf("error = %v, want state missing_value", err)
	}
}

func TestSetReplaces(t *testing.T) {
	c := New()
	c.Set("status", 1)
	c.Set("status", 0)

	v, _ := c.Get("status")
	if v != 0 {
		t.Errorf("Get = %v, want 0", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestReset(t *testing.T) {
	c := New()
	c.Set("a", 1)
	c.Set("b", 2)

	c.Reset()
	if c.Len() != 0 {
		t.Errorf("Len after Reset = %d, want 0", c.Len())
	}
	if c.Has("a") {
		t.Error("entries should be gone after Reset")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	c := New()
	c.Set("a", 1)

	all := c.All()
	all["a"] = 99
	all["b"] = 2

	if v, _ := c.Get("a"); v != 1 {
		t.Error("mutating the All copy must not affect the container")
	}
	if c.Has("b") {
		t.Error("mutating the All copy must not add entries")
	}
}
