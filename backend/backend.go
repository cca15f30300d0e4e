package backend

import (
	entitydoubles "github.com/doubleforge/entity-doubles"
	"github.com/doubleforge/entity-doubles/binder"
	"github.com/doubleforge/entity-doubles/errors"
)

// Wiring is everything a backend consumes to synthesize one callable double.
// The factory assembles it; backends never reach back into definitions.
type Wiring struct {
	// EntityType is carried for diagnostics only.
	EntityType string

	// Context is the shared context map passed as the first argument of
	// every resolver invocation.
	Context entitydoubles.Context

	// Capabilities is the full exposed set: the resolved capabilities plus
	// their transitive ancestors.
	Capabilities []string

	// Synthesized is the combined-capability identifier standing in for a
	// sibling set, empty when no synthesis was needed.
	Synthesized string

	// Resolvers maps each wired method name to its resolver. Invoking the
	// method calls the resolver with (sharedContext, ...callArguments).
	Resolvers map[string]entitydoubles.Resolver

	// PropertyGet and PropertySet are the unknown-property dispatch hooks
	// backing property-style access on the finished double.
	PropertyGet entitydoubles.Resolver
	PropertySet entitydoubles.Resolver

	// Items realizes nested field-item doubles on demand.
	Items binder.ItemFactory
}

func (w Wiring) validate() error {
	if len(w.Resolvers) == 0 {
		return errors.Wire("wiring carries no resolvers", nil)
	}
	if len(w.Capabilities) == 0 {
		return errors.Wire("wiring carries no capability set", nil)
	}
	if w.PropertyGet == nil || w.PropertySet == nil {
		return errors.Wire("wiring is missing the property dispatch hooks", nil)
	}
	if w.Items == nil {
		return errors.Wire("wiring is missing the item factory", nil)
	}
	return nil
}

// Backend is the object-synthesis collaborator behind the factory.
type Backend interface {
	Name() string

	// SupportsSiblingCapabilities reports whether the backend can expose two
	// or more sibling capabilities sharing a common ancestor on one object.
	// When it cannot, the composer synthesizes a combined capability before
	// the wiring reaches Wire.
	SupportsSiblingCapabilities() bool

	Wire(w Wiring) (*Double, error)
}
