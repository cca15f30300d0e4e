package backend

import (
	"sort"

	entitydoubles "github.com/doubleforge/entity-doubles"
	"github.com/doubleforge/entity-doubles/binder"
	"github.com/doubleforge/entity-doubles/errors"
)

// Double is a finished stand-in object: a dispatch table keyed by method
// name over the wired resolvers. Every call looks its method up fresh, so
// the factory's per-call resolution order is never short-circuited here.
//
// One double belongs to one logical test at a time; concurrent use of a
// single instance is unsupported.
type Double struct {
	backend      string
	entityType   string
	capabilities map[string]bool
	capList      []string
	synthesized  string
	context      entitydoubles.Context
	methods      map[string]entitydoubles.Resolver
	propertyGet  entitydoubles.Resolver
	propertySet  entitydoubles.Resolver
	items        binder.ItemFactory
}

func newDouble(backendName string, w Wiring) *Double {
	caps := make(map[string]bool, len(w.Capabilities))
	list := make([]string, 0, len(w.Capabilities))
	for _, c := range w.Capabilities {
		if !caps[c] {
			caps[c] = true
			list = append(list, c)
		}
	}
	sort.Strings(list)

	return &Double{
		backend:      backendName,
		entityType:   w.EntityType,
		capabilities: caps,
		capList:      list,
		synthesized:  w.Synthesized,
		context:      w.Context,
		methods:      w.Resolvers,
		propertyGet:  w.PropertyGet,
		propertySet:  w.PropertySet,
		items:        w.Items,
	}
}

// Backend returns the name of the backend that wired this double.
func (d *Double) Backend() string {
	return d.backend
}

// EntityType returns the entity type id the double stands in for.
func (d *Double) EntityType() string {
	return d.entityType
}

// Capabilities returns the exposed capability names, sorted.
func (d *Double) Capabilities() []string {
	out := make([]string, len(d.capList))
	copy(out, d.capList)
	return out
}

// ItemFactory returns the factory this double's field lists realize their
// item doubles through, as the backend finally wired it.
func (d *Double) ItemFactory() binder.ItemFactory {
	return d.items
}

// Synthesized returns the combined-capability identifier, empty when the
// wiring needed none.
func (d *Double) Synthesized() string {
	return d.synthesized
}

// Implements reports whether the double exposes the named capability. The
// synthesized identifier, when present, also answers true.
func (d *Double) Implements(name string) bool {
	if d.capabilities[name] {
		return true
	}
	return d.synthesized != "" && name == d.synthesized
}

// Methods returns the wired method names, sorted.
func (d *Double) Methods() []string {
	out := make([]string, 0, len(d.methods))
	for m := range d.methods {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Call invokes a wired method with the shared context and the given
// arguments. Methods no wiring covers fail with the undefined-method usage
// error.
func (d *Double) Call(method string, args ...any) (any, error) {
	r, ok := d.methods[method]
	if !ok {
		return nil, errors.UndefinedMethod(method)
	}
	return r(d.context, args...)
}

// Property resolves property-style read access through the unknown-property
// dispatch hook.
func (d *Double) Property(name string) (any, error) {
	return d.propertyGet(d.context, name)
}

// SetProperty resolves property-style assignment through the
// unknown-property dispatch hook.
func (d *Double) SetProperty(name string, value any) (any, error) {
	return d.propertySet(d.context, name, value)
}

// ID calls the id resolver.
func (d *Double) ID() (any, error) {
	return d.Call("id")
}

// UUID calls the uuid resolver.
func (d *Double) UUID() (any, error) {
	return d.Call("uuid")
}

// Label calls the label resolver.
func (d *Double) Label() (any, error) {
	return d.Call("label")
}

// Bundle calls the bundle resolver.
func (d *Double) Bundle() (any, error) {
	return d.Call("bundle")
}

// EntityTypeID calls the getEntityTypeId resolver.
func (d *Double) EntityTypeID() (any, error) {
	return d.Call("getEntityTypeId")
}

// HasField calls the hasField resolver.
func (d *Double) HasField(name string) (bool, error) {
	v, err := d.Call("hasField", name)
	if err != nil {
		return false, err
	}
	b, _ := v.(bool)
	return b, nil
}

// Get calls the get resolver and returns the field-list double.
func (d *Double) Get(name string) (*binder.FieldList, error) {
	v, err := d.Call("get", name)
	if err != nil {
		return nil, err
	}
	fl, _ := v.(*binder.FieldList)
	return fl, nil
}

// Set calls the set resolver and returns the double itself for chaining.
func (d *Double) Set(name string, value any) (*Double, error) {
	v, err := d.Call("set", name, value, false)
	if err != nil {
		return nil, err
	}
	if self, ok := v.(*Double); ok {
		return self, nil
	}
	return d, nil
}
