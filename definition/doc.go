// Package definition holds the immutable descriptors a double is built from.
//
// An Entity describes one entity double: identity metadata, field values, the
// requested capability set, per-method overrides, shared context, and the
// mutable/lenient construction flags. A Field describes one field's value:
// a scalar, an ordered list of scalars or records, or a callable computed
// from the shared context.
//
// Definitions are created once, directly or through the fluent Builder, and
// never mutated; the With* derivation helpers produce new instances. The
// fieldable invariant (a definition with fields must request the fieldable
// capability) is enforced at construction, never later.
package definition
