// Package binder builds the resolver maps a backend wires into a callable
// double: one entity binder per double, one field-list binder per accessed
// field, one field-item binder per delta.
//
// # Caching
//
// Field lists are cached per entity binder and keyed by field name for the
// lifetime of the double: repeated access to the same field returns the
// identical object. Items are cached per field list and keyed by delta. A
// callable field value is invoked with the shared context exactly once per
// definition instance; the raw result is cached. Writes invalidate exactly
// the caches the written field flows through.
//
// # Mutability
//
// Binders built without a state container reject every write with the
// immutable-mutation error. Binders built with one route writes through it
// so the next read reflects the change.
package binder
