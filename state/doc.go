// Package state implements the per-instance override store used by mutable
// doubles. One Container exists per mutable double and lives exactly as long
// as it; immutable doubles carry none.
//
// The container is pure keyed storage with no resolution logic: the binder
// decides when an override shadows the definition value.
package state
