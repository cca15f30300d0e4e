// Package factory turns entity double definitions into wired, callable
// doubles.
//
// Create validates the definition, composes the requested capability set
// for the active backend, builds the resolver chain, and hands the wiring
// to the backend. Every wired method evaluates the same resolution order
// fresh on each call:
//
//  1. a methodOverrides entry for the name always wins, core methods
//     included
//  2. otherwise the core resolver applies, if one exists
//  3. otherwise the guardrail supplies the fallback for the declaring
//     capability
//
// The factory is long-lived: its composer carries the synthesized-capability
// cache, so identical sibling requests reuse the same combined identifier
// across constructions.
package factory
