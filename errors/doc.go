// Package errors provides structured error types for the entity-doubles library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Kind values map one to one onto the failure taxonomy of the
// engine: configuration errors raised at construction, undefined-field usage
// errors, immutable-mutation errors, and the two guardrail failures
// (unconfigured and unsupported).
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindUndefinedField).
//		Entity("node").
//		Field("body").
//		Detail("unknown field").
//		Build()
//
// Or use the convenience constructors, which carry the user-visible message
// templates verbatim:
//
//	err := errors.ImmutableMutation("title")
//	err := errors.Unconfigured("save", "entity")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
