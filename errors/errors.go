package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in double construction or use the error occurred
type Phase string

const (
	PhaseConstruct Phase = "construct" // definition validation
	PhaseCompose   Phase = "compose"   // capability composition
	PhaseResolve   Phase = "resolve"   // method and field resolution
	PhaseMutate    Phase = "mutate"    // writes against a double
	PhaseState     Phase = "state"     // mutable state container access
	PhaseWire      Phase = "wire"      // backend wiring
)

// Kind categorizes the error
type Kind string

const (
	KindConfiguration     Kind = "configuration"      // invalid definition
	KindUndefinedField    Kind = "undefined_field"    // access to an undeclared field
	KindUndefinedMethod   Kind = "undefined_method"   // call to a method no capability declares
	KindImmutableMutation Kind = "immutable_mutation" // write on a non-mutable double
	KindUnconfigured      Kind = "unconfigured"       // declared method with no override
	KindUnsupported       Kind = "unsupported"        // catalogued guardrail operation
	KindMissingValue      Kind = "missing_value"      // state container read with no entry
	KindNullItem          Kind = "null_item"          // write through a null-equivalent item
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause      error
	Phase      Phase
	Kind       Kind
	Entity     string
	Field      string
	Method     string
	Capability string
	Detail     string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Entity sets the entity type id
func (b *Builder) Entity(entityType string) *Builder {
	b.err.Entity = entityType
	return b
}

// Field sets the field name
func (b *Builder) Field(name string) *Builder {
	b.err.Field = name
	return b
}

// Method sets the method name
func (b *Builder) Method(name string) *Builder {
	b.err.Method = name
	return b
}

// Capability sets the capability name
func (b *Builder) Capability(name string) *Builder {
	b.err.Capability = name
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Message templates below are user-visible contract text. The interpolated
// form must stay byte-identical across backends; tests assert on it verbatim.

// Configuration creates an invalid-definition error, raised at construction
func Configuration(detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  PhaseConstruct,
		Kind:   KindConfiguration,
		Detail: detail,
	}
}

// UndefinedField creates a usage error for access to an undeclared field.
// Distinct from guardrail errors.
func UndefinedField(field, entityType string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindUndefinedField,
		Entity: entityType,
		Field:  field,
		Detail: fmt.Sprintf("unknown field '%s' on entity type '%s' double; declare it in the definition's fields", field, entityType),
	}
}

// UndefinedMethod creates a usage error for a call to a method that no
// requested capability declares and no override or core resolver covers.
func UndefinedMethod(method string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindUndefinedMethod,
		Method: method,
		Detail: fmt.Sprintf("method '%s' is not declared by any requested capability", method),
	}
}

// ImmutableMutation creates the mutation-rejected error for writes against a
// non-mutable double
func ImmutableMutation(field string) *Error {
	return &Error{
		Phase:  PhaseMutate,
		Kind:   KindImmutableMutation,
		Field:  field,
		Detail: fmt.Sprintf("cannot modify field '%s' on an immutable double; construct a mutable double if you need to test mutations.", field),
	}
}

// NullItem creates the error for a write through the null-equivalent item a
// field list hands out for empty or out-of-range access
func NullItem(field string) *Error {
	return &Error{
		Phase:  PhaseMutate,
		Kind:   KindNullItem,
		Field:  field,
		Detail: fmt.Sprintf("cannot write through the null-equivalent item of field '%s'; the delta is empty or out of range", field),
	}
}

// Unconfigured creates the strict-mode guardrail error for a declared method
// with no methodOverrides entry
func Unconfigured(method, capability string) *Error {
	return &Error{
		Phase:      PhaseResolve,
		Kind:       KindUnconfigured,
		Method:     method,
		Capability: capability,
		Detail:     fmt.Sprintf("method '%s' requires an entry in methodOverrides (declaring interface: '%s')", method, capability),
	}
}

// Unsupported creates the strict-mode guardrail error for a catalogued
// unsupported operation
func Unsupported(method string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindUnsupported,
		Method: method,
		Detail: fmt.Sprintf("method '%s' is not supported: this is a unit-test value object; use a full integration-style test for this behavior", method),
	}
}

// MissingValue creates a state container read error for a field with no
// recorded override
func MissingValue(field string) *Error {
	return &Error{
		Phase:  PhaseState,
		Kind:   KindMissingValue,
		Field:  field,
		Detail: fmt.Sprintf("no value recorded for field '%s'", field),
	}
}

// Wire wraps a backend wiring failure
func Wire(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseWire,
		Kind:   KindConfiguration,
		Detail: detail,
		Cause:  cause,
	}
}
