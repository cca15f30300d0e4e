package guardrail

import (
	"go.uber.org/zap"

	entitydoubles "github.com/doubleforge/entity-doubles"
	"github.com/doubleforge/entity-doubles/errors"
)

// Reason classifies why a catalogued operation is disallowed on a double.
type Reason string

const (
	ReasonPersistence        Reason = "persistence"
	ReasonAuthorization      Reason = "authorization"
	ReasonTranslation        Reason = "translation retrieval"
	ReasonLinkGeneration     Reason = "link generation"
	ReasonReferenceTraversal Reason = "reference traversal"
)

// catalogue is the declarative table of operations a double refuses outright.
// Methods absent from this table fall back to the unconfigured error instead.
var catalogue = map[string]Reason{
	"save":              ReasonPersistence,
	"delete":            ReasonPersistence,
	"createDuplicate":   ReasonPersistence,
	"access":            ReasonAuthorization,
	"getTranslation":    ReasonTranslation,
	"addTranslation":    ReasonTranslation,
	"removeTranslation": ReasonTranslation,
	"getUntranslated":   ReasonTranslation,
	"toUrl":             ReasonLinkGeneration,
	"toLink":            ReasonLinkGeneration,
	"uriRelationships":  ReasonLinkGeneration,
	"referencedEntities": ReasonReferenceTraversal,
}

// Catalogued returns the reason a method is disallowed, if it is catalogued.
func Catalogued(method string) (Reason, bool) {
	r, ok := catalogue[method]
	return r, ok
}

// Enforcer supplies fallback resolvers for one double construction.
type Enforcer struct {
	lenient bool
}

// New creates an enforcer. lenient selects neutral nil returns over errors.
func New(lenient bool) *Enforcer {
	return &Enforcer{lenient: lenient}
}

// Lenient reports the construction-time mode.
func (e *Enforcer) Lenient() bool {
	return e.lenient
}

// Fallback returns the resolver applied when a method declared by the given
// capability has neither an override nor a core resolver. The returned
// resolver decides strict/catalogued per call, so the guardrail never
// short-circuits the per-call resolution order.
func (e *Enforcer) Fallback(method, capability string) entitydoubles.Resolver {
	return func(ctx entitydoubles.Context, args ...any) (any, error) {
		if reason, ok := Catalogued(method); ok {
			if e.lenient {
				Logger().Debug("lenient guardrail suppressed unsupported operation",
					zap.String("method", method), zap.String("reason", string(reason)))
				return nil, nil
			}
			return nil, errors.Unsupported(method)
		}
		if e.lenient {
			Logger().Debug("lenient guardrail suppressed unconfigured method",
				zap.String("method", method), zap.String("capability", capability))
			return nil, nil
		}
		return nil, errors.Unconfigured(method, capability)
	}
}
