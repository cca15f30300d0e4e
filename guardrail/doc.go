// Package guardrail supplies the fallback policy for capability methods the
// definition does not cover: methods declared by a requested interface with
// no methodOverrides entry and no core resolver.
//
// A shared catalogue names the operations a unit-test value object must
// never perform (persistence, authorization checks, translation retrieval,
// link generation, reference traversal) with the reason for each. In strict
// mode the enforcer raises one of two differentiated errors: unsupported for
// catalogued operations, unconfigured for everything else. In lenient mode
// both surface as a neutral nil instead. Lenient is a per-construction flag;
// one Enforcer exists per double.
package guardrail
