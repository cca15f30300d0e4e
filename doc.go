// Package entitydoubles provides a construction engine for entity test
// doubles: lightweight stand-in objects satisfying a set of externally
// defined capability interfaces, for isolated unit testing of code that
// consumes those interfaces without any real implementation behind them.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	entitydoubles/       Root package with the shared Context and Resolver contract types
//	├── definition/      Immutable entity and field definitions plus a fluent builder
//	├── state/           Per-instance override storage for mutable doubles
//	├── guardrail/       Fallback policy for unconfigured and unsupported methods
//	├── capability/      Capability registry and interface composition
//	├── binder/          Entity, field-list, and field-item resolver builders
//	├── backend/         Wiring contract and the two reference backends
//	├── factory/         High-level API for constructing doubles
//	└── errors/          Structured error types for differentiated failure
//
// # Quick Start
//
// Define an entity double and read a field:
//
//	def, _ := definition.NewBuilder("node").
//	    Bundle("article").
//	    Field("title", "Hello").
//	    Interfaces(capability.Fieldable).
//	    Build()
//
//	f := factory.New(backend.NewProxy())
//	dbl, err := f.Create(def)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	title, _ := dbl.Get("title")
//	fmt.Println(title.Value(nil)) // ["Hello"]
//
// # Method Resolution
//
// Every method call on a double is routed through a precedence-ordered
// resolver chain, re-evaluated on each call: a methodOverrides entry for the
// method always wins; otherwise the core resolver applies if one exists;
// otherwise the guardrail supplies the fallback for any method declared by a
// requested capability (an error in strict mode, nil in lenient mode).
//
// # Thread Safety
//
// Factory and the capability Registry are safe for concurrent use. A Double
// is NOT thread-safe and is assumed used by one logical test at a time.
package entitydoubles
