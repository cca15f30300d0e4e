// Package backend synthesizes callable doubles from the wiring the factory
// hands it: a resolved capability set, a method-name resolver map, and the
// item factory for nested field doubles.
//
// Two interchangeable backends exist. Proxy is a single generic dispatch
// table and can expose any number of sibling capabilities on one object.
// Adapter attaches exactly one capability shape per object, so sibling
// requests reach it pre-combined under a synthesized identifier; the shapes
// it builds are cached per capability set. Both must produce identical
// observable results for identical wirings, return values and error text
// alike.
package backend
