// Package capability models the named interfaces a double can expose and
// computes the capability set an instance must satisfy.
//
// A Registry holds capability descriptors: name, parent capabilities, and
// the method names the capability declares. The built-in registry carries a
// representative entity capability catalog; external catalogs register their
// own descriptors, since the engine itself knows nothing about the domain
// interfaces being doubled.
//
// A Composer resolves a requested capability-name set: the root capability
// is always included, requested capabilities that are strict ancestors of
// other requested ones are dropped, and for backends that cannot expose
// sibling capabilities directly, one combined capability is synthesized per
// unique requested set and cached for reuse. The cache lives on the Composer
// value, not in package state; hold the Composer on a long-lived factory.
package capability
