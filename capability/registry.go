package capability

import (
	"sort"
	"sync"

	"github.com/doubleforge/entity-doubles/errors"
)

// Built-in capability names.
const (
	// Root is the capability every double exposes, requested or not.
	Root = "entity"

	Fieldable    = "fieldable"
	Translatable = "translatable"
	Revisionable = "revisionable"
	Publishable  = "publishable"
	Content      = "content"
	Config       = "config"
)

// Info describes one capability: its name, the capabilities it extends, and
// the method names it declares. Method signatures live with the consumer;
// the engine only routes by name.
type Info struct {
	Name    string
	Parents []string
	Methods []string
}

// Registry maps capability names to their descriptors. Thread-safe.
type Registry struct {
	caps map[string]Info
	mu   sync.RWMutex
}

// NewRegistry creates an empty registry containing only the root capability.
func NewRegistry() *Registry {
	r := &Registry{caps: make(map[string]Info)}
	r.caps[Root] = Info{
		Name: Root,
		Methods: []string{
			"id", "uuid", "label", "bundle", "getEntityTypeId", "isNew",
			"save", "delete", "access", "toUrl", "toLink", "uriRelationships",
			"createDuplicate", "referencedEntities",
		},
	}
	return r
}

// Builtin creates a registry preloaded with the built-in entity capability
// catalog.
func Builtin() *Registry {
	r := NewRegistry()
	builtins := []Info{
		{
			Name:    Fieldable,
			Parents: []string{Root},
			Methods: []string{
				"hasField", "get", "set", "getFields",
				"getFieldDefinitions", "validate", "onChange",
			},
		},
		{
			Name:    Translatable,
			Parents: []string{Root},
			Methods: []string{
				"getTranslation", "hasTranslation", "addTranslation",
				"removeTranslation", "getUntranslated", "isTranslatable",
			},
		},
		{
			Name:    Revisionable,
			Parents: []string{Root},
			Methods: []string{
				"getRevisionId", "isNewRevision", "setNewRevision",
				"isDefaultRevision",
			},
		},
		{
			Name:    Publishable,
			Parents: []string{Root},
			Methods: []string{"isPublished", "setPublished", "setUnpublished"},
		},
		{
			Name:    Content,
			Parents: []string{Fieldable, Translatable, Revisionable},
			Methods: []string{"getChangedTime", "setChangedTime"},
		},
		{
			Name:    Config,
			Parents: []string{Root},
			Methods: []string{"status", "enable", "disable"},
		},
	}
	for _, info := range builtins {
		// Built-in descriptors are well-formed; Register cannot fail here.
		_ = r.Register(info)
	}
	return r
}

// Register adds a capability descriptor. Unknown parents, empty names, and
// redefinitions are configuration errors. Parentless capabilities other than
// the root are attached to the root.
func (r *Registry) Register(info Info) error {
	if info.Name == "" {
		return errors.Configuration("capability name must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.caps[info.Name]; exists {
		return errors.Configuration("capability '%s' is already registered", info.Name)
	}
	for _, p := range info.Parents {
		if _, ok := r.caps[p]; !ok {
			return errors.Configuration(
				"capability '%s' extends unknown capability '%s'", info.Name, p)
		}
	}
	if len(info.Parents) == 0 {
		info.Parents = []string{Root}
	}
	r.caps[info.Name] = info
	return nil
}

// Lookup returns the descriptor for a capability name.
func (r *Registry) Lookup(name string) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.caps[name]
	return info, ok
}

// Known reports whether the capability name is registered.
func (r *Registry) Known(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Ancestors returns the transitive parents of a capability, without
// duplicates, in breadth-first order. The capability itself is excluded.
func (r *Registry) Ancestors(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ancestorsLocked(name)
}

func (r *Registry) ancestorsLocked(name string) []string {
	var out []string
	seen := map[string]bool{name: true}
	queue := append([]string(nil), r.caps[name].Parents...)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
		queue = append(queue, r.caps[p].Parents...)
	}
	return out
}

// IsStrictAncestor reports whether ancestor is a transitive parent of name
// and not name itself.
func (r *Registry) IsStrictAncestor(ancestor, name string) bool {
	if ancestor == name {
		return false
	}
	for _, a := range r.Ancestors(name) {
		if a == ancestor {
			return true
		}
	}
	return false
}

// ShareAncestor reports whether two capabilities have a common transitive
// ancestor. Every registered capability descends from the root, so two
// distinct registered capabilities are always siblings under it.
func (r *Registry) ShareAncestor(a, b string) bool {
	if !r.Known(a) || !r.Known(b) {
		return false
	}
	set := map[string]bool{}
	for _, x := range r.Ancestors(a) {
		set[x] = true
	}
	for _, y := range r.Ancestors(b) {
		if set[y] {
			return true
		}
	}
	return false
}

// Methods returns the method names a capability declares, including those
// inherited from its ancestors, sorted and deduplicated.
func (r *Registry) Methods(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := map[string]bool{}
	for _, m := range r.caps[name].Methods {
		set[m] = true
	}
	for _, a := range r.ancestorsLocked(name) {
		for _, m := range r.caps[a].Methods {
			set[m] = true
		}
	}
	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Closure returns the given capabilities plus all their transitive
// ancestors, sorted and deduplicated. A double exposing a capability also
// exposes everything the capability extends.
func (r *Registry) Closure(caps []string) []string {
	set := map[string]bool{}
	for _, c := range caps {
		set[c] = true
		for _, a := range r.Ancestors(c) {
			set[a] = true
		}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// MethodSet returns the union of the method names declared by the given
// capabilities and their ancestors, sorted.
func (r *Registry) MethodSet(caps []string) []string {
	set := map[string]bool{}
	for _, c := range caps {
		for _, m := range r.Methods(c) {
			set[m] = true
		}
	}
	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// DeclaringInterface returns the capability among caps (or their ancestors)
// that declares the method. Candidates are checked in the order given, each
// followed by its ancestors, so the most specific requested capability wins.
func (r *Registry) DeclaringInterface(method string, caps []string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	declares := func(name string) bool {
		for _, m := range r.caps[name].Methods {
			if m == method {
				return true
			}
		}
		return false
	}

	for _, c := range caps {
		if declares(c) {
			return c, true
		}
		for _, a := range r.ancestorsLocked(c) {
			if declares(a) {
				return a, true
			}
		}
	}
	return "", false
}
