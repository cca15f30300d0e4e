package capability

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/doubleforge/entity-doubles/errors"
)

// Composition is the result of resolving a requested capability set for one
// double construction.
type Composition struct {
	// Requested is the deduplicated, sorted input set.
	Requested []string
	// Capabilities is the resolved set: the root is always represented, and
	// strict ancestors of other members are dropped.
	Capabilities []string
	// Synthesized is the combined-capability identifier, set only when the
	// active backend cannot expose the resolved siblings directly.
	Synthesized string
	// Methods is the union method set of the resolved capabilities and
	// their ancestors.
	Methods []string
}

// Composer resolves requested capability sets against a registry. The
// synthesized-capability cache lives for the Composer's lifetime, so
// identical requests reuse the same synthesized identifier. Thread-safe.
type Composer struct {
	reg   *Registry
	synth map[string]string
	next  int
	mu    sync.Mutex
}

// NewComposer creates a composer over the given registry.
func NewComposer(reg *Registry) *Composer {
	return &Composer{
		reg:   reg,
		synth: make(map[string]string),
	}
}

// Registry returns the backing registry.
func (c *Composer) Registry() *Registry {
	return c.reg
}

// Compose resolves the requested capability names. supportsSiblings is the
// active backend's declaration of whether it can expose two or more sibling
// capabilities sharing a common ancestor on one object; when it cannot, a
// combined capability is synthesized for the union.
//
// The superseded filter-down-to-one strategy is deliberately absent.
func (c *Composer) Compose(requested []string, supportsSiblings bool) (Composition, error) {
	for _, name := range requested {
		if !c.reg.Known(name) {
			return Composition{}, errors.New(errors.PhaseCompose, errors.KindConfiguration).
				Capability(name).
				Detail("requested capability '%s' is not registered", name).
				Build()
		}
	}

	sorted := uniqueSorted(requested)

	// The root participates in reduction like any requested capability.
	working := uniqueSorted(append([]string{Root}, sorted...))

	resolved := make([]string, 0, len(working))
	for _, cand := range working {
		ancestorOfOther := false
		for _, other := range working {
			if c.reg.IsStrictAncestor(cand, other) {
				ancestorOfOther = true
				break
			}
		}
		if !ancestorOfOther {
			resolved = append(resolved, cand)
		}
	}

	comp := Composition{
		Requested:    sorted,
		Capabilities: resolved,
		Methods:      c.reg.MethodSet(resolved),
	}

	if !supportsSiblings && c.needsSynthesis(resolved) {
		comp.Synthesized = c.synthesize(sorted)
	}

	return comp, nil
}

// needsSynthesis reports whether the resolved set holds two or more sibling
// capabilities sharing a common ancestor.
func (c *Composer) needsSynthesis(resolved []string) bool {
	for i := 0; i < len(resolved); i++ {
		for j := i + 1; j < len(resolved); j++ {
			if c.reg.ShareAncestor(resolved[i], resolved[j]) {
				return true
			}
		}
	}
	return false
}

// synthesize returns the combined-capability identifier for a sorted request
// set, allocating one on first use and reusing it afterwards.
func (c *Composer) synthesize(sorted []string) string {
	key := strings.Join(sorted, "+")

	c.mu.Lock()
	defer c.mu.Unlock()

	if id, ok := c.synth[key]; ok {
		return id
	}
	id := fmt.Sprintf("combined%d", c.next)
	c.next++
	c.synth[key] = id

	Logger().Debug("synthesized combined capability",
		zap.String("id", id), zap.String("request", key))
	return id
}

func uniqueSorted(names []string) []string {
	set := map[string]bool{}
	for _, n := range names {
		set[n] = true
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
