// Package registry holds the guard and function registries populated by the
// extraction stages and read by the dispatcher synthesizer.
package registry

import "sort"

// GuardRegistry is the set of declared guard type names.
type GuardRegistry struct {
	names map[string]struct{}
}

// NewGuardRegistry creates an empty registry, optionally seeded with names.
func NewGuardRegistry(names ...string) *GuardRegistry {
	g := &GuardRegistry{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		g.Add(name)
	}
	return g
}

// Add registers a guard type name. Re-adding a name is a no-op.
func (g *GuardRegistry) Add(name string) {
	g.names[name] = struct{}{}
}

// Has reports whether name was registered.
func (g *GuardRegistry) Has(name string) bool {
	if g == nil {
		return false
	}
	_, ok := g.names[name]
	return ok
}

// Len returns the number of distinct guard names.
func (g *GuardRegistry) Len() int {
	if g == nil {
		return 0
	}
	return len(g.names)
}

// Names returns the registered names in sorted order.
func (g *GuardRegistry) Names() []string {
	if g == nil {
		return nil
	}
	out := make([]string, 0, len(g.names))
	for name := range g.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy of g.
func (g *GuardRegistry) Clone() *GuardRegistry {
	return NewGuardRegistry(g.Names()...)
}

// Merge adds every name in other to g.
func (g *GuardRegistry) Merge(other *GuardRegistry) {
	for _, name := range other.Names() {
		g.Add(name)
	}
}
