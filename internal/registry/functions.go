package registry

import (
	"strings"

	"github.com/funvibe/tagjs/internal/config"
)

// Overload describes one textual definition of a function.
type Overload struct {
	// ArgTypesLists has one entry per declared parameter holding that
	// parameter's tag conjunction. An empty entry is an untagged parameter.
	ArgTypesLists [][]string
	// MangledName is the name of the renamed declaration.
	MangledName string
}

// NewOverload builds an overload for name and computes its mangled name.
func NewOverload(name string, argTypesLists [][]string) *Overload {
	return &Overload{
		ArgTypesLists: argTypesLists,
		MangledName:   MangleName(name, argTypesLists),
	}
}

// MangleName joins name with every tag across all parameters, in parameter
// order. The separator always follows name, so an overload with no tags is
// "name_" and never collides with the dispatcher called name.
func MangleName(name string, argTypesLists [][]string) string {
	var tags []string
	for _, types := range argTypesLists {
		tags = append(tags, types...)
	}
	return name + config.MangleSeparator + strings.Join(tags, config.MangleSeparator)
}

// IsTagged reports whether any parameter carries at least one tag.
func (o *Overload) IsTagged() bool {
	for _, types := range o.ArgTypesLists {
		if len(types) > 0 {
			return true
		}
	}
	return false
}

// FunctionRegistry maps function names to their overloads, keeping both the
// first-seen order of names and the declaration order of overloads.
type FunctionRegistry struct {
	order     []string
	overloads map[string][]*Overload
}

// NewFunctionRegistry creates an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{overloads: make(map[string][]*Overload)}
}

// Add appends an overload to the family called name.
func (r *FunctionRegistry) Add(name string, o *Overload) {
	if _, ok := r.overloads[name]; !ok {
		r.order = append(r.order, name)
	}
	r.overloads[name] = append(r.overloads[name], o)
}

// Names returns function names in order of first declaration.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.order...)
}

// Overloads returns the overloads declared for name, in declaration order.
func (r *FunctionRegistry) Overloads(name string) []*Overload {
	if r == nil {
		return nil
	}
	return r.overloads[name]
}

// Len returns the number of distinct function names.
func (r *FunctionRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// IsRegular reports whether name has exactly one overload and none of its
// parameters is tagged. Such a family gets a plain forwarding dispatcher.
func (r *FunctionRegistry) IsRegular(name string) bool {
	list := r.Overloads(name)
	return len(list) == 1 && !list[0].IsTagged()
}

// Clone returns a copy of r that can grow without affecting r. Overloads are
// shared since they are immutable.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	c := NewFunctionRegistry()
	c.Merge(r)
	return c
}

// Merge appends the overloads of other after those already in r, keeping
// the declaration order of both.
func (r *FunctionRegistry) Merge(other *FunctionRegistry) {
	for _, name := range other.Names() {
		for _, o := range other.Overloads(name) {
			r.Add(name, o)
		}
	}
}
