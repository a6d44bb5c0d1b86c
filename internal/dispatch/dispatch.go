// Package dispatch synthesizes the dispatcher functions that route a call to
// the first overload whose guards accept the arguments.
package dispatch

import (
	"fmt"
	"strings"

	"github.com/funvibe/tagjs/internal/config"
	"github.com/funvibe/tagjs/internal/registry"
)

// noMatchMessage is thrown by a dispatcher when no branch matches.
const noMatchMessage = "No guards passed for %s call"

// Synthesize appends one dispatcher per function name to source, in order of
// first declaration. Source with no functions is returned unchanged.
func Synthesize(source string, guards *registry.GuardRegistry, functions *registry.FunctionRegistry) string {
	names := functions.Names()
	if len(names) == 0 {
		return source
	}

	blocks := make([]string, 0, len(names))
	for _, name := range names {
		blocks = append(blocks, Dispatcher(name, guards, functions))
	}
	return source + "\n" + strings.Join(blocks, "\n")
}

// Dispatcher renders the dispatcher declaration for name.
func Dispatcher(name string, guards *registry.GuardRegistry, functions *registry.FunctionRegistry) string {
	var body string
	if functions.IsRegular(name) {
		body = "  " + forwardCall(functions.Overloads(name)[0].MangledName)
	} else {
		body = GuardedChain(name, guards, functions.Overloads(name))
	}
	return config.FunctionKeyword + " " + name + "(){\n" + body + "\n}"
}

// GuardedChain renders the if/else-if chain testing each overload in
// declaration order, ending with an else that throws.
func GuardedChain(name string, guards *registry.GuardRegistry, overloads []*registry.Overload) string {
	var b strings.Builder
	for i, o := range overloads {
		if i == 0 {
			b.WriteString("  if(")
		} else {
			b.WriteString("\n  else if(")
		}
		b.WriteString(Condition(guards, o))
		b.WriteString(")\n    ")
		b.WriteString(forwardCall(o.MangledName))
	}
	b.WriteString("\n  else\n    throw Error('")
	b.WriteString(fmt.Sprintf(noMatchMessage, name))
	b.WriteString("')")
	return b.String()
}

// Condition is the conjunction of guard tests for every (position, tag)
// pair of o whose tag is a registered guard. Unknown tags are dropped. An
// overload with no known tags gets the condition "true".
func Condition(guards *registry.GuardRegistry, o *registry.Overload) string {
	var parts []string
	for argI, types := range o.ArgTypesLists {
		for _, tag := range types {
			if guards.Has(tag) {
				parts = append(parts, fmt.Sprintf("%s(arguments[%d])", config.GuardTestName(tag), argI))
			}
		}
	}
	if len(parts) == 0 {
		return "true"
	}
	return strings.Join(parts, " && ")
}

func forwardCall(mangledName string) string {
	return "return " + mangledName + "(...arguments)"
}
