// Package functions renames tagged function definitions to their mangled
// overload names and records them in a function registry.
package functions

import (
	"regexp"
	"strings"

	"github.com/funvibe/tagjs/internal/config"
	"github.com/funvibe/tagjs/internal/registry"
)

// functionDefRegex matches "function foo(x: Integer, y, ...)". As in the
// guard pattern, the boundary before the keyword is consumed by a
// non-capturing group.
var functionDefRegex = regexp.MustCompile(
	config.DeclarationBoundary +
		`(?P<kw>` + config.FunctionKeyword + `)` +
		config.WhitespaceClass + `+` +
		`(?P<name>` + config.IdentifierPattern + `)` +
		`\s*\((?P<args>[^)]*)\)`,
)

var (
	kwIndex   = functionDefRegex.SubexpIndex("kw")
	nameIndex = functionDefRegex.SubexpIndex("name")
	argsIndex = functionDefRegex.SubexpIndex("args")
)

var (
	commaSplit = regexp.MustCompile(`\s*,\s*`)
	tagSplit   = regexp.MustCompile(`\s*\*\s*`)
)

// Param is one parsed parameter of a function header.
type Param struct {
	Name  string
	Types []string
}

// Extract renames every function header in source that is not a guard
// predicate and returns the rewritten text with the function registry.
//
// All headers are located in one non-overlapping pass over the input and
// the output is assembled from the untouched spans in between, so a
// replacement of a different length never shifts a later match.
func Extract(source string) (string, *registry.FunctionRegistry) {
	functions := registry.NewFunctionRegistry()

	var out strings.Builder
	last := 0
	for _, loc := range functionDefRegex.FindAllStringSubmatchIndex(source, -1) {
		name := source[loc[2*nameIndex]:loc[2*nameIndex+1]]
		if strings.HasPrefix(name, config.GuardTestPrefix) {
			continue
		}

		params := ParseParams(source[loc[2*argsIndex]:loc[2*argsIndex+1]])
		argTypesLists := make([][]string, len(params))
		names := make([]string, len(params))
		for i, p := range params {
			argTypesLists[i] = p.Types
			names[i] = p.Name
		}

		overload := registry.NewOverload(name, argTypesLists)
		functions.Add(name, overload)

		start := loc[2*kwIndex]
		out.WriteString(source[last:start])
		out.WriteString(config.FunctionKeyword + " " + overload.MangledName + "(" + strings.Join(names, ", ") + ")")
		last = loc[1]
	}
	out.WriteString(source[last:])

	return out.String(), functions
}

// ParseParams splits a raw parameter list into names and tag conjunctions.
// An empty list yields a single unnamed, untagged parameter.
func ParseParams(args string) []Param {
	raw := commaSplit.Split(args, -1)
	params := make([]Param, 0, len(raw))
	for _, def := range raw {
		name, annotation, tagged := strings.Cut(def, ":")
		p := Param{Name: strings.TrimSpace(name), Types: []string{}}
		if tagged {
			for _, tag := range tagSplit.Split(strings.TrimSpace(annotation), -1) {
				if tag != "" {
					p.Types = append(p.Types, tag)
				}
			}
		}
		params = append(params, p)
	}
	return params
}
