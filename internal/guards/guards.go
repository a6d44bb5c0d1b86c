// Package guards rewrites guard declarations into predicate functions.
//
// A guard declaration looks like
//
//	guard Even(x) { return x % 2 == 0 }
//
// and becomes
//
//	function _guardTest_Even(x) { return x % 2 == 0 }
//
// Only the header is touched. Bodies are passed through verbatim.
package guards

import (
	"regexp"

	"github.com/funvibe/tagjs/internal/config"
	"github.com/funvibe/tagjs/internal/registry"
)

// guardRegex matches a guard header. RE2 has no lookbehind, so the leading
// boundary is consumed by a non-capturing group and the replacement starts
// at the "kw" group.
var guardRegex = regexp.MustCompile(
	config.DeclarationBoundary +
		`(?P<kw>` + config.GuardKeyword + `)` +
		config.WhitespaceClass + `+` +
		`(?P<type>` + config.IdentifierPattern + `)` +
		`\(\s*(?P<arg>` + config.IdentifierPattern + `)\s*\)`,
)

var (
	kwIndex   = guardRegex.SubexpIndex("kw")
	typeIndex = guardRegex.SubexpIndex("type")
	argIndex  = guardRegex.SubexpIndex("arg")
)

// Extract replaces every guard header in source and returns the rewritten
// text with the registry of guard type names.
//
// After each replacement the search restarts from the beginning of the
// buffer. The generated header never matches the guard pattern, so the loop
// ends once every declaration has been rewritten.
func Extract(source string) (string, *registry.GuardRegistry) {
	guards := registry.NewGuardRegistry()
	text := source

	for {
		loc := guardRegex.FindStringSubmatchIndex(text)
		if loc == nil {
			break
		}
		typeName := text[loc[2*typeIndex]:loc[2*typeIndex+1]]
		arg := text[loc[2*argIndex]:loc[2*argIndex+1]]
		guards.Add(typeName)

		start, end := loc[2*kwIndex], loc[1]
		text = text[:start] + predicateHeader(typeName, arg) + text[end:]
	}

	return text, guards
}

func predicateHeader(typeName, arg string) string {
	return config.FunctionKeyword + " " + config.GuardTestName(typeName) + "(" + arg + ")"
}
