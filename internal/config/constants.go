package config

const SourceFileExt = ".tjs"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".tjs", ".tag.js"}

// Surface keywords recognized by the extractors
const (
	GuardKeyword    = "guard"
	FunctionKeyword = "function"
)

// GuardTestPrefix is prepended to a guard type name to form the name of
// its generated predicate function.
const GuardTestPrefix = "_guardTest_"

// MangleSeparator joins a function name with its flattened tags.
const MangleSeparator = "_"

// WhitespaceClass matches one whitespace character in the host language:
// ASCII space characters, vertical tab, Unicode space separators, line and
// paragraph separators, and the byte order mark.
const WhitespaceClass = `[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

// DeclarationBoundary must directly precede a guard or function keyword.
const DeclarationBoundary = `(?:^|[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF};])`

// IdentifierPattern matches a host-language identifier.
const IdentifierPattern = `[A-Za-z_][A-Za-z0-9_]*`

// Host globals bound by the execution backend
const (
	PrintFuncName    = "print"
	ConsoleName      = "console"
	ConsoleLogName   = "log"
	DefaultOutputExt = ".js"
)

// Config file names searched for by FindSettings, in order.
var SettingsFileNames = []string{"tagjs.yaml", "tagjs.yml"}

// GuardTestName returns the predicate function name for a guard type.
func GuardTestName(typeName string) string {
	return GuardTestPrefix + typeName
}
