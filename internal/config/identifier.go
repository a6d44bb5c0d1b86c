package config

import "regexp"

var identifierRegex = regexp.MustCompile(`^` + IdentifierPattern + `$`)

// IsIdentifier reports whether s is a single host-language identifier.
func IsIdentifier(s string) bool {
	return identifierRegex.MatchString(s)
}
