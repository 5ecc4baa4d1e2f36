// Package cleaner turns a raw financial grid into a normalized table with
// snake_case row labels, title rows removed and units held in a column map.
package cleaner

import (
	"regexp"
	"strings"
)

var (
	specialCharPattern = regexp.MustCompile(`[^a-zA-Z0-9 \n.]`)
	upperRunPattern    = regexp.MustCompile(`([A-Z]+)`)
	capWordPattern     = regexp.MustCompile(`([A-Z][a-z]+)`)
)

// ReplaceSpecialChars replaces every character that is not an ASCII letter,
// digit, space, newline or period with replacement.
func ReplaceSpecialChars(s, replacement string) string {
	return specialCharPattern.ReplaceAllLiteralString(s, replacement)
}

// Join concatenates tokens with sep.
func Join(tokens []string, sep string) string {
	return strings.Join(tokens, sep)
}

// SnakeCase converts s to lowercase tokens joined by underscores. Hyphens
// separate words, every uppercase run starts a word and so does every
// capitalized word: "FooBar-Baz" -> "foo_bar_baz", "ABCValue" -> "abc_value".
func SnakeCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = upperRunPattern.ReplaceAllString(s, " ${1}")
	s = capWordPattern.ReplaceAllString(s, " ${1}")
	return strings.ToLower(strings.Join(strings.Fields(s), "_"))
}

// CleanLabel drops everything from the first "(" on, replaces special
// characters with spaces and converts the rest to snake case.
func CleanLabel(s string) string {
	if idx := strings.Index(s, "("); idx >= 0 {
		s = s[:idx]
	}
	return SnakeCase(ReplaceSpecialChars(s, " "))
}
