// Package textnorm canonicalizes free text for flexible comparison.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases s, strips diacritical marks and collapses whitespace
// runs to a single space. Blank input yields "".
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	// cases.Caser and transform chains keep state, so they are built per call.
	s = cases.Lower(language.Und).String(s)

	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		s,
	)
	if err == nil {
		s = stripped
	}

	return strings.Join(strings.Fields(s), " ")
}

// Contains reports whether the normalized form of s contains the normalized
// fragment. An empty fragment matches everything.
func Contains(s, fragment string) bool {
	return strings.Contains(Normalize(s), Normalize(fragment))
}
