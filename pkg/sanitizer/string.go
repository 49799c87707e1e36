// Package sanitizer normalizes client-supplied strings before validation
// and storage.
package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims surrounding whitespace and collapses any interior
// whitespace runs to a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeEmail trims whitespace only. The stored casing is preserved;
// identity comparisons fold case at the ledger.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// FoldEmail produces the case-insensitive identity key for an email.
func FoldEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
