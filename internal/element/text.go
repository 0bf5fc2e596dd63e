package element

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText collapses whitespace, NFC-normalizes, and lowercases a DOM
// text fragment. All keyword and accessible-name comparisons go through
// this so visually identical strings compare equal regardless of the
// Unicode form the renderer produced.
func NormalizeText(s string) string {
	normalized := norm.NFC.String(s)
	return strings.ToLower(strings.Join(strings.Fields(normalized), " "))
}

// ContainsAnyKeyword reports whether the normalized form of s contains any
// of the given keywords. Keywords are expected in lowercase.
func ContainsAnyKeyword(s string, keywords []string) bool {
	n := NormalizeText(s)
	if n == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(n, kw) {
			return true
		}
	}
	return false
}
