// Package normalize cleans up text arriving from metadata providers
// before it is persisted or indexed.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Text canonicalizes provider-supplied text: Unicode is recomposed to
// NFC, control characters are dropped, and runs of whitespace collapse
// to single spaces. Provider payloads mix composed and decomposed
// forms, which otherwise breaks duplicate detection and search.
func Text(s string) string {
	s = norm.NFC.String(s)

	var sb strings.Builder
	sb.Grow(len(s))

	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.IsControl(r):
			// Skip stray control characters from malformed payloads.
		default:
			if space && sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			space = false
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Fold returns a case- and accent-insensitive form used for comparing
// titles. "Crème Brûlée" and "creme brulee" fold to the same string.
func Fold(s string) string {
	s = norm.NFKD.String(s)

	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue // Strip combining marks left by decomposition.
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return Text(sb.String())
}
