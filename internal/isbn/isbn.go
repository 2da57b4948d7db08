// Package isbn validates and normalizes printed book identifiers.
//
// An identifier is accepted in exactly two shapes: the 10-character form
// (nine digits plus a numeric-or-'X' check character) and the 13-digit form.
// The check character is validated structurally, not arithmetically.
package isbn

import "regexp"

var (
	isbn10Pattern = regexp.MustCompile(`^\d{9}[\dX]$`)
	isbn13Pattern = regexp.MustCompile(`^\d{13}$`)
)

// IsValid reports whether text is a plausible ISBN-10 or ISBN-13.
// No normalization is applied; callers strip hyphens and whitespace first
// on manual-entry paths, while scanner output is checked as-is.
func IsValid(text string) bool {
	return isbn10Pattern.MatchString(text) || isbn13Pattern.MatchString(text)
}

// Normalize strips hyphens and spaces from a manually entered identifier.
// "978-0-13-419044-0" -> "9780134190440".
func Normalize(text string) string {
	buf := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '-', ' ', '\t':
			continue
		default:
			buf = append(buf, text[i])
		}
	}
	return string(buf)
}

// Plausible is the coarse pre-filter applied to the decoder feed: a
// decoded string of the wrong length, or one carrying bytes no
// identifier form uses, is dropped before a pipeline run is spent on
// it. Full validation still happens inside the scan, and everything
// IsValid accepts passes here.
func Plausible(text string) bool {
	if len(text) != 10 && len(text) != 13 {
		return false
	}
	for i := 0; i < len(text); i++ {
		if c := text[i]; (c < '0' || c > '9') && c != 'X' {
			return false
		}
	}
	return true
}
