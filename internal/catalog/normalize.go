package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripAccents removes combining marks so "Crédito" and "Credito" compare equal.
func StripAccents(value string) string {
	out, _, err := transform.String(accentStripper, value)
	if err != nil {
		return value
	}
	return out
}

// NormalizeKey folds a catalog value for accent- and case-insensitive lookup.
func NormalizeKey(value string) string {
	return strings.ToLower(StripAccents(strings.TrimSpace(value)))
}
