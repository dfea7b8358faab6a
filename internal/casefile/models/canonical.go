package models

import "strings"

// CanonicalID is the identifier form used for every uniqueness check:
// surrounding whitespace removed, upper-cased. "T12345" and " t12345 "
// canonicalize to the same key.
func CanonicalID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
