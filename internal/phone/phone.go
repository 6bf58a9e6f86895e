// Package phone holds the permissive number rules used for both dialed
// numbers and callsigns: anything with at least one digit is accepted.
package phone

import (
	"strings"
	"unicode"
)

// Valid reports whether the input contains at least one digit character.
// No length or checksum checks are applied on purpose.
func Valid(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

// Normalize formats a submitted number. A '+'-prefixed input is kept
// verbatim; otherwise the last 9 characters (or the whole input when
// shorter) are prepended with the configured country prefix.
func Normalize(raw, prefix string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "+") {
		return s
	}
	r := []rune(s)
	if len(r) > 9 {
		r = r[len(r)-9:]
	}
	return prefix + string(r)
}
