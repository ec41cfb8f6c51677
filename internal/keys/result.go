package keys

import (
	"fmt"
	"strings"
	"unicode"

	"travel/internal/models"
)

// sanitizeKey lowercases s and replaces anything that is not a letter or a
// digit with a hyphen.
func sanitizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, s)
}

// Result returns the canonical object key for an exploration result.
func Result(r models.Result) string {
	place := sanitizeKey(r.Place)
	if place == "" {
		place = "unknown"
	}
	return fmt.Sprintf("results/%s/%s.json", place, r.ID)
}
