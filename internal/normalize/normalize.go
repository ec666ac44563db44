// Package normalize canonicalizes song titles and file stems so both sides of
// a fuzzy match compare in the same form.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Normalize case-folds text, then collapses every run of characters that are
// not letters or digits into a single space, so "Firefly (Jim Yosef)" and
// "firefly_jim_yosef" reduce to the same form. Folding runs before the filter
// so fold expansions (U+0130 folds to "i" plus a combining dot) are cleaned
// in the same pass. The function is pure and idempotent.
func Normalize(text string) string {
	folded := cases.Fold().String(text)
	var cleaned strings.Builder
	cleaned.Grow(len(folded))
	prevSpace := false
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		default:
			if !prevSpace && cleaned.Len() > 0 {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	return strings.TrimSpace(cleaned.String())
}
