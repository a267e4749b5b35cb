package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold lowercases s and strips combining marks so "Climatización" and
// "climatizacion" compare equal.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// matchesTerm reports whether the already-folded term occurs in the
// product's name, descriptions, category or subcategory.
func matchesTerm(p Product, foldedTerm string) bool {
	if strings.Contains(fold(p.Name), foldedTerm) {
		return true
	}
	if strings.Contains(fold(p.Description), foldedTerm) {
		return true
	}
	if p.DescriptionLarge != nil && strings.Contains(fold(*p.DescriptionLarge), foldedTerm) {
		return true
	}
	if strings.Contains(fold(p.Category), foldedTerm) {
		return true
	}
	if p.Subcategory != nil && strings.Contains(fold(*p.Subcategory), foldedTerm) {
		return true
	}
	return false
}
