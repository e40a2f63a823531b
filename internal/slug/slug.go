// Package slug derives the lowercase, hyphen-separated identifiers used as
// project ids, map file names and grouping keys.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify lower-cases text and joins its runs of letters and digits with
// single hyphens. Diacritics are folded first, so "Café" becomes "cafe".
// Input without any letter or digit yields the empty string.
func Slugify(text string) string {
	folded, _, err := transform.String(foldDiacritics(), text)
	if err != nil {
		folded = text
	}

	var b strings.Builder
	b.Grow(len(folded))

	separate := false
	for _, r := range strings.ToLower(folded) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			separate = true
			continue
		}
		if separate && b.Len() > 0 {
			b.WriteByte('-')
		}
		separate = false
		b.WriteRune(r)
	}

	return b.String()
}

// foldDiacritics returns a fresh transformer; transform.Chain values are
// stateful and must not be shared.
func foldDiacritics() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
