package resolver

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// asciiFold narrows fullwidth forms to their ASCII counterparts, then
// decomposes accented characters and drops the combining marks, turning
// e.g. "Ｇábé" into "Gabe".
var asciiFold = transform.Chain(width.Fold, norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalize case-folds the input, narrows fullwidth forms, strips diacritics
// and discards everything that is not a lowercase ASCII letter or digit.
// Whitespace and punctuation go with it. The result may be empty.
func normalize(input string) string {
	lowered := strings.ToLower(input)

	folded, _, err := transform.String(asciiFold, lowered)
	if err != nil {
		folded = lowered
	}

	var b strings.Builder
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// firstDigitRun returns the first contiguous run of digits in s, or "".
func firstDigitRun(s string) string {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return s[start:i]
		}
	}
	if start >= 0 {
		return s[start:]
	}
	return ""
}
