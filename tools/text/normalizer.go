package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds the input to lower case, strips accents and drops
// punctuation, so that keys differing only in those respects compare equal.
func Normalize(input string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.IsSpace(r)
		})),
		norm.NFC,
	)

	res, _, err := transform.String(t, input)
	if err != nil {
		return strings.ToLower(input)
	}
	return strings.ToLower(res)
}

// Fold normalizes the input and collapses runs of white space to a single
// space.
func Fold(input string) string {
	return strings.Join(strings.Fields(Normalize(input)), " ")
}
