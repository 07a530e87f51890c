package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldAccents strips combining marks after canonical decomposition,
// turning "Cardiología" into "Cardiologia".
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// LetterPrefix returns the first n letters of s after accent folding, upper-cased.
// Non-letters are skipped.
func LetterPrefix(s string, n int) string {
	var b strings.Builder
	count := 0
	for _, r := range FoldAccents(s) {
		if count == n {
			break
		}
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
			count++
		}
	}
	return b.String()
}
