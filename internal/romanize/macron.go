package romanize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// combiningMacron composes with the vowel before it under NFKC.
const combiningMacron = "\u0304"

// EncodeMacrons turns the transliterator's hyphen length marks into combining macrons.
func EncodeMacrons(s string) string {
	return strings.ReplaceAll(s, "-", combiningMacron)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
