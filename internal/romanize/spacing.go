package romanize

import (
	"unicode"
	"unicode/utf8"
)

// needsSpace decides whether a word boundary has to be written before the token.
// pending is set after a phonetic token. Phonetic tokens always take the space; opaque
// ones only when they start with a letter or digit, so brackets stay attached.
func needsSpace(cat Category, pending bool, surface string) bool {
	if !pending {
		return false
	}
	switch cat {
	case Phonetic:
		return true
	case Opaque:
		r, _ := utf8.DecodeRuneInString(surface)
		return unicode.IsLetter(r) || unicode.IsNumber(r)
	default:
		return false
	}
}
