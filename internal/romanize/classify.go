package romanize

import (
	"fmt"

	"github.com/jusunglee/romanize/internal/kana"
	"github.com/jusunglee/romanize/internal/tagger"
)

type Category int

const (
	// Punctuation is left exactly as written.
	Punctuation Category = iota
	// Phonetic tokens have a kana reading and are rewritten in romaji.
	Phonetic
	// Opaque tokens (Latin letters, digits, unanalyzed text) are kept but may get a
	// separating space.
	Opaque
)

func (c Category) String() string {
	switch c {
	case Punctuation:
		return "punctuation"
	case Phonetic:
		return "phonetic"
	case Opaque:
		return "opaque"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Classify sorts tok into one of the three categories. For Phonetic tokens it also
// returns the kana to transliterate: the dictionary pronunciation when there is one,
// otherwise the surface itself if it is all katakana.
func Classify(tok tagger.Token) (Category, string, error) {
	if tok.POS == "" || tok.Surface == "" {
		return 0, "", fmt.Errorf("%w: surface %q, part of speech %q", ErrMalformedToken, tok.Surface, tok.POS)
	}
	if tok.Symbol {
		return Punctuation, "", nil
	}
	if tok.HasPronunciation {
		return Phonetic, tok.Pronunciation, nil
	}
	if kana.IsKatakana(tok.Surface) {
		return Phonetic, tok.Surface, nil
	}
	return Opaque, "", nil
}
