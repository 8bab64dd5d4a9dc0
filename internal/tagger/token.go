package tagger

import (
	"errors"
	"slices"
)

// ErrMalformedFeatures is returned when the tagger hands back a token whose feature
// list does not even carry a part of speech.
var ErrMalformedFeatures = errors.New("malformed feature list")

// Schema describes where a dictionary keeps the fields the romanizer reads.
type Schema struct {
	Name               string
	PronunciationIndex int
	SymbolPOS          []string
	NounPOS            string
}

var (
	// IPA is the layout of IPADIC: POS, three POS subdivisions, conjugation type and
	// form, base form, reading, pronunciation.
	IPA = Schema{
		Name:               "ipa",
		PronunciationIndex: 8,
		SymbolPOS:          []string{"記号"},
		NounPOS:            "名詞",
	}

	// UniDic keeps the surface pronunciation one column further right and splits
	// symbols into auxiliary symbols and whitespace.
	UniDic = Schema{
		Name:               "uni",
		PronunciationIndex: 9,
		SymbolPOS:          []string{"補助記号", "空白"},
		NounPOS:            "名詞",
	}
)

// Token is one morpheme with the features the romanizer needs pulled out by name.
type Token struct {
	Surface string
	POS     string
	// Pronunciation is only meaningful when HasPronunciation is set; unknown words
	// carry a short feature list without one.
	Pronunciation    string
	HasPronunciation bool
	Symbol           bool
	Noun             bool
	Features         []string
}

// FromFeatures builds a Token from a raw feature list laid out as schema describes.
func FromFeatures(schema Schema, surface string, features []string) (Token, error) {
	if len(features) == 0 || features[0] == "" {
		return Token{}, ErrMalformedFeatures
	}

	tok := Token{
		Surface:  surface,
		POS:      features[0],
		Symbol:   slices.Contains(schema.SymbolPOS, features[0]),
		Noun:     features[0] == schema.NounPOS,
		Features: features,
	}
	if schema.PronunciationIndex < len(features) {
		tok.Pronunciation = features[schema.PronunciationIndex]
		tok.HasPronunciation = true
	}
	return tok, nil
}
