// Package tagger adapts the kagome morphological analyzer to the token shape used by
// the romanizer.
package tagger

import (
	"fmt"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

const DefaultDictionary = "ipa"

// Tagger segments text with a loaded dictionary. Loading is slow, so build one Tagger
// and share it; Tokenize only reads from it.
type Tagger struct {
	t      *tokenizer.Tokenizer
	schema Schema
}

// Dictionaries lists the dictionary names accepted by New.
func Dictionaries() []string {
	return []string{IPA.Name, UniDic.Name}
}

func New(dictionary string) (*Tagger, error) {
	var (
		d      *dict.Dict
		schema Schema
	)
	switch dictionary {
	case "", IPA.Name:
		d, schema = ipa.Dict(), IPA
	case UniDic.Name:
		d, schema = uni.Dict(), UniDic
	default:
		return nil, fmt.Errorf("unknown dictionary %q", dictionary)
	}

	t, err := tokenizer.New(d, tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("creating tokenizer: %w", err)
	}
	return &Tagger{t: t, schema: schema}, nil
}

func (tg *Tagger) Schema() Schema {
	return tg.schema
}

// Tokenize returns the morphemes of text in order of appearance.
func (tg *Tagger) Tokenize(text string) ([]Token, error) {
	ktoks := tg.t.Tokenize(text)
	out := make([]Token, 0, len(ktoks))
	for _, kt := range ktoks {
		if kt.Class == tokenizer.DUMMY {
			continue
		}
		tok, err := FromFeatures(tg.schema, kt.Surface, kt.Features())
		if err != nil {
			return nil, fmt.Errorf("token %q at %d: %w", kt.Surface, kt.Start, err)
		}
		out = append(out, tok)
	}
	return out, nil
}
