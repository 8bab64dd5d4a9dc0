package romanize

import (
	"github.com/jusunglee/romanize/internal/tagger"
)

func word(pos, surface, pron string) tagger.Token {
	return tagger.Token{
		Surface:          surface,
		POS:              pos,
		Pronunciation:    pron,
		HasPronunciation: true,
		Noun:             pos == "名詞",
	}
}

func noun(surface, pron string) tagger.Token     { return word("名詞", surface, pron) }
func particle(surface, pron string) tagger.Token { return word("助詞", surface, pron) }

// unknown is what the tagger emits for words missing from its dictionary: a short
// feature list without a pronunciation.
func unknown(surface string) tagger.Token {
	return tagger.Token{Surface: surface, POS: "名詞", Noun: true}
}

func symbol(surface string) tagger.Token {
	return tagger.Token{Surface: surface, POS: "記号", Symbol: true}
}

type fakeTokenizer struct {
	tokens map[string][]tagger.Token
	err    error
	seen   []string
}

func (f *fakeTokenizer) Tokenize(text string) ([]tagger.Token, error) {
	f.seen = append(f.seen, text)
	if f.err != nil {
		return nil, f.err
	}
	return f.tokens[text], nil
}
