package romanize

import (
	"testing"

	"github.com/jusunglee/romanize/internal/tagger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		tok     tagger.Token
		cat     Category
		reading string
	}{
		{"symbol", symbol("～"), Punctuation, ""},
		{"known word uses pronunciation", noun("太陽", "タイヨー"), Phonetic, "タイヨー"},
		{"unknown katakana uses surface", unknown("エブリデイワールド"), Phonetic, "エブリデイワールド"},
		{"unknown latin", unknown("Kiss"), Opaque, ""},
		{"unknown mixed kana", unknown("ペンふ"), Opaque, ""},
		{"symbol with pronunciation stays punctuation", tagger.Token{Surface: "、", POS: "記号", Symbol: true, HasPronunciation: true, Pronunciation: "、"}, Punctuation, ""},
		{"empty pronunciation still counts as present", tagger.Token{Surface: "x", POS: "名詞", HasPronunciation: true}, Phonetic, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, reading, err := Classify(tt.tok)
			require.NoError(t, err)
			assert.Equal(t, tt.cat, cat)
			assert.Equal(t, tt.reading, reading)
		})
	}
}

func TestClassifyMalformed(t *testing.T) {
	_, _, err := Classify(tagger.Token{Surface: "太陽"})
	assert.ErrorIs(t, err, ErrMalformedToken)

	_, _, err = Classify(tagger.Token{POS: "名詞"})
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "punctuation", Punctuation.String())
	assert.Equal(t, "phonetic", Phonetic.String())
	assert.Equal(t, "opaque", Opaque.String())
	assert.Equal(t, "Category(7)", Category(7).String())
}
