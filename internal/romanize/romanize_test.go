package romanize

import (
	"errors"
	"testing"

	"github.com/jusunglee/romanize/internal/kana"
	"github.com/jusunglee/romanize/internal/tagger"
	"github.com/jusunglee/romanize/internal/transliteration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

// Segmentations as IPADIC produces them for the titles below.
var scenarios = []struct {
	input  string
	tokens []tagger.Token
	want   string
}{
	{
		input:  "太陽のKiss",
		tokens: []tagger.Token{noun("太陽", "タイヨー"), particle("の", "ノ"), unknown("Kiss")},
		want:   "Taiyō no Kiss",
	},
	{
		input:  "エブリデイワールド",
		tokens: []tagger.Token{unknown("エブリデイワールド")},
		want:   "Eburideiwārudo",
	},
	{
		input: "U&I ～夕日の綺麗なあの丘で～ U&I",
		tokens: []tagger.Token{
			unknown("U"), symbol("&"), unknown("I"), symbol(" "), symbol("～"),
			noun("夕日", "ユーヒ"), particle("の", "ノ"), noun("綺麗", "キレイ"),
			word("助動詞", "な", "ナ"), word("連体詞", "あの", "アノ"), noun("丘", "オカ"),
			particle("で", "デ"), symbol("～"), symbol(" "),
			unknown("U"), symbol("&"), unknown("I"),
		},
		want: "U&I ~Yūhi no Kirei na ano Oka de~ U&I",
	},
	{
		input: "ふでペン ～ボールペン～ [GAME Mix]",
		tokens: []tagger.Token{
			word("動詞", "ふ", "フ"), particle("で", "デ"), noun("ペン", "ペン"),
			symbol(" "), symbol("～"), noun("ボールペン", "ボールペン"), symbol("～"), symbol(" "),
			symbol("["), unknown("GAME"), symbol(" "), unknown("Mix"), symbol("]"),
		},
		want: "fu de Pen ~Bōrupen~ [GAME Mix]",
	},
	{
		input: "空の境界 「殺人考察（後）」Original Soundtrack",
		tokens: []tagger.Token{
			noun("空", "ソラ"), particle("の", "ノ"), noun("境界", "キョーカイ"), symbol(" "),
			symbol("「"), noun("殺人", "サツジン"), noun("考察", "コーサツ"), symbol("（"),
			noun("後", "ゴ"), symbol("）"), symbol("」"),
			unknown("Original"), symbol(" "), unknown("Soundtrack"),
		},
		want: "Sora no Kyōkai 「Satsujin Kōsatsu(Go)」Original Soundtrack",
	},
}

func TestReconstructScenarios(t *testing.T) {
	for _, sc := range scenarios {
		t.Run(sc.input, func(t *testing.T) {
			got, err := Reconstruct(sc.input, sc.tokens, kana.ToRomaji)
			require.NoError(t, err)
			assert.Equal(t, sc.want, got)
		})
	}
}

func TestRomanizeUsesTokenizer(t *testing.T) {
	tok := &fakeTokenizer{tokens: map[string][]tagger.Token{}}
	for _, sc := range scenarios {
		tok.tokens[sc.input] = sc.tokens
	}
	r := New(tok, Config{})

	for _, sc := range scenarios {
		got, err := r.Romanize(sc.input)
		require.NoError(t, err)
		assert.Equal(t, sc.want, got)
	}
	assert.Len(t, tok.seen, len(scenarios))
}

func TestNormalizationIsIdempotent(t *testing.T) {
	for _, sc := range scenarios {
		got, err := Reconstruct(sc.input, sc.tokens, kana.ToRomaji)
		require.NoError(t, err)
		assert.Equal(t, got, norm.NFKC.String(got))
	}
}

func TestNoHyphenSurvives(t *testing.T) {
	got, err := Reconstruct("ケーキ", []tagger.Token{noun("ケーキ", "ケーキ")}, kana.ToRomaji)
	require.NoError(t, err)
	assert.Equal(t, "Kēki", got)
	assert.NotContains(t, got, "-")
}

func TestNonNounKeepsTransliteratorCase(t *testing.T) {
	got, err := Reconstruct("たべる", []tagger.Token{word("動詞", "たべる", "タベル")}, kana.ToRomaji)
	require.NoError(t, err)
	assert.Equal(t, "taberu", got)
}

func TestPunctuationIsPreservedWithoutSpaces(t *testing.T) {
	tokens := []tagger.Token{noun("猫", "ネコ"), symbol("、"), noun("犬", "イヌ"), symbol("。")}
	got, err := Reconstruct("猫、犬。", tokens, kana.ToRomaji)
	require.NoError(t, err)
	assert.Equal(t, "Neko、Inu。", got)
}

func TestPhoneticReplacesOnlyFirstOccurrence(t *testing.T) {
	tokens := []tagger.Token{noun("ペン", "ペン"), particle("と", "ト"), noun("ペン", "ペン")}

	// After the first token only one of the two ペン may have been rewritten.
	half, err := Reconstruct("ペンとペン", tokens[:1], kana.ToRomaji)
	require.NoError(t, err)
	assert.Equal(t, "Penとペン", half)

	got, err := Reconstruct("ペンとペン", tokens, kana.ToRomaji)
	require.NoError(t, err)
	assert.Equal(t, "Pen to Pen", got)
}

func TestOpaqueSpaceIsPlacedFromCursor(t *testing.T) {
	// The second AB is found at offset 0 by the unrestricted search, but the space
	// belongs in front of the occurrence after the cursor.
	tokens := []tagger.Token{unknown("AB"), noun("太", "タ"), unknown("AB")}
	got, err := Reconstruct("AB太AB", tokens, kana.ToRomaji)
	require.NoError(t, err)
	assert.Equal(t, "ABTa AB", got)
}

func TestOpaqueAfterOpaqueGetsNoSpace(t *testing.T) {
	tokens := []tagger.Token{unknown("GAME"), unknown("2")}
	got, err := Reconstruct("GAME2", tokens, kana.ToRomaji)
	require.NoError(t, err)
	assert.Equal(t, "GAME2", got)
}

func TestOpaqueBracketAfterWordGetsNoSpace(t *testing.T) {
	tokens := []tagger.Token{noun("空", "ソラ"), unknown("[")}
	got, err := Reconstruct("空[", tokens, kana.ToRomaji)
	require.NoError(t, err)
	assert.Equal(t, "Sora[", got)
}

func TestRepeatedKanjiAreRewrittenInOrder(t *testing.T) {
	tokens := []tagger.Token{noun("日", "ニチ"), particle("の", "ノ"), noun("日", "ヒ")}
	got, err := Reconstruct("日の日", tokens, kana.ToRomaji)
	require.NoError(t, err)
	assert.Equal(t, "Nichi no Hi", got)
}

func TestPhoneticSearchCanHitRewrittenText(t *testing.T) {
	// The unrestricted search for a phonetic surface is not bounded by the cursor, so
	// a Latin surface that already occurs inside earlier romaji is matched there.
	tokens := []tagger.Token{noun("日", "ニチ"), noun("N", "エヌ")}
	got, err := Reconstruct("日N", tokens, kana.ToRomaji)
	require.NoError(t, err)
	assert.Equal(t, " EnuichiN", got)
}

func TestLookupFailure(t *testing.T) {
	tokens := []tagger.Token{noun("太陽", "タイヨー"), noun("月", "ツキ")}
	got, err := Reconstruct("太陽", tokens, kana.ToRomaji)
	assert.Empty(t, got)
	require.ErrorIs(t, err, ErrLookup)

	var lerr *LookupError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, "月", lerr.Surface)
}

func TestLookupFailureInBoundedSearch(t *testing.T) {
	// "X" only exists before the cursor once 太 has been seen after it.
	tokens := []tagger.Token{unknown("X"), noun("太", "タ"), unknown("X")}
	_, err := Reconstruct("X太", tokens, kana.ToRomaji)
	require.ErrorIs(t, err, ErrLookup)

	var lerr *LookupError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, len("X"), lerr.From)
}

func TestMalformedTokenFails(t *testing.T) {
	_, err := Reconstruct("太陽", []tagger.Token{{Surface: "太陽"}}, kana.ToRomaji)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestTokenizerErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	r := New(&fakeTokenizer{err: boom}, Config{})
	got, err := r.Romanize("太陽")
	assert.Empty(t, got)
	assert.ErrorIs(t, err, boom)
}

func TestPreRomanizeRunsBeforeTokenization(t *testing.T) {
	tok := &fakeTokenizer{tokens: map[string][]tagger.Token{
		"gimchiの歌": {unknown("gimchi"), particle("の", "ノ"), noun("歌", "ウタ")},
	}}
	r := New(tok, Config{PreRomanize: transliteration.RomanizeHangul})

	got, err := r.Romanize("김치の歌")
	require.NoError(t, err)
	assert.Equal(t, []string{"gimchiの歌"}, tok.seen)
	assert.Equal(t, "gimchino Uta", got)
}

func TestCustomTransliterator(t *testing.T) {
	tok := &fakeTokenizer{tokens: map[string][]tagger.Token{
		"太陽": {noun("太陽", "タイヨー")},
	}}
	r := New(tok, Config{Transliterate: func(string) string { return "sun" }})

	got, err := r.Romanize("太陽")
	require.NoError(t, err)
	assert.Equal(t, "Sun", got)
}
