// Package transliteration romanizes scripts that the Japanese pipeline does not
// tokenize itself: Hangul is handled as a pre-pass, Mandarin on request.
package transliteration

import "unicode"

type Script string

const (
	ScriptLatin    Script = "latin"
	ScriptKorean   Script = "korean"
	ScriptJapanese Script = "japanese"
	ScriptChinese  Script = "chinese"
)

// DetectScript picks the dominant non-Latin script of text. Any kana makes the text
// Japanese, since Han characters alone cannot tell Japanese from Chinese.
func DetectScript(text string) Script {
	var hangul, han bool
	for _, r := range text {
		switch {
		case unicode.In(r, unicode.Hiragana, unicode.Katakana):
			return ScriptJapanese
		case unicode.Is(unicode.Hangul, r):
			hangul = true
		case unicode.Is(unicode.Han, r):
			han = true
		}
	}
	switch {
	case hangul:
		return ScriptKorean
	case han:
		return ScriptChinese
	default:
		return ScriptLatin
	}
}
