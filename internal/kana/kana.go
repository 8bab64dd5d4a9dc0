// Package kana renders Japanese kana as Hepburn romaji. Long vowels written with the
// prolonged sound mark come out as an ASCII hyphen ("タイヨー" -> "taiyo-").
package kana

import "strings"

const (
	katakanaStart = 0x30A1
	katakanaEnd   = 0x30FC

	// folding range: ァ..ヶ map onto ぁ..ゖ
	foldStart  = 0x30A1
	foldEnd    = 0x30F6
	foldOffset = 0x60

	prolonged = 'ー'
	sokuon    = 'っ'
	moraicN   = 'ん'
)

var monographs = map[rune]string{
	'あ': "a", 'い': "i", 'う': "u", 'え': "e", 'お': "o",
	'か': "ka", 'き': "ki", 'く': "ku", 'け': "ke", 'こ': "ko",
	'が': "ga", 'ぎ': "gi", 'ぐ': "gu", 'げ': "ge", 'ご': "go",
	'さ': "sa", 'し': "shi", 'す': "su", 'せ': "se", 'そ': "so",
	'ざ': "za", 'じ': "ji", 'ず': "zu", 'ぜ': "ze", 'ぞ': "zo",
	'た': "ta", 'ち': "chi", 'つ': "tsu", 'て': "te", 'と': "to",
	'だ': "da", 'ぢ': "ji", 'づ': "zu", 'で': "de", 'ど': "do",
	'な': "na", 'に': "ni", 'ぬ': "nu", 'ね': "ne", 'の': "no",
	'は': "ha", 'ひ': "hi", 'ふ': "fu", 'へ': "he", 'ほ': "ho",
	'ば': "ba", 'び': "bi", 'ぶ': "bu", 'べ': "be", 'ぼ': "bo",
	'ぱ': "pa", 'ぴ': "pi", 'ぷ': "pu", 'ぺ': "pe", 'ぽ': "po",
	'ま': "ma", 'み': "mi", 'む': "mu", 'め': "me", 'も': "mo",
	'や': "ya", 'ゆ': "yu", 'よ': "yo",
	'ら': "ra", 'り': "ri", 'る': "ru", 'れ': "re", 'ろ': "ro",
	'わ': "wa", 'ゐ': "wi", 'ゑ': "we", 'を': "wo",
	'ゔ': "vu",
	'ぁ': "a", 'ぃ': "i", 'ぅ': "u", 'ぇ': "e", 'ぉ': "o",
	'ゃ': "ya", 'ゅ': "yu", 'ょ': "yo", 'ゎ': "wa",
	'ゕ': "ka", 'ゖ': "ke",
	// katakana-only forms with no hiragana counterpart
	'ヷ': "va", 'ヸ': "vi", 'ヹ': "ve", 'ヺ': "vo",
}

var digraphs = map[string]string{
	"きゃ": "kya", "きゅ": "kyu", "きょ": "kyo",
	"ぎゃ": "gya", "ぎゅ": "gyu", "ぎょ": "gyo",
	"しゃ": "sha", "しゅ": "shu", "しょ": "sho", "しぇ": "she",
	"じゃ": "ja", "じゅ": "ju", "じょ": "jo", "じぇ": "je",
	"ちゃ": "cha", "ちゅ": "chu", "ちょ": "cho", "ちぇ": "che",
	"ぢゃ": "ja", "ぢゅ": "ju", "ぢょ": "jo",
	"にゃ": "nya", "にゅ": "nyu", "にょ": "nyo",
	"ひゃ": "hya", "ひゅ": "hyu", "ひょ": "hyo",
	"びゃ": "bya", "びゅ": "byu", "びょ": "byo",
	"ぴゃ": "pya", "ぴゅ": "pyu", "ぴょ": "pyo",
	"みゃ": "mya", "みゅ": "myu", "みょ": "myo",
	"りゃ": "rya", "りゅ": "ryu", "りょ": "ryo",
	"ふぁ": "fa", "ふぃ": "fi", "ふぇ": "fe", "ふぉ": "fo", "ふゅ": "fyu",
	"ゔぁ": "va", "ゔぃ": "vi", "ゔぇ": "ve", "ゔぉ": "vo", "ゔゅ": "vyu",
	"てぃ": "ti", "でぃ": "di", "とぅ": "tu", "どぅ": "du",
	"てゅ": "tyu", "でゅ": "dyu",
	"うぃ": "wi", "うぇ": "we", "うぉ": "wo",
	"つぁ": "tsa", "つぃ": "tsi", "つぇ": "tse", "つぉ": "tso",
	"いぇ": "ye",
	"くぁ": "kwa", "ぐぁ": "gwa",
}

type unitKind int

const (
	unitOther unitKind = iota
	unitKana
	unitSokuon
	unitMoraicN
)

type unit struct {
	latin string
	kind  unitKind
}

// ToRomaji converts every kana run in s to romaji. Runes that are not kana are copied
// through unchanged.
func ToRomaji(s string) string {
	units := split(s)

	var b strings.Builder
	b.Grow(len(s))
	for i, u := range units {
		var next unit
		if i+1 < len(units) {
			next = units[i+1]
		}
		switch u.kind {
		case unitSokuon:
			b.WriteString(geminate(next))
		case unitMoraicN:
			b.WriteByte('n')
			if next.kind == unitKana && strings.IndexByte("aeiouy", next.latin[0]) >= 0 {
				b.WriteByte('\'')
			}
		default:
			b.WriteString(u.latin)
		}
	}
	return b.String()
}

// IsKatakana reports whether s is non-empty and made only of katakana, counting the
// prolonged sound mark.
func IsKatakana(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < katakanaStart || r > katakanaEnd {
			return false
		}
	}
	return true
}

func split(s string) []unit {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = fold(r)
	}

	units := make([]unit, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if i+1 < len(runes) {
			if latin, ok := digraphs[string(runes[i:i+2])]; ok {
				units = append(units, unit{latin: latin, kind: unitKana})
				i++
				continue
			}
		}
		switch {
		case r == sokuon:
			units = append(units, unit{kind: unitSokuon})
		case r == moraicN:
			units = append(units, unit{latin: "n", kind: unitMoraicN})
		case r == prolonged:
			units = append(units, unit{latin: "-", kind: unitOther})
		default:
			if latin, ok := monographs[r]; ok {
				units = append(units, unit{latin: latin, kind: unitKana})
			} else {
				units = append(units, unit{latin: string(r), kind: unitOther})
			}
		}
	}
	return units
}

// geminate returns the doubled consonant a sokuon contributes before next, or nothing
// when next does not start with a consonant.
func geminate(next unit) string {
	if next.kind != unitKana || next.latin == "" {
		return ""
	}
	c := next.latin[0]
	if strings.IndexByte("aeioun", c) >= 0 {
		return ""
	}
	if strings.HasPrefix(next.latin, "ch") {
		return "t"
	}
	return string(c)
}

func fold(r rune) rune {
	if r >= foldStart && r <= foldEnd {
		return r - foldOffset
	}
	return r
}
