package transliteration

import "strings"

const (
	syllableFirst = 0xAC00
	syllableLast  = 0xD7A3
	finalCount    = 28
	medialCount   = 21

	initialRieul  = 5
	initialSilent = 11 // ㅇ
	finalRieul    = 8
)

// Revised Romanization of Korean, indexed by the jamo positions of a precomposed syllable.
var (
	initials = [...]string{
		"g", "kk", "n", "d", "tt", "r", "m", "b", "pp",
		"s", "ss", "", "j", "jj", "ch", "k", "t", "p", "h",
	}
	medials = [...]string{
		"a", "ae", "ya", "yae", "eo", "e", "yeo", "ye", "o",
		"wa", "wae", "oe", "yo", "u", "wo", "we", "wi", "yu",
		"eu", "ui", "i",
	}
	// codas are finals as pronounced before a consonant or at the end of a word, where
	// every final collapses to one of seven sounds.
	codas = [...]string{
		"", "k", "k", "k", "n", "n", "n", "t", "l", "k",
		"m", "l", "l", "l", "p", "l", "m", "p", "p",
		"t", "t", "ng", "t", "t", "k", "t", "p", "t",
	}
	// liaisons split a final that runs into a following vowel: coda stays on this
	// syllable, onset becomes the initial of the next. 한국어 is hangugeo, 닭이 is dalgi.
	liaisons = [...]struct{ coda, onset string }{
		{"", ""}, {"", "g"}, {"", "kk"}, {"k", "s"}, {"", "n"}, {"n", "j"}, {"", "n"},
		{"", "d"}, {"", "r"}, {"l", "g"}, {"l", "m"}, {"l", "b"}, {"l", "s"}, {"l", "t"},
		{"l", "p"}, {"", "r"}, {"", "m"}, {"", "b"}, {"p", "s"}, {"", "s"}, {"", "ss"},
		{"ng", ""}, {"", "j"}, {"", "ch"}, {"", "k"}, {"", "t"}, {"", "p"}, {"", ""},
	}
)

type syllable struct {
	initial, medial, final int
}

func decompose(r rune) (syllable, bool) {
	if r < syllableFirst || r > syllableLast {
		return syllable{}, false
	}
	code := int(r - syllableFirst)
	return syllable{
		initial: code / (finalCount * medialCount),
		medial:  (code / finalCount) % medialCount,
		final:   code % finalCount,
	}, true
}

// RomanizeHangul replaces every precomposed Hangul syllable in text with its Revised
// Romanization. Finals are written as pronounced: neutralized before consonants and at
// word ends, carried over onto a following vowel, and ㄹㄹ as "ll". Everything else,
// including bare jamo, is left in place so that the rest of the text can still be
// tokenized.
func RomanizeHangul(text string) string {
	if !containsHangul(text) {
		return text
	}

	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))

	onset, carried := "", false
	for i, r := range runes {
		s, ok := decompose(r)
		if !ok {
			b.WriteRune(r)
			continue
		}

		if carried {
			b.WriteString(onset)
		} else {
			b.WriteString(initials[s.initial])
		}
		carried = false
		b.WriteString(medials[s.medial])

		var next syllable
		nextOK := false
		if i+1 < len(runes) {
			next, nextOK = decompose(runes[i+1])
		}
		switch {
		case nextOK && next.initial == initialSilent:
			l := liaisons[s.final]
			b.WriteString(l.coda)
			onset, carried = l.onset, true
		case nextOK && s.final == finalRieul && next.initial == initialRieul:
			b.WriteString("l")
			onset, carried = "l", true
		default:
			b.WriteString(codas[s.final])
		}
	}
	return b.String()
}

func containsHangul(text string) bool {
	return strings.ContainsFunc(text, func(r rune) bool {
		return r >= syllableFirst && r <= syllableLast
	})
}
