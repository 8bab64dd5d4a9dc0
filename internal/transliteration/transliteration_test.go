package transliteration

import "testing"

func TestRomanizeHangul(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"페이커", "peikeo"},
		{"김치", "gimchi"},
		{"토르소", "toreuso"},
		{"꿈을꾸다", "kkumeulkkuda"},
		{"김치の歌", "gimchiの歌"},
		{"太陽のKiss", "太陽のKiss"},
		{"ㄱ", "ㄱ"},
		// finals are neutralized before consonants and at the end of a word
		{"박", "bak"},
		{"옷", "ot"},
		{"부엌", "bueok"},
		{"값", "gap"},
		// and carried over onto a following vowel
		{"한국어", "hangugeo"},
		{"닭이", "dalgi"},
		{"좋아", "joa"},
		{"앉아", "anja"},
		{"별로", "byeollo"},
		{"박 이", "bak i"},
	}
	for _, tt := range tests {
		got := RomanizeHangul(tt.input)
		if got != tt.want {
			t.Errorf("RomanizeHangul(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRomanizeChinese(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"不知火舞", "bu zhi huo wu"},
		{"大魔王", "da mo wang"},
		{"人人人 NA1", "ren ren ren NA1"},
		{"Faker", "Faker"},
	}
	for _, tt := range tests {
		got := RomanizeChinese(tt.input)
		if got != tt.want {
			t.Errorf("RomanizeChinese(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDetectScript(t *testing.T) {
	tests := []struct {
		input string
		want  Script
	}{
		{"페이커", ScriptKorean},
		{"不知火舞", ScriptChinese},
		{"空の境界", ScriptJapanese},
		{"エブリデイワールド", ScriptJapanese},
		{"U&I", ScriptLatin},
		{"", ScriptLatin},
	}
	for _, tt := range tests {
		got := DetectScript(tt.input)
		if got != tt.want {
			t.Errorf("DetectScript(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
