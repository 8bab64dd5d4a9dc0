package transliteration

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

var pinyinArgs pinyin.Args

func init() {
	pinyinArgs = pinyin.NewArgs()
	pinyinArgs.Style = pinyin.Normal
}

// RomanizeChinese writes each Han character as toneless pinyin. Adjacent Han characters
// are separated by a space; other runes are copied as they are.
func RomanizeChinese(text string) string {
	var b strings.Builder
	prevHan := false
	for _, r := range text {
		if !unicode.Is(unicode.Han, r) {
			b.WriteRune(r)
			prevHan = false
			continue
		}
		py := pinyin.SinglePinyin(r, pinyinArgs)
		if len(py) == 0 {
			b.WriteRune(r)
			prevHan = false
			continue
		}
		if prevHan {
			b.WriteByte(' ')
		}
		b.WriteString(py[0])
		prevHan = true
	}
	return b.String()
}
