package romanize

import "strings"

// buffer is the output text being rewritten in place while tokens are walked. Offsets
// are byte offsets into the current contents.
type buffer struct {
	s string
}

// find locates the first occurrence of sub anywhere in the buffer.
func (b *buffer) find(sub string) (int, error) {
	idx := strings.Index(b.s, sub)
	if idx < 0 {
		return 0, &LookupError{Surface: sub}
	}
	return idx, nil
}

// findFrom locates the first occurrence of sub at or after from. A from past the end
// of the buffer (possible once earlier spans shrank) searches nothing.
func (b *buffer) findFrom(sub string, from int) (int, error) {
	from = min(max(from, 0), len(b.s))
	idx := strings.Index(b.s[from:], sub)
	if idx < 0 {
		return 0, &LookupError{Surface: sub, From: from}
	}
	return from + idx, nil
}

// replaceAt swaps the n bytes at idx for repl.
func (b *buffer) replaceAt(idx, n int, repl string) {
	b.s = b.s[:idx] + repl + b.s[idx+n:]
}

func (b *buffer) insertAt(idx int, s string) {
	b.s = b.s[:idx] + s + b.s[idx:]
}

func (b *buffer) String() string {
	return b.s
}
