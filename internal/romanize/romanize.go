// Package romanize rewrites mixed Japanese text into Latin script. Tokens from a
// morphological tagger are located one by one in the evolving output and replaced by
// their romaji, with word spacing inferred from which tokens sit next to each other.
package romanize

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/text/unicode/norm"

	"github.com/jusunglee/romanize/internal/kana"
	"github.com/jusunglee/romanize/internal/tagger"
)

// Tokenizer segments text into morphemes in order of appearance.
type Tokenizer interface {
	Tokenize(text string) ([]tagger.Token, error)
}

type Config struct {
	// Transliterate turns a kana reading into romaji, marking long vowels with '-'.
	// Defaults to kana.ToRomaji.
	Transliterate func(kana string) string
	// PreRomanize runs over the whole input before tokenization. Optional.
	PreRomanize func(text string) string
	Logger      *slog.Logger
}

// Romanizer is safe for concurrent use as long as its Tokenizer is.
type Romanizer struct {
	tokenizer     Tokenizer
	transliterate func(string) string
	preRomanize   func(string) string
	log           *slog.Logger
}

func New(tok Tokenizer, cfg Config) *Romanizer {
	r := &Romanizer{
		tokenizer:     tok,
		transliterate: cfg.Transliterate,
		preRomanize:   cfg.PreRomanize,
		log:           cfg.Logger,
	}
	if r.transliterate == nil {
		r.transliterate = kana.ToRomaji
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	return r
}

// Romanize returns the romanized form of text, or an error. It never returns a
// partially rewritten string.
func (r *Romanizer) Romanize(text string) (string, error) {
	if r.preRomanize != nil {
		text = r.preRomanize(text)
	}

	tokens, err := r.tokenizer.Tokenize(text)
	if err != nil {
		return "", fmt.Errorf("tokenizing: %w", err)
	}

	out, err := Reconstruct(text, tokens, r.transliterate)
	if err != nil {
		var lerr *LookupError
		if errors.As(err, &lerr) {
			r.log.Debug("lost alignment", "surface", lerr.Surface, "from", lerr.From, "input", text)
		}
		return "", err
	}
	return out, nil
}

// Reconstruct walks tokens over text and returns the NFKC-normalized result.
//
// Phonetic tokens are found with an unrestricted search and their first occurrence is
// replaced. Opaque tokens that need a leading space are searched for from the cursor
// instead, since Latin text is far more likely to repeat verbatim. The cursor is the
// position at which the previous non-punctuation token was found, before any rewrite.
func Reconstruct(text string, tokens []tagger.Token, transliterate func(string) string) (string, error) {
	buf := buffer{s: text}
	cursor := 0
	pending := false

	for _, tok := range tokens {
		cat, reading, err := Classify(tok)
		if err != nil {
			return "", err
		}
		if cat == Punctuation {
			pending = false
			continue
		}

		idx, err := buf.find(tok.Surface)
		if err != nil {
			return "", err
		}

		if cat == Phonetic {
			repl := transliterate(reading)
			if tok.Noun {
				repl = upperFirst(repl)
			}
			repl = EncodeMacrons(repl)
			if needsSpace(cat, pending, tok.Surface) {
				repl = " " + repl
			}
			buf.replaceAt(idx, len(tok.Surface), repl)
			pending = true
		} else {
			if needsSpace(cat, pending, tok.Surface) {
				at, err := buf.findFrom(tok.Surface, cursor)
				if err != nil {
					return "", err
				}
				buf.insertAt(at, " ")
			}
			pending = false
		}

		cursor = idx
	}

	return norm.NFKC.String(buf.String()), nil
}
