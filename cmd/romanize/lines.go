package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jusunglee/romanize/internal/romanization"
)

// chunkSize bounds how many stdin lines are held before their output is written.
const chunkSize = 256

type batchRomanizer interface {
	RomanizeBatch(ctx context.Context, texts []string, lang romanization.Language, workers int) ([]romanization.Result, error)
}

// romanizeStream romanizes r line by line, writing one output line per input line.
func romanizeStream(ctx context.Context, svc batchRomanizer, r io.Reader, w io.Writer, lang romanization.Language, workers int) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 1
	chunk := make([]string, 0, chunkSize)
	for scanner.Scan() {
		chunk = append(chunk, scanner.Text())
		if len(chunk) == chunkSize {
			if err := romanizeLines(ctx, svc, chunk, lineNo, lang, workers, w); err != nil {
				return err
			}
			lineNo += len(chunk)
			chunk = chunk[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return romanizeLines(ctx, svc, chunk, lineNo, lang, workers, w)
}

// romanizeLines writes the romanization of each line to w. Blank lines are copied
// through. firstLine is the line number of lines[0], used in errors.
func romanizeLines(ctx context.Context, svc batchRomanizer, lines []string, firstLine int, lang romanization.Language, workers int, w io.Writer) error {
	var (
		texts []string
		at    []int
	)
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			texts = append(texts, line)
			at = append(at, i)
		}
	}

	out := slices.Clone(lines)
	if len(texts) > 0 {
		results, err := svc.RomanizeBatch(ctx, texts, lang, workers)
		if err != nil {
			var batchErr *romanization.BatchError
			if errors.As(err, &batchErr) {
				return fmt.Errorf("line %d: %q: %w", firstLine+at[batchErr.Index], batchErr.Text, batchErr.Err)
			}
			return err
		}
		for i, res := range results {
			out[at[i]] = res.Output
		}
	}

	bw := bufio.NewWriter(w)
	for _, line := range out {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
