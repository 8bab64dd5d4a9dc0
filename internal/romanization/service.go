// Package romanization serves romanization requests: it picks the pipeline for the
// requested language, consults the result cache and records metrics.
package romanization

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/jusunglee/romanize/internal/db"
	"github.com/jusunglee/romanize/internal/metrics"
	"github.com/jusunglee/romanize/internal/romanize"
	"github.com/jusunglee/romanize/internal/transliteration"
)

type Language string

const (
	LanguageJapanese Language = "ja"
	LanguageChinese  Language = "zh"
	// LanguageAuto treats Han-only text as Chinese and everything else as Japanese.
	LanguageAuto Language = "auto"
)

// ParseLanguage accepts ja, zh and auto; an empty string means ja.
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case "", LanguageJapanese:
		return LanguageJapanese, nil
	case LanguageChinese, LanguageAuto:
		return Language(s), nil
	default:
		return "", fmt.Errorf("unsupported language %q", s)
	}
}

// Romanizer is the Japanese pipeline.
type Romanizer interface {
	Romanize(text string) (string, error)
}

type Result struct {
	Input    string   `json:"input"`
	Output   string   `json:"output"`
	Language Language `json:"language"`
	Cached   bool     `json:"cached"`
}

type Service struct {
	romanizer  Romanizer
	repo       db.Repository
	log        *slog.Logger
	dictionary string
}

// NewService builds a Service. repo may be nil, in which case nothing is cached.
func NewService(r Romanizer, repo db.Repository, log *slog.Logger, dictionary string) *Service {
	return &Service{romanizer: r, repo: repo, log: log, dictionary: dictionary}
}

func (s *Service) Dictionary() string {
	return s.dictionary
}

func (s *Service) Romanize(ctx context.Context, text string, lang Language) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	lang = resolve(text, lang)

	if s.repo != nil {
		cached, err := s.repo.GetRomanization(ctx, db.GetRomanizationParams{
			Input:      text,
			Language:   string(lang),
			Dictionary: s.dictionary,
		})
		if err == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			if err := s.repo.TouchRomanization(ctx, cached.ID); err != nil {
				s.log.WarnContext(ctx, "recording cache hit", "id", cached.ID, "error", err)
			}
			return Result{Input: text, Output: cached.Output, Language: lang, Cached: true}, nil
		}
		if !db.IsNoRows(err) {
			metrics.CacheLookups.WithLabelValues("error").Inc()
			return Result{}, fmt.Errorf("romanization cache lookup failed: %w", err)
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	start := time.Now()
	out, err := s.romanize(text, lang)
	metrics.RomanizationDuration.WithLabelValues(string(lang)).Observe(time.Since(start).Seconds())
	metrics.RomanizationsTotal.WithLabelValues(string(lang), resultLabel(err)).Inc()
	if err != nil {
		return Result{}, err
	}

	if s.repo != nil {
		if _, err := s.repo.UpsertRomanization(ctx, db.UpsertRomanizationParams{
			Input:      text,
			Output:     out,
			Language:   string(lang),
			Dictionary: s.dictionary,
		}); err != nil {
			return Result{}, fmt.Errorf("failed to cache romanization: %w", err)
		}
	}

	return Result{Input: text, Output: out, Language: lang}, nil
}

// BatchError reports the first text of a batch that failed.
type BatchError struct {
	// Index is the position of Text in the batch; for duplicates, the first one.
	Index int
	Text  string
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("romanizing text %d (%q): %v", e.Index, e.Text, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// RomanizeBatch romanizes texts with at most workers running at once. Duplicate texts
// are only romanized once. Results line up with texts; the first failure cancels the
// remaining work and is returned as a *BatchError.
func (s *Service) RomanizeBatch(ctx context.Context, texts []string, lang Language, workers int) ([]Result, error) {
	metrics.BatchSize.Observe(float64(len(texts)))
	if len(texts) == 0 {
		return nil, nil
	}

	unique := lo.Uniq(texts)
	results := make([]Result, len(unique))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, text := range unique {
		g.Go(func() error {
			res, err := s.Romanize(gctx, text, lang)
			if err != nil {
				return &BatchError{Index: lo.IndexOf(texts, text), Text: text, Err: err}
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byInput := lo.SliceToMap(results, func(r Result) (string, Result) {
		return r.Input, r
	})
	return lo.Map(texts, func(text string, _ int) Result {
		return byInput[text]
	}), nil
}

func (s *Service) romanize(text string, lang Language) (string, error) {
	if lang == LanguageChinese {
		return transliteration.RomanizeChinese(text), nil
	}
	return s.romanizer.Romanize(text)
}

func resolve(text string, lang Language) Language {
	if lang != LanguageAuto {
		return lang
	}
	if transliteration.DetectScript(text) == transliteration.ScriptChinese {
		return LanguageChinese
	}
	return LanguageJapanese
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, romanize.ErrLookup):
		return "lookup_error"
	case errors.Is(err, romanize.ErrMalformedToken):
		return "malformed"
	default:
		return "error"
	}
}
