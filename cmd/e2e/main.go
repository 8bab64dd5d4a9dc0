package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/jusunglee/romanize/internal/db/sqlite"
	"github.com/jusunglee/romanize/internal/kana"
	"github.com/jusunglee/romanize/internal/logger"
	"github.com/jusunglee/romanize/internal/romanization"
	"github.com/jusunglee/romanize/internal/romanize"
	"github.com/jusunglee/romanize/internal/tagger"
	"github.com/jusunglee/romanize/internal/transliteration"
)

type scenario struct {
	input string
	want  string
}

var scenarios = []scenario{
	{"太陽のKiss", "Taiyō no Kiss"},
	{"エブリデイワールド", "Eburideiwārudo"},
	{"U&I ～夕日の綺麗なあの丘で～ U&I", "U&I ~Yūhi no Kirei na ano Oka de~ U&I"},
	{"ふでペン ～ボールペン～ [GAME Mix]", "fu de Pen ~Bōrupen~ [GAME Mix]"},
	{"空の境界 「殺人考察（後）」Original Soundtrack", "Sora no Kyōkai 「Satsujin Kōsatsu(Go)」Original Soundtrack"},
}

func main() {
	if err := run(); err != nil {
		slog.Error("E2E FAILED", "error", err)
		os.Exit(1)
	}
	slog.Info("E2E PASSED")
}

func run() error {
	_ = godotenv.Load()

	log := logger.New()
	ctx := context.Background()

	log.Info("Phase 1: Loading dictionary and cache...")
	dir, err := os.MkdirTemp("", "romanize-e2e-")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	repo, err := sqlite.New(ctx, filepath.Join(dir, "cache.db"))
	if err != nil {
		return fmt.Errorf("creating temp SQLite: %w", err)
	}
	defer repo.Close()

	start := time.Now()
	tok, err := tagger.New(tagger.DefaultDictionary)
	if err != nil {
		return fmt.Errorf("loading tagger: %w", err)
	}
	log.Info("dictionary loaded", "dictionary", tagger.DefaultDictionary, "took", time.Since(start))

	romanizer := romanize.New(tok, romanize.Config{Logger: log, PreRomanize: transliteration.RomanizeHangul})
	svc := romanization.NewService(romanizer, repo, log, tagger.DefaultDictionary)

	log.Info("Phase 2: Romanizing scenarios...")
	if err := checkScenarios(ctx, svc, false); err != nil {
		return err
	}

	log.Info("Phase 3: Re-reading scenarios from cache...")
	if err := checkScenarios(ctx, svc, true); err != nil {
		return err
	}

	log.Info("Phase 4: Batch romanization...")
	inputs := make([]string, 0, len(scenarios)*2)
	for _, sc := range scenarios {
		inputs = append(inputs, sc.input, sc.input)
	}
	results, err := svc.RomanizeBatch(ctx, inputs, romanization.LanguageJapanese, 4)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	for i, res := range results {
		if want := scenarios[i/2].want; res.Output != want {
			return fmt.Errorf("batch result %d: got %q, want %q", i, res.Output, want)
		}
	}

	log.Info("Phase 5: Lookup failures are reported...")
	if _, err := romanize.Reconstruct("太陽", []tagger.Token{{Surface: "月", POS: "名詞"}}, kana.ToRomaji); !errors.Is(err, romanize.ErrLookup) {
		return fmt.Errorf("expected a lookup error, got %v", err)
	}

	log.Info("Phase 6: Pruning the cache...")
	deleted, err := repo.DeleteRomanizationsUnusedSince(ctx, time.Now().Add(time.Minute))
	if err != nil {
		return fmt.Errorf("pruning: %w", err)
	}
	if deleted != int64(len(scenarios)) {
		return fmt.Errorf("pruned %d rows, want %d", deleted, len(scenarios))
	}

	return nil
}

func checkScenarios(ctx context.Context, svc *romanization.Service, wantCached bool) error {
	for _, sc := range scenarios {
		res, err := svc.Romanize(ctx, sc.input, romanization.LanguageJapanese)
		if err != nil {
			return fmt.Errorf("romanizing %q: %w", sc.input, err)
		}
		if res.Output != sc.want {
			return fmt.Errorf("romanizing %q: got %q, want %q", sc.input, res.Output, sc.want)
		}
		if res.Cached != wantCached {
			return fmt.Errorf("romanizing %q: cached=%v, want %v", sc.input, res.Cached, wantCached)
		}
		slog.Info("ok", "input", sc.input, "output", res.Output, "cached", res.Cached)
	}
	return nil
}
