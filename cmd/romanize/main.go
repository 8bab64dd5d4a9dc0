// Command romanize prints the Latin-script rendering of each line of Japanese text it
// is given, either as arguments or on stdin.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jusunglee/romanize/internal/db"
	"github.com/jusunglee/romanize/internal/logger"
	"github.com/jusunglee/romanize/internal/romanization"
	"github.com/jusunglee/romanize/internal/romanize"
	"github.com/jusunglee/romanize/internal/storage"
	"github.com/jusunglee/romanize/internal/tagger"
	"github.com/jusunglee/romanize/internal/transliteration"
	"github.com/jusunglee/romanize/internal/tui"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func mainE() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("romanize")
	var (
		dictionary  = fs.StringEnumLong("dictionary", "Morphological dictionary", tagger.Dictionaries()...)
		language    = fs.StringEnumLong("language", "Input language", "ja", "zh", "auto")
		noHangul    = fs.BoolLong("no-hangul", "Do not romanize Hangul before tokenizing")
		workers     = fs.IntLong("workers", 4, "Lines romanized concurrently")
		cache       = fs.StringLong("cache", "", "Cache database (SQLite path, buntdb:// or postgres:// URL)")
		interactive = fs.BoolLong("interactive", "Start the interactive romanizer")
		verbose     = fs.BoolLong("verbose", "Log at debug level")
		_           = fs.StringLong("config", "", "Config file (flag-name value per line)")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("ROMANIZE"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	); err != nil {
		if errors.Is(err, ff.ErrHelp) {
			fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
			return nil
		}
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.New()
	if *verbose {
		log = logger.NewWithWriter(os.Stderr, os.Getenv("LOG_FORMAT"), slog.LevelDebug)
		slog.SetDefault(log)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lang, err := romanization.ParseLanguage(*language)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "loading dictionary", "dictionary", *dictionary)
	tok, err := tagger.New(*dictionary)
	if err != nil {
		return fmt.Errorf("loading tagger: %w", err)
	}

	cfg := romanize.Config{Logger: log}
	if !*noHangul {
		cfg.PreRomanize = transliteration.RomanizeHangul
	}

	var repo db.Repository
	if *cache != "" {
		repo, err = storage.Open(ctx, *cache)
		if err != nil {
			return err
		}
		defer repo.Close()
	}

	svc := romanization.NewService(romanize.New(tok, cfg), repo, log, *dictionary)

	if *interactive {
		return tui.Run(ctx, svc.Romanize, lang)
	}

	if args := fs.GetArgs(); len(args) > 0 {
		return romanizeLines(ctx, svc, args, 1, lang, *workers, os.Stdout)
	}
	return romanizeStream(ctx, svc, os.Stdin, os.Stdout, lang, *workers)
}
