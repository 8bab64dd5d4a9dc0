package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/joho/godotenv"
	"github.com/jusunglee/romanize/internal/db"
	"github.com/jusunglee/romanize/internal/health"
	"github.com/jusunglee/romanize/internal/logger"
	"github.com/jusunglee/romanize/internal/romanization"
	"github.com/jusunglee/romanize/internal/romanize"
	"github.com/jusunglee/romanize/internal/storage"
	"github.com/jusunglee/romanize/internal/tagger"
	"github.com/jusunglee/romanize/internal/transliteration"
	"github.com/jusunglee/romanize/internal/web"
	"github.com/okzk/sdnotify"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
	slog.Info("exiting without error")
}

func mainE() error {
	_ = godotenv.Load()

	fs_ := ff.NewFlagSet("romanize-web")

	var (
		port           = fs_.Int64Long("port", 3000, "HTTP server port")
		healthPort     = fs_.Int64Long("health-port", 8081, "Health check server port")
		databaseURL    = fs_.StringLong("database-url", "", "Cache database URL (postgres://, buntdb:// or a SQLite path); empty disables caching")
		dictionary     = fs_.StringEnumLong("dictionary", "Morphological dictionary", tagger.Dictionaries()...)
		noHangul       = fs_.BoolLong("no-hangul", "Do not romanize Hangul before tokenizing")
		allowedOrigins = fs_.StringLong("allowed-origins", "", "Comma-separated list of allowed CORS and websocket origins")
		maxBody        = fs_.StringLong("max-body", "1M", "Maximum request body size (e.g. 512K, 1M)")
		rateLimit      = fs_.Int64Long("rate-limit", web.DefaultRateLimit, "Romanize requests per IP per minute")
		_              = fs_.StringLong("config", "", "Config file (flag-name value per line)")
	)

	if err := ff.Parse(fs_, os.Args[1:],
		ff.WithEnvVars(),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs_))
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.New()

	maxBodyBytes, err := bytefmt.ToBytes(*maxBody)
	if err != nil {
		return fmt.Errorf("parsing --max-body: %w", err)
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	log.InfoContext(ctx, "loading dictionary", "dictionary", *dictionary)
	tok, err := tagger.New(*dictionary)
	if err != nil {
		return fmt.Errorf("loading tagger: %w", err)
	}

	cfg := romanize.Config{Logger: log}
	if !*noHangul {
		cfg.PreRomanize = transliteration.RomanizeHangul
	}
	romanizer := romanize.New(tok, cfg)

	var repo db.Repository
	var checks []health.Check
	if *databaseURL != "" {
		repo, err = storage.Open(ctx, *databaseURL)
		if err != nil {
			return err
		}
		defer repo.Close()
		log.InfoContext(ctx, "connected to cache database")

		go storage.ExportPoolStats(ctx, repo, 15*time.Second)

		checks = append(checks, health.Check{
			Name: "cache",
			Fn: func(ctx context.Context) error {
				_, err := repo.CountRomanizations(ctx)
				return err
			},
		})
	}

	svc := romanization.NewService(romanizer, repo, log, *dictionary)
	router := web.NewRouter(ctx, svc, repo, log, web.Options{
		AllowedOrigins: splitOrigins(*allowedOrigins),
		MaxBodyBytes:   int64(maxBodyBytes),
		RateLimit:      int(*rateLimit),
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/api/", router.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	healthServer := health.New(int(*healthPort), map[string]string{"dictionary": *dictionary}, checks...)
	go func() {
		if err := healthServer.Start(); err != nil {
			log.ErrorContext(ctx, "health server error", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.InfoContext(ctx, "received signal, shutting down gracefully", "signal", sig)
		cancel(errors.New("signal received"))
		_ = sdnotify.Stopping()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.ErrorContext(ctx, "server shutdown error", "error", err)
		}
		if err := healthServer.Shutdown(shutdownCtx); err != nil {
			log.ErrorContext(ctx, "health server shutdown error", "error", err)
		}
	}()

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", server.Addr, err)
	}
	if err := sdnotify.Ready(); err != nil && !errors.Is(err, sdnotify.ErrSdNotifyNoSocket) {
		log.WarnContext(ctx, "notifying systemd", "error", err)
	}

	log.InfoContext(ctx, "starting web server", "port", *port, "cache", repo != nil, "max_body", bytefmt.ByteSize(maxBodyBytes))
	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
