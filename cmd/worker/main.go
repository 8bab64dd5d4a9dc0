package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jusunglee/romanize/internal/logger"
	"github.com/jusunglee/romanize/internal/storage"
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
}

func mainE() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("romanize-worker")
	var (
		databaseURL = fs.StringLong("database-url", "", "Cache database URL (postgres://, buntdb:// or a SQLite path)")
		interval    = fs.DurationLong("interval", 1*time.Hour, "Pruning interval")
		retention   = fs.DurationLong("retention", 30*24*time.Hour, "Delete cached romanizations unused for this long")
		metricsAddr = fs.StringLong("metrics-addr", ":9090", "Prometheus metrics listen address")
		_           = fs.StringLong("config", "", "Config file (flag-name value per line)")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVars(),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	if *databaseURL == "" {
		return errors.New("database-url is required")
	}
	if *retention <= 0 {
		return errors.New("retention must be positive")
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	log := logger.New()

	release, err := acquireLock(*databaseURL)
	if err != nil {
		return err
	}
	defer release()

	repo, err := storage.Open(ctx, *databaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer repo.Close()

	go func() {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsServer := &http.Server{Addr: *metricsAddr, Handler: metricsMux, ReadHeaderTimeout: 5 * time.Second}
		log.InfoContext(ctx, "starting metrics server", "addr", *metricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorContext(ctx, "metrics server error", "error", err)
		}
	}()

	go storage.ExportPoolStats(ctx, repo, 15*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info("received signal, shutting down", "signal", sig)
		_ = sdnotify.Stopping()
		cancel(errors.New("signal received"))
	}()

	if err := sdnotify.Ready(); err != nil && !errors.Is(err, sdnotify.ErrSdNotifyNoSocket) {
		log.WarnContext(ctx, "notifying systemd", "error", err)
	}

	log.InfoContext(ctx, "worker starting", "interval", *interval, "retention", *retention)
	runPrune(ctx, repo, *retention, time.Now, log)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			runPrune(ctx, repo, *retention, time.Now, log)
		case <-ctx.Done():
			log.Info("worker stopped", "cause", context.Cause(ctx))
			return nil
		}
	}
}
