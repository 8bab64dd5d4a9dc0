package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/jusunglee/romanize/internal/db"
	"github.com/jusunglee/romanize/internal/metrics"
)

// runPrune deletes cached romanizations not used within retention and refreshes the
// cache size gauge. Failures are logged; the next cycle tries again.
func runPrune(ctx context.Context, repo db.Repository, retention time.Duration, now func() time.Time, log *slog.Logger) {
	cycleStart := time.Now()
	defer func() {
		metrics.PruneCycleDuration.Observe(time.Since(cycleStart).Seconds())
	}()

	cutoff := now().Add(-retention)
	deleted, err := repo.DeleteRomanizationsUnusedSince(ctx, cutoff)
	if err != nil {
		log.ErrorContext(ctx, "pruning romanizations", "cutoff", cutoff, "error", err)
		return
	}
	metrics.PrunedRows.Add(float64(deleted))

	remaining, err := repo.CountRomanizations(ctx)
	if err != nil {
		log.ErrorContext(ctx, "counting romanizations", "error", err)
		return
	}
	metrics.CachedRows.Set(float64(remaining))

	log.InfoContext(ctx, "prune complete", "deleted", deleted, "remaining", remaining)
}
