// Package storage opens the romanization cache named by a database URL.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jusunglee/romanize/internal/db"
	"github.com/jusunglee/romanize/internal/db/bunt"
	"github.com/jusunglee/romanize/internal/db/postgres"
	"github.com/jusunglee/romanize/internal/db/sqlite"
	"github.com/jusunglee/romanize/internal/metrics"
)

// Open connects to PostgreSQL, buntdb or SQLite depending on databaseURL.
func Open(ctx context.Context, databaseURL string) (db.Repository, error) {
	driver, err := db.DriverFor(databaseURL)
	if err != nil {
		return nil, err
	}
	switch driver {
	case db.DriverPostgres:
		repo, err := postgres.New(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("creating PostgreSQL connection: %w", err)
		}
		return repo, nil
	case db.DriverBunt:
		repo, err := bunt.New(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("opening buntdb cache: %w", err)
		}
		return repo, nil
	default:
		repo, err := sqlite.New(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("creating SQLite database: %w", err)
		}
		return repo, nil
	}
}

// PoolStats returns connection pool statistics when repo is backed by a pool.
func PoolStats(repo db.Repository) (*pgxpool.Stat, bool) {
	pg, ok := repo.(*postgres.Repository)
	if !ok {
		return nil, false
	}
	return pg.PoolStats(), true
}

// ExportPoolStats publishes pool gauges every interval until ctx is done. It returns at
// once when repo has no pool.
func ExportPoolStats(ctx context.Context, repo db.Repository, interval time.Duration) {
	if _, ok := PoolStats(repo); !ok {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s, _ := PoolStats(repo)
			metrics.DBPoolTotalConns.Set(float64(s.TotalConns()))
			metrics.DBPoolIdleConns.Set(float64(s.IdleConns()))
			metrics.DBPoolAcquiredConns.Set(float64(s.AcquiredConns()))
			metrics.DBPoolMaxConns.Set(float64(s.MaxConns()))
		case <-ctx.Done():
			return
		}
	}
}
