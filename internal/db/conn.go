package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool opens a PostgreSQL pool sized for a cache: reads dominate and every query
// is a single-row lookup or write.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 30 * time.Second
	config.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverBunt     = "buntdb"
)

// DriverFor picks the backend for a database URL. postgres:// and postgresql:// URLs
// go to PostgreSQL, buntdb:// URLs to buntdb; sqlite:// URLs, bare file paths and
// :memory: go to SQLite.
func DriverFor(databaseURL string) (string, error) {
	switch {
	case databaseURL == "":
		return "", fmt.Errorf("empty database URL")
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return DriverPostgres, nil
	case strings.HasPrefix(databaseURL, "buntdb://"):
		return DriverBunt, nil
	case strings.HasPrefix(databaseURL, "sqlite://"), !strings.Contains(databaseURL, "://"):
		return DriverSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database URL scheme in %q", databaseURL)
	}
}
