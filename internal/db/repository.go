package db

import (
	"context"
	"time"
)

// Romanization is a cached result for one input under one language and dictionary.
type Romanization struct {
	ID         int64
	Input      string
	Output     string
	Language   string
	Dictionary string
	Hits       int64
	CreatedAt  time.Time
	LastUsedAt time.Time
}

type GetRomanizationParams struct {
	Input      string
	Language   string
	Dictionary string
}

type UpsertRomanizationParams struct {
	Input      string
	Output     string
	Language   string
	Dictionary string
}

// Repository stores romanization results. Implementations must be safe for concurrent
// use.
type Repository interface {
	GetRomanization(ctx context.Context, arg GetRomanizationParams) (Romanization, error)
	UpsertRomanization(ctx context.Context, arg UpsertRomanizationParams) (Romanization, error)
	// TouchRomanization records a cache hit.
	TouchRomanization(ctx context.Context, id int64) error
	ListRecentRomanizations(ctx context.Context, limit int32) ([]Romanization, error)
	CountRomanizations(ctx context.Context) (int64, error)
	// DeleteRomanizationsUnusedSince removes rows whose last use is before the cutoff
	// and returns how many were deleted.
	DeleteRomanizationsUnusedSince(ctx context.Context, before time.Time) (int64, error)
	Close() error
}
