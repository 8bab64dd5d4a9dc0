package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jusunglee/romanize/internal/db"
)

//go:embed schema.sql
var schemaSQL string

// Repository implements db.Repository using PostgreSQL via pgx
type Repository struct {
	pool *pgxpool.Pool
}

var _ db.Repository = (*Repository)(nil)

// New connects to PostgreSQL and makes sure the schema exists.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	pool, err := db.NewPool(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Repository{pool: pool}, nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}

func (r *Repository) PoolStats() *pgxpool.Stat {
	return r.pool.Stat()
}

const romanizationColumns = `id, input, output, language, dictionary, hits, created_at, last_used_at`

func (r *Repository) GetRomanization(ctx context.Context, arg db.GetRomanizationParams) (db.Romanization, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+romanizationColumns+`
		FROM romanizations
		WHERE input = $1 AND language = $2 AND dictionary = $3
	`, arg.Input, arg.Language, arg.Dictionary)
	return scanRomanization(row)
}

func (r *Repository) UpsertRomanization(ctx context.Context, arg db.UpsertRomanizationParams) (db.Romanization, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO romanizations (input, output, language, dictionary)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (input, language, dictionary)
		DO UPDATE SET output = EXCLUDED.output, last_used_at = now()
		RETURNING `+romanizationColumns,
		arg.Input, arg.Output, arg.Language, arg.Dictionary)
	return scanRomanization(row)
}

func (r *Repository) TouchRomanization(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE romanizations SET hits = hits + 1, last_used_at = now() WHERE id = $1
	`, id)
	return err
}

func (r *Repository) ListRecentRomanizations(ctx context.Context, limit int32) ([]db.Romanization, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+romanizationColumns+`
		FROM romanizations
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (db.Romanization, error) {
		return scanRomanization(row)
	})
}

func (r *Repository) CountRomanizations(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM romanizations`).Scan(&count)
	return count, err
}

func (r *Repository) DeleteRomanizationsUnusedSince(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM romanizations WHERE last_used_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanRomanization(row pgx.Row) (db.Romanization, error) {
	var rm db.Romanization
	err := row.Scan(&rm.ID, &rm.Input, &rm.Output, &rm.Language, &rm.Dictionary, &rm.Hits, &rm.CreatedAt, &rm.LastUsedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return db.Romanization{}, db.ErrNoRows
	}
	if err != nil {
		return db.Romanization{}, err
	}
	return rm, nil
}
