package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/jusunglee/romanize/internal/db"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Repository implements db.Repository using SQLite
type Repository struct {
	db *sql.DB
}

var _ db.Repository = (*Repository)(nil)

// New opens (or creates) the SQLite database at dbPath and makes sure the schema exists.
func New(ctx context.Context, dbPath string) (*Repository, error) {
	dbPath = strings.TrimPrefix(dbPath, "sqlite://")

	dsn := dbPath
	if dbPath != ":memory:" && !strings.Contains(dbPath, "?") {
		// batch romanization writes from several goroutines
		dsn += "?_pragma=busy_timeout(5000)"
	}

	sqliteDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		sqliteDB.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := sqliteDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := sqliteDB.ExecContext(ctx, schemaSQL); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Repository{db: sqliteDB}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

const romanizationColumns = `id, input, output, language, dictionary, hits, created_at, last_used_at`

func (r *Repository) GetRomanization(ctx context.Context, arg db.GetRomanizationParams) (db.Romanization, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+romanizationColumns+`
		FROM romanizations
		WHERE input = ? AND language = ? AND dictionary = ?
	`, arg.Input, arg.Language, arg.Dictionary)
	return scanRomanization(row)
}

func (r *Repository) UpsertRomanization(ctx context.Context, arg db.UpsertRomanizationParams) (db.Romanization, error) {
	now := timestamp(time.Now())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO romanizations (input, output, language, dictionary, created_at, last_used_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (input, language, dictionary)
		DO UPDATE SET output = excluded.output, last_used_at = excluded.last_used_at
	`, arg.Input, arg.Output, arg.Language, arg.Dictionary, now, now)
	if err != nil {
		return db.Romanization{}, err
	}
	return r.GetRomanization(ctx, db.GetRomanizationParams{
		Input:      arg.Input,
		Language:   arg.Language,
		Dictionary: arg.Dictionary,
	})
}

func (r *Repository) TouchRomanization(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE romanizations SET hits = hits + 1, last_used_at = ? WHERE id = ?
	`, timestamp(time.Now()), id)
	return err
}

func (r *Repository) ListRecentRomanizations(ctx context.Context, limit int32) ([]db.Romanization, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+romanizationColumns+`
		FROM romanizations
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []db.Romanization
	for rows.Next() {
		rm, err := scanRomanization(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r *Repository) CountRomanizations(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM romanizations`).Scan(&count)
	return count, err
}

func (r *Repository) DeleteRomanizationsUnusedSince(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM romanizations WHERE last_used_at < ?
	`, timestamp(before))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Helper functions

type scanner interface {
	Scan(dest ...any) error
}

func scanRomanization(row scanner) (db.Romanization, error) {
	var rm db.Romanization
	var createdAtStr, lastUsedAtStr string
	err := row.Scan(&rm.ID, &rm.Input, &rm.Output, &rm.Language, &rm.Dictionary, &rm.Hits, &createdAtStr, &lastUsedAtStr)
	if err == sql.ErrNoRows {
		return db.Romanization{}, db.ErrNoRows
	}
	if err != nil {
		return db.Romanization{}, err
	}
	rm.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAtStr)
	rm.LastUsedAt, _ = time.Parse(time.RFC3339Nano, lastUsedAtStr)
	return rm, nil
}

// timestamp formats t so that stored values sort lexically in time order.
func timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z07:00")
}
