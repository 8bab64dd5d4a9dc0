// Package bunt stores the romanization cache in a buntdb file, or in memory for
// ":memory:". Records are JSON values under "rom:<language>:<dictionary>:<input>";
// "romid:<id>" points back at the record key.
package bunt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/buntdb"

	"github.com/jusunglee/romanize/internal/db"
)

const (
	recordPattern = "rom:*"
	keySequence   = "seq:romanizations"

	indexCreatedAt  = "created_at"
	indexLastUsedAt = "last_used_at"
)

type Repository struct {
	db *buntdb.DB
}

var _ db.Repository = (*Repository)(nil)

type record struct {
	ID         int64  `json:"id"`
	Input      string `json:"input"`
	Output     string `json:"output"`
	Language   string `json:"language"`
	Dictionary string `json:"dictionary"`
	Hits       int64  `json:"hits"`
	CreatedAt  string `json:"created_at"`
	LastUsedAt string `json:"last_used_at"`
}

// New opens (or creates) the buntdb file at path and builds the time indexes.
func New(ctx context.Context, path string) (*Repository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path = strings.TrimPrefix(path, "buntdb://")

	store, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening buntdb: %w", err)
	}
	if err := store.CreateIndex(indexCreatedAt, recordPattern, buntdb.IndexJSON("created_at"), buntdb.IndexJSON("id")); err != nil {
		store.Close()
		return nil, fmt.Errorf("creating created_at index: %w", err)
	}
	if err := store.CreateIndex(indexLastUsedAt, recordPattern, buntdb.IndexJSON("last_used_at")); err != nil {
		store.Close()
		return nil, fmt.Errorf("creating last_used_at index: %w", err)
	}
	return &Repository{db: store}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) GetRomanization(ctx context.Context, arg db.GetRomanizationParams) (db.Romanization, error) {
	if err := ctx.Err(); err != nil {
		return db.Romanization{}, err
	}
	var rec record
	err := r.db.View(func(tx *buntdb.Tx) error {
		var err error
		rec, err = getRecord(tx, recordKey(arg.Language, arg.Dictionary, arg.Input))
		return err
	})
	if err != nil {
		return db.Romanization{}, err
	}
	return rec.romanization(), nil
}

func (r *Repository) UpsertRomanization(ctx context.Context, arg db.UpsertRomanizationParams) (db.Romanization, error) {
	if err := ctx.Err(); err != nil {
		return db.Romanization{}, err
	}
	key := recordKey(arg.Language, arg.Dictionary, arg.Input)
	now := timestamp(time.Now())

	var rec record
	err := r.db.Update(func(tx *buntdb.Tx) error {
		existing, err := getRecord(tx, key)
		switch {
		case err == nil:
			rec = existing
			rec.Output = arg.Output
			rec.LastUsedAt = now
		case errors.Is(err, db.ErrNoRows):
			id, err := nextID(tx)
			if err != nil {
				return err
			}
			rec = record{
				ID:         id,
				Input:      arg.Input,
				Output:     arg.Output,
				Language:   arg.Language,
				Dictionary: arg.Dictionary,
				CreatedAt:  now,
				LastUsedAt: now,
			}
			if _, _, err := tx.Set(idKey(id), key, nil); err != nil {
				return err
			}
		default:
			return err
		}
		return putRecord(tx, key, rec)
	})
	if err != nil {
		return db.Romanization{}, err
	}
	return rec.romanization(), nil
}

func (r *Repository) TouchRomanization(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(tx *buntdb.Tx) error {
		key, err := tx.Get(idKey(id))
		if errors.Is(err, buntdb.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		rec, err := getRecord(tx, key)
		if err != nil {
			return err
		}
		rec.Hits++
		rec.LastUsedAt = timestamp(time.Now())
		return putRecord(tx, key, rec)
	})
}

func (r *Repository) ListRecentRomanizations(ctx context.Context, limit int32) ([]db.Romanization, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, nil
	}
	var out []db.Romanization
	var decodeErr error
	err := r.db.View(func(tx *buntdb.Tx) error {
		return tx.Descend(indexCreatedAt, func(key, value string) bool {
			var rec record
			if decodeErr = json.Unmarshal([]byte(value), &rec); decodeErr != nil {
				return false
			}
			out = append(out, rec.romanization())
			return int32(len(out)) < limit
		})
	})
	if err != nil {
		return nil, err
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decoding romanization: %w", decodeErr)
	}
	return out, nil
}

func (r *Repository) CountRomanizations(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var count int64
	err := r.db.View(func(tx *buntdb.Tx) error {
		return tx.Ascend(indexCreatedAt, func(key, value string) bool {
			count++
			return true
		})
	})
	return count, err
}

func (r *Repository) DeleteRomanizationsUnusedSince(ctx context.Context, before time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	pivot := fmt.Sprintf(`{"last_used_at":%q}`, timestamp(before))

	var deleted int64
	err := r.db.Update(func(tx *buntdb.Tx) error {
		stale := map[string]int64{}
		err := tx.AscendLessThan(indexLastUsedAt, pivot, func(key, value string) bool {
			var rec record
			if json.Unmarshal([]byte(value), &rec) == nil {
				stale[key] = rec.ID
			}
			return true
		})
		if err != nil {
			return err
		}
		// buntdb forbids writes while iterating
		for key, id := range stale {
			if _, err := tx.Delete(key); err != nil {
				return err
			}
			if _, err := tx.Delete(idKey(id)); err != nil && !errors.Is(err, buntdb.ErrNotFound) {
				return err
			}
			deleted++
		}
		return nil
	})
	return deleted, err
}

// Helper functions

func recordKey(language, dictionary, input string) string {
	return "rom:" + language + ":" + dictionary + ":" + input
}

func idKey(id int64) string {
	return "romid:" + strconv.FormatInt(id, 10)
}

func getRecord(tx *buntdb.Tx, key string) (record, error) {
	value, err := tx.Get(key)
	if errors.Is(err, buntdb.ErrNotFound) {
		return record{}, db.ErrNoRows
	}
	if err != nil {
		return record{}, err
	}
	var rec record
	if err := json.Unmarshal([]byte(value), &rec); err != nil {
		return record{}, fmt.Errorf("decoding %s: %w", key, err)
	}
	return rec, nil
}

func putRecord(tx *buntdb.Tx, key string, rec record) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, _, err = tx.Set(key, string(value), nil)
	return err
}

func nextID(tx *buntdb.Tx) (int64, error) {
	var last int64
	value, err := tx.Get(keySequence)
	switch {
	case errors.Is(err, buntdb.ErrNotFound):
	case err != nil:
		return 0, err
	default:
		if last, err = strconv.ParseInt(value, 10, 64); err != nil {
			return 0, fmt.Errorf("corrupt sequence %q: %w", value, err)
		}
	}
	next := last + 1
	if _, _, err := tx.Set(keySequence, strconv.FormatInt(next, 10), nil); err != nil {
		return 0, err
	}
	return next, nil
}

func (rec record) romanization() db.Romanization {
	rm := db.Romanization{
		ID:         rec.ID,
		Input:      rec.Input,
		Output:     rec.Output,
		Language:   rec.Language,
		Dictionary: rec.Dictionary,
		Hits:       rec.Hits,
	}
	rm.CreatedAt, _ = time.Parse(time.RFC3339Nano, rec.CreatedAt)
	rm.LastUsedAt, _ = time.Parse(time.RFC3339Nano, rec.LastUsedAt)
	return rm
}

// timestamp formats t so that stored values sort lexically in time order.
func timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z07:00")
}
