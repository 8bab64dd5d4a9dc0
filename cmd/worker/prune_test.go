package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jusunglee/romanize/internal/db"
	"github.com/jusunglee/romanize/internal/db/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPrune(t *testing.T) {
	ctx := context.Background()
	repo, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	defer repo.Close()

	for _, input := range []string{"太陽", "夕日"} {
		_, err := repo.UpsertRomanization(ctx, db.UpsertRomanizationParams{
			Input: input, Output: input, Language: "ja", Dictionary: "ipa",
		})
		require.NoError(t, err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	runPrune(ctx, repo, time.Hour, time.Now, log)
	count, err := repo.CountRomanizations(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	future := func() time.Time { return time.Now().Add(2 * time.Hour) }
	runPrune(ctx, repo, time.Hour, future, log)
	count, err = repo.CountRomanizations(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
