package romanization

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/jusunglee/romanize/internal/db"
	"github.com/jusunglee/romanize/internal/db/sqlite"
	"github.com/jusunglee/romanize/internal/romanize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRomanizer struct {
	mu    sync.Mutex
	out   map[string]string
	err   error
	calls map[string]int
}

func newFakeRomanizer(out map[string]string) *fakeRomanizer {
	return &fakeRomanizer{out: out, calls: map[string]int{}}
}

func (f *fakeRomanizer) Romanize(text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[text]++
	if f.err != nil {
		return "", f.err
	}
	out, ok := f.out[text]
	if !ok {
		return "", &romanize.LookupError{Surface: text}
	}
	return out, nil
}

func (f *fakeRomanizer) count(text string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[text]
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRepo(t *testing.T) *sqlite.Repository {
	t.Helper()
	repo, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestParseLanguage(t *testing.T) {
	for in, want := range map[string]Language{"": LanguageJapanese, "ja": LanguageJapanese, "zh": LanguageChinese, "auto": LanguageAuto} {
		got, err := ParseLanguage(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseLanguage("ko")
	assert.Error(t, err)
}

func TestRomanizeWithoutCache(t *testing.T) {
	r := newFakeRomanizer(map[string]string{"太陽のKiss": "Taiyō no Kiss"})
	svc := NewService(r, nil, discardLogger(), "ipa")

	res, err := svc.Romanize(context.Background(), "太陽のKiss", LanguageJapanese)
	require.NoError(t, err)
	assert.Equal(t, Result{Input: "太陽のKiss", Output: "Taiyō no Kiss", Language: LanguageJapanese}, res)
}

func TestRomanizeCachesResults(t *testing.T) {
	repo := newTestRepo(t)
	r := newFakeRomanizer(map[string]string{"夕日": "Yūhi"})
	svc := NewService(r, repo, discardLogger(), "ipa")
	ctx := context.Background()

	first, err := svc.Romanize(ctx, "夕日", LanguageJapanese)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := svc.Romanize(ctx, "夕日", LanguageJapanese)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, "Yūhi", second.Output)
	assert.Equal(t, 1, r.count("夕日"))

	cached, err := repo.GetRomanization(ctx, db.GetRomanizationParams{Input: "夕日", Language: "ja", Dictionary: "ipa"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), cached.Hits)
}

func TestRomanizeErrorsAreNotCached(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewService(newFakeRomanizer(nil), repo, discardLogger(), "ipa")
	ctx := context.Background()

	_, err := svc.Romanize(ctx, "月", LanguageJapanese)
	require.ErrorIs(t, err, romanize.ErrLookup)

	count, err := repo.CountRomanizations(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRomanizeChinese(t *testing.T) {
	r := newFakeRomanizer(nil)
	svc := NewService(r, nil, discardLogger(), "ipa")

	res, err := svc.Romanize(context.Background(), "大魔王", LanguageChinese)
	require.NoError(t, err)
	assert.Equal(t, "da mo wang", res.Output)
	assert.Zero(t, r.count("大魔王"))
}

func TestRomanizeAutoDetect(t *testing.T) {
	r := newFakeRomanizer(map[string]string{"空の境界": "Sora no Kyōkai"})
	svc := NewService(r, nil, discardLogger(), "ipa")
	ctx := context.Background()

	res, err := svc.Romanize(ctx, "空の境界", LanguageAuto)
	require.NoError(t, err)
	assert.Equal(t, LanguageJapanese, res.Language)
	assert.Equal(t, "Sora no Kyōkai", res.Output)

	res, err = svc.Romanize(ctx, "人人人", LanguageAuto)
	require.NoError(t, err)
	assert.Equal(t, LanguageChinese, res.Language)
	assert.Equal(t, "ren ren ren", res.Output)
}

func TestRomanizeCancelledContext(t *testing.T) {
	svc := NewService(newFakeRomanizer(nil), nil, discardLogger(), "ipa")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Romanize(ctx, "太陽", LanguageJapanese)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRomanizeBatchKeepsOrderAndDedupes(t *testing.T) {
	r := newFakeRomanizer(map[string]string{
		"太陽のKiss": "Taiyō no Kiss",
		"夕日":       "Yūhi",
		"丘":        "Oka",
	})
	svc := NewService(r, nil, discardLogger(), "ipa")

	texts := []string{"丘", "太陽のKiss", "丘", "夕日"}
	results, err := svc.RomanizeBatch(context.Background(), texts, LanguageJapanese, 3)
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, text := range texts {
		assert.Equal(t, text, results[i].Input)
	}
	assert.Equal(t, "Oka", results[0].Output)
	assert.Equal(t, "Oka", results[2].Output)
	assert.Equal(t, "Yūhi", results[3].Output)
	assert.Equal(t, 1, r.count("丘"))
}

func TestRomanizeBatchFailsOnFirstError(t *testing.T) {
	r := newFakeRomanizer(map[string]string{"丘": "Oka"})
	svc := NewService(r, nil, discardLogger(), "ipa")

	results, err := svc.RomanizeBatch(context.Background(), []string{"丘", "月", "丘", "月"}, LanguageJapanese, 1)
	assert.Nil(t, results)
	require.ErrorIs(t, err, romanize.ErrLookup)

	var batchErr *BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, 1, batchErr.Index)
	assert.Equal(t, "月", batchErr.Text)
	assert.Contains(t, err.Error(), "月")
}

func TestRomanizeBatchEmpty(t *testing.T) {
	svc := NewService(newFakeRomanizer(nil), nil, discardLogger(), "ipa")
	results, err := svc.RomanizeBatch(context.Background(), nil, LanguageJapanese, 4)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestResultLabel(t *testing.T) {
	assert.Equal(t, "ok", resultLabel(nil))
	assert.Equal(t, "lookup_error", resultLabel(&romanize.LookupError{Surface: "x"}))
	assert.Equal(t, "malformed", resultLabel(romanize.ErrMalformedToken))
	assert.Equal(t, "error", resultLabel(errors.New("boom")))
}
