package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockPath(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"cache.db", "cache.db.lock"},
		{"sqlite:///var/lib/romanize/cache.db", "/var/lib/romanize/cache.db.lock"},
		{"sqlite://cache.db?_pragma=foreign_keys(1)", "cache.db.lock"},
		{"buntdb://cache.bunt", "cache.bunt.lock"},
		{":memory:", ""},
		{"buntdb://:memory:", ""},
		{"postgres://localhost/romanize", ""},
		{"mysql://localhost/romanize", ""},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, lockPath(tt.url))
		})
	}
}

func TestAcquireLockExclusive(t *testing.T) {
	url := filepath.Join(t.TempDir(), "cache.db")

	release, err := acquireLock(url)
	require.NoError(t, err)

	_, err = acquireLock(url)
	assert.ErrorIs(t, err, errLockHeld)

	require.NoError(t, release())

	again, err := acquireLock(url)
	require.NoError(t, err)
	assert.NoError(t, again())
}

func TestAcquireLockNoopForServers(t *testing.T) {
	release, err := acquireLock("postgres://localhost/romanize")
	require.NoError(t, err)
	assert.NoError(t, release())
}
