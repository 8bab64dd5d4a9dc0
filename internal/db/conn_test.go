package db

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverFor(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"postgres://user:pw@localhost:5432/romanize", DriverPostgres},
		{"postgresql://localhost/romanize", DriverPostgres},
		{"sqlite://cache.db", DriverSQLite},
		{"/var/lib/romanize/cache.db", DriverSQLite},
		{":memory:", DriverSQLite},
		{"buntdb://cache.bunt", DriverBunt},
		{"buntdb://:memory:", DriverBunt},
	}
	for _, tt := range tests {
		got, err := DriverFor(tt.url)
		require.NoError(t, err, tt.url)
		assert.Equal(t, tt.want, got, tt.url)
	}

	_, err := DriverFor("mysql://localhost/romanize")
	assert.Error(t, err)
	_, err = DriverFor("")
	assert.Error(t, err)
}

func TestIsNoRows(t *testing.T) {
	assert.False(t, IsNoRows(nil))
	assert.True(t, IsNoRows(ErrNoRows))
	assert.True(t, IsNoRows(sql.ErrNoRows))
	assert.True(t, IsNoRows(pgx.ErrNoRows))
	assert.True(t, IsNoRows(fmt.Errorf("wrapped: %w", ErrNoRows)))
	assert.False(t, IsNoRows(fmt.Errorf("other")))
}
