package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/flock"
	"github.com/jusunglee/romanize/internal/db"
)

var errLockHeld = errors.New("couldn't acquire lock (is another worker pruning this cache?)")

// lockPath returns the lock file guarding a file-backed cache, or "" when the cache
// is a server or lives in memory.
func lockPath(databaseURL string) string {
	driver, err := db.DriverFor(databaseURL)
	if err != nil || driver == db.DriverPostgres {
		return ""
	}
	path := strings.TrimPrefix(strings.TrimPrefix(databaseURL, "sqlite://"), "buntdb://")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return ""
	}
	return path + ".lock"
}

// acquireLock takes the worker lock for databaseURL. The returned release func is
// never nil.
func acquireLock(databaseURL string) (func() error, error) {
	path := lockPath(databaseURL)
	if path == "" {
		return func() error { return nil }, nil
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}
	if !ok {
		return nil, errLockHeld
	}
	return fl.Unlock, nil
}
