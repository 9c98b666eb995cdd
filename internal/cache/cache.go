package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Key is an ordered tuple scoping a cached value, e.g. {"clients"} for the
// collection or {"clients", "42"} for a single record. The same key is used
// for fetch deduplication and for invalidation targeting.
type Key []string

func NewKey(parts ...string) Key { return Key(parts) }

func (k Key) String() string { return strings.Join(k, ":") }

// Prefix reports whether k starts with p. Invalidating {"clients"} must
// also drop {"clients", "42"}.
func (k Key) HasPrefix(p Key) bool {
	if len(p) > len(k) {
		return false
	}
	for i := range p {
		if k[i] != p[i] {
			return false
		}
	}
	return true
}

// ErrMiss is returned by Get when the key is absent or no longer fresh.
var ErrMiss = errors.New("cache: miss")

// Store holds serialized values under tuple keys. Implementations: the
// in-process memory store (default) and the redis store, chosen at
// composition time.
type Store interface {
	Get(ctx context.Context, key Key) ([]byte, error)
	Set(ctx context.Context, key Key, value []byte, ttl time.Duration) error

	// Invalidate drops the key and every key scoped under it.
	Invalidate(ctx context.Context, key Key) error
}
