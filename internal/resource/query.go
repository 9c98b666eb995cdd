package resource

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/salonware/salon-manager/internal/cache"
)

// State mirrors what a view needs to render a fetched value: a loading
// placeholder, an error banner, or the data itself.
type State struct {
	Loading bool
	Success bool
	Err     error
}

// Query is a lazily fetched, cached read accessor bound to one key.
// While the key is fresh, Fetch returns the cached value without touching
// the backend; concurrent fetches for the same key are coalesced into a
// single backend call.
type Query[T any] struct {
	key   cache.Key
	store cache.Store
	ttl   time.Duration
	fetch func(ctx context.Context) (T, error)

	group singleflight.Group

	mu       sync.Mutex
	inflight int
	lastErr  error
	fetched  bool
}

func NewQuery[T any](key cache.Key, store cache.Store, ttl time.Duration, fetch func(ctx context.Context) (T, error)) *Query[T] {
	return &Query[T]{
		key:   key,
		store: store,
		ttl:   ttl,
		fetch: fetch,
	}
}

func (q *Query[T]) Key() cache.Key { return q.key }

// Fetch returns the value under the query's key, hitting the backend only
// when the cache misses.
func (q *Query[T]) Fetch(ctx context.Context) (T, error) {
	var zero T

	if raw, err := q.store.Get(ctx, q.key); err == nil {
		var out T
		if err := json.Unmarshal(raw, &out); err == nil {
			q.setResult(nil)
			return out, nil
		}
		// Undecodable entry: drop it and refetch.
		_ = q.store.Invalidate(ctx, q.key)
	}

	q.beginFetch()
	v, err, _ := q.group.Do(q.key.String(), func() (any, error) {
		out, err := q.fetch(ctx)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(out); err == nil {
			_ = q.store.Set(ctx, q.key, raw, q.ttl)
		}
		return out, nil
	})
	q.endFetch()

	if err != nil {
		q.setResult(err)
		return zero, err
	}

	q.setResult(nil)
	return v.(T), nil
}

// Invalidate marks the key stale; the next Fetch goes to the backend.
func (q *Query[T]) Invalidate(ctx context.Context) error {
	return q.store.Invalidate(ctx, q.key)
}

// State reports the query's last observed status.
func (q *Query[T]) State() State {
	q.mu.Lock()
	defer q.mu.Unlock()
	return State{
		Loading: q.inflight > 0,
		Success: q.fetched && q.lastErr == nil,
		Err:     q.lastErr,
	}
}

func (q *Query[T]) beginFetch() {
	q.mu.Lock()
	q.inflight++
	q.mu.Unlock()
}

func (q *Query[T]) endFetch() {
	q.mu.Lock()
	q.inflight--
	q.mu.Unlock()
}

func (q *Query[T]) setResult(err error) {
	q.mu.Lock()
	q.fetched = true
	q.lastErr = err
	q.mu.Unlock()
}
