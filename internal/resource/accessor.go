package resource

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/salonware/salon-manager/internal/cache"
)

// Accessor bundles the list/get queries and create/update/delete mutations
// for one entity under an entity-scoped key namespace. Every entity in the
// application is an instance of this factory; nothing entity-specific lives
// outside the Backend implementation and the form/table layers.
type Accessor[T any] struct {
	name    string
	backend Backend[T]
	store   cache.Store
	ttl     time.Duration
	logger  zerolog.Logger

	list *Query[[]T]

	mu   sync.Mutex
	byID map[uint]*Query[T]

	create *Mutation[T, T]
	update *Mutation[updateInput[T], T]
	remove *Mutation[uint, struct{}]
}

type updateInput[T any] struct {
	id      uint
	payload T
}

type Option[T any] func(*Accessor[T])

// WithTTL bounds cache freshness. The default (zero) keeps entries fresh
// until invalidated, which is the behavior the views rely on.
func WithTTL[T any](ttl time.Duration) Option[T] {
	return func(a *Accessor[T]) { a.ttl = ttl }
}

func WithLogger[T any](logger zerolog.Logger) Option[T] {
	return func(a *Accessor[T]) { a.logger = logger }
}

// New builds the accessor for an entity. name is the cache key root
// ("clients", "products", ...). notify may be nil.
func New[T any](name string, backend Backend[T], store cache.Store, notify Notifier, opts ...Option[T]) *Accessor[T] {
	a := &Accessor[T]{
		name:    name,
		backend: backend,
		store:   store,
		logger:  zerolog.Nop(),
		byID:    make(map[uint]*Query[T]),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.list = NewQuery(cache.NewKey(name), store, a.ttl, func(ctx context.Context) ([]T, error) {
		items, err := backend.List(ctx)
		if err != nil {
			return nil, err
		}
		if items == nil {
			// Views always receive a sequence, never null.
			items = []T{}
		}
		return items, nil
	})

	entityKey := []cache.Key{cache.NewKey(name)}

	a.create = NewMutation(name, "create",
		func(ctx context.Context, payload T) (T, error) {
			return backend.Create(ctx, payload)
		},
		store, entityKey, notify, a.logger)

	a.update = NewMutation(name, "update",
		func(ctx context.Context, in updateInput[T]) (T, error) {
			var zero T
			if in.id == 0 {
				return zero, ErrMissingID
			}
			return backend.Update(ctx, in.id, in.payload)
		},
		store, entityKey, notify, a.logger)

	a.remove = NewMutation(name, "delete",
		func(ctx context.Context, id uint) (struct{}, error) {
			if id == 0 {
				return struct{}{}, ErrMissingID
			}
			return struct{}{}, backend.Remove(ctx, id)
		},
		store, entityKey, notify, a.logger)

	return a
}

// ListQuery exposes the collection query, e.g. for the table component.
func (a *Accessor[T]) ListQuery() *Query[[]T] { return a.list }

func (a *Accessor[T]) List(ctx context.Context) ([]T, error) {
	return a.list.Fetch(ctx)
}

// GetQuery returns the single-record query for id, creating it on first use.
// Queries are cached per id so repeated reads share state and key.
func (a *Accessor[T]) GetQuery(id uint) *Query[T] {
	a.mu.Lock()
	defer a.mu.Unlock()

	if q, ok := a.byID[id]; ok {
		return q
	}
	key := cache.NewKey(a.name, strconv.FormatUint(uint64(id), 10))
	q := NewQuery(key, a.store, a.ttl, func(ctx context.Context) (T, error) {
		return a.backend.Get(ctx, id)
	})
	a.byID[id] = q
	return q
}

func (a *Accessor[T]) GetByID(ctx context.Context, id uint) (T, error) {
	return a.GetQuery(id).Fetch(ctx)
}

func (a *Accessor[T]) Create(ctx context.Context, payload T) (T, error) {
	return a.create.Execute(ctx, payload)
}

func (a *Accessor[T]) Update(ctx context.Context, id uint, payload T) (T, error) {
	return a.update.Execute(ctx, updateInput[T]{id: id, payload: payload})
}

func (a *Accessor[T]) Delete(ctx context.Context, id uint) error {
	_, err := a.remove.Execute(ctx, id)
	return err
}

// Mutation state, for views that render per-action feedback.
func (a *Accessor[T]) CreateState() State { return a.create.State() }
func (a *Accessor[T]) UpdateState() State { return a.update.State() }
func (a *Accessor[T]) DeleteState() State { return a.remove.State() }

// Invalidate drops every cached value for the entity.
func (a *Accessor[T]) Invalidate(ctx context.Context) error {
	return a.store.Invalidate(ctx, cache.NewKey(a.name))
}
