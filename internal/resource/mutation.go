package resource

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/salonware/salon-manager/internal/cache"
)

// Notification is handed to the composition-time notifier hook after a
// mutation settles. It is the "toast" seam; the accessor layer itself never
// renders anything.
type Notification struct {
	Entity string
	Action string
	Err    error
}

type Notifier func(Notification)

// Mutation is a write accessor. Execute runs in strict order: backend write,
// then (only on success) invalidation of the entity's query keys, then the
// notifier. A failed write leaves the cache untouched.
type Mutation[In any, Out any] struct {
	entity      string
	action      string
	run         func(ctx context.Context, in In) (Out, error)
	store       cache.Store
	invalidates []cache.Key
	notify      Notifier
	logger      zerolog.Logger

	mu      sync.Mutex
	settled bool
	lastErr error
}

func NewMutation[In any, Out any](
	entity string,
	action string,
	run func(ctx context.Context, in In) (Out, error),
	store cache.Store,
	invalidates []cache.Key,
	notify Notifier,
	logger zerolog.Logger,
) *Mutation[In, Out] {
	return &Mutation[In, Out]{
		entity:      entity,
		action:      action,
		run:         run,
		store:       store,
		invalidates: invalidates,
		notify:      notify,
		logger:      logger,
	}
}

func (m *Mutation[In, Out]) Execute(ctx context.Context, in In) (Out, error) {
	var zero Out

	out, err := m.run(ctx, in)
	if err != nil {
		m.settle(err)
		m.logger.Error().
			Str("entity", m.entity).
			Str("action", m.action).
			Err(err).
			Msg("mutation failed")
		if m.notify != nil {
			m.notify(Notification{Entity: m.entity, Action: m.action, Err: err})
		}
		return zero, err
	}

	for _, key := range m.invalidates {
		if err := m.store.Invalidate(ctx, key); err != nil {
			m.logger.Warn().
				Str("entity", m.entity).
				Str("key", key.String()).
				Err(err).
				Msg("cache invalidation failed")
		}
	}

	m.settle(nil)
	if m.notify != nil {
		m.notify(Notification{Entity: m.entity, Action: m.action})
	}
	return out, nil
}

// State reports the mutation's last outcome.
func (m *Mutation[In, Out]) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return State{
		Success: m.settled && m.lastErr == nil,
		Err:     m.lastErr,
	}
}

func (m *Mutation[In, Out]) settle(err error) {
	m.mu.Lock()
	m.settled = true
	m.lastErr = err
	m.mu.Unlock()
}
