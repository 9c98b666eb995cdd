// Package session holds the process-wide auth state. It is initialized and
// torn down explicitly; importing it has no side effects.
package session

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/salonware/salon-manager/internal/backend/rest"
)

// Manager tracks whether the process holds a live authenticated session,
// driven by the REST client's auth-change events.
type Manager struct {
	logger zerolog.Logger

	mu            sync.RWMutex
	authenticated bool

	cancel func()
	done   chan struct{}
}

// NewManager subscribes to the client's auth events and follows them until
// Close is called.
func NewManager(client *rest.Client, logger zerolog.Logger) *Manager {
	events, cancel := client.Subscribe()

	m := &Manager{
		logger: logger,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(m.done)
		for ev := range events {
			m.apply(ev)
		}
	}()

	return m
}

func (m *Manager) apply(ev rest.AuthEvent) {
	m.mu.Lock()
	switch ev.Kind {
	case rest.AuthSignedIn:
		m.authenticated = true
	case rest.AuthSignedOut, rest.AuthExpired:
		m.authenticated = false
	}
	m.mu.Unlock()

	m.logger.Debug().Str("event", string(ev.Kind)).Msg("auth state changed")
}

func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authenticated
}

// Close unsubscribes and waits for the event loop to drain.
func (m *Manager) Close() {
	m.cancel()
	<-m.done
}

var (
	defaultMu sync.Mutex
	defaultM  *Manager
)

var ErrAlreadyInitialized = errors.New("session: already initialized")

// Init installs the process-wide manager. Calling it twice without a
// Shutdown in between is a bug.
func Init(client *rest.Client, logger zerolog.Logger) (*Manager, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultM != nil {
		return nil, ErrAlreadyInitialized
	}
	defaultM = NewManager(client, logger)
	return defaultM, nil
}

// Default returns the process-wide manager, or nil before Init.
func Default() *Manager {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultM
}

// Shutdown tears down the process-wide manager.
func Shutdown() {
	defaultMu.Lock()
	m := defaultM
	defaultM = nil
	defaultMu.Unlock()

	if m != nil {
		m.Close()
	}
}
