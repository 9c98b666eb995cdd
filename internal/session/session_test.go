package session

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonware/salon-manager/internal/backend/rest"
)

func TestManager_FollowsAuthEvents(t *testing.T) {
	client := rest.NewClient("http://localhost")
	m := NewManager(client, zerolog.Nop())
	defer m.Close()

	assert.False(t, m.Authenticated())

	client.SetToken("tok")
	require.Eventually(t, m.Authenticated, time.Second, 5*time.Millisecond)

	client.Logout()
	require.Eventually(t, func() bool { return !m.Authenticated() }, time.Second, 5*time.Millisecond)
}

func TestInit_SecondCallFails(t *testing.T) {
	client := rest.NewClient("http://localhost")

	m, err := Init(client, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, m)
	defer Shutdown()

	assert.Same(t, m, Default())

	_, err = Init(client, zerolog.Nop())
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestShutdown_AllowsReinit(t *testing.T) {
	client := rest.NewClient("http://localhost")

	_, err := Init(client, zerolog.Nop())
	require.NoError(t, err)

	Shutdown()
	assert.Nil(t, Default())

	m, err := Init(client, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, m)
	Shutdown()
}
