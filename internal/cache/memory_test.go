package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	key := NewKey("clients", "7")
	require.NoError(t, s.Set(ctx, key, []byte(`{"id":7}`), 0))

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":7}`), got)
}

func TestMemoryStore_Miss(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), NewKey("clients"))
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	now := time.Now()
	s.now = func() time.Time { return now }

	key := NewKey("products")
	require.NoError(t, s.Set(ctx, key, []byte("x"), time.Minute))

	_, err := s.Get(ctx, key)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryStore_InvalidateIsPrefixAware(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, NewKey("clients"), []byte("list"), 0))
	require.NoError(t, s.Set(ctx, NewKey("clients", "7"), []byte("one"), 0))
	require.NoError(t, s.Set(ctx, NewKey("clientsarchive"), []byte("other"), 0))

	require.NoError(t, s.Invalidate(ctx, NewKey("clients")))

	_, err := s.Get(ctx, NewKey("clients"))
	assert.ErrorIs(t, err, ErrMiss)

	_, err = s.Get(ctx, NewKey("clients", "7"))
	assert.ErrorIs(t, err, ErrMiss)

	// A longer name sharing the prefix text is a different entity.
	got, err := s.Get(ctx, NewKey("clientsarchive"))
	require.NoError(t, err)
	assert.Equal(t, []byte("other"), got)
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "clients:7", NewKey("clients", "7").String())
	assert.Equal(t, "clients", NewKey("clients").String())
}
