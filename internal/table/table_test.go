package table

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonware/salon-manager/internal/cache"
	"github.com/salonware/salon-manager/internal/models"
	"github.com/salonware/salon-manager/internal/resource"
)

type serviceBackend struct {
	mu       sync.Mutex
	services []models.Service
	listErr  error
	removed  []uint
}

func (b *serviceBackend) List(ctx context.Context) ([]models.Service, error) {
	if b.listErr != nil {
		return nil, b.listErr
	}
	return b.services, nil
}

func (b *serviceBackend) Get(ctx context.Context, id uint) (models.Service, error) {
	for _, s := range b.services {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Service{}, errors.New("not found")
}

func (b *serviceBackend) Create(ctx context.Context, s models.Service) (models.Service, error) {
	return s, nil
}

func (b *serviceBackend) Update(ctx context.Context, id uint, s models.Service) (models.Service, error) {
	s.ID = id
	return s, nil
}

func (b *serviceBackend) Remove(ctx context.Context, id uint) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removed = append(b.removed, id)
	return nil
}

var _ resource.Backend[models.Service] = (*serviceBackend)(nil)

func newServiceTable(b *serviceBackend, emptyMessage string) *Table[models.Service] {
	acc := resource.New[models.Service]("services", b, cache.NewMemoryStore(), nil)
	return New(acc, func(s models.Service) uint { return s.ID }, emptyMessage)
}

func TestLoad_RowsCarryIDs(t *testing.T) {
	b := &serviceBackend{services: []models.Service{
		{ID: 1, Name: "Cut"},
		{ID: 2, Name: "Color"},
	}}
	tbl := newServiceTable(b, "")

	m := tbl.Load(context.Background())
	require.NoError(t, m.Err)
	require.Len(t, m.Rows, 2)
	assert.Equal(t, uint(1), m.Rows[0].ID)
	assert.Equal(t, "Color", m.Rows[1].Value.Name)
	assert.Empty(t, m.EmptyMessage)
}

func TestLoad_EmptyShowsMessage(t *testing.T) {
	tbl := newServiceTable(&serviceBackend{}, "")

	m := tbl.Load(context.Background())
	require.NoError(t, m.Err)
	assert.Empty(t, m.Rows)
	assert.Equal(t, DefaultEmptyMessage, m.EmptyMessage)
}

func TestLoad_CustomEmptyMessage(t *testing.T) {
	tbl := newServiceTable(&serviceBackend{}, "No services registered yet.")

	m := tbl.Load(context.Background())
	assert.Equal(t, "No services registered yet.", m.EmptyMessage)
}

func TestLoad_ErrorSuppressesEmptyMessage(t *testing.T) {
	b := &serviceBackend{listErr: errors.New("backend down")}
	tbl := newServiceTable(b, "")

	m := tbl.Load(context.Background())
	require.Error(t, m.Err)
	assert.Empty(t, m.Rows)
	assert.Empty(t, m.EmptyMessage, "an error is not an empty result")
}

func TestEdit_ReturnsRowValue(t *testing.T) {
	b := &serviceBackend{services: []models.Service{{ID: 5, Name: "Manicure"}}}
	tbl := newServiceTable(b, "")

	s, err := tbl.Edit(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Manicure", s.Name)
}

func TestDelete_InvokesMutation(t *testing.T) {
	b := &serviceBackend{services: []models.Service{{ID: 9}}}
	tbl := newServiceTable(b, "")

	require.NoError(t, tbl.Delete(context.Background(), 9))
	assert.Equal(t, []uint{9}, b.removed)
}
