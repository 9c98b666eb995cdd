package form

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonware/salon-manager/internal/cache"
	"github.com/salonware/salon-manager/internal/models"
	"github.com/salonware/salon-manager/internal/resource"
)

type productBackend struct {
	mu      sync.Mutex
	creates []models.Product
	updates []models.Product
}

func (b *productBackend) List(ctx context.Context) ([]models.Product, error) {
	return nil, nil
}

func (b *productBackend) Get(ctx context.Context, id uint) (models.Product, error) {
	return models.Product{}, nil
}

func (b *productBackend) Create(ctx context.Context, p models.Product) (models.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p.ID = uint(len(b.creates) + 1)
	b.creates = append(b.creates, p)
	return p, nil
}

func (b *productBackend) Update(ctx context.Context, id uint, p models.Product) (models.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p.ID = id
	b.updates = append(b.updates, p)
	return p, nil
}

func (b *productBackend) Remove(ctx context.Context, id uint) error { return nil }

var _ resource.Backend[models.Product] = (*productBackend)(nil)

func newProductAccessor(b *productBackend) *resource.Accessor[models.Product] {
	return resource.New[models.Product]("products", b, cache.NewMemoryStore(), nil)
}

func TestSubmit_CreateConvertsCurrency(t *testing.T) {
	b := &productBackend{}
	acc := newProductAccessor(b)

	f := ProductForm{
		Name:     "Shampoo",
		Price:    "49.90",
		StockQty: 3,
		Active:   true,
	}

	created, err := Submit[models.Product](context.Background(), f, acc)
	require.NoError(t, err)
	assert.Equal(t, int64(4990), created.PriceCents)

	require.Len(t, b.creates, 1)
	assert.Empty(t, b.updates)
}

func TestSubmit_NonZeroIDUpdates(t *testing.T) {
	b := &productBackend{}
	acc := newProductAccessor(b)

	f := ProductForm{
		ID:    7,
		Name:  "Shampoo",
		Price: "30.00",
	}

	updated, err := Submit[models.Product](context.Background(), f, acc)
	require.NoError(t, err)
	assert.Equal(t, uint(7), updated.ID)

	assert.Empty(t, b.creates)
	require.Len(t, b.updates, 1)
}

func TestSubmit_InvalidFormNeverReachesBackend(t *testing.T) {
	b := &productBackend{}
	acc := newProductAccessor(b)

	f := ProductForm{Price: "49.90"} // missing name

	_, err := Submit[models.Product](context.Background(), f, acc)
	require.Error(t, err)

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	require.Len(t, fe, 1)
	assert.Equal(t, "name", fe[0].Field)
	assert.Equal(t, "required", fe[0].Rule)

	assert.Empty(t, b.creates)
	assert.Empty(t, b.updates)
}

func TestSubmit_BadCurrencyIsAFieldError(t *testing.T) {
	b := &productBackend{}
	acc := newProductAccessor(b)

	f := ProductForm{Name: "Shampoo", Price: "1.234"}

	_, err := Submit[models.Product](context.Background(), f, acc)
	require.Error(t, err)

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	require.Len(t, fe, 1)
	assert.Equal(t, "price", fe[0].Field)
	assert.Equal(t, "currency", fe[0].Rule)

	assert.Empty(t, b.creates)
}

func TestSubmit_NegativePriceIsAFieldError(t *testing.T) {
	b := &productBackend{}
	acc := newProductAccessor(b)

	f := ProductForm{Name: "Shampoo", Price: "-5.00"}

	_, err := Submit[models.Product](context.Background(), f, acc)
	require.Error(t, err)

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	require.Len(t, fe, 1)
	assert.Equal(t, "price", fe[0].Field)
	assert.Equal(t, "min", fe[0].Rule)

	assert.Empty(t, b.creates)
}

func TestClientForm_RoundTrip(t *testing.T) {
	notes := "prefers mornings"
	m := models.Client{
		Name:  "Ana",
		Phone: "11999990000",
		Email: "ana@example.com",
		Notes: &notes,
	}
	m.ID = 4

	f := ClientFormFrom(m)
	assert.Equal(t, uint(4), f.RecordID())
	assert.Equal(t, "prefers mornings", f.Notes)

	back, err := f.Model()
	require.NoError(t, err)
	assert.Equal(t, m.Name, back.Name)
	require.NotNil(t, back.Notes)
	assert.Equal(t, notes, *back.Notes)
}

func TestFinancialEntryForm_DefaultsStatus(t *testing.T) {
	f := FinancialEntryForm{
		Description: "Walk-in haircut",
		Amount:      "35.00",
		Kind:        "income",
		OccurredAt:  "2026-01-15",
	}

	m, err := f.Model()
	require.NoError(t, err)
	assert.Equal(t, "pending", m.Status)
	assert.Equal(t, int64(3500), m.AmountCents)
}

func TestAppointmentForm_ParsesStart(t *testing.T) {
	f := AppointmentForm{
		ClientID:       1,
		ProfessionalID: 2,
		ServiceID:      3,
		Date:           "2026-03-10",
		Time:           "14:30",
	}

	m, err := f.Model()
	require.NoError(t, err)
	assert.Equal(t, 14, m.StartTime.Hour())
	assert.Equal(t, 30, m.StartTime.Minute())
	assert.True(t, m.EndTime.IsZero(), "end time is computed server-side")
}

func TestProductFormFrom_FormatsPrice(t *testing.T) {
	m := models.Product{Name: "Wax", PriceCents: 1990}
	f := ProductFormFrom(m)
	assert.Equal(t, "19.90", f.Price)
}
