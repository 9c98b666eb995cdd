package resource

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonware/salon-manager/internal/cache"
)

type item struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// fakeBackend counts calls so tests can assert exactly which operations a
// given flow performed.
type fakeBackend struct {
	mu      sync.Mutex
	lists   int
	gets    int
	creates int
	updates int
	removes int

	listResult []item
	listErr    error
	createErr  error
	listDelay  time.Duration
}

func (f *fakeBackend) List(ctx context.Context) ([]item, error) {
	f.mu.Lock()
	f.lists++
	f.mu.Unlock()

	if f.listDelay > 0 {
		time.Sleep(f.listDelay)
	}
	return f.listResult, f.listErr
}

func (f *fakeBackend) Get(ctx context.Context, id uint) (item, error) {
	f.mu.Lock()
	f.gets++
	f.mu.Unlock()
	return item{ID: id, Name: "one"}, nil
}

func (f *fakeBackend) Create(ctx context.Context, payload item) (item, error) {
	f.mu.Lock()
	f.creates++
	f.mu.Unlock()

	if f.createErr != nil {
		return item{}, f.createErr
	}
	payload.ID = 1
	return payload, nil
}

func (f *fakeBackend) Update(ctx context.Context, id uint, payload item) (item, error) {
	f.mu.Lock()
	f.updates++
	f.mu.Unlock()
	payload.ID = id
	return payload, nil
}

func (f *fakeBackend) Remove(ctx context.Context, id uint) error {
	f.mu.Lock()
	f.removes++
	f.mu.Unlock()
	return nil
}

func (f *fakeBackend) counts() (lists, gets, creates, updates, removes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists, f.gets, f.creates, f.updates, f.removes
}

var _ Backend[item] = (*fakeBackend)(nil)

func newTestAccessor(b *fakeBackend, notify Notifier) *Accessor[item] {
	return New[item]("items", b, cache.NewMemoryStore(), notify)
}

func TestList_SecondFetchHitsCache(t *testing.T) {
	ctx := context.Background()
	b := &fakeBackend{listResult: []item{{ID: 1, Name: "a"}}}
	acc := newTestAccessor(b, nil)

	first, err := acc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := acc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	lists, _, _, _, _ := b.counts()
	assert.Equal(t, 1, lists, "cached fetch must not hit the backend again")
}

func TestList_NilBecomesEmptySlice(t *testing.T) {
	b := &fakeBackend{listResult: nil}
	acc := newTestAccessor(b, nil)

	got, err := acc.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_ConcurrentFetchesCoalesce(t *testing.T) {
	b := &fakeBackend{
		listResult: []item{{ID: 1}},
		listDelay:  100 * time.Millisecond,
	}
	acc := newTestAccessor(b, nil)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := acc.List(context.Background())
			assert.NoError(t, err)
		}()
	}
	close(start)
	wg.Wait()

	lists, _, _, _, _ := b.counts()
	assert.Equal(t, 1, lists, "concurrent fetches must share one backend call")
}

func TestCreate_InvalidatesAndNotifies(t *testing.T) {
	ctx := context.Background()
	b := &fakeBackend{listResult: []item{}}

	var notes []Notification
	acc := newTestAccessor(b, func(n Notification) { notes = append(notes, n) })

	_, err := acc.List(ctx)
	require.NoError(t, err)

	created, err := acc.Create(ctx, item{Name: "new"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), created.ID)

	// The list was invalidated, so the next read goes back to the backend.
	_, err = acc.List(ctx)
	require.NoError(t, err)

	lists, _, creates, _, _ := b.counts()
	assert.Equal(t, 2, lists)
	assert.Equal(t, 1, creates)

	require.Len(t, notes, 1)
	assert.Equal(t, "items", notes[0].Entity)
	assert.Equal(t, "create", notes[0].Action)
	assert.NoError(t, notes[0].Err)
}

func TestCreate_FailureLeavesCacheUntouched(t *testing.T) {
	ctx := context.Background()
	wantErr := errors.New("backend down")
	b := &fakeBackend{listResult: []item{{ID: 1}}, createErr: wantErr}

	var notes []Notification
	acc := newTestAccessor(b, func(n Notification) { notes = append(notes, n) })

	_, err := acc.List(ctx)
	require.NoError(t, err)

	_, err = acc.Create(ctx, item{Name: "new"})
	assert.ErrorIs(t, err, wantErr)

	// Still served from cache: the failed write must not invalidate.
	_, err = acc.List(ctx)
	require.NoError(t, err)

	lists, _, _, _, _ := b.counts()
	assert.Equal(t, 1, lists)

	require.Len(t, notes, 1)
	assert.ErrorIs(t, notes[0].Err, wantErr)

	st := acc.CreateState()
	assert.ErrorIs(t, st.Err, wantErr)
	assert.False(t, st.Success)
}

func TestUpdate_MissingIDFailsBeforeBackend(t *testing.T) {
	b := &fakeBackend{}
	acc := newTestAccessor(b, nil)

	_, err := acc.Update(context.Background(), 0, item{Name: "x"})
	assert.ErrorIs(t, err, ErrMissingID)

	_, _, _, updates, _ := b.counts()
	assert.Equal(t, 0, updates)
}

func TestDelete_MissingIDFailsBeforeBackend(t *testing.T) {
	b := &fakeBackend{}
	acc := newTestAccessor(b, nil)

	err := acc.Delete(context.Background(), 0)
	assert.ErrorIs(t, err, ErrMissingID)

	_, _, _, _, removes := b.counts()
	assert.Equal(t, 0, removes)
}

func TestGetByID_CachedPerID(t *testing.T) {
	ctx := context.Background()
	b := &fakeBackend{}
	acc := newTestAccessor(b, nil)

	got, err := acc.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.ID)

	_, err = acc.GetByID(ctx, 7)
	require.NoError(t, err)

	_, gets, _, _, _ := b.counts()
	assert.Equal(t, 1, gets)
}

func TestMutation_InvalidatesRecordKeysToo(t *testing.T) {
	ctx := context.Background()
	b := &fakeBackend{listResult: []item{}}
	acc := newTestAccessor(b, nil)

	_, err := acc.GetByID(ctx, 7)
	require.NoError(t, err)

	_, err = acc.Update(ctx, 7, item{Name: "renamed"})
	require.NoError(t, err)

	// The entity-prefix invalidation covers per-record keys.
	_, err = acc.GetByID(ctx, 7)
	require.NoError(t, err)

	_, gets, _, _, _ := b.counts()
	assert.Equal(t, 2, gets)
}

func TestQueryState(t *testing.T) {
	b := &fakeBackend{listErr: errors.New("boom")}
	acc := newTestAccessor(b, nil)

	_, err := acc.List(context.Background())
	require.Error(t, err)

	st := acc.ListQuery().State()
	assert.False(t, st.Loading)
	assert.False(t, st.Success)
	assert.Error(t, st.Err)
}
