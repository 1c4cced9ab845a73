package usage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myBizHub/domain"
	"myBizHub/internal/repository/memory"
)

func fixedClock(ms int64) Clock {
	return func() time.Time { return time.UnixMilli(ms) }
}

type failingStore struct {
	loadErr error
	saveErr error
}

func (f *failingStore) Load(ctx context.Context, key string) ([]domain.UsageRecord, error) {
	return nil, f.loadErr
}

func (f *failingStore) Save(ctx context.Context, key string, records []domain.UsageRecord) error {
	return f.saveErr
}

type lockerFunc func(ctx context.Context, key string, fn func() error) error

func (l lockerFunc) WithLock(ctx context.Context, key string, fn func() error) error {
	return l(ctx, key, fn)
}

func TestStoreKey(t *testing.T) {
	assert.Equal(t, "usage:products:user=7", StoreKey(domain.UsageScopeProducts, 7))
}

func TestRecord(t *testing.T) {
	store := memory.NewUsageRepository()
	svc := NewUsageService(store, nil, fixedClock(1000), 50)
	ctx := context.Background()

	got, err := svc.Record(ctx, domain.UsageScopeProducts, 1, "p1")
	require.NoError(t, err)
	assert.Equal(t, []domain.UsageRecord{{EntityID: "p1", Count: 1, LastUsedMillis: 1000}}, got)

	got, err = svc.Record(ctx, domain.UsageScopeProducts, 1, " p1 ")
	require.NoError(t, err)
	assert.Equal(t, 2, got[0].Count)

	stored, err := store.Load(ctx, "usage:products:user=1")
	require.NoError(t, err)
	assert.Equal(t, got, stored)

	other, err := svc.Records(ctx, domain.UsageScopeCustomers, 1)
	require.NoError(t, err)
	assert.Empty(t, other, "scopes are independent")
}

func TestRecord_Validation(t *testing.T) {
	svc := NewUsageService(memory.NewUsageRepository(), nil, fixedClock(1), 50)

	_, err := svc.Record(context.Background(), domain.UsageScope("orders"), 1, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidScope)

	_, err = svc.Record(context.Background(), domain.UsageScopeProducts, 1, "  ")
	assert.ErrorIs(t, err, domain.ErrEmptyEntityID)
}

func TestRecord_RespectsCap(t *testing.T) {
	svc := NewUsageService(memory.NewUsageRepository(), nil, fixedClock(1), 3)
	ctx := context.Background()

	var got []domain.UsageRecord
	var err error
	for i := 0; i < 5; i++ {
		got, err = svc.Record(ctx, domain.UsageScopeSuppliers, 2, fmt.Sprintf("s%d", i))
		require.NoError(t, err)
	}
	assert.Len(t, got, 3)
}

func TestRecord_StoreErrors(t *testing.T) {
	boom := errors.New("store down")

	svc := NewUsageService(&failingStore{loadErr: boom}, nil, fixedClock(1), 50)
	_, err := svc.Record(context.Background(), domain.UsageScopeProducts, 1, "p")
	assert.ErrorIs(t, err, boom)

	svc = NewUsageService(&failingStore{saveErr: boom}, nil, fixedClock(1), 50)
	_, err = svc.Record(context.Background(), domain.UsageScopeProducts, 1, "p")
	assert.ErrorIs(t, err, boom)
}

func TestRecord_UsesLocker(t *testing.T) {
	var lockedKeys []string
	locker := lockerFunc(func(ctx context.Context, key string, fn func() error) error {
		lockedKeys = append(lockedKeys, key)
		return fn()
	})
	svc := NewUsageService(memory.NewUsageRepository(), locker, fixedClock(1), 50)

	_, err := svc.Record(context.Background(), domain.UsageScopeCustomers, 9, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"usage:customers:user=9"}, lockedKeys)
}

func TestRecord_LockContention(t *testing.T) {
	locker := lockerFunc(func(ctx context.Context, key string, fn func() error) error {
		return domain.ErrUsageLocked
	})
	store := memory.NewUsageRepository()
	svc := NewUsageService(store, locker, fixedClock(1), 50)

	_, err := svc.Record(context.Background(), domain.UsageScopeProducts, 1, "p")
	assert.ErrorIs(t, err, domain.ErrUsageLocked)

	stored, err := store.Load(context.Background(), StoreKey(domain.UsageScopeProducts, 1))
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRecord_ConcurrentUpdatesAreNotLost(t *testing.T) {
	store := memory.NewUsageRepository()
	svc := NewUsageService(store, nil, time.Now, 50)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Record(context.Background(), domain.UsageScopeProducts, 1, "hot")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	records, err := svc.Records(context.Background(), domain.UsageScopeProducts, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 40, records[0].Count)
}

func TestRecentAndFavorites(t *testing.T) {
	store := memory.NewUsageRepository()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, StoreKey(domain.UsageScopeProducts, 1), []domain.UsageRecord{
		{EntityID: "a", Count: 5, LastUsedMillis: 1_000},
		{EntityID: "b", Count: 3, LastUsedMillis: 9_000},
		{EntityID: "c", Count: 1, LastUsedMillis: 9_500},
	}))
	svc := NewUsageService(store, nil, fixedClock(10_000), 50)

	recent, err := svc.Recent(ctx, domain.UsageScopeProducts, 1, 2*time.Second)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].EntityID)
	assert.Equal(t, "b", recent[1].EntityID)

	favs, err := svc.Favorites(ctx, domain.UsageScopeProducts, 1, 3)
	require.NoError(t, err)
	require.Len(t, favs, 2)
	assert.Equal(t, "a", favs[0].EntityID)
	assert.Equal(t, "b", favs[1].EntityID)

	_, err = svc.Favorites(ctx, domain.UsageScope("bogus"), 1, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidScope)
}

func TestKeyedMutex_ReleasesEntries(t *testing.T) {
	k := newKeyedMutex()
	unlock, err := k.Lock(context.Background(), "a")
	require.NoError(t, err)
	assert.Len(t, k.locks, 1)
	unlock()
	assert.Empty(t, k.locks)
}

func TestKeyedMutex_WaiterGivesUpOnContext(t *testing.T) {
	k := newKeyedMutex()
	unlock, err := k.Lock(context.Background(), "a")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = k.Lock(ctx, "a")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	assert.Empty(t, k.locks, "an abandoned wait must not leak its entry")

	again, err := k.Lock(context.Background(), "a")
	require.NoError(t, err)
	again()
}

func TestRecord_QueuedRequestHonoursContext(t *testing.T) {
	store := memory.NewUsageRepository()
	svc := NewUsageService(store, nil, fixedClock(1), 50)

	unlock, err := svc.keys.Lock(context.Background(), StoreKey(domain.UsageScopeProducts, 1))
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = svc.Record(ctx, domain.UsageScopeProducts, 1, "p1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	stored, err := store.Load(context.Background(), StoreKey(domain.UsageScopeProducts, 1))
	require.NoError(t, err)
	assert.Empty(t, stored)
}
