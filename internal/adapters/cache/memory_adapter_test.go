package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/physiciansearch/backend/internal/domain/providers"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryAdapter_GetMiss(t *testing.T) {
	a := NewMemoryAdapter()
	_, err := a.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
}

func TestMemoryAdapter_ExpiresLazily(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	a := NewMemoryAdapterWithClock(clock.Now)
	ctx := context.Background()

	require.NoError(t, a.Set(ctx, "k", []byte(`[1]`), 1800))

	clock.Advance(29*time.Minute + 59*time.Second)
	got, err := a.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), got)

	clock.Advance(time.Second)
	assert.Equal(t, 1, a.Len())
	_, err = a.Get(ctx, "k")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
	assert.Equal(t, 0, a.Len())
}

func TestMemoryAdapter_SetOverwritesAndRefreshes(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	a := NewMemoryAdapterWithClock(clock.Now)
	ctx := context.Background()

	require.NoError(t, a.Set(ctx, "k", []byte("old"), 60))
	clock.Advance(50 * time.Second)
	require.NoError(t, a.Set(ctx, "k", []byte("new"), 60))
	clock.Advance(30 * time.Second)

	got, err := a.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestMemoryAdapter_DeleteAndExists(t *testing.T) {
	a := NewMemoryAdapter()
	ctx := context.Background()

	require.NoError(t, a.Set(ctx, "k", []byte("v"), 60))
	ok, err := a.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, a.Delete(ctx, "k"))
	ok, err = a.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryAdapter_ConcurrentAccess(t *testing.T) {
	a := NewMemoryAdapter()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := "k"
			if i%2 == 0 {
				key = "other"
			}
			_ = a.Set(ctx, key, []byte{byte(i)}, 60)
			_, _ = a.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 2, a.Len())
}
