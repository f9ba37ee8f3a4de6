package easypost_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	t.Parallel()

	cache := easypost.NewMemoryCache(10)
	ctx := context.Background()

	entry := &easypost.CacheEntry{
		Data:      []byte(`{"id": "rate_1"}`),
		ExpiresAt: time.Now().Add(time.Hour),
		ETag:      "abc123",
	}

	require.NoError(t, cache.Set(ctx, "GET:/rates/rate_1", entry))

	retrieved, err := cache.Get(ctx, "GET:/rates/rate_1")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)
	assert.Equal(t, entry.ETag, retrieved.ETag)
	assert.True(t, cache.Has(ctx, "GET:/rates/rate_1"))
}

func TestMemoryCache_GetNonExistent(t *testing.T) {
	t.Parallel()

	cache := easypost.NewMemoryCache(10)

	_, err := cache.Get(context.Background(), "missing")
	require.ErrorIs(t, err, easypost.ErrCacheKeyNotFound)
	assert.False(t, cache.Has(context.Background(), "missing"))
}

func TestMemoryCache_GetExpired(t *testing.T) {
	t.Parallel()

	cache := easypost.NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", &easypost.CacheEntry{
		Data:      []byte("stale"),
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := cache.Get(ctx, "key")
	require.ErrorIs(t, err, easypost.ErrCacheExpired)
	assert.Zero(t, cache.Len())
}

func TestMemoryCache_ZeroExpiryNeverExpires(t *testing.T) {
	t.Parallel()

	cache := easypost.NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", &easypost.CacheEntry{Data: []byte("forever")}))

	cache.Cleanup()

	entry, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("forever"), entry.Data)
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	t.Parallel()

	cache := easypost.NewMemoryCache(10)
	ctx := context.Background()

	for i := range 3 {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("key%d", i), &easypost.CacheEntry{Data: []byte("x")}))
	}

	require.NoError(t, cache.Delete(ctx, "key1"))
	require.NoError(t, cache.Delete(ctx, "key1"))
	assert.False(t, cache.Has(ctx, "key1"))
	assert.Equal(t, 2, cache.Len())

	require.NoError(t, cache.Clear(ctx))
	assert.Zero(t, cache.Len())
}

func TestMemoryCache_EvictsOldest(t *testing.T) {
	t.Parallel()

	cache := easypost.NewMemoryCache(2)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", &easypost.CacheEntry{Data: []byte("a")}))
	require.NoError(t, cache.Set(ctx, "b", &easypost.CacheEntry{Data: []byte("b")}))
	require.NoError(t, cache.Set(ctx, "a", &easypost.CacheEntry{Data: []byte("a2")}))
	require.NoError(t, cache.Set(ctx, "c", &easypost.CacheEntry{Data: []byte("c")}))

	assert.Equal(t, 2, cache.Len())
	assert.False(t, cache.Has(ctx, "a"))
	assert.True(t, cache.Has(ctx, "b"))
	assert.True(t, cache.Has(ctx, "c"))
}

func TestMemoryCache_Cleanup(t *testing.T) {
	t.Parallel()

	cache := easypost.NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "old", &easypost.CacheEntry{ExpiresAt: time.Now().Add(-time.Second)}))
	require.NoError(t, cache.Set(ctx, "new", &easypost.CacheEntry{ExpiresAt: time.Now().Add(time.Hour)}))

	cache.Cleanup()

	assert.Equal(t, 1, cache.Len())
	assert.True(t, cache.Has(ctx, "new"))
}

func TestMemoryCache_Concurrent(t *testing.T) {
	t.Parallel()

	cache := easypost.NewMemoryCache(50)
	ctx := context.Background()

	var wg sync.WaitGroup

	for worker := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range 100 {
				key := fmt.Sprintf("w%d-%d", worker, i%20)
				_ = cache.Set(ctx, key, &easypost.CacheEntry{Data: []byte(key)})
				_, _ = cache.Get(ctx, key)
			}
		}()
	}

	wg.Wait()

	assert.LessOrEqual(t, cache.Len(), 50)
}

func TestCacheManager_GetAndSet(t *testing.T) {
	t.Parallel()

	manager := easypost.NewCacheManager(easypost.NewMemoryCache(10), nil)
	ctx := context.Background()

	_, err := manager.Get(ctx, "rate_1")
	require.ErrorIs(t, err, easypost.ErrCacheKeyNotFound)

	require.NoError(t, manager.Set(ctx, "rate_1", []byte("data"), 0))

	data, err := manager.Get(ctx, "rate_1")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), data)

	require.NoError(t, manager.Delete(ctx, "rate_1"))

	_, err = manager.Get(ctx, "rate_1")
	require.Error(t, err)

	stats := manager.GetStats()
	assert.Equal(t, easypost.CacheStats{Hits: 1, Misses: 2, Sets: 1}, stats)
	assert.InDelta(t, 1.0/3.0, stats.GetHitRate(), 0.0001)
	assert.Equal(t, easypost.DefaultCacheOptions(), manager.Options())
}

func TestCacheManager_TTL(t *testing.T) {
	t.Parallel()

	cache := easypost.NewMemoryCache(10)
	manager := easypost.NewCacheManager(cache, &easypost.CacheOptions{DefaultTTL: time.Hour})
	ctx := context.Background()

	require.NoError(t, manager.Set(ctx, "default", []byte("x"), 0))
	require.NoError(t, manager.SetWithETag(ctx, "short", []byte("y"), "etag-1", time.Millisecond))

	entry, err := cache.Get(ctx, "default")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), entry.ExpiresAt, time.Minute)

	assert.Eventually(t, func() bool {
		_, err := manager.Get(ctx, "short")

		return err != nil
	}, time.Second, 5*time.Millisecond)
}

func TestCacheManager_RejectsLargeValues(t *testing.T) {
	t.Parallel()

	manager := easypost.NewCacheManager(easypost.NewMemoryCache(10), nil)

	err := manager.Set(context.Background(), "big", []byte(strings.Repeat("x", 1024*1024+1)), 0)
	require.ErrorIs(t, err, easypost.ErrCacheValueTooBig)
}

func TestCacheManager_NilCache(t *testing.T) {
	t.Parallel()

	manager := easypost.NewCacheManager(nil, nil)
	ctx := context.Background()

	require.NoError(t, manager.Set(ctx, "key", []byte("x"), 0))
	require.NoError(t, manager.Delete(ctx, "key"))

	_, err := manager.Get(ctx, "key")
	require.ErrorIs(t, err, easypost.ErrCacheDisabled)
	assert.Zero(t, manager.GetStats().GetHitRate())
}

func TestCacheManager_GetCacheKey(t *testing.T) {
	t.Parallel()

	manager := easypost.NewCacheManager(nil, nil)

	assert.Equal(t, "GET:/rates/rate_1", manager.GetCacheKey("GET", "/rates/rate_1", nil))
	assert.Equal(t,
		"GET:/shipments:a=1&b=2",
		manager.GetCacheKey("GET", "/shipments", map[string]string{"b": "2", "a": "1"}))
}
