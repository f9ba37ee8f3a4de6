package easypost

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fivetwenty-io/easypost-go/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrCacheKeyNotFound = errors.New("key not found")
	ErrCacheExpired     = errors.New("entry expired")
	ErrCacheValueTooBig = errors.New("cache value too large")
)

// Cache stores raw response bodies keyed by request.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
}

// CacheEntry is a cached value and its expiry. A zero ExpiresAt never expires.
type CacheEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
	ETag      string    `json:"etag,omitempty"`
}

// Expired reports whether the entry is past its expiry at now.
func (e *CacheEntry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// CacheOptions tunes how the client uses a cache.
type CacheOptions struct {
	// DefaultTTL applies to cacheable responses without a specific TTL.
	DefaultTTL time.Duration
	// RatesTTL applies to retrieved rates.
	RatesTTL time.Duration
}

// DefaultCacheOptions returns the default TTLs.
func DefaultCacheOptions() *CacheOptions {
	return &CacheOptions{
		DefaultTTL: constants.DefaultCacheTTL,
		RatesTTL:   constants.RatesCacheTTL,
	}
}

// MemoryCache is an in-process Cache bounded by entry count.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*CacheEntry
	order   []string
	maxSize int
}

// NewMemoryCache creates a memory cache holding at most maxSize entries.
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = constants.DefaultCacheSize
	}

	return &MemoryCache{
		entries: make(map[string]*CacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

// Get implements Cache.Get.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
	}

	if entry.Expired(time.Now()) {
		_ = c.Delete(ctx, key)

		return nil, fmt.Errorf("%w: %s", ErrCacheExpired, key)
	}

	return entry, nil
}

// Set implements Cache.Set. The oldest entry is evicted when the cache is full.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.entries) >= c.maxSize {
			c.evictOldestLocked()
		}

		c.order = append(c.order, key)
	}

	c.entries[key] = entry

	return nil
}

// Delete implements Cache.Delete.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(key)

	return nil
}

// Clear implements Cache.Clear.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*CacheEntry)
	c.order = c.order[:0]

	return nil
}

// Has implements Cache.Has.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Cleanup drops expired entries.
func (c *MemoryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()

	for key, entry := range c.entries {
		if entry.Expired(now) {
			c.removeLocked(key)
		}
	}
}

func (c *MemoryCache) evictOldestLocked() {
	if len(c.order) == 0 {
		return
	}

	c.removeLocked(c.order[0])
}

func (c *MemoryCache) removeLocked(key string) {
	if _, ok := c.entries[key]; !ok {
		return
	}

	delete(c.entries, key)

	for i, existing := range c.order {
		if existing == key {
			c.order = append(c.order[:i], c.order[i+1:]...)

			break
		}
	}
}

// CacheStats counts cache traffic through a CacheManager.
type CacheStats struct {
	Hits   int64
	Misses int64
	Sets   int64
}

// GetHitRate returns hits over lookups, or zero before any lookup.
func (s CacheStats) GetHitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}

// CacheManager fronts a Cache with TTLs and statistics.
type CacheManager struct {
	cache   Cache
	options *CacheOptions

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
}

// NewCacheManager wraps cache. Nil options use DefaultCacheOptions.
func NewCacheManager(cache Cache, options *CacheOptions) *CacheManager {
	if options == nil {
		options = DefaultCacheOptions()
	}

	return &CacheManager{cache: cache, options: options}
}

// Options returns the manager's TTL settings.
func (m *CacheManager) Options() *CacheOptions {
	return m.options
}

// GetCacheKey builds a stable key from a method, path and parameters.
func (m *CacheManager) GetCacheKey(method, path string, params map[string]string) string {
	key := method + ":" + path
	if len(params) == 0 {
		return key
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}

	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+"="+params[name])
	}

	return key + ":" + strings.Join(pairs, "&")
}

// Get returns cached data for key.
func (m *CacheManager) Get(ctx context.Context, key string) ([]byte, error) {
	if m.cache == nil {
		m.misses.Add(1)

		return nil, ErrCacheDisabled
	}

	entry, err := m.cache.Get(ctx, key)
	if err != nil {
		m.misses.Add(1)

		return nil, fmt.Errorf("cache get: %w", err)
	}

	m.hits.Add(1)

	return entry.Data, nil
}

// Set stores data under key for ttl. A non-positive ttl uses the default TTL.
func (m *CacheManager) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return m.SetWithETag(ctx, key, data, "", ttl)
}

// SetWithETag stores data with an ETag.
func (m *CacheManager) SetWithETag(ctx context.Context, key string, data []byte, etag string, ttl time.Duration) error {
	if m.cache == nil {
		return nil
	}

	if len(data) > constants.MaxCacheValueSize {
		return fmt.Errorf("%w: %d bytes", ErrCacheValueTooBig, len(data))
	}

	if ttl <= 0 {
		ttl = m.options.DefaultTTL
	}

	err := m.cache.Set(ctx, key, &CacheEntry{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
		ETag:      etag,
	})
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}

	m.sets.Add(1)

	return nil
}

// Delete removes key.
func (m *CacheManager) Delete(ctx context.Context, key string) error {
	if m.cache == nil {
		return nil
	}

	err := m.cache.Delete(ctx, key)
	if err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}

	return nil
}

// GetStats returns a snapshot of the counters.
func (m *CacheManager) GetStats() CacheStats {
	return CacheStats{
		Hits:   m.hits.Load(),
		Misses: m.misses.Load(),
		Sets:   m.sets.Load(),
	}
}
