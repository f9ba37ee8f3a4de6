package easypost

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fivetwenty-io/easypost-go/internal/constants"
)

// CacheType names a cache backend.
type CacheType string

const (
	// CacheTypeMemory is the in-process cache.
	CacheTypeMemory CacheType = "memory"

	// CacheTypeNATS is the NATS JetStream KV cache.
	CacheTypeNATS CacheType = "nats"

	// CacheTypeNone disables caching.
	CacheTypeNone CacheType = "none"
)

// Static errors for err113 compliance.
var (
	ErrNATSConfigRequired   = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCacheType = errors.New("unsupported cache type")
	ErrCacheDisabled        = errors.New("cache disabled")
)

// CacheConfig selects and configures a cache backend.
type CacheConfig struct {
	// Type is the backend.
	Type CacheType

	// Memory configures the memory backend.
	Memory *MemoryCacheConfig

	// NATS configures the NATS KV backend.
	NATS *NATSKVConfig
}

// MemoryCacheConfig configures the memory backend.
type MemoryCacheConfig struct {
	// MaxSize is the maximum number of entries.
	MaxSize int

	// CleanupInterval is how often expired entries are swept, as a duration
	// string like "1m". Empty or "0" disables the sweeper.
	CleanupInterval string
}

// DefaultCacheConfig returns a memory cache configuration.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Type: CacheTypeMemory,
		Memory: &MemoryCacheConfig{
			MaxSize: constants.DefaultCacheSize,
		},
	}
}

// NewCacheFromConfig creates the configured backend. A nil config yields a
// memory cache.
func NewCacheFromConfig(ctx context.Context, config *CacheConfig) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	switch config.Type {
	case CacheTypeMemory, "":
		cache, err := NewMemoryCacheFromConfig(ctx, config.Memory)
		if err != nil {
			return nil, err
		}

		return cache, nil

	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		cache, err := NewNATSKVCache(config.NATS)
		if err != nil {
			return nil, err
		}

		return cache, nil

	case CacheTypeNone:
		return NewNoOpCache(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}
}

// NewMemoryCacheFromConfig creates a memory cache. When a cleanup interval is
// set, expired entries are swept until ctx is done.
func NewMemoryCacheFromConfig(ctx context.Context, config *MemoryCacheConfig) (*MemoryCache, error) {
	if config == nil {
		config = &MemoryCacheConfig{MaxSize: constants.DefaultCacheSize}
	}

	cache := NewMemoryCache(config.MaxSize)

	if config.CleanupInterval == "" {
		return cache, nil
	}

	interval, err := time.ParseDuration(config.CleanupInterval)
	if err != nil {
		return nil, fmt.Errorf("parsing cleanup interval: %w", err)
	}

	if interval > 0 {
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					cache.Cleanup()
				}
			}
		}()
	}

	return cache, nil
}

// NoOpCache caches nothing.
type NoOpCache struct{}

// NewNoOpCache creates a no-op cache.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always fails with ErrCacheDisabled.
func (c *NoOpCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	return nil, ErrCacheDisabled
}

// Set does nothing.
func (c *NoOpCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return nil
}

// Delete does nothing.
func (c *NoOpCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Clear does nothing.
func (c *NoOpCache) Clear(ctx context.Context) error {
	return nil
}

// Has always returns false.
func (c *NoOpCache) Has(ctx context.Context, key string) bool {
	return false
}
