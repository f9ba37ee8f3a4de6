package easypost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/fivetwenty-io/easypost-go/internal/constants"
)

// ErrNATSURLRequired is returned when neither a URL nor a connection is configured.
var ErrNATSURLRequired = errors.New("NATS URL or connection required")

// NATSKVConfig configures a NATS JetStream key-value cache.
type NATSKVConfig struct {
	// URL of the NATS server, e.g. "nats://127.0.0.1:4222". Ignored when Conn is set.
	URL string
	// Conn is an existing connection to reuse. It is not closed by the cache.
	Conn *nats.Conn
	// Bucket is the KV bucket name. Defaults to "easypost-cache".
	Bucket string
	// TTL is the bucket-level expiry applied when the bucket is created.
	TTL time.Duration
	// Options are passed to nats.Connect.
	Options []nats.Option
}

// NATSKVCache is a Cache backed by a JetStream key-value bucket, shared between
// processes.
type NATSKVCache struct {
	conn     *nats.Conn
	kv       nats.KeyValue
	ownsConn bool
}

// NewNATSKVCache connects to NATS and binds to the configured bucket, creating it
// if missing.
func NewNATSKVCache(config *NATSKVConfig) (*NATSKVCache, error) {
	if config == nil || (config.URL == "" && config.Conn == nil) {
		return nil, ErrNATSURLRequired
	}

	conn := config.Conn
	ownsConn := false

	if conn == nil {
		var err error

		conn, err = nats.Connect(config.URL, config.Options...)
		if err != nil {
			return nil, fmt.Errorf("connecting to NATS: %w", err)
		}

		ownsConn = true
	}

	kv, err := bindBucket(conn, config)
	if err != nil {
		if ownsConn {
			conn.Close()
		}

		return nil, err
	}

	return &NATSKVCache{conn: conn, kv: kv, ownsConn: ownsConn}, nil
}

func bindBucket(conn *nats.Conn, config *NATSKVConfig) (nats.KeyValue, error) {
	bucket := config.Bucket
	if bucket == "" {
		bucket = constants.DefaultNATSBucket
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("getting JetStream context: %w", err)
	}

	kv, err := js.KeyValue(bucket)
	if err == nil {
		return kv, nil
	}

	if !errors.Is(err, nats.ErrBucketNotFound) {
		return nil, fmt.Errorf("binding KV bucket %s: %w", bucket, err)
	}

	kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
		Bucket:      bucket,
		Description: "EasyPost API response cache",
		TTL:         config.TTL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating KV bucket %s: %w", bucket, err)
	}

	return kv, nil
}

// Get implements Cache.Get.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	kvEntry, err := c.kv.Get(natsKey(key))
	if err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
		}

		return nil, fmt.Errorf("reading %s from NATS: %w", key, err)
	}

	var entry CacheEntry

	err = json.Unmarshal(kvEntry.Value(), &entry)
	if err != nil {
		return nil, fmt.Errorf("decoding cached %s: %w", key, err)
	}

	if entry.Expired(time.Now()) {
		_ = c.Delete(ctx, key)

		return nil, fmt.Errorf("%w: %s", ErrCacheExpired, key)
	}

	return &entry, nil
}

// Set implements Cache.Set.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	_, err = c.kv.Put(natsKey(key), data)
	if err != nil {
		return fmt.Errorf("writing %s to NATS: %w", key, err)
	}

	return nil
}

// Delete implements Cache.Delete.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	err := c.kv.Delete(natsKey(key))
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting %s from NATS: %w", key, err)
	}

	return nil
}

// Clear implements Cache.Clear.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.kv.Keys()
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return nil
		}

		return fmt.Errorf("listing NATS keys: %w", err)
	}

	for _, key := range keys {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err = c.kv.Delete(key)
		if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
			return fmt.Errorf("deleting %s from NATS: %w", key, err)
		}
	}

	return nil
}

// Has implements Cache.Has.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Close releases the connection if the cache opened it.
func (c *NATSKVCache) Close() {
	if c.ownsConn {
		c.conn.Close()
	}
}

// natsKey maps a cache key onto the KV key alphabet [-/_=.a-zA-Z0-9].
func natsKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '/', r == '_', r == '=', r == '.':
			return r
		default:
			return '_'
		}
	}, key)
}
