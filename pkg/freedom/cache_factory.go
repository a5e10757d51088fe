package freedom

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
)

// CacheType represents the type of second-level cache backend.
type CacheType string

const (
	// CacheTypeMemory keeps serialized entries in an in-process LRU.
	CacheTypeMemory CacheType = "memory"

	// CacheTypeNATS represents NATS KV cache.
	CacheTypeNATS CacheType = "nats"

	// CacheTypeNone keeps only the in-process typed store.
	CacheTypeNone CacheType = "none"
)

var (
	ErrNATSConfigRequired    = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCacheType  = errors.New("unsupported cache type")
	ErrKeyNotFoundInAnyCache = errors.New("key not found in any cache")
)

// CacheConfig configures the caching client.
type CacheConfig struct {
	// Type is the second-level backend. The in-process typed store is always used.
	Type CacheType

	// Memory sizes the memory level. With Type nats it adds a memory level in
	// front of NATS.
	Memory *MemoryCacheConfig

	NATS *NATSKVConfig

	// Options applied to every level. If nil, DefaultCacheOptions() is used.
	Options *CacheOptions
}

// MemoryCacheConfig configures the memory level.
type MemoryCacheConfig struct {
	// MaxSize is the capacity in entries. It is capped at Options.MaxSize,
	// which is also the default.
	MaxSize int
}

// CacheOptionsOrDefault returns the options of config, falling back to the defaults.
func (c *CacheConfig) CacheOptionsOrDefault() *CacheOptions {
	defaults := DefaultCacheOptions()
	if c == nil || c.Options == nil {
		return defaults
	}

	options := *c.Options
	if options.TTL <= 0 {
		options.TTL = defaults.TTL
	}

	if options.MaxSize <= 0 {
		options.MaxSize = defaults.MaxSize
	}

	return &options
}

// MemoryCacheSize returns the capacity of the memory level. It never exceeds
// the in-process capacity, so an entry evicted in process is not kept alive
// in memory under a different name.
func (c *CacheConfig) MemoryCacheSize() int {
	limit := c.CacheOptionsOrDefault().MaxSize
	if c == nil || c.Memory == nil || c.Memory.MaxSize <= 0 || c.Memory.MaxSize > limit {
		return limit
	}

	return c.Memory.MaxSize
}

// NewCacheFromConfig creates the second-level cache backend from
// configuration. It returns a nil Cache when config selects none.
func NewCacheFromConfig(config *CacheConfig) (Cache, error) {
	if config == nil {
		return nil, nil //nolint:nilnil // no second level
	}

	switch config.Type {
	case CacheTypeMemory:
		return NewMemoryCache(config.MemoryCacheSize()), nil

	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		natsCache, err := NewNATSKVCache(config.NATS)
		if err != nil {
			return nil, err
		}

		if config.Memory == nil {
			return natsCache, nil
		}

		return NewCacheChain(NewMemoryCache(config.MemoryCacheSize()), natsCache), nil

	case CacheTypeNone, "":
		return nil, nil //nolint:nilnil // no second level

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}
}

// CacheChain reads through several caches in order and writes to all of them.
type CacheChain struct {
	caches []Cache
}

// NewCacheChain creates a chain; earlier caches are consulted first.
func NewCacheChain(caches ...Cache) *CacheChain {
	return &CacheChain{
		caches: caches,
	}
}

// Get returns the first live entry and copies it into the caches before it.
func (c *CacheChain) Get(ctx context.Context, key string) (*CacheEntry, error) {
	for i, cache := range c.caches {
		entry, err := cache.Get(ctx, key)
		if err != nil {
			continue
		}

		for _, earlier := range c.caches[:i] {
			_ = earlier.Set(ctx, key, entry)
		}

		return entry, nil
	}

	return nil, ErrKeyNotFoundInAnyCache
}

// Set writes entry to every cache.
func (c *CacheChain) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return c.each(func(cache Cache) error { return cache.Set(ctx, key, entry) })
}

// Delete removes key from every cache.
func (c *CacheChain) Delete(ctx context.Context, key string) error {
	return c.each(func(cache Cache) error { return cache.Delete(ctx, key) })
}

// Clear empties every cache.
func (c *CacheChain) Clear(ctx context.Context) error {
	return c.each(func(cache Cache) error { return cache.Clear(ctx) })
}

// Has reports whether any cache holds key.
func (c *CacheChain) Has(ctx context.Context, key string) bool {
	for _, cache := range c.caches {
		if cache.Has(ctx, key) {
			return true
		}
	}

	return false
}

// Close closes every cache that holds resources of its own.
func (c *CacheChain) Close() error {
	return c.each(func(cache Cache) error {
		closer, ok := cache.(io.Closer)
		if !ok {
			return nil
		}

		return closer.Close()
	})
}

// each applies fn to every cache and gathers the failures.
func (c *CacheChain) each(fn func(Cache) error) error {
	var result *multierror.Error

	for _, cache := range c.caches {
		err := fn(cache)
		if err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}
