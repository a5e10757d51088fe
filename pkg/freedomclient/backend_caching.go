//go:build !nocache

package freedomclient

import (
	"fmt"

	"github.com/atlasground/freedom/internal/caching"
	"github.com/atlasground/freedom/internal/client"
	"github.com/atlasground/freedom/pkg/freedom"
)

// CachingEnabled reports whether the caching backend is compiled in.
const CachingEnabled = true

// NewCaching creates a caching client over a direct client. config.Cache
// selects the options and the second-level cache; nil caches in process.
func NewCaching(config *freedom.Config) (freedom.CachingAPI, error) {
	direct, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	cached, err := caching.New(direct, config.Cache, config.Logger)
	if err != nil {
		return nil, fmt.Errorf("creating cache: %w", err)
	}

	return cached, nil
}

// Wrap adds caching to an existing API.
func Wrap(api freedom.API, cache *freedom.CacheConfig, logger freedom.Logger) (freedom.CachingAPI, error) {
	return caching.New(api, cache, logger)
}

func newDefault(config *freedom.Config) (freedom.API, error) {
	return NewCaching(config)
}
