//go:build nocache

package freedomclient

import "github.com/atlasground/freedom/pkg/freedom"

// CachingEnabled reports whether the caching backend is compiled in.
const CachingEnabled = false

func newDefault(config *freedom.Config) (freedom.API, error) {
	return New(config)
}
