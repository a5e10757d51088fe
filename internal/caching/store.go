package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/atlasground/freedom/internal/constants"
	"github.com/atlasground/freedom/pkg/freedom"
)

// fetcher loads one resource by id and returns a pointer to a value nobody
// else holds.
type fetcher func(ctx context.Context, id int) (any, error)

// stamp is the invalidation state of one key: the store-wide epoch, bumped
// by invalidateAll, and the key's own generation, bumped by invalidate.
type stamp struct {
	epoch      uint64
	generation uint64
}

// store is the shared state behind every cached resource client.
//
// L1 holds decoded *T values keyed by freedom.CacheKey. L2 is an optional
// byte cache holding the JSON form of the same values. A fetch only stores
// its result when its key was not invalidated while it was in flight.
//
// An L2 entry that could not be deleted on invalidation is marked stale and
// never read again until a fresh fetch has overwritten it. A failed Clear
// marks every entry stale the same way.
type store struct {
	l1      *expirable.LRU[freedom.CacheKey, any]
	l2      freedom.Cache
	options *freedom.CacheOptions
	logger  freedom.Logger

	group singleflight.Group

	mu          sync.Mutex
	epoch       uint64
	generations map[freedom.CacheKey]uint64
	fetchers    map[freedom.Kind]fetcher

	l2Stale    map[freedom.CacheKey]struct{}
	l2StaleAll bool
	l2Fresh    map[freedom.CacheKey]struct{}

	hits          atomic.Int64
	misses        atomic.Int64
	sets          atomic.Int64
	invalidations atomic.Int64
}

func newStore(options *freedom.CacheOptions, l2 freedom.Cache, logger freedom.Logger) *store {
	return &store{
		l1:          expirable.NewLRU[freedom.CacheKey, any](options.MaxSize, nil, options.TTL),
		l2:          l2,
		options:     options,
		logger:      logger,
		generations: make(map[freedom.CacheKey]uint64),
		fetchers:    make(map[freedom.Kind]fetcher),
		l2Stale:     make(map[freedom.CacheKey]struct{}),
		l2Fresh:     make(map[freedom.CacheKey]struct{}),
	}
}

func (s *store) register(kind freedom.Kind, fetch fetcher) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fetchers[kind] = fetch
}

func (s *store) fetcherFor(kind freedom.Kind) (fetcher, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fetch, ok := s.fetchers[kind]

	return fetch, ok
}

func (s *store) stampOf(key freedom.CacheKey) stamp {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stampLocked(key)
}

func (s *store) stampLocked(key freedom.CacheKey) stamp {
	return stamp{epoch: s.epoch, generation: s.generations[key]}
}

// put stores value in L1 unless key was invalidated since current was read.
func (s *store) put(key freedom.CacheKey, value any, current stamp) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stampLocked(key) != current {
		return false
	}

	s.l1.Add(key, value)
	s.sets.Add(1)

	return true
}

// l2Readable reports whether the L2 entry of key may be trusted.
func (s *store) l2Readable(key freedom.CacheKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.l2StaleAll {
		_, fresh := s.l2Fresh[key]

		return fresh
	}

	_, stale := s.l2Stale[key]

	return !stale
}

// settleL2 records that a fetched value was written to L2. The entry is
// trusted only if key was not invalidated since the fetch began.
func (s *store) settleL2(key freedom.CacheKey, current stamp) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stampLocked(key) != current {
		s.l2Stale[key] = struct{}{}
		delete(s.l2Fresh, key)

		return
	}

	delete(s.l2Stale, key)

	if s.l2StaleAll {
		s.l2Fresh[key] = struct{}{}
	}
}

func (s *store) invalidate(key freedom.CacheKey) {
	s.mu.Lock()
	s.generations[key]++
	s.l1.Remove(key)
	s.group.Forget(key.String())

	if s.l2 != nil {
		s.l2Stale[key] = struct{}{}
		delete(s.l2Fresh, key)
	}
	s.mu.Unlock()

	s.invalidations.Add(1)

	if s.l2 == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.CacheOperationTimeout)
	defer cancel()

	err := s.l2.Delete(ctx, key.String())
	if err != nil {
		s.logger.Warn("Failed to delete second-level cache entry", map[string]interface{}{
			"key":   key.String(),
			"error": err.Error(),
		})

		return
	}

	s.mu.Lock()
	delete(s.l2Stale, key)
	s.mu.Unlock()
}

func (s *store) invalidateAll() {
	s.mu.Lock()
	s.epoch++
	s.generations = make(map[freedom.CacheKey]uint64)
	s.l1.Purge()

	if s.l2 != nil {
		s.l2StaleAll = true
		s.l2Stale = make(map[freedom.CacheKey]struct{})
		s.l2Fresh = make(map[freedom.CacheKey]struct{})
	}
	s.mu.Unlock()

	s.invalidations.Add(1)

	if s.l2 == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.CacheOperationTimeout)
	defer cancel()

	err := s.l2.Clear(ctx)
	if err != nil {
		s.logger.Warn("Failed to clear second-level cache", map[string]interface{}{
			"error": err.Error(),
		})

		return
	}

	s.mu.Lock()
	s.l2StaleAll = false
	s.l2Fresh = make(map[freedom.CacheKey]struct{})
	s.mu.Unlock()
}

// close releases L2 if it holds resources of its own.
func (s *store) close() error {
	closer, ok := s.l2.(io.Closer)
	if !ok {
		return nil
	}

	return closer.Close()
}

// remember stores a freshly fetched value in L1 and L2.
func (s *store) remember(ctx context.Context, key freedom.CacheKey, value any, current stamp) {
	if !s.put(key, value, current) {
		return
	}

	if s.writeL2(ctx, key, value) {
		s.settleL2(key, current)
	}
}

// refresh refetches key and replaces its entry. A not-found result always
// drops the entry; other failures drop it only with ClearOnRefreshFailure.
func (s *store) refresh(ctx context.Context, key freedom.CacheKey) error {
	fetch, ok := s.fetcherFor(key.Kind)
	if !ok {
		return fmt.Errorf("%w: %s", freedom.ErrUnknownKind, key.Kind)
	}

	current := s.stampOf(key)

	value, err := fetch(ctx, key.ID)
	if err != nil {
		if freedom.IsNotFound(err) || s.options.ClearOnRefreshFailure {
			s.invalidate(key)
		}

		return fmt.Errorf("refreshing %s: %w", key, err)
	}

	s.remember(ctx, key, value, current)

	return nil
}

func (s *store) stats() freedom.CacheStats {
	return freedom.CacheStats{
		Hits:          s.hits.Load(),
		Misses:        s.misses.Load(),
		Sets:          s.sets.Load(),
		Invalidations: s.invalidations.Load(),
		Size:          s.l1.Len(),
	}
}

// writeL2 reports whether value reached L2.
func (s *store) writeL2(ctx context.Context, key freedom.CacheKey, value any) bool {
	if s.l2 == nil {
		return false
	}

	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("Failed to encode second-level cache entry", map[string]interface{}{
			"key":   key.String(),
			"error": err.Error(),
		})

		return false
	}

	ctx, cancel := context.WithTimeout(ctx, constants.CacheOperationTimeout)
	defer cancel()

	err = s.l2.Set(ctx, key.String(), &freedom.CacheEntry{
		Data:      data,
		ExpiresAt: time.Now().Add(s.options.TTL),
	})
	if err != nil {
		s.logger.Warn("Failed to write second-level cache entry", map[string]interface{}{
			"key":   key.String(),
			"error": err.Error(),
		})

		return false
	}

	return true
}

// readL2 decodes the second-level entry for key into a fresh *T.
func readL2[T any](ctx context.Context, s *store, key freedom.CacheKey) (*T, bool) {
	if s.l2 == nil || !s.l2Readable(key) {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, constants.CacheOperationTimeout)
	defer cancel()

	entry, err := s.l2.Get(ctx, key.String())
	if err != nil {
		if !errors.Is(err, freedom.ErrCacheKeyNotFound) &&
			!errors.Is(err, freedom.ErrCacheEntryExpired) &&
			!errors.Is(err, freedom.ErrKeyNotFoundInAnyCache) {
			s.logger.Warn("Failed to read second-level cache entry", map[string]interface{}{
				"key":   key.String(),
				"error": err.Error(),
			})
		}

		return nil, false
	}

	value := new(T)

	err = json.Unmarshal(entry.Data, value)
	if err != nil {
		s.logger.Warn("Discarding undecodable second-level cache entry", map[string]interface{}{
			"key":   key.String(),
			"error": err.Error(),
		})

		return nil, false
	}

	return value, true
}

// load returns the cached value for key, fetching it on a miss. Concurrent
// misses on one key share a single fetch. The fetch is detached from ctx so
// that one caller giving up does not fail the others; a caller whose ctx ends
// first returns ctx.Err() and the fetch still completes or fails as a whole.
func load[T any](ctx context.Context, s *store, key freedom.CacheKey, fetch fetcher) (freedom.Container[T], error) {
	err := ctx.Err()
	if err != nil {
		return freedom.Container[T]{}, err
	}

	if cached, ok := s.l1.Get(key); ok {
		if value, ok := cached.(*T); ok {
			s.hits.Add(1)

			return freedom.Shared(value), nil
		}
	}

	s.misses.Add(1)

	current := s.stampOf(key)
	detached := context.WithoutCancel(ctx)

	results := s.group.DoChan(key.String(), func() (interface{}, error) {
		if value, ok := readL2[T](detached, s, key); ok {
			s.put(key, value, current)

			return value, nil
		}

		value, err := fetch(detached, key.ID)
		if err != nil {
			return nil, err
		}

		s.remember(detached, key, value, current)

		return value, nil
	})

	select {
	case <-ctx.Done():
		return freedom.Container[T]{}, ctx.Err()
	case result := <-results:
		if result.Err != nil {
			return freedom.Container[T]{}, result.Err
		}

		value, ok := result.Val.(*T)
		if !ok {
			return freedom.Container[T]{}, freedom.NewDecodeError(key.String(), freedom.ErrUnknownKind)
		}

		return freedom.Shared(value), nil
	}
}
