package caching

import (
	"context"

	"github.com/atlasground/freedom/pkg/freedom"
)

// resourceClient memoizes Get of one resource kind and invalidates on writes.
// Everything else goes straight to the inner client.
type resourceClient[T, R any] struct {
	inner freedom.ResourceClient[T, R]
	store *store
	kind  freedom.Kind
}

func newResourceClient[T, R any](inner freedom.ResourceClient[T, R], s *store, kind freedom.Kind) *resourceClient[T, R] {
	c := &resourceClient[T, R]{
		inner: inner,
		store: s,
		kind:  kind,
	}

	s.register(kind, c.fetch)

	return c
}

// fetch loads id through the inner client and detaches the result from it.
func (c *resourceClient[T, R]) fetch(ctx context.Context, id int) (any, error) {
	container, err := c.inner.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	value := container.IntoInner()

	return &value, nil
}

// Get returns a shared container, fetching on a miss.
func (c *resourceClient[T, R]) Get(ctx context.Context, id int) (freedom.Container[T], error) {
	return load[T](ctx, c.store, freedom.CacheKey{Kind: c.kind, ID: id}, c.fetch)
}

// List is not cached.
func (c *resourceClient[T, R]) List(ctx context.Context, params *freedom.QueryParams) freedom.Seq[T] {
	return c.inner.List(ctx, params)
}

// ListLinked is not cached.
func (c *resourceClient[T, R]) ListLinked(ctx context.Context, href string) freedom.Seq[T] {
	return c.inner.ListLinked(ctx, href)
}

// GetHref is not cached.
func (c *resourceClient[T, R]) GetHref(ctx context.Context, href string) (freedom.Container[T], error) {
	return c.inner.GetHref(ctx, href)
}

// Create creates the resource and drops any entry under its new id.
func (c *resourceClient[T, R]) Create(ctx context.Context, payload *R) (freedom.Container[T], error) {
	created, err := c.inner.Create(ctx, payload)
	if err != nil {
		return created, err
	}

	if identified, ok := any(created.Ref()).(interface{ ID() (int, error) }); ok {
		if id, idErr := identified.ID(); idErr == nil {
			c.store.invalidate(freedom.CacheKey{Kind: c.kind, ID: id})
		}
	}

	return created, nil
}

// Update drops the entry whether or not the update succeeds.
func (c *resourceClient[T, R]) Update(ctx context.Context, id int, payload *R) (freedom.Container[T], error) {
	defer c.store.invalidate(freedom.CacheKey{Kind: c.kind, ID: id})

	return c.inner.Update(ctx, id, payload)
}

// Delete drops the entry whether or not the delete succeeds.
func (c *resourceClient[T, R]) Delete(ctx context.Context, id int) error {
	defer c.store.invalidate(freedom.CacheKey{Kind: c.kind, ID: id})

	return c.inner.Delete(ctx, id)
}
