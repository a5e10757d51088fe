package freedom

import (
	"iter"

	"github.com/mohae/deepcopy"
)

// Container wraps a resource returned by a client.
//
// The direct client returns owned containers: the caller is the only holder
// of the value. The caching client returns shared containers: the value is
// also held by the cache and by every other caller that fetched the same key.
// Read through Ref in both cases; call IntoInner to get a value that is safe
// to modify.
type Container[T any] struct {
	value  *T
	shared bool
}

// Owned wraps v in an owning container.
func Owned[T any](v T) Container[T] {
	return Container[T]{value: &v}
}

// Shared wraps p in a shared container. p must not be modified afterwards.
func Shared[T any](p *T) Container[T] {
	return Container[T]{value: p, shared: true}
}

// Ref returns a read-only view of the value. The pointee of a shared
// container belongs to the cache and must not be written through.
func (c Container[T]) Ref() *T {
	return c.value
}

// IntoInner returns a value the caller owns. Owned containers hand over
// their value; shared containers return a deep copy.
func (c Container[T]) IntoInner() T {
	if c.value == nil {
		var zero T

		return zero
	}

	if !c.shared {
		return *c.value
	}

	return deepCopy(*c.value)
}

// Clone duplicates the container. Cloning a shared container is free and
// returns the same value; cloning an owned container deep copies it.
func (c Container[T]) Clone() Container[T] {
	if c.shared || c.value == nil {
		return c
	}

	return Owned(deepCopy(*c.value))
}

// IsShared reports whether the value is held by a cache.
func (c Container[T]) IsShared() bool {
	return c.shared
}

// IsZero reports whether the container holds nothing.
func (c Container[T]) IsZero() bool {
	return c.value == nil
}

func deepCopy[T any](v T) T {
	copied, ok := deepcopy.Copy(v).(T)
	if !ok {
		return v
	}

	return copied
}

// Seq is a lazy list of resources. Each element is independently fallible;
// ranging over it again issues the underlying requests again.
type Seq[T any] = iter.Seq2[Container[T], error]

// Collect drains seq, stopping at the first error.
func Collect[T any](seq Seq[T]) ([]Container[T], error) {
	var out []Container[T]

	for item, err := range seq {
		if err != nil {
			return out, err
		}

		out = append(out, item)
	}

	return out, nil
}

// Values drains seq into owned values, stopping at the first error.
func Values[T any](seq Seq[T]) ([]T, error) {
	var out []T

	for item, err := range seq {
		if err != nil {
			return out, err
		}

		out = append(out, item.IntoInner())
	}

	return out, nil
}

// ErrSeq returns a sequence that yields err once.
func ErrSeq[T any](err error) Seq[T] {
	return func(yield func(Container[T], error) bool) {
		yield(Container[T]{}, err)
	}
}
