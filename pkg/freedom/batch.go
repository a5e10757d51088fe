package freedom

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency bounds GetMany when no limit is given.
const DefaultBatchConcurrency = 5

// BatchResult is the outcome of fetching one id.
type BatchResult[T any] struct {
	ID       int
	Value    Container[T]
	Err      error
	Duration time.Duration
}

// GetMany fetches ids concurrently, at most concurrency at a time. Results
// are in the order of ids and a failed fetch does not stop the others.
// Through the caching client repeated ids cost one request.
func GetMany[T any](ctx context.Context, client Getter[T], ids []int, concurrency int) []BatchResult[T] {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	results := make([]BatchResult[T], len(ids))

	var group errgroup.Group
	group.SetLimit(concurrency)

	for index, id := range ids {
		group.Go(func() error {
			start := time.Now()
			value, err := client.Get(ctx, id)
			results[index] = BatchResult[T]{ID: id, Value: value, Err: err, Duration: time.Since(start)}

			return nil
		})
	}

	_ = group.Wait()

	return results
}

// BatchErrors combines the failures of results, or returns nil.
func BatchErrors[T any](results []BatchResult[T]) error {
	var result *multierror.Error

	for _, r := range results {
		if r.Err != nil {
			result = multierror.Append(result, fmt.Errorf("id %d: %w", r.ID, r.Err))
		}
	}

	return result.ErrorOrNil()
}
