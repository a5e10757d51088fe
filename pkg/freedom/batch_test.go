package freedom_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasground/freedom/pkg/freedom"
)

var errNoSuchSatellite = errors.New("no such satellite")

// slowSatellites answers even ids and tracks how many calls overlap.
type slowSatellites struct {
	mu      sync.Mutex
	active  int
	maxSeen int
	calls   atomic.Int32
}

func (s *slowSatellites) Get(ctx context.Context, id int) (freedom.Container[freedom.Satellite], error) {
	s.calls.Add(1)

	s.mu.Lock()
	s.active++
	s.maxSeen = max(s.maxSeen, s.active)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.active--
		s.mu.Unlock()
	}()

	time.Sleep(5 * time.Millisecond)

	if id%2 != 0 {
		return freedom.Container[freedom.Satellite]{}, errNoSuchSatellite
	}

	return freedom.Owned(freedom.Satellite{Name: "sat", NoradCatID: id}), nil
}

func TestGetMany(t *testing.T) {
	t.Parallel()

	client := &slowSatellites{}
	ids := []int{2, 3, 4, 6, 8, 9, 10, 12}

	results := freedom.GetMany[freedom.Satellite](context.Background(), client, ids, 3)
	require.Len(t, results, len(ids))

	for i, result := range results {
		assert.Equal(t, ids[i], result.ID)

		if ids[i]%2 != 0 {
			require.ErrorIs(t, result.Err, errNoSuchSatellite)

			continue
		}

		require.NoError(t, result.Err)
		assert.Equal(t, ids[i], result.Value.Ref().NoradCatID)
		assert.Positive(t, result.Duration)
	}

	assert.Equal(t, int32(len(ids)), client.calls.Load())
	assert.LessOrEqual(t, client.maxSeen, 3)

	err := freedom.BatchErrors(results)
	require.ErrorIs(t, err, errNoSuchSatellite)
	assert.Contains(t, err.Error(), "id 3")
	assert.Contains(t, err.Error(), "id 9")
}

func TestGetMany_DefaultsAndEmpty(t *testing.T) {
	t.Parallel()

	client := &slowSatellites{}

	assert.Empty(t, freedom.GetMany[freedom.Satellite](context.Background(), client, nil, 0))

	results := freedom.GetMany[freedom.Satellite](context.Background(), client, []int{2, 4}, 0)
	require.NoError(t, freedom.BatchErrors(results))
	assert.LessOrEqual(t, client.maxSeen, freedom.DefaultBatchConcurrency)
}
