package cooling

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdPoolAllocatesSmallestFree(t *testing.T) {
	// GIVEN
	pool := NewIdPool(4)

	// WHEN
	first, firstErr := pool.Allocate()
	second, secondErr := pool.Allocate()

	// THEN
	assert.NoError(t, firstErr)
	assert.NoError(t, secondErr)
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestIdPoolReusesReleasedIds(t *testing.T) {
	// GIVEN
	pool := NewIdPool(4)
	first, _ := pool.Allocate()
	_, _ = pool.Allocate()

	// WHEN
	pool.Release(first)
	reused, err := pool.Allocate()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, first, reused)
}

func TestIdPoolExhaustion(t *testing.T) {
	// GIVEN
	pool := NewIdPool(1)
	_, err := pool.Allocate()
	assert.NoError(t, err)

	// WHEN
	id, err := pool.Allocate()

	// THEN
	assert.Equal(t, -1, id)
	assert.ErrorIs(t, err, ErrResourceExhausted)
}

func TestIdPoolReleaseOfUnallocatedIdIsANoOp(t *testing.T) {
	// GIVEN
	pool := NewIdPool(2)

	// WHEN
	pool.Release(1)
	first, err := pool.Allocate()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 0, first)
}

func TestIdPoolConcurrentAllocation(t *testing.T) {
	// GIVEN
	const workers = 16
	pool := NewIdPool(workers)

	// WHEN
	var wg sync.WaitGroup
	ids := make(chan int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := pool.Allocate()
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	// THEN
	seen := map[int]bool{}
	for id := range ids {
		assert.False(t, seen[id], "id %d allocated twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
}
