package fifoqueue_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flight-surety/engine/common/fifoqueue"
)

func TestFifoQueue(t *testing.T) {
	var lengths []int
	queue, err := fifoqueue.NewFifoQueue(
		fifoqueue.WithCapacity[string](2),
		fifoqueue.WithLengthObserver[string](func(length int) { lengths = append(lengths, length) }),
	)
	require.NoError(t, err)

	_, ok := queue.Pop()
	assert.False(t, ok)

	assert.True(t, queue.Push("a"))
	assert.True(t, queue.Push("b"))
	assert.False(t, queue.Push("c"), "element beyond capacity must be dropped")
	assert.Equal(t, 2, queue.Len())

	front, ok := queue.Front()
	require.True(t, ok)
	assert.Equal(t, "a", front)

	first, ok := queue.Pop()
	require.True(t, ok)
	assert.Equal(t, "a", first)
	second, ok := queue.Pop()
	require.True(t, ok)
	assert.Equal(t, "b", second)

	assert.Equal(t, []int{1, 2, 1, 0}, lengths)
}

func TestInvalidOptions(t *testing.T) {
	_, err := fifoqueue.NewFifoQueue(fifoqueue.WithCapacity[int](0))
	require.Error(t, err)

	_, err = fifoqueue.NewFifoQueue(fifoqueue.WithLengthObserver[int](nil))
	require.Error(t, err)
}

func TestConcurrentPush(t *testing.T) {
	queue, err := fifoqueue.NewFifoQueue[int]()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				queue.Push(i*100 + j)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1000, queue.Len())

	seen := make(map[int]struct{})
	for {
		element, ok := queue.Pop()
		if !ok {
			break
		}
		seen[element] = struct{}{}
	}
	assert.Len(t, seen, 1000)
}
