package rand_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flight-surety/utils/rand"
)

func TestUint64n(t *testing.T) {
	_, err := rand.Uint64n(0)
	require.Error(t, err)

	counts := make([]int, 6)
	for i := 0; i < 6000; i++ {
		r, err := rand.Uint64n(6)
		require.NoError(t, err)
		require.Less(t, r, uint64(6))
		counts[r]++
	}
	for value, count := range counts {
		assert.Greater(t, count, 700, "value %d drawn too rarely", value)
	}
}

func TestShuffle(t *testing.T) {
	elements := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	err := rand.Shuffle(uint(len(elements)), func(i, j uint) {
		elements[i], elements[j] = elements[j], elements[i]
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, elements)
}

func TestSample(t *testing.T) {
	_, err := rand.Sample([]string{})
	require.Error(t, err)

	sampled, err := rand.Sample([]string{"a", "b"})
	require.NoError(t, err)
	assert.Contains(t, []string{"a", "b"}, sampled)
}
