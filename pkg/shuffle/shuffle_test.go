package shuffle_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/heapsort/pkg/shuffle"
)

func TestPermutation_IsPermutation(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 2, 15, 100} {
		perm := shuffle.Permutation(n, 42)
		assert.Len(t, perm, n)

		sorted := slices.Clone(perm)
		slices.Sort(sorted)

		for i, v := range sorted {
			assert.Equal(t, i, v)
		}
	}
}

func TestPermutation_Deterministic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, shuffle.Permutation(50, 7), shuffle.Permutation(50, 7))
	assert.NotEqual(t, shuffle.Permutation(50, 7), shuffle.Permutation(50, 8))
}

func TestSlice_Strings(t *testing.T) {
	t.Parallel()

	words := []string{"a", "b", "c", "d", "e", "f"}
	shuffle.Slice(words, shuffle.NewRand(3))

	sorted := slices.Clone(words)
	slices.Sort(sorted)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, sorted)
}

func TestRandomSeed_NonZero(t *testing.T) {
	t.Parallel()

	assert.NotZero(t, shuffle.RandomSeed())
}
