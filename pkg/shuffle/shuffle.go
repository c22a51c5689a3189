// Package shuffle produces reproducible random permutations of sort inputs.
package shuffle

import (
	"math/rand/v2"
	"time"
)

// seedStream is the second PCG word; fixed so a single seed fully
// determines the permutation.
const seedStream = 0x9e3779b97f4a7c15

// NewRand returns a PCG-backed generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seedStream))
}

// RandomSeed returns a fresh seed for runs that did not ask for one.
func RandomSeed() uint64 {
	seed := uint64(time.Now().UnixNano()) //nolint:gosec // nanosecond clock is never negative here.
	if seed == 0 {
		seed = 1
	}

	return seed
}

// Slice permutes seq in place with a Fisher-Yates shuffle driven by rng.
func Slice[T any](seq []T, rng *rand.Rand) {
	for i := len(seq) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		seq[i], seq[j] = seq[j], seq[i]
	}
}

// Permutation returns 0..n-1 shuffled with the generator for seed.
func Permutation(n int, seed uint64) []int {
	seq := make([]int, n)

	for i := range seq {
		seq[i] = i
	}

	Slice(seq, NewRand(seed))

	return seq
}
