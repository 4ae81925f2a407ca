// Package rng wraps math/rand/v2 so every random decision in the game can be
// driven by one injectable, seedable source.
package rng

import (
	"math/rand/v2"
	"time"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// New creates a deterministic RNG using the provided seed.
// A zero seed picks one from the wall clock.
func New(seed int64) *RNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Range returns a value uniformly distributed in [min, max).
func (r *RNG) Range(min, max float32) float32 {
	if max <= min {
		return min
	}
	return min + r.r.Float32()*(max-min)
}

// IntN returns an int in [0, n). Non-positive n yields 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Shuffle pseudo-randomizes the order of n elements using swap.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	r.r.Shuffle(n, swap)
}
