package sim

import (
	"math/rand"
)

// Rand is the single seeded random stream a simulation component draws from.
// It is not safe for concurrent use.
type Rand struct {
	src  *rand.Rand
	seed int64
}

func NewRand(seed int64) *Rand {
	return &Rand{
		src:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

func (r *Rand) Seed() int64 {
	return r.seed
}

// Float64 returns a number in [0.0, 1.0).
func (r *Rand) Float64() float64 {
	return r.src.Float64()
}

// Uniform returns a number in [lo, hi).
func (r *Rand) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*r.src.Float64()
}

// IntRange returns a number in [lo, hi], both inclusive.
func (r *Rand) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.src.Intn(hi-lo+1)
}

// Choice returns a uniformly drawn element of items. items must not be empty.
func Choice[T any](r *Rand, items []T) T {
	return items[r.src.Intn(len(items))]
}
