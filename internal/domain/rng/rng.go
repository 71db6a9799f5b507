// Package rng provides the reproducible Lehmer generator used to derive
// ghost cohorts from small integer seeds.
//
// The generator is the MINSTD revision: state' = state * 48271 mod (2^31 - 1).
// Every generator in this module uses the same multiplier; changing it
// changes every cohort ever shown, so treat it as part of the wire contract.
package rng

import "fmt"

// Generator constants.
const (
	// Modulus is the Mersenne prime 2^31 - 1.
	Modulus int64 = 2147483647
	// Multiplier is the full-period MINSTD multiplier.
	Multiplier int64 = 48271
)

// Rand is a multiplicative linear-congruential generator. It is not safe for
// concurrent use; each engine owns its own instance.
type Rand struct {
	seed int64
}

// New returns a generator seeded with seed, normalized into [1, Modulus-1].
func New(seed int64) *Rand {
	return &Rand{seed: Normalize(seed)}
}

// Normalize maps any integer into the valid state range [1, Modulus-1].
func Normalize(seed int64) int64 {
	span := Modulus - 1
	s := (seed - 1) % span
	if s < 0 {
		s += span
	}
	return s + 1
}

// Seed returns the current state without advancing it.
func (r *Rand) Seed() int64 { return r.seed }

// Next advances the state and returns it as the draw.
func (r *Rand) Next() int64 {
	r.seed = (r.seed * Multiplier) % Modulus
	return r.seed
}

// Float returns a draw normalized into [0, 1).
func (r *Rand) Float() float64 {
	return float64(r.Next()-1) / float64(Modulus-1)
}

// Range returns an integer in [lo, hi], both inclusive. It panics when hi < lo.
func (r *Rand) Range(lo, hi int) int {
	if hi < lo {
		panic(fmt.Sprintf("rng: invalid range [%d, %d]", lo, hi))
	}
	span := float64(hi - lo + 1)
	return int(r.Float()*span) + lo
}

// Discard advances the generator n times.
func (r *Rand) Discard(n int) {
	for i := 0; i < n; i++ {
		r.Next()
	}
}

// Pick returns a uniformly drawn element of items. It panics on an empty slice.
func Pick[T any](r *Rand, items []T) T {
	if len(items) == 0 {
		panic("rng: pick from empty sequence")
	}
	return items[r.Range(0, len(items)-1)]
}

// HashKey sums the code points of key. The result is a raw seed; pass it to
// New, which normalizes it.
func HashKey(key string) int64 {
	var sum int64
	for _, c := range key {
		sum += int64(c)
	}
	return sum
}
