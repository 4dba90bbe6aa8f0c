// Package detrand is the deterministic procedural-generation substrate:
// an isolated PRNG plus integer-only math, noise, geometry, easing, and
// color primitives giving bit-identical results across call sites.
package detrand

// Rng is a PCG RXS M XS 64 generator (O'Neill, "PCG: A Family of Simple
// Fast Space-Efficient Statistically Good Algorithms for Random Number
// Generation") holding its state explicitly; there is no global RNG.
// The constants and permutation step are ported from the
// reference PCGSource implementation rather than imported, since the
// upstream golang.org/x/exp/rand package that carries it offers no
// compatibility guarantee across versions.
type Rng struct {
	state uint64
}

const (
	pcgMultiplier = 6364136223846793005
	pcgIncrement  = 1442695040888963407
	pcgPermuter   = 12605985483714917081
)

// NewRng seeds a new Rng. Construction with the same seed always
// produces the same output stream.
func NewRng(seed uint64) *Rng {
	return &Rng{state: seed}
}

// NextU64 returns the next full 64-bit pseudo-random word.
func (r *Rng) NextU64() uint64 {
	oldState := r.state
	r.state = r.state*pcgMultiplier + pcgIncrement
	word := ((oldState >> ((oldState >> 59) + 5)) ^ oldState) * pcgPermuter
	return (word >> 43) ^ word
}

// RandMax returns a value in [0, maxInclusive] using the direct-modulo
// reduction. The exact (non-unbiased) reduction is required for
// cross-language reproducibility; do not replace it with a
// rejection-sampling scheme.
func (r *Rng) RandMax(maxInclusive int64) int64 {
	if maxInclusive <= 0 {
		return 0
	}
	return int64(r.NextU64() % uint64(maxInclusive+1))
}

// RandRange returns a value in [min, max].
func (r *Rng) RandRange(min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + r.RandMax(max-min)
}

// Shuffle performs an in-place Fisher-Yates shuffle, iterating backward
// from len-1 down to 1. The backward direction is mandatory for
// cross-implementation determinism.
func Shuffle[T any](r *Rng, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.RandRange(0, int64(i))
		items[i], items[j] = items[j], items[i]
	}
}

// Sample partially shuffles the first n positions of items (forward
// selection sampling: for each i in [0, n), swap with a random j in
// [i, len-1]) and returns that prefix. This is distinct from Shuffle's
// mandatory backward direction; it is a separate operation over a
// prefix, not a full-array shuffle.
func Sample[T any](r *Rng, items []T, n int) []T {
	if n > len(items) {
		n = len(items)
	}
	for i := 0; i < n; i++ {
		j := r.RandRange(int64(i), int64(len(items)-1))
		items[i], items[j] = items[j], items[i]
	}
	return items[:n]
}

// Choice returns a uniformly random element of items.
func Choice[T any](r *Rng, items []T) T {
	idx := r.RandMax(int64(len(items) - 1))
	return items[idx]
}

// WeightedChoice returns an element of items chosen with probability
// proportional to the matching entry in weights (weights must be the
// same length as items and sum > 0).
func WeightedChoice[T any](r *Rng, items []T, weights []int64) T {
	var total int64
	for _, w := range weights {
		total += w
	}
	pick := r.RandMax(total - 1)
	var acc int64
	for i, w := range weights {
		acc += w
		if pick < acc {
			return items[i]
		}
	}
	return items[len(items)-1]
}
