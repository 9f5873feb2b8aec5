// Package rng provides the seeded random source every generation
// phase draws from. One Source is owned by exactly one generation run;
// an identical seed always replays the identical sequence.
package rng

import "math/rand"

// Source wraps a seeded math/rand generator with the small set of
// draws the generation phases need.
type Source struct {
	seed int64
	rand *rand.Rand
}

// New creates a source seeded with the given value.
func New(seed int64) *Source {
	return &Source{
		seed: seed,
		rand: rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() int64 {
	return s.seed
}

// Intn returns a uniform value in [0, n). n <= 1 returns 0, so
// degenerate settings never panic the run.
func (s *Source) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	return s.rand.Intn(n)
}

// Between returns a uniform value in [min, max]. A reversed or
// collapsed range returns min.
func (s *Source) Between(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rand.Intn(max-min+1)
}

// Chance returns true with probability p (clamped to [0, 1]).
func (s *Source) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.rand.Float64() < p
}

// Float64 returns a uniform value in [0, 1).
func (s *Source) Float64() float64 {
	return s.rand.Float64()
}

// WeightedChoice returns an index into weights, chosen with
// probability proportional to each weight. Non-positive weights are
// skipped; if no weight is positive, it returns 0.
func (s *Source) WeightedChoice(weights []int) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0
	}

	roll := s.rand.Intn(total)
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if roll < w {
			return i
		}
		roll -= w
	}
	return 0
}

// Shuffle randomizes the order of n elements using the swap function.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.rand.Shuffle(n, swap)
}
