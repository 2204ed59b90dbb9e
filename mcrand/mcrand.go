// Package mcrand is the engine's one door to randomness: a seeded,
// non-global source so that two runs started with the same seed replay
// identically (spec §8 property 5), which a shared package-level
// math/rand.Rand cannot guarantee once chains run concurrently.
package mcrand

import "math/rand"

// Source wraps a *rand.Rand seeded at construction. It is not safe for
// concurrent use; each chain goroutine owns its own Source.
type Source struct {
	r *rand.Rand
}

// New returns a Source seeded deterministically from seed.
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// Uniform returns a float64 in [0, 1), the draw original_source calls via
// np.random.ranf()/random_sample() for acceptance tests.
func (s *Source) Uniform() float64 {
	return s.r.Float64()
}

// Intn returns a uniform int in [0, n), the draw original_source calls via
// np.random.randint(0, n) to pick a site to flip.
func (s *Source) Intn(n int) int {
	return s.r.Intn(n)
}

// Perm returns a random permutation of [0, n), used by the sequential
// hybrid driver to visit every site once per sweep in a fresh order.
func (s *Source) Perm(n int) []int {
	return s.r.Perm(n)
}
