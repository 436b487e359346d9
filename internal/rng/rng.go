// Package rng funnels every random draw the simulation makes through a single
// seeded source. Live ticking and offline catch-up share the same stream, so
// the replay path exercises identical resolution code with no special casing.
package rng

import "math/rand"

// Source is the draw interface handed to combat, loot, and spawn code.
type Source interface {
	// Intn returns a uniform int in [0, n). n <= 0 returns 0.
	Intn(n int) int
	// Roll returns a uniform int in [min, max] inclusive.
	Roll(min, max int) int
	// Float64 returns a uniform float in [0.0, 1.0).
	Float64() float64
	// Chance performs a Bernoulli trial at probability p (clamped to [0,1]).
	Chance(p float64) bool
}

type seeded struct {
	r *rand.Rand
}

// New returns a Source seeded with the given value.
func New(seed int64) Source {
	return &seeded{r: rand.New(rand.NewSource(seed))}
}

func (s *seeded) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.Intn(n)
}

func (s *seeded) Roll(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.r.Intn(max-min+1)
}

func (s *seeded) Float64() float64 {
	return s.r.Float64()
}

func (s *seeded) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.r.Float64() < p
}
