package core

import "math"

// Sampler provides uniform random numbers to the rendering algorithms.
// Can be swapped out for deterministic testing.
type Sampler interface {
	Get1D() float64
}

// Rand is a xorshift-128 generator. A Rand is owned by exactly one goroutine.
type Rand struct {
	x, y, z, w uint32
}

// NewRand creates a generator seeded with s
func NewRand(s uint32) *Rand {
	r := &Rand{}
	r.Seed(s)
	return r
}

// Seed resets the state words from a single seed using the MT19937 initialisation
// recurrence.
func (r *Rand) Seed(s uint32) {
	var state [4]uint32
	for i := 1; i <= 4; i++ {
		s = 1812433253*(s^(s>>30)) + uint32(i)
		state[i-1] = s
	}
	r.x, r.y, r.z, r.w = state[0], state[1], state[2], state[3]
}

// Uint32 advances the generator and returns the next 32-bit word
func (r *Rand) Uint32() uint32 {
	t := r.x ^ (r.x << 11)
	r.x, r.y, r.z = r.y, r.z, r.w
	r.w = (r.w ^ (r.w >> 19)) ^ (t ^ (t >> 8))
	return r.w
}

// Float64 returns a uniform value in [0, 1)
func (r *Rand) Float64() float64 {
	return float64(r.Uint32()) / (float64(math.MaxUint32) + 1)
}

// Get1D implements Sampler
func (r *Rand) Get1D() float64 {
	return r.Float64()
}
