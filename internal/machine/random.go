package machine

import "math/rand/v2"

// RandomSource provides the random bytes used by the rnd instruction.
type RandomSource interface {
	Byte() byte
}

// Random is a seeded pseudo random byte source.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a random source that produces a reproducible sequence
// for a given seed.
func NewRandom(seed uint64) *Random {
	return &Random{
		rng: rand.New(rand.NewPCG(seed, seed)),
	}
}

// Byte returns the next random byte.
func (r *Random) Byte() byte {
	return byte(r.rng.UintN(256))
}
