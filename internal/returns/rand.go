package returns

import "math"

// lcgModulus and friends are the glibc linear congruential parameters.
// The generator is deliberately simple: reproducibility across platforms
// matters more here than statistical sophistication, and it makes the
// "drill into seed #N" ensemble feature cheap to support.
const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgModulus    = 1 << 31
)

// Rand is a seeded linear congruential generator. The same seed always
// produces the same sequence.
type Rand struct {
	state int64
}

// NewRand creates a generator from a seed. Non-positive and oversized
// seeds are folded into the valid state range; zero maps to one so the
// generator never sticks.
func NewRand(seed int64) *Rand {
	r := &Rand{}
	r.Reset(seed)
	return r
}

// Reset re-seeds the generator, applying the same normalization as NewRand.
func (r *Rand) Reset(seed int64) {
	if seed < 0 {
		seed = -seed
	}
	seed %= lcgModulus
	if seed == 0 {
		seed = 1
	}
	r.state = seed
}

// Next returns the next value in [0, 1).
func (r *Rand) Next() float64 {
	r.state = (lcgMultiplier*r.state + lcgIncrement) % lcgModulus
	return float64(r.state) / float64(lcgModulus)
}

// IntN returns a value in [0, n).
func (r *Rand) IntN(n int) int {
	return int(r.Next() * float64(n))
}

// NormFloat64 returns a standard normal draw via the Box-Muller transform.
func (r *Rand) NormFloat64() float64 {
	u1 := r.Next()
	for u1 == 0 {
		u1 = r.Next()
	}
	u2 := r.Next()

	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
