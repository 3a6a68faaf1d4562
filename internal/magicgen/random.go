// Package magicgen searches for magic multipliers offline and writes them
// out as Go source for the board package. Nothing here runs when the attack
// tables are built; the board package only reads the emitted constants.
package magicgen

// DefaultSeed is the seed the baked tables were searched with.
const DefaultSeed uint32 = 1804289383

// Random is a 32-bit xorshift generator. It is deterministic so a search
// can be reproduced from its seed.
type Random struct {
	state uint32
}

// NewRandom returns a generator seeded with seed. A zero seed would make
// xorshift emit zeros forever, so it is replaced with DefaultSeed.
func NewRandom(seed uint32) *Random {
	if seed == 0 {
		seed = DefaultSeed
	}
	return &Random{state: seed}
}

// Uint32 returns the next 32-bit value.
func (r *Random) Uint32() uint32 {
	n := r.state
	n ^= n << 13
	n ^= n >> 17
	n ^= n << 5
	r.state = n
	return n
}

// Uint64 builds a 64-bit value from the low 16 bits of four draws.
func (r *Random) Uint64() uint64 {
	n1 := uint64(r.Uint32()) & 0xFFFF
	n2 := uint64(r.Uint32()) & 0xFFFF
	n3 := uint64(r.Uint32()) & 0xFFFF
	n4 := uint64(r.Uint32()) & 0xFFFF
	return n1 | n2<<16 | n3<<32 | n4<<48
}

// Candidate returns a sparse value, the AND of three draws. Magics with few
// set bits are found much faster.
func (r *Random) Candidate() uint64 {
	return r.Uint64() & r.Uint64() & r.Uint64()
}

// deriveSeed spreads per-job seeds for parallel searches.
func deriveSeed(seed uint32, job int) uint32 {
	s := seed ^ uint32(job+1)*0x9E3779B9
	if s == 0 {
		s = DefaultSeed
	}
	return s
}
