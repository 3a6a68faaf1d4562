package board

// Magic bitboard implementation for sliding piece attacks.
// Uses pre-computed magic numbers (see magic_numbers.go) for fast lookup.

// Slider selects one of the two sliding move patterns.
type Slider uint8

const (
	Diagonal   Slider = iota // bishop rays
	Orthogonal               // rook rays
)

// Table sizes per square, large enough for the worst-case relevant bit count.
const (
	BishopTableSize = 1 << 9
	RookTableSize   = 1 << 12
)

// String returns the piece name the slider belongs to.
func (s Slider) String() string {
	if s == Diagonal {
		return "bishop"
	}
	return "rook"
}

// TableSize returns the number of table entries reserved per square.
func (s Slider) TableSize() int {
	if s == Diagonal {
		return BishopTableSize
	}
	return RookTableSize
}

// Mask returns the baked relevant occupancy mask for sq.
func (s Slider) Mask(sq Square) Bitboard {
	if s == Diagonal {
		return bishopRelevanceMasks[sq]
	}
	return rookRelevanceMasks[sq]
}

// Magic returns the baked magic multiplier for sq.
func (s Slider) Magic(sq Square) uint64 {
	if s == Diagonal {
		return bishopMagicNumbers[sq]
	}
	return rookMagicNumbers[sq]
}

// RelevantBits returns the baked relevant bit count for sq.
func (s Slider) RelevantBits(sq Square) int {
	if s == Diagonal {
		return int(bishopRelevantBits[sq])
	}
	return int(rookRelevantBits[sq])
}

// RelevanceMask computes the relevant occupancy mask for sq from scratch.
func (s Slider) RelevanceMask(sq Square) Bitboard {
	if s == Diagonal {
		return BishopRelevanceMask(sq)
	}
	return RookRelevanceMask(sq)
}

// AttacksSlow computes attacks from sq by ray casting.
func (s Slider) AttacksSlow(sq Square, blockers Bitboard) Bitboard {
	if s == Diagonal {
		return BishopAttacksSlow(sq, blockers)
	}
	return RookAttacksSlow(sq, blockers)
}

// MagicIndex hashes a relevant occupancy into a table index: wrapping
// multiplication by magic, keeping the top bits bits.
func MagicIndex(occ Bitboard, magic uint64, bits int) uint64 {
	return (uint64(occ) * magic) >> (64 - bits)
}

// index is the runtime lookup: blockers off the relevant rays are masked out
// before hashing.
func (s Slider) index(sq Square, occupied Bitboard) uint64 {
	return MagicIndex(occupied&s.Mask(sq), s.Magic(sq), s.RelevantBits(sq))
}

// buildMagicTable fills one table per square with the ray-cast attacks of
// every occupancy subset of that square's relevance mask.
func buildMagicTable(s Slider) [][]Bitboard {
	table := make([][]Bitboard, 64)

	for sq := A8; sq <= H1; sq++ {
		table[sq] = make([]Bitboard, s.TableSize())

		mask := s.RelevanceMask(sq)
		bits := mask.CountBits()
		magic := s.Magic(sq)
		shiftBits := s.RelevantBits(sq)

		for i := 0; i < 1<<bits; i++ {
			occ := OccupancySubset(i, bits, mask)
			table[sq][MagicIndex(occ, magic, shiftBits)] = s.AttacksSlow(sq, occ)
		}
	}

	return table
}

// CheckMagic reports whether magic hashes every occupancy subset of mask for
// a slider on sq without a harmful collision. Colliding subsets are fine as
// long as their attack sets agree.
func CheckMagic(s Slider, sq Square, mask Bitboard, magic uint64) bool {
	bits := mask.CountBits()
	used := make([]Bitboard, 1<<bits)
	filled := make([]bool, 1<<bits)

	for i := 0; i < 1<<bits; i++ {
		occ := OccupancySubset(i, bits, mask)
		attacks := s.AttacksSlow(sq, occ)
		idx := MagicIndex(occ, magic, bits)

		if !filled[idx] {
			used[idx] = attacks
			filled[idx] = true
		} else if used[idx] != attacks {
			return false
		}
	}

	return true
}
