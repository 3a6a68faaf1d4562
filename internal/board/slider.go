package board

import "fmt"

// Ray directions as (row, file) steps. Row grows toward rank 1.
var (
	bishopDirections = [4][2]int{{-1, 1}, {-1, -1}, {1, 1}, {1, -1}}
	rookDirections   = [4][2]int{{0, 1}, {0, -1}, {-1, 0}, {1, 0}}
)

// BishopRelevanceMask returns the squares whose occupancy can change a
// bishop's attacks from sq. Board edges are excluded since nothing lies
// beyond them.
func BishopRelevanceMask(sq Square) Bitboard {
	return relevanceMask(sq, &bishopDirections)
}

// RookRelevanceMask returns the relevant occupancy mask for a rook at sq.
func RookRelevanceMask(sq Square) Bitboard {
	return relevanceMask(sq, &rookDirections)
}

// relevanceMask walks each ray and stops one square short of the boundary.
// A ray running along an edge keeps its interior squares: only the final
// square in the direction of travel is dropped.
func relevanceMask(sq Square, dirs *[4][2]int) Bitboard {
	var mask Bitboard
	row, file := sq.Row(), sq.File()

	for _, d := range dirs {
		r, f := row+d[0], file+d[1]
		for onBoard(r+d[0], f+d[1]) {
			mask |= SquareBB(NewSquare(f, r))
			r, f = r+d[0], f+d[1]
		}
	}

	return mask
}

// BishopAttacksSlow computes bishop attacks by ray casting. It is the
// reference the magic tables are built from and tested against.
func BishopAttacksSlow(sq Square, blockers Bitboard) Bitboard {
	return slowAttacks(sq, blockers, &bishopDirections)
}

// RookAttacksSlow computes rook attacks by ray casting.
func RookAttacksSlow(sq Square, blockers Bitboard) Bitboard {
	return slowAttacks(sq, blockers, &rookDirections)
}

// slowAttacks walks every ray to the true board edge. The first blocker on
// a ray is included and ends that ray.
func slowAttacks(sq Square, blockers Bitboard, dirs *[4][2]int) Bitboard {
	var attacks Bitboard
	row, file := sq.Row(), sq.File()

	for _, d := range dirs {
		for r, f := row+d[0], file+d[1]; onBoard(r, f); r, f = r+d[0], f+d[1] {
			s := SquareBB(NewSquare(f, r))
			attacks |= s
			if blockers&s != 0 {
				break
			}
		}
	}

	return attacks
}

func onBoard(row, file int) bool {
	return row >= 0 && row <= 7 && file >= 0 && file <= 7
}

// OccupancySubset maps index, in [0, 2^bits), onto the set bits of mask:
// bit c of index selects the c-th lowest set bit of mask. Enumerating every
// index yields every subset of mask exactly once.
//
// mask must have at least bits set bits.
func OccupancySubset(index, bits int, mask Bitboard) Bitboard {
	var occ Bitboard
	for c := 0; c < bits; c++ {
		sq, err := mask.LSBIndex()
		if err != nil {
			panic(fmt.Sprintf("board: occupancy subset %d needs %d mask bits, mask ran out at %d", index, bits, c))
		}
		mask = mask.Clear(sq)
		if index&(1<<c) != 0 {
			occ |= SquareBB(sq)
		}
	}
	return occ
}
