package board

import "sync"

// AttackTables holds every precomputed attack table. It is built once and
// never written afterwards, so one value can be shared by any number of
// positions and goroutines.
type AttackTables struct {
	pawn   [2][64]Bitboard // [Color][Square]
	knight [64]Bitboard
	king   [64]Bitboard

	// Magic tables, indexed [Square][magic index].
	bishop [][]Bitboard
	rook   [][]Bitboard
}

var (
	defaultTables     *AttackTables
	defaultTablesOnce sync.Once
)

// DefaultTables returns the process-wide attack tables, building them on
// first use.
func DefaultTables() *AttackTables {
	defaultTablesOnce.Do(func() {
		defaultTables = NewAttackTables()
	})
	return defaultTables
}

// NewAttackTables builds a fresh set of attack tables.
// Prefer DefaultTables unless an independent copy is needed.
func NewAttackTables() *AttackTables {
	t := &AttackTables{}

	for sq := A8; sq <= H1; sq++ {
		t.pawn[White][sq] = maskPawnAttacks(sq, White)
		t.pawn[Black][sq] = maskPawnAttacks(sq, Black)
		t.knight[sq] = maskKnightAttacks(sq)
		t.king[sq] = maskKingAttacks(sq)
	}

	t.bishop = buildMagicTable(Diagonal)
	t.rook = buildMagicTable(Orthogonal)

	return t
}

// maskPawnAttacks returns the two forward diagonal captures of a pawn.
// White moves toward rank 8, which is toward lower square indices.
func maskPawnAttacks(sq Square, c Color) Bitboard {
	bb := SquareBB(sq)

	if c == White {
		return (bb>>7)&NotFileA | (bb>>9)&NotFileH
	}
	return (bb<<9)&NotFileA | (bb<<7)&NotFileH
}

func maskKnightAttacks(sq Square) Bitboard {
	bb := SquareBB(sq)

	// Knight moves: 2+1 or 1+2 in any direction
	attacks := Empty

	// Toward rank 8
	attacks |= (bb >> 10) & NotFileGH // up 1, left 2
	attacks |= (bb >> 17) & NotFileH  // up 2, left 1
	attacks |= (bb >> 6) & NotFileAB  // up 1, right 2
	attacks |= (bb >> 15) & NotFileA  // up 2, right 1

	// Toward rank 1
	attacks |= (bb << 6) & NotFileGH  // down 1, left 2
	attacks |= (bb << 15) & NotFileH  // down 2, left 1
	attacks |= (bb << 10) & NotFileAB // down 1, right 2
	attacks |= (bb << 17) & NotFileA  // down 2, right 1

	return attacks
}

func maskKingAttacks(sq Square) Bitboard {
	bb := SquareBB(sq)

	attacks := (bb >> 8) | (bb << 8)
	attacks |= (bb>>1)&NotFileH | (bb<<1)&NotFileA
	attacks |= (bb>>9)&NotFileH | (bb>>7)&NotFileA
	attacks |= (bb<<7)&NotFileH | (bb<<9)&NotFileA

	return attacks
}

// PawnAttacks returns the squares a pawn of color c on sq attacks.
func (t *AttackTables) PawnAttacks(sq Square, c Color) Bitboard {
	return t.pawn[c][sq]
}

// KnightAttacks returns the knight attack bitboard for a square.
func (t *AttackTables) KnightAttacks(sq Square) Bitboard {
	return t.knight[sq]
}

// KingAttacks returns the king attack bitboard for a square.
func (t *AttackTables) KingAttacks(sq Square) Bitboard {
	return t.king[sq]
}

// BishopAttacks returns bishop attacks from sq for the given occupancy.
func (t *AttackTables) BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return t.bishop[sq][Diagonal.index(sq, occupied)]
}

// RookAttacks returns rook attacks from sq for the given occupancy.
func (t *AttackTables) RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return t.rook[sq][Orthogonal.index(sq, occupied)]
}

// QueenAttacks returns the queen attack bitboard for a square with given occupancy.
func (t *AttackTables) QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return t.BishopAttacks(sq, occupied) | t.RookAttacks(sq, occupied)
}
