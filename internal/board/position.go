package board

import (
	"fmt"
	"strings"
)

// CastlingRights holds the four independent castling permissions.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr&WhiteKingSideCastle != 0
		}
		return cr&WhiteQueenSideCastle != 0
	}
	if kingSide {
		return cr&BlackKingSideCastle != 0
	}
	return cr&BlackQueenSideCastle != 0
}

// Position represents the state of a game. It is owned by one goroutine at a
// time; the attack tables it points to are shared and read-only.
type Position struct {
	tables *AttackTables

	// Piece bitboards: [Color][PieceType]
	pieces [2][6]Bitboard

	// Occupancy bitboards, always the union of the piece bitboards above
	occupied    [2]Bitboard
	allOccupied Bitboard

	// Game state
	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // Target square for en passant, NoSquare if none
}

// NewPosition creates an empty position bound to the given attack tables.
// White is to move and all castling rights are set.
func NewPosition(t *AttackTables) *Position {
	p := &Position{tables: t}
	p.Clear()
	return p
}

// Tables returns the attack tables the position queries.
func (p *Position) Tables() *AttackTables {
	return p.tables
}

// Copy creates an independent copy of the position sharing the same tables.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// Clear removes every piece and resets the flags to those of a new position.
func (p *Position) Clear() {
	*p = Position{
		tables:         p.tables,
		SideToMove:     White,
		CastlingRights: AllCastling,
		EnPassant:      NoSquare,
	}
}

// PlacePiece puts a piece of kind pt and color c on sq, updating the piece
// bitboard and both occupancy bitboards it belongs to.
func (p *Position) PlacePiece(c Color, pt PieceType, sq Square) {
	p.pieces[c][pt] = p.pieces[c][pt].Set(sq)
	p.occupied[c] = p.occupied[c].Set(sq)
	p.allOccupied = p.allOccupied.Set(sq)
}

// RemovePiece takes whatever stands on sq off the board and returns it,
// or NoPiece if the square was empty.
func (p *Position) RemovePiece(sq Square) Piece {
	piece := p.PieceAt(sq)
	if piece == NoPiece {
		return NoPiece
	}

	c, pt := piece.Color(), piece.Type()
	p.pieces[c][pt] = p.pieces[c][pt].Clear(sq)
	p.occupied[c] = p.occupied[c].Clear(sq)
	p.allOccupied = p.allOccupied.Clear(sq)

	return piece
}

// Pieces returns the bitboard of pieces of kind pt and color c.
func (p *Position) Pieces(c Color, pt PieceType) Bitboard {
	return p.pieces[c][pt]
}

// Occupied returns every square held by color c.
func (p *Position) Occupied(c Color) Bitboard {
	return p.occupied[c]
}

// AllOccupied returns every occupied square.
func (p *Position) AllOccupied() Bitboard {
	return p.allOccupied
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return !p.allOccupied.IsSet(sq)
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
// It panics if the occupancy bitboards disagree with the piece bitboards.
func (p *Position) PieceAt(sq Square) Piece {
	if !p.allOccupied.IsSet(sq) {
		return NoPiece
	}

	var c Color
	switch {
	case p.occupied[White].IsSet(sq):
		c = White
	case p.occupied[Black].IsSet(sq):
		c = Black
	default:
		panic(fmt.Sprintf("board: %s is occupied but belongs to neither side", sq))
	}

	for pt := Pawn; pt <= King; pt++ {
		if p.pieces[c][pt].IsSet(sq) {
			return NewPiece(pt, c)
		}
	}

	panic(fmt.Sprintf("board: %s is occupied by %s but holds no piece", sq, c))
}

// IsSquareAttacked returns true if any piece of color by attacks sq, with
// sliders blocked by the full board occupancy.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	t := p.tables
	occ := p.allOccupied

	// A pawn of color by attacks sq exactly when a pawn of the other color
	// on sq would attack it back.
	if t.PawnAttacks(sq, by.Other())&p.pieces[by][Pawn] != 0 {
		return true
	}
	if t.KnightAttacks(sq)&p.pieces[by][Knight] != 0 {
		return true
	}
	if t.BishopAttacks(sq, occ)&p.pieces[by][Bishop] != 0 {
		return true
	}
	if t.RookAttacks(sq, occ)&p.pieces[by][Rook] != 0 {
		return true
	}
	if t.QueenAttacks(sq, occ)&p.pieces[by][Queen] != 0 {
		return true
	}
	return t.KingAttacks(sq)&p.pieces[by][King] != 0
}

// AttackersTo returns a bitboard of pieces of color by attacking sq.
func (p *Position) AttackersTo(sq Square, by Color) Bitboard {
	t := p.tables
	occ := p.allOccupied
	return (t.PawnAttacks(sq, by.Other()) & p.pieces[by][Pawn]) |
		(t.KnightAttacks(sq) & p.pieces[by][Knight]) |
		(t.KingAttacks(sq) & p.pieces[by][King]) |
		(t.BishopAttacks(sq, occ) & (p.pieces[by][Bishop] | p.pieces[by][Queen])) |
		(t.RookAttacks(sq, occ) & (p.pieces[by][Rook] | p.pieces[by][Queen]))
}

// AttackedSquares returns every square attacked by color by.
func (p *Position) AttackedSquares(by Color) Bitboard {
	var attacked Bitboard
	for sq := A8; sq <= H1; sq++ {
		if p.IsSquareAttacked(sq, by) {
			attacked |= SquareBB(sq)
		}
	}
	return attacked
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	writeFrame(&sb, func(sq Square) byte {
		return p.PieceAt(sq).Char()
	})
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.CastlingRights)
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassant)
	return sb.String()
}
