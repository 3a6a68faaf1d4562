package board

import (
	"errors"
	"fmt"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FEN parsing errors. Returned errors wrap one of these.
var (
	ErrFENEmpty       = errors.New("empty FEN")
	ErrFENRowCount    = errors.New("board must have exactly 8 rows")
	ErrFENColumnCount = errors.New("board row must have exactly 8 columns")
	ErrFENDigit       = errors.New("invalid number of empty squares")
	ErrFENPiece       = errors.New("unexpected piece letter")
	ErrFENSideToMove  = errors.New("side to move must be 'w' or 'b'")
)

// ParseFEN creates a position bound to t from a FEN string.
func ParseFEN(t *AttackTables, fen string) (*Position, error) {
	pos := NewPosition(t)
	if err := pos.LoadFEN(fen); err != nil {
		return nil, err
	}
	return pos, nil
}

// LoadFEN clears the position and loads piece placement, side to move,
// castling rights and en passant target from fen.
//
// Castling and en passant fields may be missing. An en passant field that is
// not a square (including "-") means no target. Move counters are ignored.
// On error the board is left cleared or partially filled.
func (p *Position) LoadFEN(fen string) error {
	p.Clear()

	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return ErrFENEmpty
	}

	// Piece placement (field 0)
	if err := p.parsePiecePlacement(parts[0]); err != nil {
		return err
	}

	// Side to move (field 1)
	if len(parts) < 2 {
		return fmt.Errorf("%w: field missing", ErrFENSideToMove)
	}
	switch strings.ToLower(parts[1]) {
	case "w":
		p.SideToMove = White
	case "b":
		p.SideToMove = Black
	default:
		return fmt.Errorf("%w: got %q", ErrFENSideToMove, parts[1])
	}

	// Castling rights (field 2)
	if len(parts) < 3 {
		return nil
	}
	p.CastlingRights = parseCastlingRights(parts[2])

	// En passant square (field 3)
	if len(parts) < 4 {
		return nil
	}
	if sq, err := ParseSquare(parts[3]); err == nil {
		p.EnPassant = sq
	}

	return nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
// Row 0 of the string is rank 8, which is also row 0 of the board.
func (p *Position) parsePiecePlacement(placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return fmt.Errorf("%w: got %d", ErrFENRowCount, len(rows))
	}

	for row, rowStr := range rows {
		file := 0

		for i := 0; i < len(rowStr); i++ {
			c := rowStr[i]

			if c >= '0' && c <= '9' {
				if c < '1' || c > '8' {
					return fmt.Errorf("%w: %c in row %d", ErrFENDigit, c, row+1)
				}
				file += int(c - '0')
				continue
			}

			piece := PieceFromChar(c)
			if piece == NoPiece {
				return fmt.Errorf("%w: %q in row %d", ErrFENPiece, c, row+1)
			}
			if file > 7 {
				return fmt.Errorf("%w: row %d overflows at %q", ErrFENColumnCount, row+1, c)
			}
			p.PlacePiece(piece.Color(), piece.Type(), NewSquare(file, row))
			file++
		}

		if file != 8 {
			return fmt.Errorf("%w: row %d has %d", ErrFENColumnCount, row+1, file)
		}
	}

	return nil
}

// parseCastlingRights reads a castling field. Only K, Q, k and q grant a
// right; any other character is ignored.
func parseCastlingRights(castling string) CastlingRights {
	cr := NoCastling
	for _, c := range castling {
		switch c {
		case 'K':
			cr |= WhiteKingSideCastle
		case 'Q':
			cr |= WhiteQueenSideCastle
		case 'k':
			cr |= BlackKingSideCastle
		case 'q':
			cr |= BlackQueenSideCastle
		}
	}
	return cr
}
