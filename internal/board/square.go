// Package board implements a bitboard position representation with magic
// bitboard attack lookup.
package board

import (
	"errors"
	"fmt"
)

// Square represents a square on the board (0-63).
// Index 0 is A8 and indices grow left to right, then top to bottom: H8=7, A1=56, H1=63.
type Square uint8

// ErrInvalidSquare is returned when a coordinate string does not name a square.
var ErrInvalidSquare = errors.New("invalid square")

// Square constants for all 64 squares.
const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A1
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	NoSquare Square = 64
)

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) % 8
}

// Row returns the board row of the square (0-7, where 0 is rank 8).
func (sq Square) Row() int {
	return int(sq) / 8
}

// Rank returns the conventional rank number (1-8).
func (sq Square) Rank() int {
	return 8 - sq.Row()
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+sq.File(), sq.Rank())
}

// NewSquare creates a square from file and row (0-indexed, row 0 = rank 8).
func NewSquare(file, row int) Square {
	return Square(row*8 + file)
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// ParseSquare parses algebraic notation (e.g., "e4" or "E4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q: expected 2 characters, got %d", ErrInvalidSquare, s, len(s))
	}

	f := s[0] | 0x20 // ASCII lower case
	if f < 'a' || f > 'h' {
		return NoSquare, fmt.Errorf("%w: %q: invalid file letter %q", ErrInvalidSquare, s, s[0])
	}

	r := s[1]
	if r < '0' || r > '9' {
		return NoSquare, fmt.Errorf("%w: %q: rank %q is not a digit", ErrInvalidSquare, s, r)
	}
	if r < '1' || r > '8' {
		return NoSquare, fmt.Errorf("%w: %q: rank %c is off the board", ErrInvalidSquare, s, r)
	}

	return NewSquare(int(f-'a'), 8-int(r-'0')), nil
}
