package board

import (
	"errors"
	"fmt"
	"strings"
)

// Bitboard represents a 64-bit board where each bit corresponds to a square.
// Bit 0 = A8, Bit 7 = H8, Bit 56 = A1, Bit 63 = H1 (rank-major, top row first).
type Bitboard uint64

// ErrEmptyBitboard is returned when a bit index is requested from an empty board.
var ErrEmptyBitboard = errors.New("empty bitboard has no set bit")

// File masks
const (
	FileA Bitboard = 0x0101010101010101
	FileB Bitboard = FileA << 1
	FileC Bitboard = FileA << 2
	FileD Bitboard = FileA << 3
	FileE Bitboard = FileA << 4
	FileF Bitboard = FileA << 5
	FileG Bitboard = FileA << 6
	FileH Bitboard = FileA << 7
)

// Rank masks. Rank 8 is the top row and holds the lowest bits.
const (
	Rank8 Bitboard = 0x00000000000000FF
	Rank7 Bitboard = Rank8 << 8
	Rank6 Bitboard = Rank8 << 16
	Rank5 Bitboard = Rank8 << 24
	Rank4 Bitboard = Rank8 << 32
	Rank3 Bitboard = Rank8 << 40
	Rank2 Bitboard = Rank8 << 48
	Rank1 Bitboard = Rank8 << 56
)

// Special masks
const (
	Empty    Bitboard = 0
	Universe Bitboard = 0xFFFFFFFFFFFFFFFF

	// Wrap-around guards for shifted attack masks
	NotFileA  Bitboard = ^FileA
	NotFileH  Bitboard = ^FileH
	NotFileAB Bitboard = ^(FileA | FileB)
	NotFileGH Bitboard = ^(FileG | FileH)

	// Squares a slider can never be blocked beyond
	Edges Bitboard = FileA | FileH | Rank1 | Rank8
)

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&(1<<sq) != 0
}

// Set returns the board with the bit at sq forced to 1.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | (1 << sq)
}

// Clear returns the board with the bit at sq cleared. Clearing an unset bit
// returns the board unchanged.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ (1 << sq)
}

// CountBits returns the number of set bits, clearing the lowest set bit once
// per iteration.
func (b Bitboard) CountBits() int {
	n := 0
	for b != 0 {
		n++
		b &= b - 1
	}
	return n
}

// LSBIndex returns the index of the lowest set bit.
func (b Bitboard) LSBIndex() (Square, error) {
	if b == 0 {
		return NoSquare, ErrEmptyBitboard
	}
	// Two's complement isolates the lowest bit; everything below it is then
	// exactly lsb-1.
	lsb := b & (^b + 1)
	return Square((lsb - 1).CountBits()), nil
}

// PopLSB removes and returns the least significant bit.
// The board must not be empty.
func (b *Bitboard) PopLSB() Square {
	sq, err := b.LSBIndex()
	if err != nil {
		panic(err)
	}
	*b &= *b - 1
	return sq
}

// Empty returns true if no bits are set.
func (b Bitboard) Empty() bool {
	return b == 0
}

// Squares returns a slice of all squares that are set, lowest first.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.CountBits())
	for b != 0 {
		squares = append(squares, b.PopLSB())
	}
	return squares
}

// String returns a framed grid of the bitboard followed by its numeric value.
func (b Bitboard) String() string {
	var sb strings.Builder
	writeFrame(&sb, func(sq Square) byte {
		if b.IsSet(sq) {
			return '1'
		}
		return '0'
	})
	fmt.Fprintf(&sb, "Bitboard Value: %d\n", uint64(b))
	return sb.String()
}

// writeFrame draws the 8x8 grid shared by bitboard and position printing.
func writeFrame(sb *strings.Builder, cell func(Square) byte) {
	const header = "    A   B   C   D   E   F   G   H\n"
	const rule = "  |---|---|---|---|---|---|---|---|\n"

	sb.WriteString(header)
	sb.WriteString(rule)
	for row := 0; row < 8; row++ {
		fmt.Fprintf(sb, "%d |", 8-row)
		for file := 0; file < 8; file++ {
			fmt.Fprintf(sb, " %c |", cell(NewSquare(file, row)))
		}
		fmt.Fprintf(sb, " %d\n", 8-row)
		sb.WriteString(rule)
	}
	sb.WriteString(header)
}
