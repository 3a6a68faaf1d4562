package magicgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/hailam/bitmagic/internal/board"
)

// DefaultAttempts bounds the candidates tried for a single square.
const DefaultAttempts = 100_000_000

// ErrNotFound is returned when no magic was found within the attempt budget.
var ErrNotFound = errors.New("no magic number found")

// highByte is where the multiplied mask must spread enough bits for a
// candidate to be worth a full collision check.
const highByte = 0xFF00000000000000

// Result is one magic found for a slider on a square.
type Result struct {
	Slider   board.Slider
	Square   board.Square
	Magic    uint64
	Bits     int
	Attempts int
}

// Finder tries random sparse candidates until one hashes every occupancy
// subset of a square without a harmful collision. Its buffers are reused
// between squares, so a Finder must not be shared between goroutines.
type Finder struct {
	rng      *Random
	attempts int

	occupancy []board.Bitboard
	reference []board.Bitboard
	used      []board.Bitboard
}

// NewFinder returns a finder drawing candidates from a generator seeded with
// seed. attempts <= 0 selects DefaultAttempts.
func NewFinder(seed uint32, attempts int) *Finder {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	return &Finder{
		rng:       NewRandom(seed),
		attempts:  attempts,
		occupancy: make([]board.Bitboard, board.RookTableSize),
		reference: make([]board.Bitboard, board.RookTableSize),
		used:      make([]board.Bitboard, board.RookTableSize),
	}
}

// Find searches a magic for slider s on sq.
func (f *Finder) Find(ctx context.Context, s board.Slider, sq board.Square) (Result, error) {
	mask := s.RelevanceMask(sq)
	bits := mask.CountBits()
	n := 1 << bits

	for i := 0; i < n; i++ {
		f.occupancy[i] = board.OccupancySubset(i, bits, mask)
		f.reference[i] = s.AttacksSlow(sq, f.occupancy[i])
	}

	for try := 1; try <= f.attempts; try++ {
		if try&0xFFFF == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}

		magic := f.rng.Candidate()
		if board.Bitboard((uint64(mask)*magic)&highByte).CountBits() < 6 {
			continue
		}

		if f.try(magic, bits) {
			return Result{Slider: s, Square: sq, Magic: magic, Bits: bits, Attempts: try}, nil
		}
	}

	return Result{}, fmt.Errorf("%w: %s on %s after %d attempts", ErrNotFound, s, sq, f.attempts)
}

// try reports whether magic is a usable hash for the loaded occupancies.
// Slider attacks are never empty, so a zero slot is unused.
func (f *Finder) try(magic uint64, bits int) bool {
	n := 1 << bits
	used := f.used[:n]
	for i := range used {
		used[i] = 0
	}

	for i := 0; i < n; i++ {
		idx := board.MagicIndex(f.occupancy[i], magic, bits)
		switch used[idx] {
		case 0:
			used[idx] = f.reference[i]
		case f.reference[i]:
		default:
			return false
		}
	}

	return true
}
