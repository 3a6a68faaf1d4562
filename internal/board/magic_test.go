package board

import "testing"

// TestMagicMatchesRayCasting checks every occupancy subset of every square
// for both sliders against the ray-casting reference.
func TestMagicMatchesRayCasting(t *testing.T) {
	tables := DefaultTables()

	for _, s := range []Slider{Diagonal, Orthogonal} {
		lookup := tables.BishopAttacks
		if s == Orthogonal {
			lookup = tables.RookAttacks
		}

		for sq := A8; sq <= H1; sq++ {
			mask := s.RelevanceMask(sq)
			bits := mask.CountBits()
			for i := 0; i < 1<<bits; i++ {
				occ := OccupancySubset(i, bits, mask)
				got := lookup(sq, occ)
				want := s.AttacksSlow(sq, occ)
				if got != want {
					t.Fatalf("%s on %s, occupancy %#x: got %#x, want %#x", s, sq, uint64(occ), uint64(got), uint64(want))
				}
			}
		}
	}
}

func TestMagicIgnoresIrrelevantBlockers(t *testing.T) {
	tables := DefaultTables()

	// Pseudo-random full-board occupancies, including edge squares.
	x := uint64(0x9E3779B97F4A7C15)
	for n := 0; n < 2000; n++ {
		x ^= x << 13
		x ^= x >> 7
		x ^= x << 17
		occ := Bitboard(x)
		sq := Square(n % 64)

		if got, want := tables.BishopAttacks(sq, occ), BishopAttacksSlow(sq, occ); got != want {
			t.Fatalf("bishop %s occ %#x: got %#x, want %#x", sq, x, uint64(got), uint64(want))
		}
		if got, want := tables.RookAttacks(sq, occ), RookAttacksSlow(sq, occ); got != want {
			t.Fatalf("rook %s occ %#x: got %#x, want %#x", sq, x, uint64(got), uint64(want))
		}
		if got, want := tables.QueenAttacks(sq, occ), BishopAttacksSlow(sq, occ)|RookAttacksSlow(sq, occ); got != want {
			t.Fatalf("queen %s occ %#x: got %#x, want %#x", sq, x, uint64(got), uint64(want))
		}
	}
}

func TestBakedConstants(t *testing.T) {
	for _, s := range []Slider{Diagonal, Orthogonal} {
		for sq := A8; sq <= H1; sq++ {
			mask := s.RelevanceMask(sq)
			if s.Mask(sq) != mask {
				t.Errorf("%s mask on %s: baked %#x, computed %#x", s, sq, uint64(s.Mask(sq)), uint64(mask))
			}
			if s.RelevantBits(sq) != mask.CountBits() {
				t.Errorf("%s relevant bits on %s: baked %d, computed %d", s, sq, s.RelevantBits(sq), mask.CountBits())
			}
			if 1<<s.RelevantBits(sq) > s.TableSize() {
				t.Errorf("%s on %s needs %d entries, table holds %d", s, sq, 1<<s.RelevantBits(sq), s.TableSize())
			}
			if !CheckMagic(s, sq, mask, s.Magic(sq)) {
				t.Errorf("%s magic on %s does not hash cleanly", s, sq)
			}
		}
	}
}

func TestCheckMagicRejectsBadMultiplier(t *testing.T) {
	// A multiplier of 1 leaves the high bits empty for a rook on a8, so every
	// occupancy lands in slot 0.
	if CheckMagic(Orthogonal, A8, RookRelevanceMask(A8), 1) {
		t.Error("CheckMagic accepted a degenerate multiplier")
	}
}

func TestRelevanceMasks(t *testing.T) {
	tests := []struct {
		name string
		got  Bitboard
		want Bitboard
	}{
		// b8-g8 and a7-a2
		{"rook a8", RookRelevanceMask(A8), 0x000101010101017E},
		// b1-g1 and h2-h7
		{"rook h1", RookRelevanceMask(H1), 0x7E80808080808000},
		// b7-g2 diagonal
		{"bishop a8", BishopRelevanceMask(A8), 0x0040201008040200},
	}

	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s = %#x, want %#x", tc.name, uint64(tc.got), uint64(tc.want))
		}
	}

	for _, sq := range []Square{D4, E4, D5, E5} {
		if n := BishopRelevanceMask(sq).CountBits(); n != 9 {
			t.Errorf("bishop mask on %s has %d bits, want 9", sq, n)
		}
	}
	for sq := A8; sq <= H1; sq++ {
		if BishopRelevanceMask(sq)&Edges != 0 {
			t.Errorf("bishop mask on %s touches the edge", sq)
		}
		if BishopRelevanceMask(sq).IsSet(sq) || RookRelevanceMask(sq).IsSet(sq) {
			t.Errorf("mask on %s contains its own square", sq)
		}
	}
}

func TestSlowAttacks(t *testing.T) {
	if n := RookAttacksSlow(A8, Empty).CountBits(); n != 14 {
		t.Errorf("rook a8 on empty board attacks %d squares, want 14", n)
	}
	if n := BishopAttacksSlow(D4, Empty).CountBits(); n != 13 {
		t.Errorf("bishop d4 on empty board attacks %d squares, want 13", n)
	}

	// Rook on a1 blocked on a4 and d1: a2, a3, a4, b1, c1, d1.
	want := SquareBB(A2) | SquareBB(A3) | SquareBB(A4) | SquareBB(B1) | SquareBB(C1) | SquareBB(D1)
	if got := RookAttacksSlow(A1, SquareBB(A4)|SquareBB(D1)|SquareBB(H8)); got != want {
		t.Errorf("rook a1 blocked = %#x, want %#x", uint64(got), uint64(want))
	}

	// Bishop on c1 blocked on e3: d2, e3, b2, a3.
	want = SquareBB(D2) | SquareBB(E3) | SquareBB(B2) | SquareBB(A3)
	if got := BishopAttacksSlow(C1, SquareBB(E3)); got != want {
		t.Errorf("bishop c1 blocked = %#x, want %#x", uint64(got), uint64(want))
	}

	// A blocker on the origin square does not stop anything.
	if RookAttacksSlow(E4, SquareBB(E4)) != RookAttacksSlow(E4, Empty) {
		t.Error("origin square should not block its own rays")
	}
}

func TestOccupancySubset(t *testing.T) {
	mask := RookRelevanceMask(D4)
	bits := mask.CountBits()
	seen := make(map[Bitboard]bool, 1<<bits)

	for i := 0; i < 1<<bits; i++ {
		occ := OccupancySubset(i, bits, mask)
		if occ&^mask != 0 {
			t.Fatalf("subset %d has squares outside the mask: %#x", i, uint64(occ))
		}
		if occ.CountBits() != popcountInt(i) {
			t.Fatalf("subset %d has %d bits, want %d", i, occ.CountBits(), popcountInt(i))
		}
		if seen[occ] {
			t.Fatalf("subset %d repeats %#x", i, uint64(occ))
		}
		seen[occ] = true
	}

	if OccupancySubset(0, bits, mask) != Empty {
		t.Error("index 0 should give the empty subset")
	}
	if OccupancySubset(1<<bits-1, bits, mask) != mask {
		t.Error("the all-ones index should give the whole mask")
	}

	// Bit c of the index selects the c-th lowest mask square.
	lowest := mask.Squares()
	if OccupancySubset(1<<3, bits, mask) != SquareBB(lowest[3]) {
		t.Error("index 8 should select the fourth lowest mask square")
	}
}

func TestOccupancySubsetPanicsOnShortMask(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic when the mask has too few bits")
		}
	}()
	OccupancySubset(0, 3, SquareBB(E4))
}

func TestTableSizes(t *testing.T) {
	tables := DefaultTables()
	if len(tables.bishop) != 64 || len(tables.rook) != 64 {
		t.Fatalf("tables hold %d/%d squares", len(tables.bishop), len(tables.rook))
	}
	for sq := range tables.bishop {
		if len(tables.bishop[sq]) != BishopTableSize || len(tables.rook[sq]) != RookTableSize {
			t.Fatalf("square %d has table sizes %d/%d", sq, len(tables.bishop[sq]), len(tables.rook[sq]))
		}
	}
	if DefaultTables() != tables {
		t.Error("DefaultTables should return the same tables every call")
	}
}

func popcountInt(i int) int {
	return Bitboard(i).CountBits()
}
