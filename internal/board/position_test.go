package board

import (
	"strings"
	"sync"
	"testing"
)

func TestNewPosition(t *testing.T) {
	pos := NewPosition(DefaultTables())

	if pos.AllOccupied() != Empty || pos.Occupied(White) != Empty || pos.Occupied(Black) != Empty {
		t.Error("new position should be empty")
	}
	if pos.SideToMove != White {
		t.Errorf("SideToMove = %s, want White", pos.SideToMove)
	}
	if pos.CastlingRights != AllCastling {
		t.Errorf("CastlingRights = %s, want KQkq", pos.CastlingRights)
	}
	if pos.EnPassant != NoSquare {
		t.Errorf("EnPassant = %s, want none", pos.EnPassant)
	}
	if pos.Tables() != DefaultTables() {
		t.Error("position should keep the tables it was given")
	}
}

func TestPlaceAndRemovePiece(t *testing.T) {
	pos := NewPosition(DefaultTables())
	pos.PlacePiece(White, Queen, D1)
	pos.PlacePiece(Black, Knight, G8)

	if got := pos.PieceAt(D1); got != WhiteQueen {
		t.Errorf("PieceAt(d1) = %s, want Q", got)
	}
	if got := pos.PieceAt(G8); got != BlackKnight {
		t.Errorf("PieceAt(g8) = %s, want n", got)
	}
	if got := pos.PieceAt(E4); got != NoPiece {
		t.Errorf("PieceAt(e4) = %s, want empty", got)
	}
	if !pos.IsEmpty(E4) || pos.IsEmpty(D1) {
		t.Error("IsEmpty disagrees with placement")
	}
	assertOccupancyInSync(t, pos)

	if got := pos.RemovePiece(D1); got != WhiteQueen {
		t.Errorf("RemovePiece(d1) = %s, want Q", got)
	}
	if got := pos.RemovePiece(D1); got != NoPiece {
		t.Errorf("second RemovePiece(d1) = %s, want empty", got)
	}
	if pos.Occupied(White) != Empty || pos.AllOccupied() != SquareBB(G8) {
		t.Errorf("occupancy after removal: white %#x, all %#x", uint64(pos.Occupied(White)), uint64(pos.AllOccupied()))
	}
	assertOccupancyInSync(t, pos)

	pos.Clear()
	if pos.AllOccupied() != Empty || pos.Pieces(Black, Knight) != Empty {
		t.Error("Clear left pieces on the board")
	}
}

func TestPieceAtPanicsOnDesync(t *testing.T) {
	pos := NewPosition(DefaultTables())
	pos.allOccupied = SquareBB(E4)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for occupancy without a piece")
		}
	}()
	pos.PieceAt(E4)
}

func TestRookAttacksAlongLines(t *testing.T) {
	pos := NewPosition(DefaultTables())
	pos.PlacePiece(Black, Rook, D5)

	lines := (Rank5 | FileD) &^ SquareBB(D5)
	for sq := A8; sq <= H1; sq++ {
		want := lines.IsSet(sq)
		if got := pos.IsSquareAttacked(sq, Black); got != want {
			t.Errorf("IsSquareAttacked(%s, Black) = %v, want %v", sq, got, want)
		}
		if pos.IsSquareAttacked(sq, White) {
			t.Errorf("IsSquareAttacked(%s, White) with no white pieces", sq)
		}
	}
}

func TestBlockerStopsAttack(t *testing.T) {
	pos := NewPosition(DefaultTables())
	pos.PlacePiece(White, Rook, A4)

	if !pos.IsSquareAttacked(H4, White) {
		t.Fatal("h4 should be attacked along an open rank")
	}

	pos.PlacePiece(Black, Pawn, E4)
	for _, sq := range []Square{B4, C4, D4, E4} {
		if !pos.IsSquareAttacked(sq, White) {
			t.Errorf("%s up to the blocker should stay attacked", sq)
		}
	}
	for _, sq := range []Square{F4, G4, H4} {
		if pos.IsSquareAttacked(sq, White) {
			t.Errorf("%s beyond the blocker should not be attacked", sq)
		}
	}

	// Same for a diagonal through the raw slider query.
	tables := pos.Tables()
	if !tables.BishopAttacks(B2, Empty).IsSet(G7) {
		t.Fatal("bishop b2 should reach g7 on an empty board")
	}
	blocked := tables.BishopAttacks(B2, SquareBB(E5))
	if !blocked.IsSet(E5) || !blocked.IsSet(D4) || blocked.IsSet(F6) || blocked.IsSet(G7) {
		t.Errorf("bishop b2 blocked on e5 = %v", blocked.Squares())
	}
}

func TestIsSquareAttackedByEachPiece(t *testing.T) {
	tests := []struct {
		name     string
		c        Color
		pt       PieceType
		from     Square
		attacked []Square
		safe     []Square
	}{
		{"white pawn", White, Pawn, E4, []Square{D5, F5}, []Square{E5, D3, F3}},
		{"black pawn", Black, Pawn, E5, []Square{D4, F4}, []Square{E4, D6, F6}},
		{"knight", White, Knight, G1, []Square{F3, H3, E2}, []Square{G2, G3}},
		{"bishop", Black, Bishop, C8, []Square{H3, A6}, []Square{C1, H8}},
		{"rook", White, Rook, A1, []Square{A8, H1}, []Square{B2}},
		{"queen", Black, Queen, D8, []Square{D1, H4, A5, A8}, []Square{E6, C6}},
		{"king", White, King, E1, []Square{D1, D2, E2, F2, F1}, []Square{E3, C1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := NewPosition(DefaultTables())
			pos.PlacePiece(tc.c, tc.pt, tc.from)

			for _, sq := range tc.attacked {
				if !pos.IsSquareAttacked(sq, tc.c) {
					t.Errorf("%s should be attacked", sq)
				}
				if pos.AttackersTo(sq, tc.c) != SquareBB(tc.from) {
					t.Errorf("AttackersTo(%s) = %v", sq, pos.AttackersTo(sq, tc.c).Squares())
				}
				if pos.IsSquareAttacked(sq, tc.c.Other()) {
					t.Errorf("%s attacked by the wrong side", sq)
				}
			}
			for _, sq := range tc.safe {
				if pos.IsSquareAttacked(sq, tc.c) {
					t.Errorf("%s should not be attacked", sq)
				}
			}
		})
	}
}

func TestCheckDetection(t *testing.T) {
	// Back rank: the black king on h8 is attacked by the rook on a8.
	pos, err := ParseFEN(DefaultTables(), "R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}
	kings := pos.Pieces(Black, King)
	ksq := kings.PopLSB()
	if ksq != H8 {
		t.Fatalf("black king on %s, want h8", ksq)
	}
	if !pos.IsSquareAttacked(ksq, White) {
		t.Error("expected black king to be in check")
	}

	// Interposing on g8 blocks the rook.
	pos.PlacePiece(Black, Rook, G8)
	if pos.IsSquareAttacked(ksq, White) {
		t.Error("blocked rook should not give check")
	}
	if !pos.IsSquareAttacked(G8, White) {
		t.Error("the blocker itself stays attacked")
	}
}

func TestSharedTablesAcrossGoroutines(t *testing.T) {
	tables := DefaultTables()
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}

	var wg sync.WaitGroup
	results := make([]int, len(fens))
	for i, fen := range fens {
		wg.Add(1)
		go func(i int, fen string) {
			defer wg.Done()
			pos, err := ParseFEN(tables, fen)
			if err != nil {
				t.Errorf("ParseFEN(%q): %v", fen, err)
				return
			}
			for sq := A8; sq <= H1; sq++ {
				if pos.IsSquareAttacked(sq, White) {
					results[i]++
				}
			}
		}(i, fen)
	}
	wg.Wait()

	for i, fen := range fens {
		pos, err := ParseFEN(tables, fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		n := 0
		for sq := A8; sq <= H1; sq++ {
			if pos.IsSquareAttacked(sq, White) {
				n++
			}
		}
		if n != results[i] {
			t.Errorf("%q: %d attacked squares concurrently, %d serially", fen, results[i], n)
		}
	}
}

func TestCopyIsIndependent(t *testing.T) {
	pos, err := ParseFEN(DefaultTables(), StartFEN)
	if err != nil {
		t.Fatal(err)
	}
	cp := pos.Copy()
	cp.RemovePiece(E2)

	if pos.PieceAt(E2) != WhitePawn {
		t.Error("removing from the copy changed the original")
	}
	if cp.Tables() != pos.Tables() {
		t.Error("copy should share the attack tables")
	}
}

func TestPositionString(t *testing.T) {
	pos, err := ParseFEN(DefaultTables(), StartFEN)
	if err != nil {
		t.Fatal(err)
	}
	s := pos.String()
	for _, want := range []string{
		"8 | r | n | b | q | k | b | n | r | 8\n",
		"1 | R | N | B | Q | K | B | N | R | 1\n",
		"4 |   |   |   |   |   |   |   |   | 4\n",
		"Castling: KQkq\n",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q in\n%s", want, s)
		}
	}
}

func assertOccupancyInSync(t *testing.T, pos *Position) {
	t.Helper()
	var side [2]Bitboard
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			side[c] |= pos.Pieces(c, pt)
		}
		if side[c] != pos.Occupied(c) {
			t.Errorf("%s occupancy %#x, union of pieces %#x", c, uint64(pos.Occupied(c)), uint64(side[c]))
		}
	}
	if side[White]|side[Black] != pos.AllOccupied() {
		t.Errorf("all occupancy %#x, union %#x", uint64(pos.AllOccupied()), uint64(side[White]|side[Black]))
	}
}

func TestAttackedSquares(t *testing.T) {
	pos := NewPosition(DefaultTables())
	pos.PlacePiece(White, Rook, A1)

	if got, want := pos.AttackedSquares(White), (FileA|Rank1).Clear(A1); got != want {
		t.Errorf("AttackedSquares(White) = %#x, want %#x", uint64(got), uint64(want))
	}
	if got := pos.AttackedSquares(Black); got != Empty {
		t.Errorf("AttackedSquares(Black) = %#x, want empty", uint64(got))
	}

	// In the start position white covers all of rank 3 and nothing beyond it.
	start, err := ParseFEN(DefaultTables(), StartFEN)
	if err != nil {
		t.Fatal(err)
	}
	attacked := start.AttackedSquares(White)
	if attacked&Rank3 != Rank3 {
		t.Error("white should attack every square on rank 3")
	}
	if attacked&(Rank4|Rank5|Rank6|Rank7|Rank8) != Empty {
		t.Error("white should not reach past rank 3 in the start position")
	}
}
