package escapemg

import "testing"

func TestSquareConversionRoundTrip(t *testing.T) {
	for i := 0; i < 64; i++ {
		sq := toX88Square(i)
		if !sq.Valid() {
			t.Fatalf("toX88Square(%d) = %d is off board", i, sq)
		}
		if got := toBitSquare(sq); got != uint(i) {
			t.Fatalf("toBitSquare(%v): got %d want %d", sq, got, i)
		}
	}
	if toX88Square(0) != A1 || toX88Square(7) != H1 || toX88Square(8) != A2 || toX88Square(63) != H8 {
		t.Fatalf("dense order must run a1..h1, a2..h8")
	}
}

func TestBitboardIteration(t *testing.T) {
	var b Bitboard
	for _, sq := range []Square{H8, A1, E4, B2} {
		b.Add(sq)
	}
	if got := b.Size(); got != 4 {
		t.Fatalf("size: got %d want %d", got, 4)
	}
	want := []Square{A1, B2, E4, H8}
	var got []Square
	for s := b; s != 0; s = s.Remainder() {
		got = append(got, s.Next())
	}
	if len(got) != len(want) {
		t.Fatalf("iteration: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("iteration: got %v want %v", got, want)
		}
	}
	b.Remove(E4)
	if b.Has(E4) || !b.Has(B2) || b.Size() != 3 {
		t.Fatalf("remove e4 left %064b", uint64(b))
	}
}

func TestOffBoardSteps(t *testing.T) {
	cases := []struct {
		from Square
		step Square
	}{
		{H1, East}, {A1, West}, {A1, South}, {H8, North}, {A8, NorthWest}, {H1, SouthEast},
		{B8, North + North + West}, {G1, South + East + East},
	}
	for _, c := range cases {
		if onBoard(c.from + c.step) {
			t.Fatalf("%v%+d should be off board", c.from, c.step)
		}
	}
	if !onBoard(E4+NorthEast) || (E4+NorthEast) != F5 {
		t.Fatalf("e4 north-east should be f5")
	}
}

func TestRemoveOnEmptySquarePanics(t *testing.T) {
	p := StartPosition()
	defer func() {
		if recover() == nil {
			t.Fatalf("remove on empty e4 did not panic")
		}
	}()
	p.remove(E4)
}

func TestUndoWithEmptyStackPanics(t *testing.T) {
	p := StartPosition()
	defer func() {
		if recover() == nil {
			t.Fatalf("undo without make did not panic")
		}
	}()
	p.UndoMove(NewMove(Normal, E2, E4, WhitePawn, NoPiece, NoPieceType))
}

func TestMoveListOverflowPanics(t *testing.T) {
	var l MoveList
	for i := 0; i < MaxMoves; i++ {
		l.Add(NewMove(Normal, A1, A2, WhiteRook, NoPiece, NoPieceType))
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("adding past capacity did not panic")
		}
	}()
	l.Add(NoMove)
}
