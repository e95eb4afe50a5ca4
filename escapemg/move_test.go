package escapemg

import "testing"

func TestMoveFields(t *testing.T) {
	m := NewMove(PawnPromotion, A7, B8, WhitePawn, BlackQueen, Knight)
	if m.Type() != PawnPromotion {
		t.Fatalf("type: got %d want %d", m.Type(), PawnPromotion)
	}
	if m.Origin() != A7 || m.Target() != B8 {
		t.Fatalf("squares: got %v%v want a7b8", m.Origin(), m.Target())
	}
	if m.OriginPiece() != WhitePawn || m.TargetPiece() != BlackQueen {
		t.Fatalf("pieces: got %d/%d want %d/%d", m.OriginPiece(), m.TargetPiece(), WhitePawn, BlackQueen)
	}
	if m.Promotion() != Knight {
		t.Fatalf("promotion: got %d want %d", m.Promotion(), Knight)
	}
	if got := m.String(); got != "a7b8n" {
		t.Fatalf("string: got %q want %q", got, "a7b8n")
	}
}

func TestNoMoveSentinel(t *testing.T) {
	if NoMove == 0 {
		t.Fatalf("NoMove must not be the zero pattern")
	}
	if NoMove.Type() != NoMoveType || NoMove.Origin() != NoSquare || NoMove.Target() != NoSquare ||
		NoMove.OriginPiece() != NoPiece || NoMove.TargetPiece() != NoPiece || NoMove.Promotion() != NoPieceType {
		t.Fatalf("NoMove fields are not all empty")
	}
	if got := NoMove.String(); got != "0000" {
		t.Fatalf("string: got %q want %q", got, "0000")
	}
}

func TestPieceEnumerations(t *testing.T) {
	for _, c := range Colors {
		for _, pt := range PieceTypes {
			p := NewPiece(c, pt)
			if p.Color() != c || p.Type() != pt {
				t.Fatalf("NewPiece(%d, %d) = %d decodes to %d/%d", c, pt, p, p.Color(), p.Type())
			}
			back, ok := PieceFromChar(p.Char())
			if !ok || back != p {
				t.Fatalf("char %q: got %d want %d", p.Char(), back, p)
			}
		}
	}
	if NoPiece.Type() != NoPieceType || NoPiece.Color() != NoColor {
		t.Fatalf("NoPiece must decode to the none values")
	}
	if CastlingOf(Black, Queenside) != BlackQueenside || CastlingOf(White, Kingside) != WhiteKingside {
		t.Fatalf("CastlingOf mapping is wrong")
	}
}

func TestMvvLvaOrdering(t *testing.T) {
	var l MoveList
	queenTakesPawn := NewMove(Normal, D1, D7, WhiteQueen, BlackPawn, NoPieceType)
	pawnTakesQueen := NewMove(Normal, E4, D5, WhitePawn, BlackQueen, NoPieceType)
	l.Add(queenTakesPawn)
	l.Add(pawnTakesQueen)
	l.RateFromMVVLVA()
	l.Sort()
	if l.Move(0) != pawnTakesQueen {
		t.Fatalf("first move: got %v want %v", l.Move(0), pawnTakesQueen)
	}
	if got, want := l.Entry(0).Value, KingValue/PawnValue+10*QueenValue; got != want {
		t.Fatalf("pawn takes queen value: got %d want %d", got, want)
	}
}

func TestSortIsStable(t *testing.T) {
	var l MoveList
	moves := []Move{
		NewMove(Normal, B1, C3, WhiteKnight, NoPiece, NoPieceType),
		NewMove(Normal, G1, F3, WhiteKnight, NoPiece, NoPieceType),
		NewMove(Normal, E2, E3, WhitePawn, NoPiece, NoPieceType),
		NewMove(Normal, B1, A3, WhiteKnight, NoPiece, NoPieceType),
	}
	for _, m := range moves {
		l.Add(m)
	}
	l.RateFromMVVLVA()
	l.Sort()
	want := []Move{moves[2], moves[0], moves[1], moves[3]}
	for i, m := range want {
		if l.Move(i) != m {
			t.Fatalf("position %d: got %v want %v", i, l.Move(i), m)
		}
	}
}
