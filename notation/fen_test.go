package notation

import (
	"errors"
	"testing"

	"earlyescape/escapemg"
)

func TestFENRoundTrip(t *testing.T) {
	for _, fen := range []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"5k2/8/8/8/3Pp3/8/8/3K4 b - d3 0 1",
		"8/8/1R1P4/2B2p2/k1K2P2/4P3/8/8 w - - 3 101",
		"r3k2r/8/8/8/8/8/8/R3K2R b Kq - 12 40",
	} {
		p, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := FEN(p); got != fen {
			t.Fatalf("round trip: got %q want %q", got, fen)
		}
	}
}

func TestStartFENMatchesStartPosition(t *testing.T) {
	p, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if p.Hash() != escapemg.StartPosition().Hash() {
		t.Fatalf("hash of parsed start position differs from StartPosition")
	}
}

func TestParseFENDefaultsCounters(t *testing.T) {
	p, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 b - -")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if p.HalfmoveClock() != 0 || p.FullmoveNumber() != 1 || p.ActiveColor() != escapemg.Black {
		t.Fatalf("defaults: got clock %d move %d color %v", p.HalfmoveClock(), p.FullmoveNumber(), p.ActiveColor())
	}
}

func TestParseFENErrors(t *testing.T) {
	for _, fen := range []string{
		"",
		"8/8/8/8/8/8/8/8 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K3 x - - 0 1",
		"4k3/8/8/8/8/8/8/4K3 w - - a 1",
		"4k3/8/8/8/8/8/8/4K3 w - - 0 0",
		"4k3/8/8/8/8/8/8/4K3 w K - 0 1",
		"4k3/8/8/8/8/8/8/4K3 w - e3 0 1",
		"4k3/8/8/8/8/8/8/4K3 w - - 0 1 extra",
	} {
		if _, err := ParseFEN(fen); !errors.Is(err, escapemg.ErrInvalidArgument) {
			t.Fatalf("ParseFEN(%q): got %v want ErrInvalidArgument", fen, err)
		}
	}
}

func TestParseMove(t *testing.T) {
	p := escapemg.StartPosition()
	m, err := ParseMove(p, "e2e4")
	if err != nil {
		t.Fatalf("ParseMove e2e4: %v", err)
	}
	if m.Type() != escapemg.PawnDouble || m.OriginPiece() != escapemg.WhitePawn {
		t.Fatalf("e2e4 decoded as %v type %d", m, m.Type())
	}
	for _, text := range []string{"e2e5", "e1g1", "a7a8q", "nonsense"} {
		if _, err := ParseMove(p, text); !errors.Is(err, ErrIllegalMove) {
			t.Fatalf("ParseMove(%q): got %v want ErrIllegalMove", text, err)
		}
	}

	p, err = ParseFEN("8/P5k1/8/8/2K5/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m, err = ParseMove(p, "A7A8N")
	if err != nil || m.Promotion() != escapemg.Knight {
		t.Fatalf("underpromotion: got %v, %v", m, err)
	}
}

func TestFormatVariation(t *testing.T) {
	moves := []escapemg.Move{
		escapemg.NewMove(escapemg.PawnDouble, escapemg.E2, escapemg.E4, escapemg.WhitePawn, escapemg.NoPiece, escapemg.NoPieceType),
		escapemg.NewMove(escapemg.Normal, escapemg.G8, escapemg.F6, escapemg.BlackKnight, escapemg.NoPiece, escapemg.NoPieceType),
	}
	if got := FormatVariation(moves); got != "e2e4 g8f6" {
		t.Fatalf("got %q want %q", got, "e2e4 g8f6")
	}
}
