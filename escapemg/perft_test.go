package escapemg_test

import (
	"testing"

	goose "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"

	"earlyescape/escapemg"
	"earlyescape/notation"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func TestPerftInitialPosition(t *testing.T) {
	p := escapemg.StartPosition()
	for depth, want := range []uint64{1, 20, 400, 8902, 197281} {
		if testing.Short() && depth > 3 {
			break
		}
		if got := escapemg.Perft(p, depth); got != want {
			t.Fatalf("perft depth%d: got %d want %d", depth, got, want)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	p := mustParse(t, kiwipete)
	for depth, want := range []uint64{1, 48, 2039, 97862} {
		if got := escapemg.Perft(p, depth); got != want {
			t.Fatalf("perft depth%d: got %d want %d", depth, got, want)
		}
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	p := mustParse(t, kiwipete)
	div := escapemg.PerftDivide(p, 2)
	if len(div) != 48 {
		t.Fatalf("divide roots: got %d want %d", len(div), 48)
	}
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if sum != 2039 {
		t.Fatalf("divide sum: got %d want %d", sum, 2039)
	}
}

// oraclePositions cover castling through attacked squares, en passant pins and promotions.
var oraclePositions = []string{
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"8/8/8/2k5/2pP4/8/B7/4K3 b - d3 0 3",
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		undo := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		undo()
	}
	return nodes
}

func TestPerftMatchesDragontooth(t *testing.T) {
	for _, fen := range oraclePositions {
		p := mustParse(t, fen)
		b := dragontoothmg.ParseFen(fen)
		for depth := 1; depth <= 3; depth++ {
			got := escapemg.Perft(p, depth)
			if want := dragontoothPerft(&b, depth); got != want {
				t.Fatalf("%s perft depth%d: got %d want %d", fen, depth, got, want)
			}
		}
	}
}

func TestPerftMatchesGooseEngine(t *testing.T) {
	for _, fen := range append([]string{notation.StartFEN, kiwipete}, oraclePositions...) {
		board, err := goose.ParseFEN(fen)
		if err != nil {
			t.Fatalf("goose ParseFEN(%q): %v", fen, err)
		}
		p := mustParse(t, fen)
		if got, want := escapemg.Perft(p, 2), goose.Perft(board, 2); got != want {
			t.Fatalf("%s perft depth2: got %d want %d", fen, got, want)
		}
	}
}

func TestQuiescenceKeepsOnlyCaptures(t *testing.T) {
	p := mustParse(t, kiwipete)
	var g escapemg.MoveGenerator
	moves := g.Moves(p, 0, p.IsCheck())
	if moves.Len() == 0 {
		t.Fatalf("kiwipete has captures")
	}
	for i := 0; i < moves.Len(); i++ {
		if !moves.Move(i).IsCapture() {
			t.Fatalf("quiet move %v in quiescence list", moves.Move(i))
		}
	}
	for i := 1; i < moves.Len(); i++ {
		if moves.Entry(i-1).Value < moves.Entry(i).Value {
			t.Fatalf("quiescence list is not sorted at %d", i)
		}
	}
}

func TestQuiescenceInCheckKeepsEvasions(t *testing.T) {
	p := mustParse(t, "4k3/8/8/8/8/8/8/r3K3 w - - 0 1")
	var g escapemg.MoveGenerator
	moves := g.LegalMoves(p, 0, true)
	if moves.Len() != 3 {
		t.Fatalf("evasions: got %d want %d (%v)", moves.Len(), 3, moves.Moves())
	}
}

func TestCastlingGeneration(t *testing.T) {
	cases := []struct {
		fen  string
		want map[string]bool
	}{
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", map[string]bool{"e1g1": true, "e1c1": true}},
		{"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", map[string]bool{"e8g8": true, "e8c8": true}},
		// f1 attacked by the bishop on c4
		{"r3k2r/8/8/8/2b5/8/8/R3K2R w KQkq - 0 1", map[string]bool{"e1g1": false, "e1c1": true}},
		// b1 attacked does not matter, b1 occupied does
		{"r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1", map[string]bool{"e1g1": true, "e1c1": false}},
		{"r3k2r/8/8/8/8/8/5q2/R3K2R w KQkq - 0 1", map[string]bool{"e1g1": false, "e1c1": false}},
	}
	for _, c := range cases {
		p := mustParse(t, c.fen)
		var g escapemg.MoveGenerator
		legal := map[string]bool{}
		moves := g.LegalMoves(p, 1, p.IsCheck())
		for i := 0; i < moves.Len(); i++ {
			legal[moves.Move(i).String()] = true
		}
		for move, want := range c.want {
			if legal[move] != want {
				t.Fatalf("%s: %s legal=%v want %v", c.fen, move, legal[move], want)
			}
		}
	}
}

func BenchmarkLegalMoves(b *testing.B) {
	p, err := notation.ParseFEN(kiwipete)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	var g escapemg.MoveGenerator
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.LegalMoves(p, 1, p.IsCheck())
	}
}
