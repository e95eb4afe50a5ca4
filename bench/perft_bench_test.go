// Package bench compares escapemg with the move generators it is checked against.
package bench

import (
	"testing"

	goose "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"

	"earlyescape/escapemg"
	"earlyescape/notation"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func benchPerft(b *testing.B, fen string, depth int) {
	p, err := notation.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = escapemg.Perft(p, depth)
	}
}

func benchGoosePerft(b *testing.B, fen string, depth int) {
	board, err := goose.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = goose.Perft(board, depth)
	}
}

func dragontoothPerft(board *dragontoothmg.Board, depth int) uint64 {
	moves := board.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		undo := board.Apply(m)
		nodes += dragontoothPerft(board, depth-1)
		undo()
	}
	return nodes
}

func benchDragontoothPerft(b *testing.B, fen string, depth int) {
	board := dragontoothmg.ParseFen(fen)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = dragontoothPerft(&board, depth)
	}
}

func BenchmarkPerft_Initial_D4(b *testing.B) {
	benchPerft(b, notation.StartFEN, 4)
}

func BenchmarkPerft_Kiwipete_D3(b *testing.B) {
	benchPerft(b, kiwipete, 3)
}

func BenchmarkGoosePerft_Kiwipete_D3(b *testing.B) {
	benchGoosePerft(b, kiwipete, 3)
}

func BenchmarkDragontoothPerft_Kiwipete_D3(b *testing.B) {
	benchDragontoothPerft(b, kiwipete, 3)
}
