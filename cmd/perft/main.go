package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	goose "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"earlyescape/escapemg"
	"earlyescape/notation"
)

func main() {
	os.Exit(run())
}

// run returns the exit code so deferred profile writes finish first:
// 0 on success, 1 on an oracle mismatch, 2 on bad arguments.
func run() int {
	fen := flag.String("fen", notation.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	verify := flag.Bool("verify", false, "Cross-check the count against dragontoothmg and goosemg")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		return 2
	}

	p, err := notation.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		return 2
	}

	if *divide {
		div := make(map[string]uint64)
		var sum uint64
		for m, n := range escapemg.PerftDivide(p, *depth) {
			div[m.String()] = n
			sum += n
		}
		moves := maps.Keys(div)
		slices.Sort(moves)
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, div[m])
		}
		fmt.Printf("Total: %d\n", sum)
		return 0
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			return 2
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			return 2
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += escapemg.Perft(p, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Label Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *verify {
		nodes := totalNodes / uint64(*repeat)
		ok := check("dragontoothmg", nodes, dragontoothCount(*fen, *depth))
		if n, err := gooseCount(*fen, *depth); err != nil {
			fmt.Fprintf(os.Stderr, "goosemg: %v\n", err)
			ok = false
		} else {
			ok = check("goosemg", nodes, n) && ok
		}
		if !ok {
			return 1
		}
	}

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			return 2
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			return 2
		}
		_ = f.Close()
	}
	return 0
}

func check(oracle string, got, want uint64) bool {
	if got != want {
		fmt.Printf("%s: MISMATCH got %d want %d\n", oracle, got, want)
		return false
	}
	fmt.Printf("%s: ok\n", oracle)
	return true
}

func dragontoothCount(fen string, depth int) uint64 {
	b := dragontoothmg.ParseFen(fen)
	return dragontoothPerft(&b, depth)
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

func gooseCount(fen string, depth int) (uint64, error) {
	b, err := goose.ParseFEN(fen)
	if err != nil {
		return 0, err
	}
	return goose.Perft(b, depth), nil
}
