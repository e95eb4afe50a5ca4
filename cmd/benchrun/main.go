package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

type perftRun struct {
	label string
	fen   string
	depth int
}

var perftRuns = []perftRun{
	{"Initial", "", 3},
	{"Initial", "", 4},
	{"Initial", "", 5},
	{"Kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3},
	{"Endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 5},
}

// run executes a command, prints its combined output and returns the exit code.
func run(name string, args ...string) int {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	fmt.Print(out.String())
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "error running %s: %v\n", name, err)
	return 1
}

// Usage: go run ./cmd/benchrun [-verify] [-searchdepth N]
func main() {
	verify := flag.Bool("verify", false, "cross-check every perft count against the oracles")
	searchDepth := flag.Int("searchdepth", 5, "depth for the searchbench pass, 0 skips it")
	flag.Parse()

	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	if code := run("go", "test", "./bench", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s"); code != 0 {
		os.Exit(code)
	}

	fmt.Println("\nPerft Performance:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	failed := false
	for _, r := range perftRuns {
		args := []string{"run", "./cmd/perft", "-depth", strconv.Itoa(r.depth), "-label", r.label}
		if r.fen != "" {
			args = append(args, "-fen", r.fen)
		}
		if *verify {
			args = append(args, "-verify")
		}
		if run("go", args...) != 0 {
			failed = true
		}
	}

	if *searchDepth > 0 {
		fmt.Println("\nSearch:")
		if run("go", "run", "./cmd/searchbench", "-depth", strconv.Itoa(*searchDepth)) != 0 {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
