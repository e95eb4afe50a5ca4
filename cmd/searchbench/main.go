package main

import (
	"flag"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"earlyescape/engine"
	"earlyescape/escapemg"
	"earlyescape/notation"
)

var benchPositions = []string{
	notation.StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
}

// reporter logs completed depths and hands the best move back to main.
type reporter struct {
	log   zerolog.Logger
	best  chan escapemg.Move
	nodes uint64
}

func (r *reporter) BestMove(bestMove, ponderMove escapemg.Move) {
	r.best <- bestMove
}

func (r *reporter) Status(depth, maxDepth int, totalNodes uint64, currentMove escapemg.Move, currentMoveNumber int) {
	r.nodes = totalNodes
}

func (r *reporter) PrincipalVariation(entry *escapemg.RootEntry, depth, maxDepth int, totalNodes uint64) {
	r.log.Debug().
		Int("depth", depth).
		Int("seldepth", maxDepth).
		Str("score", engine.ScoreString(entry.Value)).
		Uint64("nodes", totalNodes).
		Str("pv", notation.FormatVariation(entry.PV.Moves())).
		Msg("pv")
}

func main() {
	depthFlag := flag.Int("depth", 5, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run per position")
	fenFlag := flag.String("fen", "", "FEN to search (empty = built-in position list)")
	evalFlag := flag.String("evaluation", "material", "evaluation function: material or random")
	verbose := flag.Bool("v", false, "log every completed depth")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	if *depthFlag <= 0 || *depthFlag > escapemg.MaxDepth {
		log.Fatal().Int("depth", *depthFlag).Msg("depth out of range")
	}

	var eval engine.Evaluation
	switch strings.ToLower(*evalFlag) {
	case "material":
		eval = engine.MaterialEvaluation{}
	case "random":
		eval = engine.NewRandomEvaluation(1)
	default:
		log.Fatal().Str("evaluation", *evalFlag).Msg("unknown evaluation")
	}

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fens := benchPositions
	if *fenFlag != "" {
		fens = []string{*fenFlag}
	}

	r := &reporter{log: log, best: make(chan escapemg.Move, 1)}
	search := engine.NewSearch(r, eval, log)

	startAll := time.Now()
	for _, fen := range fens {
		p, err := notation.ParseFEN(fen)
		if err != nil {
			log.Fatal().Err(err).Msg("parse position")
		}
		for i := 0; i < *repeatFlag; i++ {
			if err := search.NewDepthSearch(p, *depthFlag); err != nil {
				log.Fatal().Err(err).Msg("configure search")
			}
			iterStart := time.Now()
			if err := search.Start(); err != nil {
				log.Fatal().Err(err).Msg("start search")
			}
			best := <-r.best
			search.Wait()
			log.Info().
				Str("fen", fen).
				Int("iteration", i+1).
				Str("bestmove", best.String()).
				Uint64("nodes", r.nodes).
				Dur("time", time.Since(iterStart)).
				Msg("search done")
		}
	}
	log.Info().Dur("total", time.Since(startAll)).Msg("searchbench finished")

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create memory profile")
		}
		defer f.Close()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not write memory profile")
		}
	}
}
