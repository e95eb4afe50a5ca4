package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"earlyescape/engine"
	"earlyescape/escapemg"
	"earlyescape/notation"
)

const (
	engineName   = "EarlyEscape"
	engineAuthor = "EarlyEscape authors"

	defaultClock     = time.Millisecond
	defaultMovesToGo = 40
)

func main() {
	evaluation := flag.String("evaluation", "material", "evaluation function: material or random")
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed for -evaluation random")
	debug := flag.Bool("debug", false, "log search progress to stderr")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).With().Timestamp().Logger()

	eval, err := newEvaluation(*evaluation, *seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	u := newUCI(os.Stdout, eval, log)
	if err := u.loop(os.Stdin); err != nil {
		log.Error().Err(err).Msg("reading commands")
		os.Exit(1)
	}
}

func newEvaluation(name string, seed int64) (engine.Evaluation, error) {
	switch name {
	case "material":
		return engine.MaterialEvaluation{}, nil
	case "random":
		return engine.NewRandomEvaluation(seed), nil
	}
	return nil, fmt.Errorf("unknown evaluation %q", name)
}

// uci drives a Search from UCI commands. Protocol callbacks arrive on the search
// goroutine, so every write goes through mu.
type uci struct {
	log    zerolog.Logger
	search *engine.Search

	mu        sync.Mutex
	out       io.Writer
	startTime time.Time

	position *escapemg.Position
}

func newUCI(out io.Writer, eval engine.Evaluation, log zerolog.Logger) *uci {
	u := &uci{
		log:      log,
		out:      out,
		position: escapemg.StartPosition(),
	}
	u.search = engine.NewSearch(u, eval, log)
	return u
}

func (u *uci) println(a ...any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintln(u.out, a...)
}

// loop reads commands until quit or end of input. A running search is stopped
// before loop returns.
func (u *uci) loop(r io.Reader) error {
	defer u.search.Stop()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		if !u.handle(tokens) {
			return nil
		}
	}
	return scanner.Err()
}

// handle runs one command and reports whether the loop should continue.
func (u *uci) handle(tokens []string) bool {
	switch strings.ToLower(tokens[0]) {
	case "uci":
		u.println("id name", engineName)
		u.println("id author", engineAuthor)
		u.println("uciok")
	case "isready":
		u.println("readyok")
	case "ucinewgame":
		u.search.Stop()
		u.position = escapemg.StartPosition()
	case "position":
		u.search.Stop()
		p, err := parsePosition(tokens[1:])
		if err != nil {
			u.println("info string", err)
			return true
		}
		u.position = p
		u.log.Debug().Str("fen", notation.FEN(p)).Msg("position set")
	case "go":
		u.search.Stop()
		if err := u.goCommand(tokens[1:]); err != nil {
			u.println("info string", err)
		}
	case "stop":
		u.search.Stop()
	case "ponderhit":
		u.search.PonderHit()
	case "quit":
		return false
	case "debug", "setoption", "register":
	default:
		u.println("info string unknown command", tokens[0])
	}
	return true
}

// parsePosition reads "startpos|fen <fields> [moves ...]". Nothing changes on error.
func parsePosition(tokens []string) (*escapemg.Position, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("malformed position command")
	}

	var p *escapemg.Position
	rest := tokens[1:]
	switch strings.ToLower(tokens[0]) {
	case "startpos":
		p = escapemg.StartPosition()
	case "fen":
		end := len(rest)
		for i, tok := range rest {
			if strings.ToLower(tok) == "moves" {
				end = i
				break
			}
		}
		var err error
		if p, err = notation.ParseFEN(strings.Join(rest[:end], " ")); err != nil {
			return nil, err
		}
		rest = rest[end:]
	default:
		return nil, fmt.Errorf("invalid position subcommand %q", tokens[0])
	}

	if len(rest) == 0 {
		return p, nil
	}
	if strings.ToLower(rest[0]) != "moves" {
		return nil, fmt.Errorf("unexpected token %q in position command", rest[0])
	}
	for i, text := range rest[1:] {
		m, err := notation.ParseMove(p, text)
		if err != nil {
			return nil, fmt.Errorf("position %s: %w", notation.FEN(p), err)
		}
		p.MakeMove(m)
		// drop history older than the repetition window
		if (i+1)%escapemg.MaxPly == 0 {
			p = p.Clone()
		}
	}
	return p, nil
}

type goParams struct {
	depth, nodes, moveTime        *int64
	infinite, ponder              bool
	wtime, btime, winc, binc, mtg *int64
}

func parseGo(tokens []string) (goParams, error) {
	var g goParams
	for i := 0; i < len(tokens); i++ {
		key := strings.ToLower(tokens[i])
		var dst **int64
		switch key {
		case "infinite":
			g.infinite = true
			continue
		case "ponder":
			g.ponder = true
			continue
		case "depth":
			dst = &g.depth
		case "nodes":
			dst = &g.nodes
		case "movetime":
			dst = &g.moveTime
		case "wtime":
			dst = &g.wtime
		case "btime":
			dst = &g.btime
		case "winc":
			dst = &g.winc
		case "binc":
			dst = &g.binc
		case "movestogo":
			dst = &g.mtg
		default:
			return g, fmt.Errorf("unknown go subcommand %q", tokens[i])
		}
		if i+1 >= len(tokens) {
			return g, fmt.Errorf("go %s: missing value", key)
		}
		i++
		v, err := strconv.ParseInt(tokens[i], 10, 64)
		if err != nil {
			return g, fmt.Errorf("go %s: %w", key, err)
		}
		*dst = &v
	}
	return g, nil
}

func millis(v *int64, fallback time.Duration) time.Duration {
	if v == nil {
		return fallback
	}
	return time.Duration(*v) * time.Millisecond
}

// goCommand configures one search kind. depth wins over nodes, then movetime,
// then infinite, and a clock search is the default.
func (u *uci) goCommand(tokens []string) error {
	g, err := parseGo(tokens)
	if err != nil {
		return err
	}

	s, p := u.search, u.position
	switch {
	case g.depth != nil:
		err = s.NewDepthSearch(p, int(*g.depth))
	case g.nodes != nil:
		if *g.nodes < 1 {
			return fmt.Errorf("%w: nodes %d", escapemg.ErrInvalidArgument, *g.nodes)
		}
		err = s.NewNodesSearch(p, uint64(*g.nodes))
	case g.moveTime != nil:
		err = s.NewTimeSearch(p, millis(g.moveTime, 0))
	case g.infinite:
		err = s.NewInfiniteSearch(p)
	default:
		wtime, btime := millis(g.wtime, defaultClock), millis(g.btime, defaultClock)
		winc, binc := millis(g.winc, 0), millis(g.binc, 0)
		mtg := defaultMovesToGo
		if g.mtg != nil {
			mtg = int(*g.mtg)
		}
		if g.ponder {
			err = s.NewPonderSearch(p, wtime, winc, btime, binc, mtg)
		} else {
			err = s.NewClockSearch(p, wtime, winc, btime, binc, mtg)
		}
	}
	if err != nil {
		return err
	}

	u.mu.Lock()
	u.startTime = time.Now()
	u.mu.Unlock()
	return s.Start()
}

// elapsed returns the time since go and the node rate. Callers hold mu.
func (u *uci) elapsed(totalNodes uint64) (int64, uint64) {
	ms := time.Since(u.startTime).Milliseconds()
	var nps uint64
	if ms >= 1000 {
		nps = totalNodes * 1000 / uint64(ms)
	}
	return ms, nps
}

// BestMove implements engine.Protocol.
func (u *uci) BestMove(bestMove, ponderMove escapemg.Move) {
	switch {
	case bestMove == escapemg.NoMove:
		u.println("bestmove (none)")
	case ponderMove == escapemg.NoMove:
		u.println("bestmove", bestMove)
	default:
		u.println("bestmove", bestMove, "ponder", ponderMove)
	}
}

// Status implements engine.Protocol.
func (u *uci) Status(depth, maxDepth int, totalNodes uint64, currentMove escapemg.Move, currentMoveNumber int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	ms, nps := u.elapsed(totalNodes)
	fmt.Fprintf(u.out, "info depth %d seldepth %d nodes %d time %d nps %d", depth, maxDepth, totalNodes, ms, nps)
	if currentMove != escapemg.NoMove {
		fmt.Fprintf(u.out, " currmove %v currmovenumber %d", currentMove, currentMoveNumber)
	}
	fmt.Fprintln(u.out)
}

// PrincipalVariation implements engine.Protocol.
func (u *uci) PrincipalVariation(entry *escapemg.RootEntry, depth, maxDepth int, totalNodes uint64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	ms, nps := u.elapsed(totalNodes)
	fmt.Fprintf(u.out, "info depth %d seldepth %d score %s nodes %d time %d nps %d pv %s\n",
		depth, maxDepth, engine.ScoreString(entry.Value), totalNodes, ms, nps,
		notation.FormatVariation(entry.PV.Moves()))
}
