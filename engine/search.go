package engine

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"earlyescape/escapemg"
)

// ErrSearchRunning is returned when a running search is reconfigured or started again.
var ErrSearchRunning = errors.New("search is running")

// ErrNotConfigured is returned by Start without a preceding configuration call.
var ErrNotConfigured = errors.New("search is not configured")

// SearchState is the lifecycle of a Search.
type SearchState int

const (
	Idle SearchState = iota
	Configured
	Running
	Stopped
	Completed
)

func (s SearchState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Configured:
		return "configured"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("SearchState(%d)", int(s))
}

// =============================================================================
// SEARCH PARAMETERS
// =============================================================================
const (
	initialDepth = 1
	// statusMask sets how often nodes poll the status throttle.
	statusMask     = 1<<12 - 1
	statusInterval = time.Second
	fiftyMoveLimit = 100
)

// Search runs iterative deepening alpha-beta on its own goroutine. Configure it with
// one of the New*Search methods, then call Start. One search runs at a time.
type Search struct {
	protocol   Protocol
	evaluation Evaluation
	log        zerolog.Logger

	mu        sync.Mutex
	state     SearchState
	done      chan struct{}
	release   chan struct{}
	stopped   bool
	pondering bool
	infinite  bool

	position   *escapemg.Position
	generators [escapemg.MaxPly]escapemg.MoveGenerator
	pv         [escapemg.MaxPly + 1]escapemg.MoveVariation
	rootMoves  escapemg.RootList

	// stop conditions
	searchDepth int
	searchNodes uint64
	timeHandler TimeHandler

	abort            atomic.Bool
	ponderHitPending atomic.Bool
	currentDepth     atomic.Int32

	// owned by the search goroutine while running
	currentMaxDepth   int
	totalNodes        uint64
	currentMove       escapemg.Move
	currentMoveNumber int
	statusTime        time.Time
	bestValue         int
	stats             CutStatistics
}

// NewSearch returns an idle search reporting to protocol.
func NewSearch(protocol Protocol, evaluation Evaluation, log zerolog.Logger) *Search {
	return &Search{
		protocol:   protocol,
		evaluation: evaluation,
		log:        log,
	}
}

// State returns the lifecycle state.
func (s *Search) State() SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// configure resets the search for a new root. Callers hold s.mu.
func (s *Search) configure(p *escapemg.Position) error {
	if s.state == Running {
		return ErrSearchRunning
	}
	if p == nil {
		return fmt.Errorf("%w: nil position", escapemg.ErrInvalidArgument)
	}
	s.position = p.Clone()
	s.searchDepth = escapemg.MaxDepth
	s.searchNodes = math.MaxUint64
	s.timeHandler.reset()
	s.pondering = false
	s.infinite = false
	s.state = Configured
	return nil
}

// NewDepthSearch searches to a fixed depth.
func (s *Search) NewDepthSearch(p *escapemg.Position, depth int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if depth < 1 || depth > escapemg.MaxDepth {
		return fmt.Errorf("%w: depth %d", escapemg.ErrInvalidArgument, depth)
	}
	if err := s.configure(p); err != nil {
		return err
	}
	s.searchDepth = depth
	return nil
}

// NewNodesSearch stops once the node budget is spent.
func (s *Search) NewNodesSearch(p *escapemg.Position, nodes uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if nodes < 1 {
		return fmt.Errorf("%w: nodes %d", escapemg.ErrInvalidArgument, nodes)
	}
	if err := s.configure(p); err != nil {
		return err
	}
	s.searchNodes = nodes
	return nil
}

// NewTimeSearch stops after d, wherever the search is.
func (s *Search) NewTimeSearch(p *escapemg.Position, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d <= 0 {
		return fmt.Errorf("%w: search time %v", escapemg.ErrInvalidArgument, d)
	}
	if err := s.configure(p); err != nil {
		return err
	}
	s.timeHandler.setMoveTime(d)
	return nil
}

// NewInfiniteSearch runs until Stop. Reaching the depth ceiling ends the search but
// the best move is held back until Stop.
func (s *Search) NewInfiniteSearch(p *escapemg.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.configure(p); err != nil {
		return err
	}
	s.infinite = true
	return nil
}

// NewClockSearch budgets a share of the side to move's clock.
func (s *Search) NewClockSearch(p *escapemg.Position,
	whiteTimeLeft, whiteIncrement, blackTimeLeft, blackIncrement time.Duration, movesToGo int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configureClock(p, whiteTimeLeft, whiteIncrement, blackTimeLeft, blackIncrement, movesToGo)
}

// NewPonderSearch is a clock search whose clock starts at PonderHit. A ponder search
// that runs out of work reports nothing before PonderHit or Stop.
func (s *Search) NewPonderSearch(p *escapemg.Position,
	whiteTimeLeft, whiteIncrement, blackTimeLeft, blackIncrement time.Duration, movesToGo int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.configureClock(p, whiteTimeLeft, whiteIncrement, blackTimeLeft, blackIncrement, movesToGo); err != nil {
		return err
	}
	s.pondering = true
	return nil
}

func (s *Search) configureClock(p *escapemg.Position,
	whiteTimeLeft, whiteIncrement, blackTimeLeft, blackIncrement time.Duration, movesToGo int) error {
	if whiteTimeLeft < 0 || blackTimeLeft < 0 || whiteIncrement < 0 || blackIncrement < 0 {
		return fmt.Errorf("%w: negative clock", escapemg.ErrInvalidArgument)
	}
	if movesToGo < 1 {
		return fmt.Errorf("%w: moves to go %d", escapemg.ErrInvalidArgument, movesToGo)
	}
	if err := s.configure(p); err != nil {
		return err
	}
	timeLeft, increment := whiteTimeLeft, whiteIncrement
	if s.position.ActiveColor() == escapemg.Black {
		timeLeft, increment = blackTimeLeft, blackIncrement
	}
	s.timeHandler.setClock(timeLeft, increment, movesToGo)
	return nil
}

// Start launches the configured search and returns immediately.
func (s *Search) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case Running:
		return ErrSearchRunning
	case Configured:
	default:
		return ErrNotConfigured
	}

	s.abort.Store(false)
	s.ponderHitPending.Store(false)
	s.currentDepth.Store(initialDepth)
	s.stopped = false
	if s.timeHandler.searchTime > 0 || s.timeHandler.doTimeManagement {
		if !s.pondering {
			s.timeHandler.start(s.timerExpired)
		}
	}

	s.state = Running
	s.done = make(chan struct{})
	s.release = make(chan struct{})
	go s.run(s.done, s.release)
	return nil
}

// Stop aborts a running search and waits until it has reported its best move.
// It is a no-op when nothing runs.
func (s *Search) Stop() {
	s.mu.Lock()
	if s.state != Running {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.abort.Store(true)
	s.releaseLocked()
	done := s.done
	s.mu.Unlock()
	<-done
}

// Wait blocks until a running search finishes on its own. Infinite and unanswered
// ponder searches finish only through Stop or PonderHit.
func (s *Search) Wait() {
	s.mu.Lock()
	done := s.done
	running := s.state == Running
	s.mu.Unlock()
	if running {
		<-done
	}
}

// PonderHit turns a ponder search into a clock search without restarting it.
func (s *Search) PonderHit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Running || !s.pondering {
		return
	}
	s.pondering = false
	s.timeHandler.start(s.timerExpired)
	s.ponderHitPending.Store(true)
	s.releaseLocked()
}

// releaseLocked lets a held search report its best move. Callers hold s.mu.
func (s *Search) releaseLocked() {
	if s.release != nil {
		close(s.release)
		s.release = nil
	}
}

// holdResult reports whether the best move must wait for PonderHit or Stop.
func (s *Search) holdResult() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.release != nil && (s.pondering || s.infinite)
}

// timerExpired runs on the timer goroutine. A managed search always finishes depth one.
func (s *Search) timerExpired() {
	if !s.timeHandler.doTimeManagement || s.currentDepth.Load() > initialDepth {
		s.abort.Store(true)
	}
}

// =============================================================================
// ITERATIVE DEEPENING
// =============================================================================

func (s *Search) run(done, release chan struct{}) {
	defer close(done)

	start := time.Now()
	s.statusTime = start
	s.totalNodes = 0
	s.currentMaxDepth = 0
	s.currentMove = escapemg.NoMove
	s.currentMoveNumber = 0
	s.stats = CutStatistics{}

	p := s.position
	s.rootMoves.Reset(s.generators[0].LegalMoves(p, 1, p.IsCheck()))

	bestMove, ponderMove := escapemg.NoMove, escapemg.NoMove
	s.bestValue = -escapemg.Infinite

	if s.rootMoves.Len() > 0 {
		for depth := initialDepth; depth <= s.searchDepth; depth++ {
			s.currentDepth.Store(int32(depth))
			s.currentMaxDepth = 0
			s.sendStatus(false)

			completed := s.searchRoot(depth)
			if !completed {
				// only the first depth may report a partial result, there is nothing older
				if depth == initialDepth {
					s.rootMoves.Sort()
					bestMove, ponderMove = s.rootBest()
				}
				break
			}

			s.rootMoves.Sort()
			bestMove, ponderMove = s.rootBest()
			s.bestValue = s.rootMoves.Entry(0).Value
			s.stats.CompletedDepths = depth
			s.protocol.PrincipalVariation(s.rootMoves.Entry(0), depth, s.currentMaxDepth, s.totalNodes)
			s.log.Debug().
				Int("depth", depth).
				Int("seldepth", s.currentMaxDepth).
				Str("best", bestMove.String()).
				Int("value", s.bestValue).
				Uint64("nodes", s.totalNodes).
				Dur("elapsed", time.Since(start)).
				Msg("depth completed")

			s.checkStopConditions()
			if s.abort.Load() {
				break
			}
		}
	}

	s.stats.Nodes = s.totalNodes
	s.log.Debug().Object("stats", s.stats).Dur("elapsed", time.Since(start)).Msg("search finished")

	if s.holdResult() {
		<-release
	}
	s.timeHandler.stop()

	s.sendStatus(true)
	s.protocol.BestMove(bestMove, ponderMove)

	s.mu.Lock()
	if s.stopped {
		s.state = Stopped
	} else {
		s.state = Completed
	}
	s.mu.Unlock()
}

func (s *Search) rootBest() (escapemg.Move, escapemg.Move) {
	entry := s.rootMoves.Entry(0)
	ponder := escapemg.NoMove
	if pv := entry.PV.Moves(); len(pv) >= 2 {
		ponder = pv[1]
	}
	return entry.Move, ponder
}

// checkStopConditions ends a managed search early once more depth cannot change the move.
func (s *Search) checkStopConditions() {
	if !s.timeHandler.managed() {
		return
	}
	if s.timeHandler.TimeStatus() {
		s.abort.Store(true)
		return
	}
	if s.rootMoves.Len() == 1 {
		s.abort.Store(true)
		return
	}
	if escapemg.IsCheckmate(s.bestValue) &&
		int(s.currentDepth.Load()) >= escapemg.Checkmate-Abs(s.bestValue) {
		s.abort.Store(true)
	}
}

func (s *Search) updateSearch(ply int) {
	s.totalNodes++
	if ply > s.currentMaxDepth {
		s.currentMaxDepth = ply
	}
	if s.searchNodes <= s.totalNodes {
		s.abort.Store(true)
	}
	s.pv[ply].Clear()

	if s.totalNodes&statusMask == 0 {
		s.sendStatus(false)
	}
	if s.ponderHitPending.Load() {
		s.ponderHitPending.Store(false)
		if s.currentDepth.Load() > initialDepth {
			s.checkStopConditions()
		}
	}
}

func (s *Search) sendStatus(force bool) {
	now := time.Now()
	if !force && now.Sub(s.statusTime) < statusInterval {
		return
	}
	s.statusTime = now
	s.protocol.Status(int(s.currentDepth.Load()), s.currentMaxDepth, s.totalNodes, s.currentMove, s.currentMoveNumber)
}

func (s *Search) savePV(m escapemg.Move, ply int) {
	s.pv[ply].SetPrepend(m, &s.pv[ply+1])
}

func (s *Search) isDraw() bool {
	p := s.position
	if p.IsRepetition() || p.HasInsufficientMaterial() || p.HalfmoveClock() >= fiftyMoveLimit {
		s.stats.DrawsDetected++
		return true
	}
	return false
}

// =============================================================================
// ALPHA-BETA
// =============================================================================

// searchRoot searches every root move to depth. It returns false when aborted.
func (s *Search) searchRoot(depth int) bool {
	const ply = 0
	alpha, beta := -escapemg.Infinite, escapemg.Infinite

	s.updateSearch(ply)
	if s.abort.Load() {
		return false
	}

	for i := 0; i < s.rootMoves.Len(); i++ {
		s.rootMoves.Entry(i).Value = -escapemg.Infinite
	}

	p := s.position
	for i := 0; i < s.rootMoves.Len(); i++ {
		entry := s.rootMoves.Entry(i)
		m := entry.Move

		s.currentMove = m
		s.currentMoveNumber = i + 1
		s.sendStatus(false)

		p.MakeMove(m)
		value := -s.search(depth-1, -beta, -alpha, ply+1)
		p.UndoMove(m)

		if s.abort.Load() {
			return false
		}

		if value > alpha {
			alpha = value
			entry.Value = value
			entry.PV.SetPrepend(m, &s.pv[ply+1])
		}
	}
	return true
}

func (s *Search) search(depth, alpha, beta, ply int) int {
	if depth <= 0 {
		return s.quiescent(0, alpha, beta, ply)
	}

	s.updateSearch(ply)
	p := s.position
	if s.abort.Load() || ply == escapemg.MaxPly {
		return s.evaluation.Evaluate(p)
	}
	if s.isDraw() {
		return escapemg.Draw
	}

	bestValue := -escapemg.Infinite
	searchedMoves := 0
	isCheck := p.IsCheck()
	mover := p.ActiveColor()

	moves := s.generators[ply].Moves(p, depth, isCheck)
	for i := 0; i < moves.Len(); i++ {
		m := moves.Move(i)
		value := bestValue

		p.MakeMove(m)
		if !p.IsCheckFor(mover) {
			searchedMoves++
			value = -s.search(depth-1, -beta, -alpha, ply+1)
		}
		p.UndoMove(m)

		if s.abort.Load() {
			return bestValue
		}

		if value > bestValue {
			bestValue = value
			if value > alpha {
				alpha = value
				s.savePV(m, ply)
				if value >= beta {
					s.stats.BetaCutoffs++
					break
				}
			}
		}
	}

	if searchedMoves == 0 {
		if isCheck {
			return -escapemg.Checkmate + ply
		}
		return escapemg.Draw
	}
	return bestValue
}

// quiescent resolves captures at the horizon. Out of check the side to move may stand pat.
func (s *Search) quiescent(depth, alpha, beta, ply int) int {
	s.updateSearch(ply)
	s.stats.QuiescenceNodes++
	p := s.position
	if s.abort.Load() || ply == escapemg.MaxPly {
		return s.evaluation.Evaluate(p)
	}
	if s.isDraw() {
		return escapemg.Draw
	}

	bestValue := -escapemg.Infinite
	searchedMoves := 0
	isCheck := p.IsCheck()
	mover := p.ActiveColor()

	if !isCheck {
		bestValue = s.evaluation.Evaluate(p)
		if bestValue > alpha {
			alpha = bestValue
			if bestValue >= beta {
				s.stats.QStandPatCutoffs++
				return bestValue
			}
		}
	}

	moves := s.generators[ply].Moves(p, depth, isCheck)
	for i := 0; i < moves.Len(); i++ {
		m := moves.Move(i)
		value := bestValue

		p.MakeMove(m)
		if !p.IsCheckFor(mover) {
			searchedMoves++
			value = -s.quiescent(depth-1, -beta, -alpha, ply+1)
		}
		p.UndoMove(m)

		if s.abort.Load() {
			return bestValue
		}

		if value > bestValue {
			bestValue = value
			if value > alpha {
				alpha = value
				s.savePV(m, ply)
				if value >= beta {
					s.stats.QBetaCutoffs++
					break
				}
			}
		}
	}

	if searchedMoves == 0 && isCheck {
		return -escapemg.Checkmate + ply
	}
	return bestValue
}
