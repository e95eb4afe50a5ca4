package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// TimeHandler owns the deadline of a time or clock search.
type TimeHandler struct {
	searchTime time.Duration
	// doTimeManagement is set for clock and ponder searches. Those finish the first
	// depth and may stop early at depth boundaries.
	doTimeManagement bool

	mu      sync.Mutex
	timer   *time.Timer
	active  atomic.Bool
	stopped atomic.Bool
}

func (th *TimeHandler) reset() {
	th.stop()
	th.searchTime = 0
	th.doTimeManagement = false
	th.stopped.Store(false)
}

// setMoveTime uses a fixed budget that aborts wherever the search is.
func (th *TimeHandler) setMoveTime(d time.Duration) {
	th.searchTime = d
	th.doTimeManagement = false
}

// setClock derives the soft budget for one move from the side's clock.
func (th *TimeHandler) setClock(timeLeft, increment time.Duration, movesToGo int) {
	th.searchTime = allocateTime(timeLeft, increment, movesToGo)
	th.doTimeManagement = true
}

// allocateTime keeps 5% and one second in reserve, then spreads the rest and the
// expected increments over the remaining moves.
func allocateTime(timeLeft, increment time.Duration, movesToGo int) time.Duration {
	left := timeLeft.Milliseconds()
	inc := increment.Milliseconds()

	maxSearchTime := Max(int64(float64(left)*0.95)-1000, 0)
	searchTime := (maxSearchTime + int64(movesToGo-1)*inc) / int64(movesToGo)
	return time.Duration(Min(searchTime, maxSearchTime)) * time.Millisecond
}

// start arms the timer. expired runs on the timer goroutine.
func (th *TimeHandler) start(expired func()) {
	th.mu.Lock()
	defer th.mu.Unlock()
	if th.timer != nil {
		th.timer.Stop()
	}
	th.stopped.Store(false)
	th.active.Store(true)
	th.timer = time.AfterFunc(th.searchTime, func() {
		th.stopped.Store(true)
		expired()
	})
}

func (th *TimeHandler) stop() {
	th.mu.Lock()
	defer th.mu.Unlock()
	if th.timer != nil {
		th.timer.Stop()
		th.timer = nil
	}
	th.active.Store(false)
}

// managed reports whether stop conditions at depth boundaries apply.
func (th *TimeHandler) managed() bool {
	return th.active.Load() && th.doTimeManagement
}

// TimeStatus reports whether the budget has run out.
func (th *TimeHandler) TimeStatus() bool {
	return th.stopped.Load()
}
