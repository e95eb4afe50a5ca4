package escapemg

const (
	// historyStates is the game history a Clone keeps for repetition detection.
	historyStates = 1024
	maxStates     = MaxPly + historyStates
)

// state captures what MakeMove cannot recompute on undo.
type state struct {
	hash          uint64
	castling      Castling
	enPassant     Square
	halfmoveClock int
}

// stateStack is a preallocated LIFO of saved states, one per applied move.
type stateStack struct {
	states [maxStates]state
	size   int
}

func (s *stateStack) push(st state) {
	if s.size == maxStates {
		panic("escapemg: state stack overflow")
	}
	s.states[s.size] = st
	s.size++
}

func (s *stateStack) pop() state {
	if s.size == 0 {
		panic("escapemg: undo with empty state stack")
	}
	s.size--
	return s.states[s.size]
}

// trim keeps only the newest keep states.
func (s *stateStack) trim(keep int) {
	if keep >= s.size {
		return
	}
	copy(s.states[:keep], s.states[s.size-keep:s.size])
	s.size = keep
}

// repeats reports whether a saved state with the same side to move has the given hash,
// looking back no further than the last irreversible move.
func (s *stateStack) repeats(hash uint64, halfmoveClock int) bool {
	j := s.size - halfmoveClock
	if j < 0 {
		j = 0
	}
	for i := s.size - 2; i >= j; i -= 2 {
		if s.states[i].hash == hash {
			return true
		}
	}
	return false
}
