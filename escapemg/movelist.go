package escapemg

// MoveEntry pairs a move with its ordering or search value.
type MoveEntry struct {
	Move  Move
	Value int
}

// MoveList is a fixed-capacity move buffer that is reused between generations.
type MoveList struct {
	entries [MaxMoves]MoveEntry
	size    int
}

// Add appends m. The list panics when full; a truncated list would hide legal moves.
func (l *MoveList) Add(m Move) {
	if l.size == MaxMoves {
		panic("escapemg: move list overflow")
	}
	l.entries[l.size] = MoveEntry{Move: m, Value: NoValue}
	l.size++
}

func (l *MoveList) Len() int { return l.size }

func (l *MoveList) Move(i int) Move { return l.entries[i].Move }

func (l *MoveList) Entry(i int) *MoveEntry { return &l.entries[i] }

func (l *MoveList) Clear() { l.size = 0 }

// Moves returns a copy of the moves in list order.
func (l *MoveList) Moves() []Move {
	moves := make([]Move, l.size)
	for i := range moves {
		moves[i] = l.entries[i].Move
	}
	return moves
}

// retain keeps the entries for which keep returns true, preserving order.
func (l *MoveList) retain(keep func(Move) bool) {
	size := 0
	for i := 0; i < l.size; i++ {
		if keep(l.entries[i].Move) {
			l.entries[size] = l.entries[i]
			size++
		}
	}
	l.size = size
}

// Sort orders entries by descending value. Equal values keep their generation order.
func (l *MoveList) Sort() {
	for i := 1; i < l.size; i++ {
		entry := l.entries[i]
		j := i
		for j > 0 && l.entries[j-1].Value < entry.Value {
			l.entries[j] = l.entries[j-1]
			j--
		}
		l.entries[j] = entry
	}
}

// RateFromMVVLVA values each move by most valuable victim, least valuable aggressor.
func (l *MoveList) RateFromMVVLVA() {
	for i := 0; i < l.size; i++ {
		l.entries[i].Value = mvvLva(l.entries[i].Move)
	}
}

func mvvLva(m Move) int {
	value := KingValue / m.OriginPiece().Type().Value()
	if target := m.TargetPiece(); target != NoPiece {
		value += 10 * target.Type().Value()
	}
	return value
}

// MoveVariation is a line of moves, used for principal variations.
type MoveVariation struct {
	moves [MaxPly]Move
	size  int
}

func (v *MoveVariation) Len() int { return v.size }

func (v *MoveVariation) Clear() { v.size = 0 }

// Moves returns the line. The slice aliases the variation.
func (v *MoveVariation) Moves() []Move { return v.moves[:v.size] }

// SetPrepend replaces v with m followed by child.
func (v *MoveVariation) SetPrepend(m Move, child *MoveVariation) {
	v.moves[0] = m
	v.size = 1 + copy(v.moves[1:], child.moves[:child.size])
}

// RootEntry is a root move with its backed up value and principal variation.
type RootEntry struct {
	Move  Move
	Value int
	PV    MoveVariation
}

// RootList holds the root moves of a search.
type RootList struct {
	entries [MaxMoves]RootEntry
	size    int
}

// Reset fills the list from legal root moves, keeping their order.
func (l *RootList) Reset(moves *MoveList) {
	l.size = moves.Len()
	for i := 0; i < l.size; i++ {
		l.entries[i].Move = moves.Move(i)
		l.entries[i].Value = -Infinite
		l.entries[i].PV.Clear()
	}
}

func (l *RootList) Len() int { return l.size }

func (l *RootList) Entry(i int) *RootEntry { return &l.entries[i] }

// Sort orders entries by descending value, stable.
func (l *RootList) Sort() {
	for i := 1; i < l.size; i++ {
		entry := l.entries[i]
		j := i
		for j > 0 && l.entries[j-1].Value < entry.Value {
			l.entries[j] = l.entries[j-1]
			j--
		}
		l.entries[j] = entry
	}
}
