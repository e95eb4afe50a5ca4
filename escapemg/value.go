package escapemg

const (
	// MaxPly bounds the search stack and principal variations.
	MaxPly = 256
	// MaxDepth bounds iterative deepening.
	MaxDepth = 64
	// MaxMoves is the capacity of a move list.
	MaxMoves = 256
)

// Search values, from the side to move's point of view.
const (
	Infinite           = 200000
	Checkmate          = 100000
	CheckmateThreshold = Checkmate - MaxPly
	Draw               = 0
	NoValue            = 300000
)

// IsCheckmate reports whether v is a mate score.
func IsCheckmate(v int) bool {
	if v < 0 {
		v = -v
	}
	return v >= CheckmateThreshold && v <= Checkmate
}
