package escapemg

// Square addresses the board in 0x88 layout: rank<<4 | file.
// The 0x88 bits are set for every off-board square reached by a single step.
type Square int

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A2 Square = iota + 16
	B2
	C2
	D2
	E2
	F2
	G2
	H2
)

const (
	A3 Square = iota + 32
	B3
	C3
	D3
	E3
	F3
	G3
	H3
)

const (
	A4 Square = iota + 48
	B4
	C4
	D4
	E4
	F4
	G4
	H4
)

const (
	A5 Square = iota + 64
	B5
	C5
	D5
	E5
	F5
	G5
	H5
)

const (
	A6 Square = iota + 80
	B6
	C6
	D6
	E6
	F6
	G6
	H6
)

const (
	A7 Square = iota + 96
	B7
	C7
	D7
	E7
	F7
	G7
	H7
)

const (
	A8 Square = iota + 112
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// NoSquare marks an absent square, e.g. no en passant target.
const NoSquare Square = 127

type File int

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
	NoFile
)

type Rank int

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	NoRank
)

// Step offsets in 0x88 space.
const (
	North = 16
	East  = 1
	South = -16
	West  = -1

	NorthEast = North + East
	NorthWest = North + West
	SouthEast = South + East
	SouthWest = South + West
)

var (
	// Squares lists all 64 squares from a1 to h8.
	Squares = func() (squares [64]Square) {
		for i := range squares {
			squares[i] = toX88Square(i)
		}
		return squares
	}()

	// pawnDirections holds the push direction first, then the two capture directions.
	pawnDirections = [2][3]Square{
		{North, NorthEast, NorthWest},
		{South, SouthEast, SouthWest},
	}
	knightDirections = [...]Square{
		North + North + East,
		North + North + West,
		North + East + East,
		North + West + West,
		South + South + East,
		South + South + West,
		South + East + East,
		South + West + West,
	}
	bishopDirections = [...]Square{NorthEast, NorthWest, SouthEast, SouthWest}
	rookDirections   = [...]Square{North, East, South, West}
	queenDirections  = [...]Square{North, East, South, West, NorthEast, NorthWest, SouthEast, SouthWest}
	kingDirections   = queenDirections
)

// SquareOf returns the square at the file and rank.
func SquareOf(f File, r Rank) Square { return Square(int(r)<<4 | int(f)) }

// Valid reports whether sq is on the board.
func (sq Square) Valid() bool { return sq >= 0 && sq < 128 && sq&0x88 == 0 }

func (sq Square) File() File { return File(sq & 0xF) }

func (sq Square) Rank() Rank { return Rank(sq >> 4) }

// String returns the algebraic name, "-" for NoSquare.
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// ParseSquare reads an algebraic square such as "e3".
func ParseSquare(s string) (Square, bool) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, false
	}
	return SquareOf(File(s[0]-'a'), Rank(s[1]-'1')), true
}

// onBoard is the branch-free validity test for squares derived by stepping from a valid square.
func onBoard(sq Square) bool { return sq&0x88 == 0 }
