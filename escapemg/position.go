package escapemg

import "fmt"

// Description is a board handed in from outside, e.g. a decoded FEN.
// Position itself satisfies it.
type Description interface {
	// PieceAt returns the piece on sq or NoPiece.
	PieceAt(sq Square) Piece
	ActiveColor() Color
	CastlingRight(c Color, t CastlingType) bool
	// EnPassant returns the en passant target or NoSquare.
	EnPassant() Square
	HalfmoveClock() int
	FullmoveNumber() int
}

// Setup is a plain Description. Use NewSetup to get the empty-board defaults.
type Setup struct {
	Pieces   map[Square]Piece
	Active   Color
	Rights   Castling
	EPSquare Square
	Halfmove int
	Fullmove int
}

// NewSetup returns an empty board with white to move on move 1.
func NewSetup() *Setup {
	return &Setup{Pieces: make(map[Square]Piece), Active: White, EPSquare: NoSquare, Fullmove: 1}
}

func (s *Setup) PieceAt(sq Square) Piece {
	if p, ok := s.Pieces[sq]; ok {
		return p
	}
	return NoPiece
}

func (s *Setup) ActiveColor() Color { return s.Active }

func (s *Setup) CastlingRight(c Color, t CastlingType) bool { return s.Rights.Has(CastlingOf(c, t)) }

func (s *Setup) EnPassant() Square { return s.EPSquare }

func (s *Setup) HalfmoveClock() int { return s.Halfmove }

func (s *Setup) FullmoveNumber() int { return s.Fullmove }

// Position is the mutable board. Make and undo calls must nest strictly.
type Position struct {
	// board maps every 0x88 square to its piece, NoPiece when empty
	board [128]Piece
	// pieces[color][type] mirrors board as bitboards
	pieces [2][6]Bitboard
	// material sums piece type values per color
	material [2]int

	castling    Castling
	enPassant   Square
	activeColor Color
	// halfmoveClock counts plies since the last pawn move or capture
	halfmoveClock int
	// halfmoveNumber starts at 2 so that halfmoveNumber/2 is the full-move number
	halfmoveNumber int

	hash   uint64
	states stateStack
}

func newPosition() *Position {
	p := &Position{
		enPassant:      NoSquare,
		activeColor:    White,
		halfmoveNumber: 2,
	}
	for i := range p.board {
		p.board[i] = NoPiece
	}
	return p
}

// StartPosition returns the standard initial position.
func StartPosition() *Position {
	p := newPosition()
	back := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for f := FileA; f <= FileH; f++ {
		p.put(NewPiece(White, back[f]), SquareOf(f, Rank1))
		p.put(WhitePawn, SquareOf(f, Rank2))
		p.put(BlackPawn, SquareOf(f, Rank7))
		p.put(NewPiece(Black, back[f]), SquareOf(f, Rank8))
	}
	for _, r := range [...]Castling{WhiteKingside, WhiteQueenside, BlackKingside, BlackQueenside} {
		p.setCastlingRight(r)
	}
	p.setFullmoveNumber(1)
	return p
}

// castlingHome gives the king and rook squares a castling right depends on.
var castlingHome = map[Castling][2]Square{
	WhiteKingside:  {E1, H1},
	WhiteQueenside: {E1, A1},
	BlackKingside:  {E8, H8},
	BlackQueenside: {E8, A8},
}

// NewPosition builds a position from d. It fails with ErrInvalidArgument when d does
// not describe a position the move generator can work with.
func NewPosition(d Description) (*Position, error) {
	p := newPosition()

	var kings [2]int
	for _, sq := range Squares {
		piece := d.PieceAt(sq)
		if piece == NoPiece {
			continue
		}
		if !piece.Valid() {
			return nil, fmt.Errorf("%w: piece %d on %v", ErrInvalidArgument, piece, sq)
		}
		if piece.Type() == Pawn && (sq.Rank() == Rank1 || sq.Rank() == Rank8) {
			return nil, fmt.Errorf("%w: pawn on %v", ErrInvalidArgument, sq)
		}
		if piece.Type() == King {
			kings[piece.Color()]++
		}
		p.put(piece, sq)
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return nil, fmt.Errorf("%w: want one king per side, got %d white and %d black",
			ErrInvalidArgument, kings[White], kings[Black])
	}

	active := d.ActiveColor()
	if !active.Valid() {
		return nil, fmt.Errorf("%w: active color %d", ErrInvalidArgument, active)
	}
	p.setActiveColor(active)

	for _, c := range Colors {
		for _, t := range [...]CastlingType{Kingside, Queenside} {
			if !d.CastlingRight(c, t) {
				continue
			}
			right := CastlingOf(c, t)
			home := castlingHome[right]
			if p.board[home[0]] != NewPiece(c, King) || p.board[home[1]] != NewPiece(c, Rook) {
				return nil, fmt.Errorf("%w: castling right %v without king and rook at home",
					ErrInvalidArgument, right)
			}
			p.setCastlingRight(right)
		}
	}

	if ep := d.EnPassant(); ep != NoSquare {
		if err := p.validEnPassant(ep); err != nil {
			return nil, err
		}
		p.setEnPassant(ep)
	}

	halfmove := d.HalfmoveClock()
	if halfmove < 0 {
		return nil, fmt.Errorf("%w: half-move clock %d", ErrInvalidArgument, halfmove)
	}
	p.halfmoveClock = halfmove

	fullmove := d.FullmoveNumber()
	if fullmove < 1 {
		return nil, fmt.Errorf("%w: full-move number %d", ErrInvalidArgument, fullmove)
	}
	p.setFullmoveNumber(fullmove)

	return p, nil
}

func (p *Position) validEnPassant(ep Square) error {
	want := Rank6
	if p.activeColor == Black {
		want = Rank3
	}
	if !ep.Valid() || ep.Rank() != want {
		return fmt.Errorf("%w: en passant square %v with %v to move", ErrInvalidArgument, ep, p.activeColor)
	}
	// the pawn that just moved two squares stands one step past the target
	mover := p.activeColor.Opposite()
	if p.board[ep] != NoPiece || p.board[ep+pawnDirections[mover][0]] != NewPiece(mover, Pawn) {
		return fmt.Errorf("%w: en passant square %v without a double-stepped pawn", ErrInvalidArgument, ep)
	}
	return nil
}

// Clone returns an independent copy. The copy keeps the undo history back to the
// last irreversible move, at most 1024 plies, so it always has room for MaxPly
// further moves. It cannot undo past the kept history.
func (p *Position) Clone() *Position {
	cp := *p
	cp.states.trim(min(p.halfmoveClock, historyStates))
	return &cp
}

func (p *Position) PieceAt(sq Square) Piece { return p.board[sq] }

func (p *Position) ActiveColor() Color { return p.activeColor }

func (p *Position) CastlingRights() Castling { return p.castling }

func (p *Position) CastlingRight(c Color, t CastlingType) bool {
	return p.castling.Has(CastlingOf(c, t))
}

func (p *Position) EnPassant() Square { return p.enPassant }

func (p *Position) HalfmoveClock() int { return p.halfmoveClock }

func (p *Position) FullmoveNumber() int { return p.halfmoveNumber / 2 }

// Hash is the Zobrist key of the position.
func (p *Position) Hash() uint64 { return p.hash }

// Material is the summed piece value of side c, king included.
func (p *Position) Material(c Color) int { return p.material[c] }

// Pieces returns the squares holding pieces of the color and type.
func (p *Position) Pieces(c Color, t PieceType) Bitboard { return p.pieces[c][t] }

func (p *Position) setFullmoveNumber(n int) {
	p.halfmoveNumber = n * 2
	if p.activeColor == Black {
		p.halfmoveNumber++
	}
}

func (p *Position) put(piece Piece, sq Square) {
	c, t := piece.Color(), piece.Type()
	p.board[sq] = piece
	p.pieces[c][t].Add(sq)
	p.material[c] += t.Value()
	p.hash ^= zobristBoard[piece][sq]
}

func (p *Position) remove(sq Square) Piece {
	piece := p.board[sq]
	if piece == NoPiece {
		panic(fmt.Sprintf("escapemg: remove on empty square %v", sq))
	}
	c, t := piece.Color(), piece.Type()
	p.board[sq] = NoPiece
	p.pieces[c][t].Remove(sq)
	p.material[c] -= t.Value()
	p.hash ^= zobristBoard[piece][sq]
	return piece
}

func (p *Position) setActiveColor(c Color) {
	if p.activeColor != c {
		p.activeColor = c
		p.hash ^= zobristActiveColor
	}
}

func (p *Position) setCastlingRight(r Castling) {
	if p.castling&r == 0 {
		p.castling |= r
		p.hash ^= zobristCastling[r]
	}
}

// castlingClearedBy lists the rights lost when a piece leaves or is captured on a square.
var castlingClearedBy = func() (m [128]Castling) {
	m[A1] = WhiteQueenside
	m[H1] = WhiteKingside
	m[E1] = WhiteKingside | WhiteQueenside
	m[A8] = BlackQueenside
	m[H8] = BlackKingside
	m[E8] = BlackKingside | BlackQueenside
	return m
}()

func (p *Position) clearCastling(sq Square) {
	next := p.castling &^ castlingClearedBy[sq]
	if next != p.castling {
		p.hash ^= zobristCastling[p.castling^next]
		p.castling = next
	}
}

func (p *Position) setEnPassant(sq Square) {
	if p.enPassant != NoSquare {
		p.hash ^= zobristEnPassant[p.enPassant]
	}
	if sq != NoSquare {
		p.hash ^= zobristEnPassant[sq]
	}
	p.enPassant = sq
}

// castlingRook returns the rook's origin and target for a castling king move.
func castlingRook(kingTarget Square) (Square, Square) {
	switch kingTarget {
	case G1:
		return H1, F1
	case C1:
		return A1, D1
	case G8:
		return H8, F8
	case C8:
		return A8, D8
	}
	panic(fmt.Sprintf("escapemg: no castling to %v", kingTarget))
}

// MakeMove applies a pseudo-legal move and saves what UndoMove needs.
func (p *Position) MakeMove(m Move) {
	p.states.push(state{
		hash:          p.hash,
		castling:      p.castling,
		enPassant:     p.enPassant,
		halfmoveClock: p.halfmoveClock,
	})

	t := m.Type()
	origin, target := m.Origin(), m.Target()
	originPiece := m.OriginPiece()
	originColor := originPiece.Color()
	targetPiece := m.TargetPiece()

	if targetPiece != NoPiece {
		capture := target
		if t == EnPassant {
			capture -= pawnDirections[originColor][0]
		}
		p.remove(capture)
		p.clearCastling(capture)
	}

	p.remove(origin)
	if t == PawnPromotion {
		p.put(NewPiece(originColor, m.Promotion()), target)
	} else {
		p.put(originPiece, target)
	}

	if t == CastlingMove {
		rookOrigin, rookTarget := castlingRook(target)
		p.put(p.remove(rookOrigin), rookTarget)
	}

	p.clearCastling(origin)

	if t == PawnDouble {
		p.setEnPassant(target - pawnDirections[originColor][0])
	} else {
		p.setEnPassant(NoSquare)
	}

	p.setActiveColor(originColor.Opposite())

	if originPiece.Type() == Pawn || targetPiece != NoPiece {
		p.halfmoveClock = 0
	} else {
		p.halfmoveClock++
	}
	p.halfmoveNumber++
}

// UndoMove reverts the most recent MakeMove, which must have been called with m.
func (p *Position) UndoMove(m Move) {
	st := p.states.pop()

	t := m.Type()
	origin, target := m.Origin(), m.Target()
	originPiece := m.OriginPiece()
	targetPiece := m.TargetPiece()

	p.halfmoveNumber--
	p.activeColor = p.activeColor.Opposite()

	if t == CastlingMove {
		rookOrigin, rookTarget := castlingRook(target)
		p.put(p.remove(rookTarget), rookOrigin)
	}

	p.remove(target)
	p.put(originPiece, origin)

	if targetPiece != NoPiece {
		capture := target
		if t == EnPassant {
			capture -= pawnDirections[originPiece.Color()][0]
		}
		p.put(targetPiece, capture)
	}

	p.hash = st.hash
	p.castling = st.castling
	p.enPassant = st.enPassant
	p.halfmoveClock = st.halfmoveClock
}

// IsAttacked reports whether any piece of attacker threatens target.
func (p *Position) IsAttacked(target Square, attacker Color) bool {
	pawn := NewPiece(attacker, Pawn)
	for _, d := range pawnDirections[attacker.Opposite()][1:] {
		sq := target + d
		if onBoard(sq) && p.board[sq] == pawn {
			return true
		}
	}
	return p.attackedByStep(target, NewPiece(attacker, Knight), knightDirections[:]) ||
		p.attackedByStep(target, NewPiece(attacker, King), kingDirections[:]) ||
		p.attackedByRay(target, NewPiece(attacker, Bishop), NewPiece(attacker, Queen), bishopDirections[:]) ||
		p.attackedByRay(target, NewPiece(attacker, Rook), NewPiece(attacker, Queen), rookDirections[:])
}

func (p *Position) attackedByStep(target Square, piece Piece, directions []Square) bool {
	for _, d := range directions {
		sq := target + d
		if onBoard(sq) && p.board[sq] == piece {
			return true
		}
	}
	return false
}

func (p *Position) attackedByRay(target Square, piece, queen Piece, directions []Square) bool {
	for _, d := range directions {
		for sq := target + d; onBoard(sq); sq += d {
			if occupant := p.board[sq]; occupant != NoPiece {
				if occupant == piece || occupant == queen {
					return true
				}
				break
			}
		}
	}
	return false
}

// IsCheck reports whether the side to move is in check.
func (p *Position) IsCheck() bool { return p.IsCheckFor(p.activeColor) }

// IsCheckFor reports whether the king of c is attacked.
func (p *Position) IsCheckFor(c Color) bool {
	return p.IsAttacked(p.pieces[c][King].Next(), c.Opposite())
}

// IsRepetition reports whether the position occurred before with the same side to move
// since the last pawn move or capture. It is not a full threefold count.
func (p *Position) IsRepetition() bool {
	return p.states.repeats(p.hash, p.halfmoveClock)
}

// HasInsufficientMaterial reports whether neither side can force mate:
// no pawns, rooks or queens, and at most one minor piece each.
func (p *Position) HasInsufficientMaterial() bool {
	for _, c := range Colors {
		if p.pieces[c][Pawn]|p.pieces[c][Rook]|p.pieces[c][Queen] != 0 {
			return false
		}
		if p.pieces[c][Knight].Size()+p.pieces[c][Bishop].Size() > 1 {
			return false
		}
	}
	return true
}
