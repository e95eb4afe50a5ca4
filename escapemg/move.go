package escapemg

// MoveType distinguishes the special moves that need their own make/undo handling.
type MoveType uint8

const (
	Normal MoveType = iota
	PawnDouble
	PawnPromotion
	EnPassant
	CastlingMove
	NoMoveType
)

// Move packs a move into 30 bits. It carries both pieces so undo needs no board lookup.
type Move uint32

// Bitfield layout within Move (from LSB to MSB)
const (
	moveTypeShift        = 0  // 3 bits
	moveOriginShift      = 3  // 7 bits
	moveTargetShift      = 10 // 7 bits
	moveOriginPieceShift = 17 // 5 bits
	moveTargetPieceShift = 22 // 5 bits
	movePromotionShift   = 27 // 3 bits

	moveTypeMask      = 0x7
	moveSquareMask    = 0x7F
	movePieceMask     = 0x1F
	movePieceTypeMask = 0x7
)

// NoMove is the "no move chosen" sentinel. Its bit pattern is not zero.
const NoMove = Move(uint32(NoMoveType)<<moveTypeShift |
	uint32(NoSquare)<<moveOriginShift |
	uint32(NoSquare)<<moveTargetShift |
	uint32(NoPiece)<<moveOriginPieceShift |
	uint32(NoPiece)<<moveTargetPieceShift |
	uint32(NoPieceType)<<movePromotionShift)

// NewMove constructs a Move value from components.
func NewMove(t MoveType, origin, target Square, originPiece, targetPiece Piece, promotion PieceType) Move {
	return Move(uint32(t&moveTypeMask)<<moveTypeShift |
		uint32(origin&moveSquareMask)<<moveOriginShift |
		uint32(target&moveSquareMask)<<moveTargetShift |
		uint32(originPiece&movePieceMask)<<moveOriginPieceShift |
		uint32(targetPiece&movePieceMask)<<moveTargetPieceShift |
		uint32(promotion&movePieceTypeMask)<<movePromotionShift)
}

func (m Move) Type() MoveType { return MoveType((uint32(m) >> moveTypeShift) & moveTypeMask) }

func (m Move) Origin() Square { return Square((uint32(m) >> moveOriginShift) & moveSquareMask) }

func (m Move) Target() Square { return Square((uint32(m) >> moveTargetShift) & moveSquareMask) }

func (m Move) OriginPiece() Piece { return Piece((uint32(m) >> moveOriginPieceShift) & movePieceMask) }

// TargetPiece is the captured piece, NoPiece for quiet moves.
func (m Move) TargetPiece() Piece { return Piece((uint32(m) >> moveTargetPieceShift) & movePieceMask) }

// Promotion is the piece type a pawn promotes to, NoPieceType otherwise.
func (m Move) Promotion() PieceType {
	return PieceType((uint32(m) >> movePromotionShift) & movePieceTypeMask)
}

// IsCapture reports whether the move removes an enemy piece.
func (m Move) IsCapture() bool { return m.TargetPiece() != NoPiece }

// String returns the move in UCI long algebraic notation (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.Origin().String() + m.Target().String()
	if m.Type() == PawnPromotion {
		s += string(m.Promotion().Char())
	}
	return s
}
