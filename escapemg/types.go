package escapemg

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned for external input outside the board enumerations
// or inconsistent with the rules of chess.
var ErrInvalidArgument = errors.New("invalid argument")

// Color of a side or a piece.
type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

// Colors lists both sides in index order.
var Colors = [...]Color{White, Black}

// Valid reports whether c is White or Black.
func (c Color) Valid() bool { return c == White || c == Black }

// Opposite returns the other side. Only defined for White and Black.
func (c Color) Opposite() Color { return c ^ 1 }

func (c Color) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	}
	return "-"
}

// PieceType is the colorless kind of a piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

// Piece type values used by move ordering and material evaluation.
const (
	PawnValue   = 100
	KnightValue = 325
	BishopValue = 325
	RookValue   = 500
	QueenValue  = 975
	KingValue   = 20000
)

var (
	// PieceTypes lists the six piece types in index order.
	PieceTypes = [...]PieceType{Pawn, Knight, Bishop, Rook, Queen, King}
	// PromotionTypes lists promotion targets in generation order.
	PromotionTypes = [...]PieceType{Queen, Rook, Bishop, Knight}

	pieceTypeValues = [...]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, KingValue, 0}
	pieceTypeChars  = [...]byte{'p', 'n', 'b', 'r', 'q', 'k', '-'}
)

// Valid reports whether t is one of the six piece types.
func (t PieceType) Valid() bool { return t < NoPieceType }

// Value returns the nominal value of the piece type, 0 for NoPieceType.
func (t PieceType) Value() int { return pieceTypeValues[t] }

// IsSliding reports whether the piece moves along rays.
func (t PieceType) IsSliding() bool { return t == Bishop || t == Rook || t == Queen }

// Char returns the lower case letter of the piece type.
func (t PieceType) Char() byte { return pieceTypeChars[t] }

// Piece is a colored piece. White pieces come first, NoPiece last.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

var (
	pieceTypeOf  [NoPiece + 1]PieceType
	pieceColorOf [NoPiece + 1]Color
	pieceChars   = [...]byte{'P', 'N', 'B', 'R', 'Q', 'K', 'p', 'n', 'b', 'r', 'q', 'k', '-'}
)

func init() {
	for _, c := range Colors {
		for _, t := range PieceTypes {
			p := NewPiece(c, t)
			pieceTypeOf[p] = t
			pieceColorOf[p] = c
		}
	}
	pieceTypeOf[NoPiece] = NoPieceType
	pieceColorOf[NoPiece] = NoColor
}

// NewPiece combines a side and a piece type. It panics on values outside the enumerations.
func NewPiece(c Color, t PieceType) Piece {
	if !c.Valid() || !t.Valid() {
		panic(fmt.Sprintf("escapemg: no piece for color %d and type %d", c, t))
	}
	return Piece(uint8(c)*6 + uint8(t))
}

// Valid reports whether p is one of the twelve pieces.
func (p Piece) Valid() bool { return p < NoPiece }

// Type returns the colorless type, NoPieceType for NoPiece.
func (p Piece) Type() PieceType { return pieceTypeOf[p] }

// Color returns the owner, NoColor for NoPiece.
func (p Piece) Color() Color { return pieceColorOf[p] }

// Char returns the FEN letter of the piece.
func (p Piece) Char() byte { return pieceChars[p] }

// PieceFromChar maps a FEN letter to a piece.
func PieceFromChar(ch byte) (Piece, bool) {
	for p := WhitePawn; p < NoPiece; p++ {
		if pieceChars[p] == ch {
			return p, true
		}
	}
	return NoPiece, false
}

// Castling is a 4-bit set of castling rights.
type Castling uint8

const (
	WhiteKingside Castling = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling Castling = 0
)

// CastlingType is the side of the board a king castles to.
type CastlingType uint8

const (
	Kingside CastlingType = iota
	Queenside
	NoCastlingType
)

// CastlingOf returns the single right for a side and castling type.
func CastlingOf(c Color, t CastlingType) Castling {
	if !c.Valid() || t >= NoCastlingType {
		panic(fmt.Sprintf("escapemg: no castling for color %d and type %d", c, t))
	}
	return Castling(1) << (uint(c)*2 + uint(t))
}

// Has reports whether every right in o is present in c.
func (c Castling) Has(o Castling) bool { return c&o == o && o != NoCastling }

func (c Castling) String() string {
	if c == NoCastling {
		return "-"
	}
	var buf []byte
	for _, r := range [...]struct {
		right Castling
		ch    byte
	}{{WhiteKingside, 'K'}, {WhiteQueenside, 'Q'}, {BlackKingside, 'k'}, {BlackQueenside, 'q'}} {
		if c&r.right != 0 {
			buf = append(buf, r.ch)
		}
	}
	return string(buf)
}
