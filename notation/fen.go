// Package notation converts between text formats and escapemg positions and moves.
package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"

	"earlyescape/escapemg"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN wraps every FEN decoding failure.
var ErrInvalidFEN = fmt.Errorf("%w: fen", escapemg.ErrInvalidArgument)

// ParseFEN decodes a FEN string. The move counters may be omitted.
func ParseFEN(fen string) (*escapemg.Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, fmt.Errorf("%w %q: want 4 to 6 fields, got %d", ErrInvalidFEN, fen, len(fields))
	}

	// chess.NewGame needs both kings to compute the game status
	if n := strings.Count(fields[0], "K"); n != 1 {
		return nil, fmt.Errorf("%w %q: %d white kings", ErrInvalidFEN, fen, n)
	}
	if n := strings.Count(fields[0], "k"); n != 1 {
		return nil, fmt.Errorf("%w %q: %d black kings", ErrInvalidFEN, fen, n)
	}

	halfmove, fullmove := 0, 1
	var err error
	if len(fields) > 4 {
		if halfmove, err = strconv.Atoi(fields[4]); err != nil {
			return nil, fmt.Errorf("%w %q: half-move clock: %v", ErrInvalidFEN, fen, err)
		}
	}
	if len(fields) > 5 {
		if fullmove, err = strconv.Atoi(fields[5]); err != nil {
			return nil, fmt.Errorf("%w %q: full-move number: %v", ErrInvalidFEN, fen, err)
		}
	}

	normalized := strings.Join([]string{
		fields[0], fields[1], fields[2], fields[3], strconv.Itoa(halfmove), strconv.Itoa(fullmove),
	}, " ")
	opt, err := chess.FEN(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidFEN, fen, err)
	}
	pos := chess.NewGame(opt).Position()

	setup := escapemg.NewSetup()
	board := pos.Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		if pc := board.Piece(sq); pc != chess.NoPiece {
			setup.Pieces[fromChessSquare(sq)] = fromChessPiece(pc)
		}
	}
	if pos.Turn() == chess.Black {
		setup.Active = escapemg.Black
	}
	rights := pos.CastleRights()
	for _, r := range [...]struct {
		color chess.Color
		side  chess.Side
		right escapemg.Castling
	}{
		{chess.White, chess.KingSide, escapemg.WhiteKingside},
		{chess.White, chess.QueenSide, escapemg.WhiteQueenside},
		{chess.Black, chess.KingSide, escapemg.BlackKingside},
		{chess.Black, chess.QueenSide, escapemg.BlackQueenside},
	} {
		if rights.CanCastle(r.color, r.side) {
			setup.Rights |= r.right
		}
	}
	if ep := pos.EnPassantSquare(); ep != chess.NoSquare {
		setup.EPSquare = fromChessSquare(ep)
	}
	setup.Halfmove = halfmove
	setup.Fullmove = fullmove

	p, err := escapemg.NewPosition(setup)
	if err != nil {
		return nil, fmt.Errorf("fen %q: %w", fen, err)
	}
	return p, nil
}

func fromChessSquare(sq chess.Square) escapemg.Square {
	return escapemg.SquareOf(escapemg.File(sq.File()), escapemg.Rank(sq.Rank()))
}

func fromChessPiece(pc chess.Piece) escapemg.Piece {
	var t escapemg.PieceType
	switch pc.Type() {
	case chess.Pawn:
		t = escapemg.Pawn
	case chess.Knight:
		t = escapemg.Knight
	case chess.Bishop:
		t = escapemg.Bishop
	case chess.Rook:
		t = escapemg.Rook
	case chess.Queen:
		t = escapemg.Queen
	case chess.King:
		t = escapemg.King
	default:
		return escapemg.NoPiece
	}
	if pc.Color() == chess.Black {
		return escapemg.NewPiece(escapemg.Black, t)
	}
	return escapemg.NewPiece(escapemg.White, t)
}

// FEN encodes a position with all six fields.
func FEN(p *escapemg.Position) string {
	var sb strings.Builder
	for r := escapemg.Rank8; r >= escapemg.Rank1; r-- {
		empty := 0
		for f := escapemg.FileA; f <= escapemg.FileH; f++ {
			pc := p.PieceAt(escapemg.SquareOf(f, r))
			if pc == escapemg.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pc.Char())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r > escapemg.Rank1 {
			sb.WriteByte('/')
		}
	}
	fmt.Fprintf(&sb, " %v %v %v %d %d", p.ActiveColor(), p.CastlingRights(), p.EnPassant(),
		p.HalfmoveClock(), p.FullmoveNumber())
	return sb.String()
}
