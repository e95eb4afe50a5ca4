package escapemg

// MoveGenerator owns the move list it fills. Keep one generator per ply.
type MoveGenerator struct {
	moves MoveList
}

// LegalMoves returns the moves of Moves that do not leave the mover's king attacked.
func (g *MoveGenerator) LegalMoves(p *Position, depth int, isCheck bool) *MoveList {
	moves := g.Moves(p, depth, isCheck)
	mover := p.activeColor
	moves.retain(func(m Move) bool {
		p.MakeMove(m)
		legal := !p.IsCheckFor(mover)
		p.UndoMove(m)
		return legal
	})
	return moves
}

// Moves returns pseudo-legal moves ordered by MVV-LVA. With depth <= 0 and no check
// only captures are kept. The list is reused by the next call.
func (g *MoveGenerator) Moves(p *Position, depth int, isCheck bool) *MoveList {
	g.moves.Clear()
	g.addMoves(p)
	if depth > 0 {
		if !isCheck {
			g.addCastlingMoves(p)
		}
	} else if !isCheck {
		g.moves.retain(Move.IsCapture)
	}
	g.moves.RateFromMVVLVA()
	g.moves.Sort()
	return &g.moves
}

func (g *MoveGenerator) addMoves(p *Position) {
	c := p.activeColor
	g.addPawnMoves(p)
	g.addPieceMoves(p, p.pieces[c][Knight], knightDirections[:], false)
	g.addPieceMoves(p, p.pieces[c][Bishop], bishopDirections[:], true)
	g.addPieceMoves(p, p.pieces[c][Rook], rookDirections[:], true)
	g.addPieceMoves(p, p.pieces[c][Queen], queenDirections[:], true)
	g.addPieceMoves(p, p.pieces[c][King], kingDirections[:], false)
}

func (g *MoveGenerator) addPieceMoves(p *Position, squares Bitboard, directions []Square, sliding bool) {
	enemy := p.activeColor.Opposite()
	for ; squares != 0; squares = squares.Remainder() {
		origin := squares.Next()
		originPiece := p.board[origin]
		for _, d := range directions {
			for target := origin + d; onBoard(target); target += d {
				targetPiece := p.board[target]
				if targetPiece == NoPiece {
					g.moves.Add(NewMove(Normal, origin, target, originPiece, NoPiece, NoPieceType))
				} else {
					if targetPiece.Color() == enemy {
						g.moves.Add(NewMove(Normal, origin, target, originPiece, targetPiece, NoPieceType))
					}
					break
				}
				if !sliding {
					break
				}
			}
		}
	}
}

func (g *MoveGenerator) addPawnMoves(p *Position) {
	c := p.activeColor
	enemy := c.Opposite()
	pawn := NewPiece(c, Pawn)
	directions := pawnDirections[c]
	pawns := p.pieces[c][Pawn]

	promotionRank, doubleRank := Rank8, Rank4
	if c == Black {
		promotionRank, doubleRank = Rank1, Rank5
	}

	// captures first
	for _, d := range directions[1:] {
		for squares := pawns; squares != 0; squares = squares.Remainder() {
			origin := squares.Next()
			target := origin + d
			if !onBoard(target) {
				continue
			}
			targetPiece := p.board[target]
			switch {
			case targetPiece != NoPiece:
				if targetPiece.Color() != enemy {
					continue
				}
				if target.Rank() == promotionRank {
					g.addPromotions(origin, target, pawn, targetPiece)
				} else {
					g.moves.Add(NewMove(Normal, origin, target, pawn, targetPiece, NoPieceType))
				}
			case target == p.enPassant:
				captured := p.board[target-directions[0]]
				g.moves.Add(NewMove(EnPassant, origin, target, pawn, captured, NoPieceType))
			}
		}
	}

	for squares := pawns; squares != 0; squares = squares.Remainder() {
		origin := squares.Next()
		target := origin + directions[0]
		if !onBoard(target) || p.board[target] != NoPiece {
			continue
		}
		if target.Rank() == promotionRank {
			g.addPromotions(origin, target, pawn, NoPiece)
			continue
		}
		g.moves.Add(NewMove(Normal, origin, target, pawn, NoPiece, NoPieceType))

		target += directions[0]
		if onBoard(target) && p.board[target] == NoPiece && target.Rank() == doubleRank {
			g.moves.Add(NewMove(PawnDouble, origin, target, pawn, NoPiece, NoPieceType))
		}
	}
}

func (g *MoveGenerator) addPromotions(origin, target Square, pawn, targetPiece Piece) {
	for _, t := range PromotionTypes {
		g.moves.Add(NewMove(PawnPromotion, origin, target, pawn, targetPiece, t))
	}
}

// addCastlingMoves checks the squares the king passes. Its destination is left to the
// legality filter.
func (g *MoveGenerator) addCastlingMoves(p *Position) {
	if p.activeColor == White {
		king := p.board[E1]
		if p.castling&WhiteKingside != 0 && p.empty(F1, G1) && !p.IsAttacked(F1, Black) {
			g.moves.Add(NewMove(CastlingMove, E1, G1, king, NoPiece, NoPieceType))
		}
		if p.castling&WhiteQueenside != 0 && p.empty(B1, C1, D1) && !p.IsAttacked(D1, Black) {
			g.moves.Add(NewMove(CastlingMove, E1, C1, king, NoPiece, NoPieceType))
		}
		return
	}
	king := p.board[E8]
	if p.castling&BlackKingside != 0 && p.empty(F8, G8) && !p.IsAttacked(F8, White) {
		g.moves.Add(NewMove(CastlingMove, E8, G8, king, NoPiece, NoPieceType))
	}
	if p.castling&BlackQueenside != 0 && p.empty(B8, C8, D8) && !p.IsAttacked(D8, White) {
		g.moves.Add(NewMove(CastlingMove, E8, C8, king, NoPiece, NoPieceType))
	}
}

func (p *Position) empty(squares ...Square) bool {
	for _, sq := range squares {
		if p.board[sq] != NoPiece {
			return false
		}
	}
	return true
}
