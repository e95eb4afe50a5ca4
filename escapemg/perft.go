package escapemg

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	generators := make([]MoveGenerator, depth)
	return perft(p, depth, generators)
}

// PerftDivide returns the perft count below each legal root move.
func PerftDivide(p *Position, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	generators := make([]MoveGenerator, depth)
	moves := generators[0].LegalMoves(p, depth, p.IsCheck())
	for i := 0; i < moves.Len(); i++ {
		m := moves.Move(i)
		if depth == 1 {
			result[m] = 1
			continue
		}
		p.MakeMove(m)
		result[m] = perft(p, depth-1, generators[1:])
		p.UndoMove(m)
	}
	return result
}

func perft(p *Position, depth int, generators []MoveGenerator) uint64 {
	moves := generators[0].LegalMoves(p, depth, p.IsCheck())
	if depth == 1 {
		return uint64(moves.Len())
	}
	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Move(i)
		p.MakeMove(m)
		nodes += perft(p, depth-1, generators[1:])
		p.UndoMove(m)
	}
	return nodes
}
