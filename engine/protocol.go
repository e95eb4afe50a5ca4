package engine

import "earlyescape/escapemg"

// Protocol receives the results of a search. Every call comes from the search goroutine.
type Protocol interface {
	// BestMove ends a search. Both moves are escapemg.NoMove when there is no legal move.
	BestMove(bestMove, ponderMove escapemg.Move)
	// Status reports progress at most about once per second, plus one final call.
	Status(depth, maxDepth int, totalNodes uint64, currentMove escapemg.Move, currentMoveNumber int)
	// PrincipalVariation reports the best root entry after each completed depth.
	PrincipalVariation(entry *escapemg.RootEntry, depth, maxDepth int, totalNodes uint64)
}
