package notation

import (
	"fmt"
	"strings"

	"earlyescape/escapemg"
)

// ErrIllegalMove is returned when a move text matches no legal move.
var ErrIllegalMove = fmt.Errorf("%w: illegal move", escapemg.ErrInvalidArgument)

// ParseMove returns the legal move of p written in UCI long algebraic notation.
func ParseMove(p *escapemg.Position, text string) (escapemg.Move, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	var g escapemg.MoveGenerator
	moves := g.LegalMoves(p, 1, p.IsCheck())
	for i := 0; i < moves.Len(); i++ {
		if m := moves.Move(i); m.String() == text {
			return m, nil
		}
	}
	return escapemg.NoMove, fmt.Errorf("%w %q", ErrIllegalMove, text)
}

// FormatVariation joins moves with spaces.
func FormatVariation(moves []escapemg.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
