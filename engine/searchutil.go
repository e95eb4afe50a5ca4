package engine

import (
	"fmt"

	"earlyescape/escapemg"
)

// MateDistance converts a mate score into moves to mate, negative when being mated.
func MateDistance(value int) int {
	moves := (escapemg.Checkmate - Abs(value) + 1) / 2
	if value < 0 {
		return -moves
	}
	return moves
}

// ScoreString renders a value the way UCI wants it, "mate N" or "cp N".
func ScoreString(value int) string {
	if escapemg.IsCheckmate(value) {
		return fmt.Sprintf("mate %d", MateDistance(value))
	}
	return fmt.Sprintf("cp %d", value)
}
