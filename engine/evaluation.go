package engine

import (
	"math/rand"

	"earlyescape/escapemg"
)

// Evaluation scores a position in centipawns from the side to move's point of view.
type Evaluation interface {
	Evaluate(p *escapemg.Position) int
}

// EvaluationFunc adapts a plain function to Evaluation.
type EvaluationFunc func(p *escapemg.Position) int

func (f EvaluationFunc) Evaluate(p *escapemg.Position) int { return f(p) }

// MaterialEvaluation counts material only.
type MaterialEvaluation struct{}

func (MaterialEvaluation) Evaluate(p *escapemg.Position) int {
	me := p.ActiveColor()
	return p.Material(me) - p.Material(me.Opposite())
}

// RandomEvaluation returns noise in [-100, 100). It is not safe for concurrent use.
type RandomEvaluation struct {
	rnd *rand.Rand
}

func NewRandomEvaluation(seed int64) *RandomEvaluation {
	return &RandomEvaluation{rnd: rand.New(rand.NewSource(seed))}
}

func (e *RandomEvaluation) Evaluate(*escapemg.Position) int {
	return e.rnd.Intn(200) - 100
}
