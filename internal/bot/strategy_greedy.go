package bot

import (
	"math/rand"

	"github.com/karno/battleline/pkg/battleline"
)

// GreedyStrategy tries every candidate move on a cloned state, resolves the
// clone, and keeps the move with the best resulting board. One ply, no
// lookahead; ties break randomly so games do not loop.
type GreedyStrategy struct{}

func (GreedyStrategy) Name() string { return "greedy" }

func (GreedyStrategy) ChooseMove(gs *battleline.GameState, side battleline.Side, rng *rand.Rand) (battleline.Move, bool) {
	moves := CandidateMoves(gs, side)
	if len(moves) == 0 {
		return battleline.Move{}, false
	}
	best := moves[0]
	bestScore := scoreAfter(gs, best, side)
	for _, mv := range moves[1:] {
		score := scoreAfter(gs, mv, side)
		if score > bestScore || (score == bestScore && rng.Intn(2) == 0) {
			best, bestScore = mv, score
		}
	}
	return best, true
}

// scoreAfter applies the move to a clone, resolves it, and scores the board
// from the side's point of view.
func scoreAfter(gs *battleline.GameState, mv battleline.Move, side battleline.Side) int {
	trial := gs.Clone()
	if err := battleline.ApplyMove(mv, trial); err != nil {
		return -1 << 30
	}
	battleline.Resolve(trial)

	if w := trial.Winner(); w == side {
		return 1 << 20
	} else if w == side.Opponent() {
		return -(1 << 20)
	}
	score := 0
	for i := 0; i < battleline.FlagCount; i++ {
		f := trial.Flag(i)
		switch f.Winner() {
		case side:
			score += 1000
		case side.Opponent():
			score -= 1000
		}
		score += committedValue(f.Stack(side)) - committedValue(f.Stack(side.Opponent()))
	}
	return score
}

// committedValue approximates a stack's weight using public card data:
// troop values as-is, morale cards at a flat eight.
func committedValue(stack []battleline.Card) int {
	sum := 0
	for _, c := range stack {
		if c.IsTroop() {
			sum += c.Value
		} else {
			sum += 8
		}
	}
	return sum
}
