package bot

import (
	"math/rand"

	"github.com/karno/battleline/pkg/battleline"
)

// RandomStrategy plays a uniformly random legal move. It is the baseline
// opponent and a cheap way to exercise the whole legality surface.
type RandomStrategy struct{}

func (RandomStrategy) Name() string { return "random" }

func (RandomStrategy) ChooseMove(gs *battleline.GameState, side battleline.Side, rng *rand.Rand) (battleline.Move, bool) {
	moves := CandidateMoves(gs, side)
	if len(moves) == 0 {
		return battleline.Move{}, false
	}
	return moves[rng.Intn(len(moves))], true
}
