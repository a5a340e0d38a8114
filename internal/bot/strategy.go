// Package bot provides automated players for the Battle Line engine and an
// arena that runs full bot-vs-bot games through the public rules API.
package bot

import (
	"math/rand"

	"github.com/karno/battleline/pkg/battleline"
)

// Strategy picks one main move per turn. ChooseMove returns false when the
// side has no legal move at all (no hand card is playable and a troop in
// hand rules out passing), in which case the arena ends the game.
type Strategy interface {
	Name() string
	ChooseMove(gs *battleline.GameState, side battleline.Side, rng *rand.Rand) (battleline.Move, bool)
}

// StrategyForName maps a config/CLI name to a strategy. Unknown names fall
// back to random.
func StrategyForName(name string) Strategy {
	switch name {
	case "greedy":
		return GreedyStrategy{}
	default:
		return RandomStrategy{}
	}
}
