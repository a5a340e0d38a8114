package bot

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/karno/battleline/pkg/battleline"
)

// Bot adapts a Strategy to the engine's Player contract for drivers that
// consume Players rather than strategies.
type Bot struct {
	side     battleline.Side
	strategy Strategy
	rng      *rand.Rand
	log      zerolog.Logger
}

var _ battleline.Player = (*Bot)(nil)

// NewBot creates a player for the given side backed by the strategy.
func NewBot(side battleline.Side, strategy Strategy, rng *rand.Rand, log zerolog.Logger) *Bot {
	return &Bot{side: side, strategy: strategy, rng: rng, log: log}
}

func (b *Bot) Side() battleline.Side { return b.side }

// Play performs one full turn in place: the strategy's main move plus the
// end-of-turn draw where the rules allow one. With no legal move the state
// is returned unchanged.
func (b *Bot) Play(gs *battleline.GameState) *battleline.GameState {
	playTurn(gs, b.side, b.strategy, b.rng, b.log)
	return gs
}
