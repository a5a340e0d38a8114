package bot

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/karno/battleline/internal/logger"
	"github.com/karno/battleline/pkg/battleline"
)

// ArenaConfig configures a single bot-vs-bot game.
type ArenaConfig struct {
	MatchID   string // empty = generate
	StrategyA Strategy
	StrategyB Strategy
	Seed      int64 // 0 = random
	MaxTurns  int   // cap before declaring a draw
}

// ArenaResult describes the outcome of a completed arena game.
type ArenaResult struct {
	MatchID string            `json:"match_id"`
	Winner  string            `json:"winner"` // "a", "b" or "" for a draw
	Turns   int               `json:"turns"`
	Flags   map[string]int    `json:"flags"` // side -> flags claimed
	Players map[string]string `json:"players"`
}

// RunGame plays one full game: each turn both sides choose a move, the move
// is applied, flags are resolved, and the win condition is checked.
func RunGame(cfg ArenaConfig) *ArenaResult {
	if cfg.MatchID == "" {
		cfg.MatchID = uuid.NewString()
	}
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = 400
	}
	if cfg.StrategyA == nil {
		cfg.StrategyA = RandomStrategy{}
	}
	if cfg.StrategyB == nil {
		cfg.StrategyB = RandomStrategy{}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))
	log := logger.ForMatch(cfg.MatchID)

	log.Info().
		Int64("seed", seed).
		Str("playerA", cfg.StrategyA.Name()).
		Str("playerB", cfg.StrategyB.Name()).
		Msg("Arena game starting")

	gs := battleline.NewGame(rng)
	strategies := map[battleline.Side]Strategy{
		battleline.SideA: cfg.StrategyA,
		battleline.SideB: cfg.StrategyB,
	}

	result := &ArenaResult{
		MatchID: cfg.MatchID,
		Flags:   map[string]int{},
		Players: map[string]string{
			battleline.SideA.String(): cfg.StrategyA.Name(),
			battleline.SideB.String(): cfg.StrategyB.Name(),
		},
	}

	winner := battleline.NoSide
turns:
	for turn := 1; turn <= cfg.MaxTurns; turn++ {
		result.Turns = turn
		for _, side := range battleline.Sides() {
			if !playTurn(gs, side, strategies[side], rng, log) {
				log.Info().Stringer("side", side).Msg("No legal moves, game ends")
				break turns
			}
			battleline.Resolve(gs)
			if winner = gs.Winner(); winner != battleline.NoSide {
				break turns
			}
		}
	}

	for i := 0; i < battleline.FlagCount; i++ {
		if w := gs.Flag(i).Winner(); w != battleline.NoSide {
			result.Flags[w.String()]++
		}
	}
	if winner != battleline.NoSide {
		result.Winner = winner.String()
	}
	log.Info().
		Str("winner", result.Winner).
		Int("turns", result.Turns).
		Interface("flags", result.Flags).
		Msg("Arena game finished")
	return result
}

// playTurn performs one side's full turn: the chosen main move plus the
// end-of-turn draw, which Scout suppresses. Reports false when the
// strategy has no move to make.
func playTurn(gs *battleline.GameState, side battleline.Side, s Strategy, rng *rand.Rand, log zerolog.Logger) bool {
	mv, ok := s.ChooseMove(gs, side, rng)
	if !ok {
		return false
	}
	if err := battleline.ApplyMove(mv, gs); err != nil {
		// Strategies only propose moves that already validated.
		log.Error().Err(err).Str("move", mv.Describe()).Msg("Strategy proposed an illegal move")
		return false
	}
	log.Debug().Str("move", mv.Describe()).Msg("Move applied")

	if mv.Type == battleline.MoveScout {
		return true
	}
	draw := battleline.Move{Type: battleline.MoveDraw, Side: side, Pile: battleline.TroopPile}
	if !gs.TroopDeck().Remaining() {
		draw.Pile = battleline.TacticPile
	}
	if battleline.ValidateMove(draw, gs) == nil {
		if err := battleline.ApplyMove(draw, gs); err != nil {
			log.Error().Err(err).Msg("End-of-turn draw failed")
		}
	}
	return true
}
