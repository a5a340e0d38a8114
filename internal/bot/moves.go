package bot

import (
	"github.com/karno/battleline/pkg/battleline"
)

// CandidateMoves enumerates the legal main moves for the side: every
// placement of every hand card plus every admissible guile effect, each
// filtered through ValidateMove so strategies never propose an illegal
// move. A pass is offered only when nothing else is.
func CandidateMoves(gs *battleline.GameState, side battleline.Side) []battleline.Move {
	var moves []battleline.Move
	seen := make(map[battleline.Card]bool)
	for _, c := range gs.Hand(side) {
		if seen[c] {
			continue
		}
		seen[c] = true
		switch {
		case c.Stackable():
			moves = appendFlagPlays(moves, gs, side, c, battleline.MovePlayCard)
		case c.IsEnvironment():
			moves = appendFlagPlays(moves, gs, side, c, battleline.MovePlayEnvironment)
		case c.IsGuile():
			moves = appendGuileMoves(moves, gs, side, c)
		}
	}
	if len(moves) == 0 {
		pass := battleline.Move{Type: battleline.MovePass, Side: side}
		if battleline.ValidateMove(pass, gs) == nil {
			moves = append(moves, pass)
		}
	}
	return moves
}

func appendFlagPlays(moves []battleline.Move, gs *battleline.GameState, side battleline.Side, c battleline.Card, t battleline.MoveType) []battleline.Move {
	for i := 0; i < battleline.FlagCount; i++ {
		mv := battleline.Move{Type: t, Side: side, Card: c, FlagIndex: i}
		if battleline.ValidateMove(mv, gs) == nil {
			moves = append(moves, mv)
		}
	}
	return moves
}

func appendGuileMoves(moves []battleline.Move, gs *battleline.GameState, side battleline.Side, c battleline.Card) []battleline.Move {
	switch c.Tactic {
	case battleline.Scout:
		for troopDraws := 3; troopDraws >= 0; troopDraws-- {
			mv, ok := scoutMove(gs, side, c, troopDraws, 3-troopDraws)
			if !ok {
				continue
			}
			if battleline.ValidateMove(mv, gs) == nil {
				moves = append(moves, mv)
			}
		}
	case battleline.Redeploy:
		for src := 0; src < battleline.FlagCount; src++ {
			for _, target := range gs.Flag(src).Stack(side) {
				discard := battleline.Move{
					Type: battleline.MoveRedeploy, Side: side, Card: c,
					TargetFlag: src, TargetCard: target, DiscardTarget: true,
				}
				if battleline.ValidateMove(discard, gs) == nil {
					moves = append(moves, discard)
				}
				for dst := 0; dst < battleline.FlagCount; dst++ {
					mv := battleline.Move{
						Type: battleline.MoveRedeploy, Side: side, Card: c,
						TargetFlag: src, TargetCard: target, FlagIndex: dst,
					}
					if battleline.ValidateMove(mv, gs) == nil {
						moves = append(moves, mv)
					}
				}
			}
		}
	case battleline.Deserter:
		for src := 0; src < battleline.FlagCount; src++ {
			for _, target := range gs.Flag(src).Stack(side.Opponent()) {
				mv := battleline.Move{
					Type: battleline.MoveDeserter, Side: side, Card: c,
					TargetFlag: src, TargetCard: target,
				}
				if battleline.ValidateMove(mv, gs) == nil {
					moves = append(moves, mv)
				}
			}
		}
	case battleline.Traitor:
		for src := 0; src < battleline.FlagCount; src++ {
			for _, target := range gs.Flag(src).Stack(side.Opponent()) {
				if !target.IsTroop() {
					continue
				}
				for dst := 0; dst < battleline.FlagCount; dst++ {
					mv := battleline.Move{
						Type: battleline.MoveTraitor, Side: side, Card: c,
						TargetFlag: src, TargetCard: target, FlagIndex: dst,
					}
					if battleline.ValidateMove(mv, gs) == nil {
						moves = append(moves, mv)
					}
				}
			}
		}
	}
	return moves
}

// scoutMove builds a scout with the given draw split, returning the two
// least valuable cards of the projected post-draw hand to the deck tops.
func scoutMove(gs *battleline.GameState, side battleline.Side, scout battleline.Card, troopDraws, tacticDraws int) (battleline.Move, bool) {
	if troopDraws > gs.TroopDeck().Len() || tacticDraws > gs.TacticDeck().Len() {
		return battleline.Move{}, false
	}
	pool := make([]battleline.Card, 0, len(gs.Hand(side))+3)
	for _, c := range gs.Hand(side) {
		if c != scout {
			pool = append(pool, c)
		}
	}
	pool = append(pool, gs.TroopDeck().Peek(troopDraws)...)
	pool = append(pool, gs.TacticDeck().Peek(tacticDraws)...)
	if len(pool) < 2 {
		return battleline.Move{}, false
	}
	mv := battleline.Move{
		Type: battleline.MoveScout, Side: side, Card: scout,
		TroopDraws: troopDraws, TacticDraws: tacticDraws,
	}
	for r := 0; r < 2; r++ {
		worst := 0
		for i := 1; i < len(pool); i++ {
			if cardWorth(pool[i]) < cardWorth(pool[worst]) {
				worst = i
			}
		}
		mv.Returns[r] = pool[worst]
		pool = append(pool[:worst], pool[worst+1:]...)
	}
	return mv, true
}

// cardWorth is a rough keep-priority for scout returns: low troops go back
// first, tactics are kept.
func cardWorth(c battleline.Card) int {
	if c.IsTroop() {
		return c.Value
	}
	return battleline.MaxTroopValue + 1 + int(c.Tactic)
}
