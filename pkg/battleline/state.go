package battleline

import "math/rand"

// HandSize is the number of troop cards dealt to each player.
const HandSize = 7

// GuileOperation records one played guile card and, when the effect removed
// a card from play, the discarded card. The discard feeds the resolver's
// used-card pool: Deserter always discards, Redeploy may, Scout and Traitor
// never do.
type GuileOperation struct {
	Guile     Tactic
	Discarded *Card
}

// GameState owns everything on the table: both decks, the nine flags, the
// two hands and the two guile-operation logs. It is the engine's sole
// mutable object; drivers that want to speculate must Clone it first.
type GameState struct {
	troopDeck  *Deck
	tacticDeck *Deck
	flags      [FlagCount]*Flag
	hands      [2][]Card
	operations [2][]GuileOperation
}

// NewGame sets up a standard game: full decks shuffled with rng, nine empty
// flags, seven troop cards dealt to each hand.
func NewGame(rng *rand.Rand) *GameState {
	gs := NewEmptyGame()
	gs.troopDeck.Shuffle(rng)
	gs.tacticDeck.Shuffle(rng)
	for _, side := range Sides() {
		for i := 0; i < HandSize; i++ {
			c, err := gs.troopDeck.Draw()
			if err != nil {
				// A fresh 60-card deck cannot run out during the deal.
				panic(err)
			}
			gs.AddHand(side, c)
		}
	}
	return gs
}

// NewEmptyGame sets up unshuffled decks, empty flags and empty hands.
// Intended for tests and drivers that stage a specific board.
func NewEmptyGame() *GameState {
	gs := &GameState{
		troopDeck:  NewTroopDeck(),
		tacticDeck: NewTacticDeck(),
	}
	for i := range gs.flags {
		gs.flags[i] = NewFlag()
	}
	return gs
}

// TroopDeck returns the troop deck.
func (gs *GameState) TroopDeck() *Deck { return gs.troopDeck }

// TacticDeck returns the tactic deck.
func (gs *GameState) TacticDeck() *Deck { return gs.tacticDeck }

// Flag returns the flag at position i (0..8).
func (gs *GameState) Flag(i int) *Flag { return gs.flags[i] }

// Flags returns the nine flags in positional order. The returned slice is
// freshly allocated but the flags themselves are the live ones.
func (gs *GameState) Flags() []*Flag {
	return append([]*Flag(nil), gs.flags[:]...)
}

// FlagIndex returns the position of the given flag, or -1. Callers that
// cloned a state translate flags across copies by position.
func (gs *GameState) FlagIndex(f *Flag) int {
	for i, have := range gs.flags {
		if have == f {
			return i
		}
	}
	return -1
}

// Hand returns the given side's hand in canonical order. The returned slice
// is owned by the state and must not be modified.
func (gs *GameState) Hand(side Side) []Card { return gs.hands[side] }

// AddHand adds a card to the given side's hand, keeping it sorted.
func (gs *GameState) AddHand(side Side, c Card) {
	gs.hands[side] = insertSorted(gs.hands[side], c)
}

// RemoveHand removes the exact card from the given side's hand and reports
// whether it was present.
func (gs *GameState) RemoveHand(side Side, c Card) bool {
	for i, have := range gs.hands[side] {
		if have == c {
			gs.hands[side] = append(gs.hands[side][:i], gs.hands[side][i+1:]...)
			return true
		}
	}
	return false
}

// Operations returns the given side's guile-operation log, oldest first.
func (gs *GameState) Operations(side Side) []GuileOperation {
	return gs.operations[side]
}

// RecordOperation appends to the given side's guile-operation log. Logs
// only grow; there is no removal.
func (gs *GameState) RecordOperation(side Side, op GuileOperation) {
	gs.operations[side] = append(gs.operations[side], op)
}

// Clone returns a deep copy: decks, flags, hands and operation logs are all
// independent of the original. Any query on the clone equals the same query
// on the original; mutations on either are invisible to the other.
func (gs *GameState) Clone() *GameState {
	c := &GameState{
		troopDeck:  gs.troopDeck.Clone(),
		tacticDeck: gs.tacticDeck.Clone(),
	}
	for i, f := range gs.flags {
		c.flags[i] = f.Clone()
	}
	for _, side := range Sides() {
		if gs.hands[side] != nil {
			c.hands[side] = append([]Card(nil), gs.hands[side]...)
		}
		if gs.operations[side] != nil {
			ops := make([]GuileOperation, len(gs.operations[side]))
			for i, op := range gs.operations[side] {
				ops[i] = op
				if op.Discarded != nil {
					d := *op.Discarded
					ops[i].Discarded = &d
				}
			}
			c.operations[side] = ops
		}
	}
	return c
}
