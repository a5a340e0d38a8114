package battleline

import "fmt"

// MoveType discriminates the legal move kinds.
type MoveType int

const (
	// MovePlayCard commits a troop or morale card from hand to a flag.
	MovePlayCard MoveType = iota
	// MovePlayEnvironment plays Fog or Mud onto a flag.
	MovePlayEnvironment
	// MoveScout draws three cards split across the decks, then returns two.
	MoveScout
	// MoveRedeploy moves or discards one own committed card.
	MoveRedeploy
	// MoveDeserter discards one opponent committed card.
	MoveDeserter
	// MoveTraitor steals one opponent committed troop card.
	MoveTraitor
	// MoveDraw draws one card from a deck at end of turn.
	MoveDraw
	// MovePass passes the turn; legal only with an all-tactic hand.
	MovePass
)

func (t MoveType) String() string {
	switch t {
	case MovePlayCard:
		return "play"
	case MovePlayEnvironment:
		return "environment"
	case MoveScout:
		return "scout"
	case MoveRedeploy:
		return "redeploy"
	case MoveDeserter:
		return "deserter"
	case MoveTraitor:
		return "traitor"
	case MoveDraw:
		return "draw"
	case MovePass:
		return "pass"
	default:
		return "unknown"
	}
}

// Pile selects one of the two decks.
type Pile int

const (
	TroopPile Pile = iota
	TacticPile
)

func (p Pile) String() string {
	if p == TroopPile {
		return "troops"
	}
	return "tactics"
}

// Move is a single player action. Which fields are meaningful depends on
// Type; flags are always addressed by their 0..8 position.
type Move struct {
	Type MoveType
	Side Side

	// Card is the hand card being played (all kinds except draw and pass).
	Card Card

	// FlagIndex is the destination flag for plays, redeploys and traitor.
	FlagIndex int

	// TargetFlag and TargetCard address a committed card for the guile
	// effects that move or remove one (redeploy, deserter, traitor).
	TargetFlag int
	TargetCard Card

	// DiscardTarget makes redeploy discard the reclaimed card instead of
	// moving it to FlagIndex.
	DiscardTarget bool

	// Scout's draw split (must sum to three) and the two hand cards
	// returned to the tops of their respective decks afterwards.
	TroopDraws  int
	TacticDraws int
	Returns     [2]Card

	// Pile is the deck drawn from for MoveDraw.
	Pile Pile
}

// Describe returns a human-readable description of the move.
func (m Move) Describe() string {
	switch m.Type {
	case MovePlayCard, MovePlayEnvironment:
		return fmt.Sprintf("%s %s -> flag %d", m.Side, m.Card, m.FlagIndex)
	case MoveScout:
		return fmt.Sprintf("%s scout %d troops / %d tactics", m.Side, m.TroopDraws, m.TacticDraws)
	case MoveRedeploy:
		if m.DiscardTarget {
			return fmt.Sprintf("%s redeploy %s from flag %d -> discard", m.Side, m.TargetCard, m.TargetFlag)
		}
		return fmt.Sprintf("%s redeploy %s from flag %d -> flag %d", m.Side, m.TargetCard, m.TargetFlag, m.FlagIndex)
	case MoveDeserter:
		return fmt.Sprintf("%s deserter %s from flag %d", m.Side, m.TargetCard, m.TargetFlag)
	case MoveTraitor:
		return fmt.Sprintf("%s traitor %s from flag %d -> flag %d", m.Side, m.TargetCard, m.TargetFlag, m.FlagIndex)
	case MoveDraw:
		return fmt.Sprintf("%s draw from %s", m.Side, m.Pile)
	case MovePass:
		return fmt.Sprintf("%s pass", m.Side)
	default:
		return fmt.Sprintf("%s ???", m.Side)
	}
}

// ValidationError describes why a move is illegal. Drivers surface it as a
// re-prompt signal, not a fatal failure.
type ValidationError struct {
	Move    Move
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("illegal move %s: %s", e.Move.Describe(), e.Message)
}

// ValidateMove checks whether a move is legal in the given state. Returns
// nil if legal, or a *ValidationError describing the problem. The resolver
// never polices legality; this is the player-contract boundary.
func ValidateMove(m Move, gs *GameState) error {
	if m.Side != SideA && m.Side != SideB {
		return &ValidationError{m, "move has no side"}
	}
	switch m.Type {
	case MovePlayCard:
		return validatePlayCard(m, gs)
	case MovePlayEnvironment:
		return validatePlayEnvironment(m, gs)
	case MoveScout:
		return validateScout(m, gs)
	case MoveRedeploy:
		return validateRedeploy(m, gs)
	case MoveDeserter:
		return validateDeserter(m, gs)
	case MoveTraitor:
		return validateTraitor(m, gs)
	case MoveDraw:
		return validateDraw(m, gs)
	case MovePass:
		return validatePass(m, gs)
	default:
		return &ValidationError{m, "unknown move type"}
	}
}

func validFlagIndex(i int) bool { return i >= 0 && i < FlagCount }

func handHolds(gs *GameState, side Side, c Card) bool {
	for _, have := range gs.Hand(side) {
		if have == c {
			return true
		}
	}
	return false
}

// leaderCount counts leaders across the side's committed stacks and its own
// guile-operation log. Each player may hold at most one.
func leaderCount(gs *GameState, side Side) int {
	count := 0
	for _, f := range gs.flags {
		for _, c := range f.Stack(side) {
			if c.IsLeader() {
				count++
			}
		}
	}
	for _, op := range gs.Operations(side) {
		if op.Discarded != nil && op.Discarded.IsLeader() {
			count++
		}
	}
	return count
}

// tacticCount counts a side's tactic cards in play: morale cards in its
// stacks, environment cards it added, and its guile operations. A guile
// play must not push this more than one past the opponent's count.
func tacticCount(gs *GameState, side Side) int {
	count := len(gs.Operations(side))
	for _, f := range gs.flags {
		for _, c := range f.Stack(side) {
			if !c.IsTroop() {
				count++
			}
		}
		count += len(f.Envs(side))
	}
	return count
}

func validatePlayCard(m Move, gs *GameState) error {
	if !m.Card.Stackable() {
		return &ValidationError{m, "card cannot be committed to a flag"}
	}
	if !handHolds(gs, m.Side, m.Card) {
		return &ValidationError{m, "card is not in hand"}
	}
	if !validFlagIndex(m.FlagIndex) {
		return &ValidationError{m, "no such flag"}
	}
	f := gs.Flag(m.FlagIndex)
	if f.Resolved() {
		return &ValidationError{m, "flag is already resolved"}
	}
	if len(f.Stack(m.Side)) >= f.RequiredCards() {
		return &ValidationError{m, "side of the flag is full"}
	}
	if m.Card.IsLeader() && leaderCount(gs, m.Side) > 0 {
		return &ValidationError{m, "only one leader may be played per player"}
	}
	return nil
}

func validatePlayEnvironment(m Move, gs *GameState) error {
	if !m.Card.IsEnvironment() {
		return &ValidationError{m, "card is not an environment tactic"}
	}
	if !handHolds(gs, m.Side, m.Card) {
		return &ValidationError{m, "card is not in hand"}
	}
	if !validFlagIndex(m.FlagIndex) {
		return &ValidationError{m, "no such flag"}
	}
	if gs.Flag(m.FlagIndex).Resolved() {
		return &ValidationError{m, "flag is already resolved"}
	}
	return nil
}

// validateGuileCommon covers the checks shared by all four guile cards.
func validateGuileCommon(m Move, gs *GameState, want Tactic) error {
	if m.Card != TacticCard(want) {
		return &ValidationError{m, "move requires the " + want.String() + " card"}
	}
	if !handHolds(gs, m.Side, m.Card) {
		return &ValidationError{m, "card is not in hand"}
	}
	// After the play the side's count grows by one; it may lead the
	// opponent's by at most one.
	if tacticCount(gs, m.Side)+1 > tacticCount(gs, m.Side.Opponent())+1 {
		return &ValidationError{m, "tactic card count would exceed opponent's by more than one"}
	}
	return nil
}

func validateScout(m Move, gs *GameState) error {
	if err := validateGuileCommon(m, gs, Scout); err != nil {
		return err
	}
	if m.TroopDraws < 0 || m.TacticDraws < 0 || m.TroopDraws+m.TacticDraws != 3 {
		return &ValidationError{m, "scout must draw exactly three cards"}
	}
	if m.TroopDraws > gs.TroopDeck().Len() || m.TacticDraws > gs.TacticDeck().Len() {
		return &ValidationError{m, "not enough cards left to scout"}
	}
	// The returns must come from the hand as it stands after drawing.
	pool := append([]Card(nil), gs.Hand(m.Side)...)
	pool = removeCard(pool, m.Card)
	pool = append(pool, gs.TroopDeck().Peek(m.TroopDraws)...)
	pool = append(pool, gs.TacticDeck().Peek(m.TacticDraws)...)
	for _, ret := range m.Returns {
		var ok bool
		pool, ok = removeCardOK(pool, ret)
		if !ok {
			return &ValidationError{m, "returned card would not be in hand"}
		}
	}
	return nil
}

func validateRedeploy(m Move, gs *GameState) error {
	if err := validateGuileCommon(m, gs, Redeploy); err != nil {
		return err
	}
	if !validFlagIndex(m.TargetFlag) {
		return &ValidationError{m, "no such flag"}
	}
	src := gs.Flag(m.TargetFlag)
	if src.Resolved() {
		return &ValidationError{m, "source flag is already resolved"}
	}
	if !stackHolds(src.Stack(m.Side), m.TargetCard) {
		return &ValidationError{m, "card is not committed on the source flag"}
	}
	if m.DiscardTarget {
		return nil
	}
	if !validFlagIndex(m.FlagIndex) {
		return &ValidationError{m, "no such flag"}
	}
	if m.FlagIndex == m.TargetFlag {
		return &ValidationError{m, "redeploy must change flags or discard"}
	}
	dst := gs.Flag(m.FlagIndex)
	if dst.Resolved() {
		return &ValidationError{m, "destination flag is already resolved"}
	}
	if len(dst.Stack(m.Side)) >= dst.RequiredCards() {
		return &ValidationError{m, "destination side of the flag is full"}
	}
	return nil
}

func validateDeserter(m Move, gs *GameState) error {
	if err := validateGuileCommon(m, gs, Deserter); err != nil {
		return err
	}
	if !validFlagIndex(m.TargetFlag) {
		return &ValidationError{m, "no such flag"}
	}
	f := gs.Flag(m.TargetFlag)
	if f.Resolved() {
		return &ValidationError{m, "flag is already resolved"}
	}
	if !stackHolds(f.Stack(m.Side.Opponent()), m.TargetCard) {
		return &ValidationError{m, "card is not committed on the opponent side"}
	}
	return nil
}

func validateTraitor(m Move, gs *GameState) error {
	if err := validateGuileCommon(m, gs, Traitor); err != nil {
		return err
	}
	if !m.TargetCard.IsTroop() {
		return &ValidationError{m, "traitor may only target troop cards"}
	}
	if !validFlagIndex(m.TargetFlag) || !validFlagIndex(m.FlagIndex) {
		return &ValidationError{m, "no such flag"}
	}
	src := gs.Flag(m.TargetFlag)
	if src.Resolved() {
		return &ValidationError{m, "source flag is already resolved"}
	}
	if !stackHolds(src.Stack(m.Side.Opponent()), m.TargetCard) {
		return &ValidationError{m, "card is not committed on the opponent side"}
	}
	dst := gs.Flag(m.FlagIndex)
	if dst.Resolved() {
		return &ValidationError{m, "destination flag is already resolved"}
	}
	if len(dst.Stack(m.Side)) >= dst.RequiredCards() {
		return &ValidationError{m, "destination side of the flag is full"}
	}
	return nil
}

func validateDraw(m Move, gs *GameState) error {
	deck := gs.TroopDeck()
	if m.Pile == TacticPile {
		deck = gs.TacticDeck()
	}
	if !deck.Remaining() {
		return &ValidationError{m, "deck is empty"}
	}
	return nil
}

func validatePass(m Move, gs *GameState) error {
	for _, c := range gs.Hand(m.Side) {
		if c.IsTroop() {
			return &ValidationError{m, "cannot pass while holding troop cards"}
		}
	}
	return nil
}

// ApplyMove validates the move and mutates the state accordingly. On a
// *ValidationError the state is untouched and the driver should re-prompt.
func ApplyMove(m Move, gs *GameState) error {
	if err := ValidateMove(m, gs); err != nil {
		return err
	}
	switch m.Type {
	case MovePlayCard:
		gs.RemoveHand(m.Side, m.Card)
		gs.Flag(m.FlagIndex).AddStack(m.Side, m.Card)
	case MovePlayEnvironment:
		gs.RemoveHand(m.Side, m.Card)
		gs.Flag(m.FlagIndex).AddEnv(m.Side, m.Card)
	case MoveScout:
		applyScout(m, gs)
	case MoveRedeploy:
		gs.RemoveHand(m.Side, m.Card)
		reclaimed, _ := gs.Flag(m.TargetFlag).RemoveStack(m.Side, m.TargetCard)
		op := GuileOperation{Guile: Redeploy}
		if m.DiscardTarget {
			op.Discarded = &reclaimed
		} else {
			gs.Flag(m.FlagIndex).AddStack(m.Side, reclaimed)
		}
		gs.RecordOperation(m.Side, op)
	case MoveDeserter:
		gs.RemoveHand(m.Side, m.Card)
		removed, _ := gs.Flag(m.TargetFlag).RemoveStack(m.Side.Opponent(), m.TargetCard)
		gs.RecordOperation(m.Side, GuileOperation{Guile: Deserter, Discarded: &removed})
	case MoveTraitor:
		gs.RemoveHand(m.Side, m.Card)
		stolen, _ := gs.Flag(m.TargetFlag).RemoveStack(m.Side.Opponent(), m.TargetCard)
		gs.Flag(m.FlagIndex).AddStack(m.Side, stolen)
		gs.RecordOperation(m.Side, GuileOperation{Guile: Traitor})
	case MoveDraw:
		deck := gs.TroopDeck()
		if m.Pile == TacticPile {
			deck = gs.TacticDeck()
		}
		c, err := deck.Draw()
		if err != nil {
			return err
		}
		gs.AddHand(m.Side, c)
	case MovePass:
	}
	return nil
}

func applyScout(m Move, gs *GameState) {
	gs.RemoveHand(m.Side, m.Card)
	gs.RecordOperation(m.Side, GuileOperation{Guile: Scout})
	for i := 0; i < m.TroopDraws; i++ {
		c, err := gs.TroopDeck().Draw()
		if err != nil {
			panic(err) // validated against deck length
		}
		gs.AddHand(m.Side, c)
	}
	for i := 0; i < m.TacticDraws; i++ {
		c, err := gs.TacticDeck().Draw()
		if err != nil {
			panic(err)
		}
		gs.AddHand(m.Side, c)
	}
	for _, ret := range m.Returns {
		gs.RemoveHand(m.Side, ret)
		if ret.IsTroop() {
			gs.TroopDeck().Back(ret)
		} else {
			gs.TacticDeck().Back(ret)
		}
	}
}

func stackHolds(stack []Card, c Card) bool {
	for _, have := range stack {
		if have == c {
			return true
		}
	}
	return false
}

func removeCard(cards []Card, c Card) []Card {
	out, _ := removeCardOK(cards, c)
	return out
}

func removeCardOK(cards []Card, c Card) ([]Card, bool) {
	for i, have := range cards {
		if have == c {
			return append(cards[:i], cards[i+1:]...), true
		}
	}
	return cards, false
}
