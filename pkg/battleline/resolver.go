package battleline

// Formation is one of the five formation patterns. Larger values are
// stronger; resolution compares formations strongest first.
type Formation int

const (
	Host Formation = iota + 1
	SkirmishLine
	Battalion
	Phalanx
	Wedge
)

func (f Formation) String() string {
	switch f {
	case Host:
		return "host"
	case SkirmishLine:
		return "skirmish-line"
	case Battalion:
		return "battalion"
	case Phalanx:
		return "phalanx"
	case Wedge:
		return "wedge"
	default:
		return "unknown"
	}
}

// Fixed strengths that morale cards contribute to a stack's sum.
const (
	leaderStrength  = 10
	cavalryStrength = 8
	shieldStrength  = 3
)

// cavalryValue is the value Companion Cavalry is wild for in consecutive
// and same-value formations.
const cavalryValue = 8

// shieldMaxValue bounds Shield Bearers' wild value range 1..3.
const shieldMaxValue = 3

// usedCards is the multiset of troop cards no longer drawable to complete a
// flag: everything committed on any flag plus every troop discarded via
// guile. Hands and decks are not included; an undrawn card is still live.
type usedCards struct {
	perCard  [ColorCount][MaxTroopValue]int
	perValue [MaxTroopValue]int
}

func (u *usedCards) add(c Card) {
	if !c.IsTroop() {
		return
	}
	u.perCard[c.Color][c.Value-1]++
	u.perValue[c.Value-1]++
}

// colorUsed reports whether the single copy of (color, value) is gone.
func (u *usedCards) colorUsed(color Color, value int) bool {
	return u.perCard[color][value-1] > 0
}

// remaining returns how many copies of the value survive across all colors.
func (u *usedCards) remaining(value int) int {
	return ColorCount - u.perValue[value-1]
}

// Resolve walks every unresolved flag and claims those where one side has
// proved it can no longer be beaten. It mutates only flag resolution state,
// never decks or hands, and is idempotent: already-resolved flags are
// skipped.
func Resolve(gs *GameState) {
	used := aggregateUsedTroops(gs)
	for _, f := range gs.flags {
		if f.Resolved() {
			continue
		}
		if winner := checkFlag(f, used); winner != NoSide {
			f.Resolve(winner)
		}
	}
}

// aggregateUsedTroops collects the used-card pool once per Resolve pass.
func aggregateUsedTroops(gs *GameState) *usedCards {
	used := &usedCards{}
	for _, f := range gs.flags {
		for _, side := range Sides() {
			for _, c := range f.Stack(side) {
				used.add(c)
			}
		}
	}
	for _, side := range Sides() {
		for _, op := range gs.Operations(side) {
			if op.Discarded != nil {
				used.add(*op.Discarded)
			}
		}
	}
	return used
}

// analyzeFunc computes, for one formation, the side's exact strength when
// its stack is complete (decided=true) or the best strength any completion
// consistent with the used-card pool could still reach (decided=false).
// A zero strength with decided=false means no completion is possible.
type analyzeFunc func(stack []Card, n int, used *usedCards) (strength int, decided bool)

var formationAnalyzers = []struct {
	formation Formation
	analyze   analyzeFunc
}{
	{Wedge, maxStrengthWedge},
	{Phalanx, maxStrengthPhalanx},
	{Battalion, maxStrengthBattalion},
	{SkirmishLine, maxStrengthSkirmish},
	{Host, maxStrengthHost},
}

// checkFlag decides a single unresolved flag. Formations are tried
// strongest first (Host only under Fog). At each formation: if both sides
// are decided with equal strength, tempo breaks the tie and the side that
// did not stack last wins; a decided side beats the other side's best
// still-possible strength; if either side could still reach this formation,
// the flag stays unresolved; if neither can, the next-weaker formation is
// tried.
func checkFlag(f *Flag, used *usedCards) Side {
	n := f.RequiredCards()
	analyzers := formationAnalyzers
	if f.FormationDisabled() {
		analyzers = analyzers[len(analyzers)-1:]
	}
	for _, fa := range analyzers {
		strengthA, decidedA := fa.analyze(f.Stack(SideA), n, used)
		strengthB, decidedB := fa.analyze(f.Stack(SideB), n, used)
		if decidedA && decidedB && strengthA == strengthB {
			// The faster side wins.
			if f.LastStacker() == SideB {
				return SideA
			}
			return SideB
		}
		if decidedA && strengthA > strengthB {
			return SideA
		}
		if decidedB && strengthB > strengthA {
			return SideB
		}
		if strengthA > 0 || strengthB > 0 {
			return NoSide
		}
	}
	return NoSide
}

// maxStrengthWedge analyzes same-color consecutive formations.
func maxStrengthWedge(stack []Card, n int, used *usedCards) (int, bool) {
	color, locked, ok := stackColor(stack)
	if !ok {
		return 0, false
	}
	cands, strength, decided, fixed := consecutiveCandidates(stack, n)
	if fixed {
		return strength, decided
	}
	// Only one copy of each (color, value) exists, so any used value of the
	// wedge's color kills the windows that need it. With no troop committed
	// the color is open: a window survives if some color can still supply
	// its whole residual.
	if locked {
		cands = filterInPlace(cands, func(c candidate) bool {
			return colorCanSupply(color, c.residual, used)
		})
	} else {
		cands = filterInPlace(cands, func(c candidate) bool {
			for _, col := range AllColors() {
				if colorCanSupply(col, c.residual, used) {
					return true
				}
			}
			return false
		})
	}
	return bestCandidate(cands)
}

// maxStrengthPhalanx analyzes same-value formations.
func maxStrengthPhalanx(stack []Card, n int, used *usedCards) (int, bool) {
	value := 0 // 0 = not yet pinned
	shield := false
	for _, c := range stack {
		switch {
		case c.IsTroop():
			if value != 0 && value != c.Value {
				return 0, false
			}
			value = c.Value
		case c.IsLeader():
			// Wild value, no constraint.
		case c.Type == TacticType && c.Tactic == CompanionCavalry:
			if value != 0 && value != cavalryValue {
				return 0, false
			}
			value = cavalryValue
		case c.Type == TacticType && c.Tactic == ShieldBearers:
			shield = true
		default:
			panic("battleline: card cannot sit in a played stack: " + c.String())
		}
	}
	unfilled := n - len(stack)
	if unfilled == 0 {
		return value * n, true
	}
	var candidates []int
	switch {
	case value != 0:
		candidates = []int{value}
	case shield:
		candidates = descendingValues(shieldMaxValue)
	default:
		candidates = descendingValues(MaxTroopValue)
	}
	for _, v := range candidates {
		if used.remaining(v) > unfilled {
			return v * n, false
		}
	}
	return 0, false
}

// maxStrengthBattalion analyzes same-color formations.
func maxStrengthBattalion(stack []Card, n int, used *usedCards) (int, bool) {
	color, locked, ok := stackColor(stack)
	if !ok {
		return 0, false
	}
	unfilled := n - len(stack)
	cur := stackStrength(stack)
	if unfilled == 0 {
		return cur, true
	}
	colors := AllColors()
	if locked {
		colors = []Color{color}
	}
	best := 0
	for _, col := range colors {
		if fill, ok := maxAvailableStrength(unfilled, col, false, used); ok && fill > best {
			best = fill
		}
	}
	if best == 0 {
		return 0, false
	}
	return cur + best, false
}

// maxStrengthSkirmish analyzes consecutive formations with free colors.
func maxStrengthSkirmish(stack []Card, n int, used *usedCards) (int, bool) {
	cands, strength, decided, fixed := consecutiveCandidates(stack, n)
	if fixed {
		return strength, decided
	}
	// A value with all six copies gone cannot be drawn in any color.
	cands = filterInPlace(cands, func(c candidate) bool {
		for _, v := range c.residual {
			if used.remaining(v) <= 0 {
				return false
			}
		}
		return true
	})
	return bestCandidate(cands)
}

// maxStrengthHost analyzes the fallback formation: any cards at all.
func maxStrengthHost(stack []Card, n int, used *usedCards) (int, bool) {
	unfilled := n - len(stack)
	cur := stackStrength(stack)
	if unfilled == 0 {
		return cur, true
	}
	fill, ok := maxAvailableStrength(unfilled, 0, true, used)
	if !ok || fill == 0 {
		return 0, false
	}
	return cur + fill, false
}

// candidate is one consecutive-value window under consideration: its total
// strength and the values the side still has to supply.
type candidate struct {
	strength int
	residual []int
}

// consecutiveCandidates enumerates every length-n window of values and
// filters it through the committed cards. When the outcome is already
// fixed (the stack completes a window, or no window survives) it returns
// (nil, strength, decided, true). Otherwise it returns the surviving
// windows for availability pruning by the caller.
func consecutiveCandidates(stack []Card, n int) (cands []candidate, strength int, decided bool, fixed bool) {
	for i := MaxTroopValue - n + 1; i >= 1; i-- {
		window := make([]int, n)
		sum := 0
		for j := 0; j < n; j++ {
			window[j] = i + j
			sum += i + j
		}
		cands = append(cands, candidate{strength: sum, residual: window})
	}
	for _, c := range stack {
		cands = filterCandidatesByCard(c, cands)
		if len(cands) == 0 {
			return nil, 0, false, true
		}
	}
	best := 0
	for _, cand := range cands {
		if len(cand.residual) == 0 && cand.strength > best {
			best = cand.strength
		}
	}
	if best > 0 {
		return nil, best, true, true
	}
	return cands, 0, false, false
}

// filterCandidatesByCard narrows (or branches) every candidate through one
// committed card.
func filterCandidatesByCard(c Card, cands []candidate) []candidate {
	var out []candidate
	for _, cand := range cands {
		switch {
		case c.IsTroop():
			out = appendTakenValue(out, cand, c.Value)
		case c.IsLeader():
			// The leader absorbs one residual value freely: branch on every
			// way to drop one value from the residual.
			for i := range cand.residual {
				res := make([]int, 0, len(cand.residual)-1)
				res = append(res, cand.residual[:i]...)
				res = append(res, cand.residual[i+1:]...)
				out = append(out, candidate{strength: cand.strength, residual: res})
			}
		case c.Type == TacticType && c.Tactic == CompanionCavalry:
			out = appendTakenValue(out, cand, cavalryValue)
		case c.Type == TacticType && c.Tactic == ShieldBearers:
			// Three independent branches, one per wild value.
			for v := 1; v <= shieldMaxValue; v++ {
				out = appendTakenValue(out, cand, v)
			}
		default:
			panic("battleline: card cannot sit in a played stack: " + c.String())
		}
	}
	return out
}

// appendTakenValue appends a copy of cand with v removed from its residual,
// or nothing if the window does not contain v.
func appendTakenValue(out []candidate, cand candidate, v int) []candidate {
	for i, have := range cand.residual {
		if have == v {
			res := make([]int, 0, len(cand.residual)-1)
			res = append(res, cand.residual[:i]...)
			res = append(res, cand.residual[i+1:]...)
			return append(out, candidate{strength: cand.strength, residual: res})
		}
	}
	return out
}

// bestCandidate returns the strongest surviving window, or (0, false) when
// none survive. Candidates reaching here are never complete, so the answer
// is always undecided.
func bestCandidate(cands []candidate) (int, bool) {
	best := 0
	for _, c := range cands {
		if c.strength > best {
			best = c.strength
		}
	}
	return best, false
}

// colorCanSupply reports whether the color still has every residual value.
func colorCanSupply(color Color, residual []int, used *usedCards) bool {
	for _, v := range residual {
		if used.colorUsed(color, v) {
			return false
		}
	}
	return true
}

// maxAvailableStrength sums the req highest troop values still drawable:
// one copy per value within a single color, six copies per value across all
// colors. Reports false when fewer than req copies survive anywhere.
func maxAvailableStrength(req int, color Color, anyColor bool, used *usedCards) (int, bool) {
	var avail [MaxTroopValue]int
	for v := 1; v <= MaxTroopValue; v++ {
		if anyColor {
			avail[v-1] = used.remaining(v)
		} else {
			avail[v-1] = 1 - used.perCard[color][v-1]
		}
	}
	sum := 0
	for v := MaxTroopValue; v >= 1 && req > 0; v-- {
		for avail[v-1] > 0 && req > 0 {
			sum += v
			avail[v-1]--
			req--
		}
	}
	if req > 0 {
		return 0, false
	}
	return sum, true
}

// stackStrength sums a committed stack with the fixed morale contributions.
func stackStrength(stack []Card) int {
	sum := 0
	for _, c := range stack {
		switch {
		case c.IsTroop():
			sum += c.Value
		case c.IsLeader():
			sum += leaderStrength
		case c.Type == TacticType && c.Tactic == CompanionCavalry:
			sum += cavalryStrength
		case c.Type == TacticType && c.Tactic == ShieldBearers:
			sum += shieldStrength
		default:
			panic("battleline: card cannot sit in a played stack: " + c.String())
		}
	}
	return sum
}

// stackColor checks that all committed troops share one color (morale cards
// are color-wild). locked is false when no troop pins a color yet; ok is
// false when two troops disagree.
func stackColor(stack []Card) (color Color, locked, ok bool) {
	for _, c := range stack {
		if !c.IsTroop() {
			continue
		}
		if locked && color != c.Color {
			return 0, false, false
		}
		color = c.Color
		locked = true
	}
	return color, locked, true
}

// filterInPlace keeps the candidates for which keep returns true.
func filterInPlace(cands []candidate, keep func(candidate) bool) []candidate {
	out := cands[:0]
	for _, c := range cands {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// descendingValues returns max..1.
func descendingValues(max int) []int {
	vals := make([]int, 0, max)
	for v := max; v >= 1; v-- {
		vals = append(vals, v)
	}
	return vals
}
