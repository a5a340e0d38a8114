package battleline

import "testing"

// stage commits cards to one side of a flag in order.
func stage(f *Flag, side Side, cards ...Card) {
	for _, c := range cards {
		f.AddStack(side, c)
	}
}

// usedWith builds a used-card pool from loose troop cards.
func usedWith(cards ...Card) *usedCards {
	u := &usedCards{}
	for _, c := range cards {
		u.add(c)
	}
	return u
}

// --- per-formation analysis ---

func TestWedgeEmptyStack(t *testing.T) {
	s, decided := maxStrengthWedge(nil, 3, usedWith())
	if s != 27 || decided {
		t.Errorf("wedge on empty stack = (%d, %v), want (27, false)", s, decided)
	}
}

func TestWedgePartialStack(t *testing.T) {
	stack := []Card{TroopCard(Red, 3), TroopCard(Red, 4)}
	s, decided := maxStrengthWedge(stack, 3, usedWith())
	if s != 12 || decided {
		t.Errorf("wedge red 3,4 = (%d, %v), want (12, false)", s, decided)
	}
}

func TestWedgeBlockedByUsedCards(t *testing.T) {
	stack := []Card{TroopCard(Red, 3), TroopCard(Red, 4)}
	used := usedWith(TroopCard(Red, 2), TroopCard(Red, 5))
	s, decided := maxStrengthWedge(stack, 3, used)
	if s != 0 || decided {
		t.Errorf("blocked wedge = (%d, %v), want (0, false)", s, decided)
	}
}

func TestWedgeUsedCardsOfOtherColorIrrelevant(t *testing.T) {
	stack := []Card{TroopCard(Red, 3), TroopCard(Red, 4)}
	used := usedWith(TroopCard(Blue, 2), TroopCard(Blue, 5))
	s, decided := maxStrengthWedge(stack, 3, used)
	if s != 12 || decided {
		t.Errorf("wedge = (%d, %v), want (12, false)", s, decided)
	}
}

func TestWedgeMixedColors(t *testing.T) {
	stack := []Card{TroopCard(Red, 3), TroopCard(Blue, 4)}
	s, decided := maxStrengthWedge(stack, 3, usedWith())
	if s != 0 || decided {
		t.Errorf("mixed-color wedge = (%d, %v), want (0, false)", s, decided)
	}
}

func TestWedgeDecided(t *testing.T) {
	stack := []Card{TroopCard(Red, 2), TroopCard(Red, 3), TroopCard(Red, 4)}
	s, decided := maxStrengthWedge(stack, 3, usedWith())
	if s != 9 || !decided {
		t.Errorf("complete wedge = (%d, %v), want (9, true)", s, decided)
	}
}

func TestWedgeNoColorLockedChecksEveryColor(t *testing.T) {
	// Every copy of value 9 is gone: any window containing 9 is dead in
	// every color, so the best open window is 6+7+8.
	used := usedWith(
		TroopCard(Red, 9), TroopCard(Orange, 9), TroopCard(Yellow, 9),
		TroopCard(Green, 9), TroopCard(Blue, 9), TroopCard(Purple, 9),
	)
	s, decided := maxStrengthWedge(nil, 3, used)
	if s != 21 || decided {
		t.Errorf("wedge = (%d, %v), want (21, false)", s, decided)
	}
}

func TestWedgeLeaderCompletes(t *testing.T) {
	stack := []Card{TroopCard(Red, 3), TroopCard(Red, 4), TacticCard(LeaderAlexander)}
	s, decided := maxStrengthWedge(stack, 3, usedWith())
	if s != 12 || !decided {
		t.Errorf("leader wedge = (%d, %v), want (12, true)", s, decided)
	}
}

func TestWedgeCavalryCompletes(t *testing.T) {
	stack := []Card{TroopCard(Red, 9), TroopCard(Red, 10), TacticCard(CompanionCavalry)}
	s, decided := maxStrengthWedge(stack, 3, usedWith())
	if s != 27 || !decided {
		t.Errorf("cavalry wedge = (%d, %v), want (27, true)", s, decided)
	}
}

func TestWedgeShieldCompletes(t *testing.T) {
	stack := []Card{TroopCard(Red, 1), TroopCard(Red, 2), TacticCard(ShieldBearers)}
	s, decided := maxStrengthWedge(stack, 3, usedWith())
	if s != 6 || !decided {
		t.Errorf("shield wedge = (%d, %v), want (6, true)", s, decided)
	}
}

func TestWedgeCavalryOffWindow(t *testing.T) {
	// Cavalry is a wild 8; windows without 8 cannot hold it.
	stack := []Card{TroopCard(Red, 1), TacticCard(CompanionCavalry)}
	s, decided := maxStrengthWedge(stack, 3, usedWith())
	if s != 0 || decided {
		t.Errorf("cavalry with red 1 = (%d, %v), want (0, false)", s, decided)
	}
}

func TestPhalanxOpen(t *testing.T) {
	s, decided := maxStrengthPhalanx(nil, 3, usedWith())
	if s != 30 || decided {
		t.Errorf("phalanx on empty stack = (%d, %v), want (30, false)", s, decided)
	}
}

func TestPhalanxDecided(t *testing.T) {
	stack := []Card{TroopCard(Red, 7), TroopCard(Blue, 7), TroopCard(Green, 7)}
	s, decided := maxStrengthPhalanx(stack, 3, usedWith())
	if s != 21 || !decided {
		t.Errorf("complete phalanx = (%d, %v), want (21, true)", s, decided)
	}
}

func TestPhalanxValueConflict(t *testing.T) {
	stack := []Card{TroopCard(Red, 7), TroopCard(Blue, 8)}
	s, decided := maxStrengthPhalanx(stack, 3, usedWith())
	if s != 0 || decided {
		t.Errorf("conflicting phalanx = (%d, %v), want (0, false)", s, decided)
	}
}

func TestPhalanxCandidateEliminatedByUsage(t *testing.T) {
	// All six copies of the pinned value are consumed (the two committed
	// plus four elsewhere): no completion exists.
	stack := []Card{TroopCard(Red, 5), TroopCard(Blue, 5)}
	used := usedWith(
		TroopCard(Red, 5), TroopCard(Blue, 5), TroopCard(Green, 5),
		TroopCard(Yellow, 5), TroopCard(Orange, 5), TroopCard(Purple, 5),
	)
	s, decided := maxStrengthPhalanx(stack, 3, used)
	if s != 0 || decided {
		t.Errorf("exhausted phalanx = (%d, %v), want (0, false)", s, decided)
	}
}

func TestPhalanxStrictAvailability(t *testing.T) {
	// One unfilled slot and exactly one copy left is not enough: the rule
	// requires remaining to strictly exceed the unfilled count.
	stack := []Card{TroopCard(Red, 5), TroopCard(Blue, 5)}
	used := usedWith(
		TroopCard(Red, 5), TroopCard(Blue, 5), TroopCard(Green, 5),
		TroopCard(Yellow, 5), TroopCard(Orange, 5),
	)
	s, decided := maxStrengthPhalanx(stack, 3, used)
	if s != 0 || decided {
		t.Errorf("borderline phalanx = (%d, %v), want (0, false)", s, decided)
	}
}

func TestPhalanxShieldNarrowsCandidates(t *testing.T) {
	stack := []Card{TacticCard(ShieldBearers)}
	s, decided := maxStrengthPhalanx(stack, 3, usedWith())
	if s != 9 || decided {
		t.Errorf("shield phalanx = (%d, %v), want (9, false)", s, decided)
	}
}

func TestPhalanxCavalryPinsEight(t *testing.T) {
	stack := []Card{TacticCard(CompanionCavalry)}
	s, decided := maxStrengthPhalanx(stack, 3, usedWith())
	if s != 24 || decided {
		t.Errorf("cavalry phalanx = (%d, %v), want (24, false)", s, decided)
	}
}

func TestBattalionFill(t *testing.T) {
	stack := []Card{TroopCard(Red, 3), TroopCard(Red, 4)}
	s, decided := maxStrengthBattalion(stack, 3, usedWith())
	if s != 17 || decided {
		t.Errorf("battalion = (%d, %v), want (17, false)", s, decided)
	}
}

func TestBattalionFillSkipsUsed(t *testing.T) {
	stack := []Card{TroopCard(Red, 3), TroopCard(Red, 4)}
	used := usedWith(TroopCard(Red, 10), TroopCard(Red, 9))
	s, decided := maxStrengthBattalion(stack, 3, used)
	if s != 15 || decided {
		t.Errorf("battalion = (%d, %v), want (15, false)", s, decided)
	}
}

func TestBattalionDecidedWithMorale(t *testing.T) {
	stack := []Card{TroopCard(Red, 3), TacticCard(LeaderDarius), TacticCard(ShieldBearers)}
	s, decided := maxStrengthBattalion(stack, 3, usedWith())
	if s != 16 || !decided {
		t.Errorf("battalion with morale = (%d, %v), want (16, true)", s, decided)
	}
}

func TestSkirmishDecided(t *testing.T) {
	stack := []Card{TroopCard(Red, 3), TroopCard(Blue, 4), TroopCard(Green, 5)}
	s, decided := maxStrengthSkirmish(stack, 3, usedWith())
	if s != 12 || !decided {
		t.Errorf("skirmish = (%d, %v), want (12, true)", s, decided)
	}
}

func TestSkirmishBlockedByExhaustedValue(t *testing.T) {
	stack := []Card{TroopCard(Red, 3), TroopCard(Blue, 4)}
	used := usedWith(
		TroopCard(Red, 2), TroopCard(Orange, 2), TroopCard(Yellow, 2),
		TroopCard(Green, 2), TroopCard(Blue, 2), TroopCard(Purple, 2),
		TroopCard(Red, 5), TroopCard(Orange, 5), TroopCard(Yellow, 5),
		TroopCard(Green, 5), TroopCard(Blue, 5), TroopCard(Purple, 5),
	)
	s, decided := maxStrengthSkirmish(stack, 3, used)
	if s != 0 || decided {
		t.Errorf("blocked skirmish = (%d, %v), want (0, false)", s, decided)
	}
}

func TestHostSumsBestAvailable(t *testing.T) {
	stack := []Card{TroopCard(Red, 2), TroopCard(Blue, 5)}
	s, decided := maxStrengthHost(stack, 3, usedWith())
	if s != 17 || decided {
		t.Errorf("host = (%d, %v), want (17, false)", s, decided)
	}
}

func TestHostDecidedMoraleStrengths(t *testing.T) {
	stack := []Card{TacticCard(LeaderAlexander), TacticCard(CompanionCavalry), TacticCard(ShieldBearers)}
	s, decided := maxStrengthHost(stack, 3, usedWith())
	if s != 21 || !decided {
		t.Errorf("morale host = (%d, %v), want (21, true)", s, decided)
	}
}

// --- used-card aggregation ---

func TestAggregateUsedTroops(t *testing.T) {
	gs := NewEmptyGame()
	stage(gs.Flag(0), SideA, TroopCard(Red, 3))
	stage(gs.Flag(4), SideB, TroopCard(Red, 3), TacticCard(LeaderAlexander))
	d := TroopCard(Blue, 8)
	gs.RecordOperation(SideA, GuileOperation{Guile: Deserter, Discarded: &d})
	gs.RecordOperation(SideB, GuileOperation{Guile: Scout})

	used := aggregateUsedTroops(gs)
	if got := used.perCard[Red][2]; got != 2 {
		t.Errorf("red 3 used %d times, want 2", got)
	}
	if !used.colorUsed(Blue, 8) {
		t.Error("discarded blue 8 not counted")
	}
	if used.remaining(3) != 4 {
		t.Errorf("remaining 3s = %d, want 4", used.remaining(3))
	}
	// Morale cards never enter the pool.
	total := 0
	for v := 1; v <= MaxTroopValue; v++ {
		total += ColorCount - used.remaining(v)
	}
	if total != 3 {
		t.Errorf("pool holds %d cards, want 3", total)
	}
}

// --- full-flag scenarios ---

func TestResolveWedgeBeatsPhalanx(t *testing.T) {
	gs := NewEmptyGame()
	f := gs.Flag(0)
	stage(f, SideA, TroopCard(Red, 3), TroopCard(Red, 4), TroopCard(Red, 2))
	stage(f, SideB, TroopCard(Blue, 8), TroopCard(Green, 8), TroopCard(Yellow, 8))
	Resolve(gs)
	if f.Winner() != SideA {
		t.Errorf("winner = %s, want a", f.Winner())
	}
}

func TestResolveDecidedBeatsWeakerPossible(t *testing.T) {
	gs := NewEmptyGame()
	f := gs.Flag(0)
	stage(f, SideA, TroopCard(Red, 3), TroopCard(Red, 1), TroopCard(Red, 2))
	stage(f, SideB, TroopCard(Blue, 8), TroopCard(Blue, 9), TroopCard(Blue, 10))
	Resolve(gs)
	if f.Winner() != SideB {
		t.Errorf("winner = %s, want b", f.Winner())
	}
}

func TestResolveLeaderCompletesWedge(t *testing.T) {
	gs := NewEmptyGame()
	f := gs.Flag(0)
	stage(f, SideA, TroopCard(Red, 3), TroopCard(Red, 4), TacticCard(LeaderAlexander))
	stage(f, SideB, TroopCard(Blue, 2), TroopCard(Blue, 3), TroopCard(Blue, 4))
	Resolve(gs)
	if f.Winner() != SideA {
		t.Errorf("winner = %s, want a", f.Winner())
	}
}

func TestResolveEqualWedgeTempoBreaks(t *testing.T) {
	gs := NewEmptyGame()
	f := gs.Flag(0)
	stage(f, SideB, TroopCard(Blue, 2), TroopCard(Blue, 3), TroopCard(Blue, 4))
	stage(f, SideA, TroopCard(Red, 3), TroopCard(Red, 4), TroopCard(Red, 2))
	if f.LastStacker() != SideA {
		t.Fatal("staging should leave side a as last stacker")
	}
	Resolve(gs)
	if f.Winner() != SideB {
		t.Errorf("winner = %s, want b (a stacked last)", f.Winner())
	}
}

func TestResolveEqualWedgeTempoReversed(t *testing.T) {
	gs := NewEmptyGame()
	f := gs.Flag(0)
	stage(f, SideA, TroopCard(Red, 3), TroopCard(Red, 4), TroopCard(Red, 2))
	stage(f, SideB, TroopCard(Blue, 2), TroopCard(Blue, 3), TroopCard(Blue, 4))
	if f.LastStacker() != SideB {
		t.Fatal("staging should leave side b as last stacker")
	}
	Resolve(gs)
	if f.Winner() != SideA {
		t.Errorf("winner = %s, want a (b stacked last)", f.Winner())
	}
}

func TestResolveWedgeCollapseToBattalion(t *testing.T) {
	gs := NewEmptyGame()
	f := gs.Flag(0)
	stage(f, SideA, TroopCard(Red, 3), TroopCard(Red, 4), TroopCard(Red, 7))
	stage(f, SideB, TroopCard(Blue, 1), TroopCard(Blue, 3), TroopCard(Blue, 6))
	Resolve(gs)
	if f.Winner() != SideA {
		t.Errorf("winner = %s, want a (battalion 14 over 10)", f.Winner())
	}
}

func TestResolveFogForcesHost(t *testing.T) {
	// Without fog A's complete wedge outranks B's phalanx; under fog only
	// the card sums count and B's is larger.
	build := func(withFog bool) *Flag {
		gs := NewEmptyGame()
		f := gs.Flag(0)
		if withFog {
			f.AddEnv(SideB, TacticCard(Fog))
		}
		stage(f, SideA, TroopCard(Red, 1), TroopCard(Red, 2), TroopCard(Red, 3))
		stage(f, SideB, TroopCard(Red, 10), TroopCard(Blue, 10), TroopCard(Green, 10))
		Resolve(gs)
		return f
	}
	if f := build(false); f.Winner() != SideA {
		t.Errorf("clear winner = %s, want a (wedge outranks phalanx)", f.Winner())
	}
	if f := build(true); f.Winner() != SideB {
		t.Errorf("fog winner = %s, want b (host 30 over 6)", f.Winner())
	}
}

func TestResolveMudWaitsForFourCards(t *testing.T) {
	gs := NewEmptyGame()
	f := gs.Flag(0)
	f.AddEnv(SideA, TacticCard(Mud))
	stage(f, SideA, TroopCard(Red, 1), TroopCard(Red, 2), TroopCard(Red, 3))
	stage(f, SideB, TroopCard(Blue, 8), TroopCard(Blue, 9), TroopCard(Blue, 10))
	Resolve(gs)
	if f.Resolved() {
		t.Fatal("flag resolved with three cards per side under mud")
	}
	f.AddStack(SideA, TroopCard(Red, 4))
	f.AddStack(SideB, TroopCard(Blue, 7))
	Resolve(gs)
	if f.Winner() != SideB {
		t.Errorf("winner = %s, want b (wedge 34 over 10)", f.Winner())
	}
}

func TestResolveIncrementalStaysUnresolved(t *testing.T) {
	gs := NewEmptyGame()
	f := gs.Flag(0)

	steps := []struct {
		side Side
		card Card
	}{
		{SideA, TroopCard(Red, 3)},
		{SideA, TroopCard(Red, 4)},
		{SideA, TroopCard(Red, 5)},
		{SideB, TroopCard(Blue, 4)},
		{SideB, TroopCard(Blue, 5)},
	}
	for _, step := range steps {
		f.AddStack(step.side, step.card)
		Resolve(gs)
		if f.Resolved() {
			t.Fatalf("flag resolved prematurely after %s played %s", step.side, step.card)
		}
	}

	// Reclaiming a card reopens side a; side b completing a wedge still
	// cannot claim while side a can complete an equal one.
	if _, ok := f.RemoveStack(SideA, TroopCard(Red, 3)); !ok {
		t.Fatal("remove failed")
	}
	f.AddStack(SideB, TroopCard(Blue, 6))
	Resolve(gs)
	if f.Resolved() {
		t.Fatal("flag resolved while side a can still match the wedge")
	}

	// A completes the equal wedge as the last stacker: tempo gives it to b.
	f.AddStack(SideA, TroopCard(Red, 6))
	Resolve(gs)
	if f.Winner() != SideB {
		t.Errorf("winner = %s, want b by tempo", f.Winner())
	}
}

func TestResolveUsesBoardWideUsage(t *testing.T) {
	// B's wedge completions (blue 2, blue 5) sit on another flag, so B's best is a
	// battalion and A's complete wedge already beats everything reachable.
	gs := NewEmptyGame()
	f := gs.Flag(0)
	stage(f, SideA, TroopCard(Red, 1), TroopCard(Red, 2), TroopCard(Red, 3))
	stage(f, SideB, TroopCard(Blue, 3), TroopCard(Blue, 4))
	stage(gs.Flag(5), SideA, TroopCard(Blue, 5), TroopCard(Blue, 2))
	Resolve(gs)
	if f.Winner() != SideA {
		t.Errorf("winner = %s, want a once b's wedge is impossible", f.Winner())
	}
}

func TestResolveGuileDiscardFeedsUsage(t *testing.T) {
	// Same position, but the blocking copies were discarded via guile.
	gs := NewEmptyGame()
	f := gs.Flag(0)
	stage(f, SideA, TroopCard(Red, 1), TroopCard(Red, 2), TroopCard(Red, 3))
	stage(f, SideB, TroopCard(Blue, 3), TroopCard(Blue, 4))
	d1, d2 := TroopCard(Blue, 5), TroopCard(Blue, 2)
	gs.RecordOperation(SideA, GuileOperation{Guile: Deserter, Discarded: &d1})
	gs.RecordOperation(SideB, GuileOperation{Guile: Redeploy, Discarded: &d2})
	Resolve(gs)
	if f.Winner() != SideA {
		t.Errorf("winner = %s, want a once discards block b's wedge", f.Winner())
	}
}

func TestResolveIdempotent(t *testing.T) {
	gs := NewEmptyGame()
	stage(gs.Flag(0), SideA, TroopCard(Red, 3), TroopCard(Red, 4), TroopCard(Red, 2))
	stage(gs.Flag(0), SideB, TroopCard(Blue, 8), TroopCard(Green, 8), TroopCard(Yellow, 8))
	stage(gs.Flag(3), SideA, TroopCard(Green, 1))

	Resolve(gs)
	first := make([]Side, FlagCount)
	for i := 0; i < FlagCount; i++ {
		first[i] = gs.Flag(i).Winner()
	}
	Resolve(gs)
	for i := 0; i < FlagCount; i++ {
		if gs.Flag(i).Winner() != first[i] {
			t.Errorf("flag %d changed on second resolve: %s -> %s", i, first[i], gs.Flag(i).Winner())
		}
	}
}

func TestResolveEmptyBoardResolvesNothing(t *testing.T) {
	gs := NewEmptyGame()
	Resolve(gs)
	for i := 0; i < FlagCount; i++ {
		if gs.Flag(i).Resolved() {
			t.Errorf("flag %d resolved on an empty board", i)
		}
	}
}

func TestResolveHostTempoUnderFog(t *testing.T) {
	gs := NewEmptyGame()
	f := gs.Flag(0)
	f.AddEnv(SideA, TacticCard(Fog))
	stage(f, SideB, TroopCard(Blue, 1), TroopCard(Blue, 2), TroopCard(Blue, 3))
	stage(f, SideA, TroopCard(Red, 1), TroopCard(Red, 2), TroopCard(Red, 3))
	Resolve(gs)
	if f.Winner() != SideB {
		t.Errorf("winner = %s, want b (equal hosts, a stacked last)", f.Winner())
	}
}
