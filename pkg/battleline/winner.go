package battleline

// WinStreak and WinTotal are the two claim thresholds: a streak of three
// flags or five flags in total.
const (
	WinStreak = 3
	WinTotal  = 5
)

// Winner scans the flags in positional order and returns the side that has
// a streak of three claimed flags or five in total, or NoSide if the game is
// undecided. An unresolved flag breaks both sides' streaks; a flag claimed
// by the opponent does not.
func (gs *GameState) Winner() Side {
	var streak, total [2]int
	for _, f := range gs.flags {
		w := f.Winner()
		if w == NoSide {
			streak[SideA], streak[SideB] = 0, 0
		} else {
			streak[w]++
			total[w]++
		}
		for _, side := range Sides() {
			if streak[side] >= WinStreak || total[side] >= WinTotal {
				return side
			}
		}
	}
	return NoSide
}
