package game

// IsBlackout reports whether every non-free cell of card appears in called.
// Pure predicate: no state is touched, the session dedups repeat claims.
func IsBlackout(card Card, called []int) bool {
	set := make(map[int]bool, len(called))
	for _, n := range called {
		set[n] = true
	}
	for _, row := range card {
		for _, n := range row {
			if n != 0 && !set[n] {
				return false
			}
		}
	}
	return true
}

// WinnerCap is the number of winners accepted before the round is forced to
// end. Two-player rounds end on the first winner; this is deliberate and must
// not be folded into the min(3, n) rule.
func WinnerCap(playerCount int) int {
	if playerCount == 2 {
		return 1
	}
	if playerCount < 3 {
		return playerCount
	}
	return 3
}
