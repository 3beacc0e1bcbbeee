package bot

import (
	"president/internal/domain"
)

// rankCounts returns how many cards of each rank the hand holds.
func rankCounts(hand []domain.Card) [domain.NumRanks]int {
	var counts [domain.NumRanks]int
	for _, c := range hand {
		if c.Rank.Valid() {
			counts[c.Rank]++
		}
	}
	return counts
}

// threatened reports whether an opponent is close to going out.
func threatened(turn domain.Turn, threshold int) bool {
	if threshold <= 0 {
		return false
	}
	for seat, n := range turn.HandSizes {
		if seat != turn.Seat && n > 0 && n <= threshold {
			return true
		}
	}
	return false
}
