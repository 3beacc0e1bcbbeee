package domain

// RemoveCards removes the provided cards from a hand (O(n*m), hands are small).
func RemoveCards(hand []Card, played []Card) []Card {
	out := append([]Card{}, hand...)
	for _, pc := range played {
		for i := 0; i < len(out); i++ {
			if out[i] == pc {
				out = append(out[:i], out[i+1:]...)
				break
			}
		}
	}
	return out
}

// ContainsCards reports whether every card in cards is present in hand,
// counting duplicates.
func ContainsCards(hand []Card, cards []Card) bool {
	used := make([]bool, len(hand))
	for _, c := range cards {
		found := false
		for i, h := range hand {
			if !used[i] && h == c {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// CountRank returns how many cards of rank r are in hand.
func CountRank(hand []Card, r Rank) int {
	n := 0
	for _, c := range hand {
		if c.Rank == r {
			n++
		}
	}
	return n
}

// CountPlayersWithCards returns the number of players that still hold cards.
func CountPlayersWithCards(players []*Player) int {
	n := 0
	for _, p := range players {
		if p.HasCards() {
			n++
		}
	}
	return n
}

func copyCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	return append([]Card(nil), cards...)
}
