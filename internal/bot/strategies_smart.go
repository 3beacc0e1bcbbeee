package bot

import (
	"president/internal/bot/brain"
	"president/internal/domain"
)

// CountingBot remembers the cards seen this round. It avoids splitting
// groups, keeps its Twos for the end and dumps groups when leading.
type CountingBot struct {
	Memory *brain.GameMemory
	Tuning Tuning
}

func (b *CountingBot) ChooseMove(turn domain.Turn, moves []domain.Move) *domain.Move {
	b.Memory.Observe(turn)
	counts := rankCounts(turn.Hand)
	leading := turn.LastMove == nil
	threat := threatened(turn, b.Tuning.ThreatThreshold)
	others := len(turn.Hand) - counts[domain.RankTwo]

	best, bestScore := -1, 0
	for i, m := range moves {
		if m.Type().Size() == len(turn.Hand) {
			return &moves[i]
		}
		if m.Rank() == domain.RankTwo && others > b.Tuning.HoldTwos && !threat {
			continue
		}
		score := b.score(m, counts, leading, len(turn.Hand))
		if best < 0 || score < bestScore {
			best, bestScore = i, score
		}
	}

	switch {
	case best < 0 && leading:
		return &moves[0]
	case best < 0:
		return nil
	case !leading && !threat && bestScore >= b.Tuning.PassAbove:
		return nil
	}
	return &moves[best]
}

func (b *CountingBot) score(m domain.Move, counts [domain.NumRanks]int, leading bool, handSize int) int {
	rank, size := m.Rank(), m.Type().Size()
	score := int(rank) * b.Tuning.RankWeight
	if size < counts[rank] {
		score += b.Tuning.SplitPenalty
	}
	if leading {
		score -= b.Tuning.GroupBonus * (size - 1)
	}
	if handSize-size <= b.Tuning.EndgameCards && !b.Memory.Beatable(rank, size) {
		score -= b.Tuning.BossBonus
	}
	return score
}

// ChooseExchange gives the required cards and remembers them as held by an opponent.
func (b *CountingBot) ChooseExchange(hand []domain.Card, count int, highest bool) []domain.Card {
	b.Memory.Reset()
	given := domain.SelectCards(hand, count, highest)
	b.Memory.MarkOpponent(given)
	return given
}

func (b *CountingBot) ReceiveCards(cards []domain.Card) {
	b.Memory.MarkMine(cards)
}
