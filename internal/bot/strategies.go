package bot

import (
	"math/rand"
	"sync"

	"president/internal/domain"
)

// RandomBot plays any legal move. It never passes when it can play.
type RandomBot struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (b *RandomBot) ChooseMove(_ domain.Turn, moves []domain.Move) *domain.Move {
	b.mu.Lock()
	i := b.rng.Intn(len(moves))
	b.mu.Unlock()
	return &moves[i]
}

func (b *RandomBot) ChooseExchange(hand []domain.Card, count int, highest bool) []domain.Card {
	return domain.SelectCards(hand, count, highest)
}

// LowestBot always plays its weakest legal move.
type LowestBot struct{}

func (b *LowestBot) ChooseMove(_ domain.Turn, moves []domain.Move) *domain.Move {
	return &moves[0]
}

func (b *LowestBot) ChooseExchange(hand []domain.Card, count int, highest bool) []domain.Card {
	return domain.SelectCards(hand, count, highest)
}
