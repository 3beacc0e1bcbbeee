package bot

import (
	"president/internal/domain"
)

// Brain is the interface that all bot strategies must implement.
// moves is never empty and is sorted weakest first.
type Brain interface {
	ChooseMove(turn domain.Turn, moves []domain.Move) *domain.Move
	ChooseExchange(hand []domain.Card, count int, highest bool) []domain.Card
}

// receiver is implemented by brains that track the cards handed to them.
type receiver interface {
	ReceiveCards(cards []domain.Card)
}
