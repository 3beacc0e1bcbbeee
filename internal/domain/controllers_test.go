package domain

import (
	"context"
	"errors"
)

func card(r Rank, s Suit) Card {
	return Card{Rank: r, Suit: s}
}

func single(c Card) *Move {
	m := MustMove(Single, c)
	return &m
}

// controllerFunc adapts a function to a Controller; exchanges use SelectCards.
type controllerFunc func(ctx context.Context, turn Turn) (*Move, error)

func (f controllerFunc) PlayTurn(ctx context.Context, turn Turn) (*Move, error) {
	return f(ctx, turn)
}

func (f controllerFunc) ChooseExchangeCards(_ context.Context, hand []Card, count int, highest bool) ([]Card, error) {
	return SelectCards(hand, count, highest), nil
}

// weakest always plays the first legal move.
var weakest = controllerFunc(func(_ context.Context, turn Turn) (*Move, error) {
	moves := turn.PossibleMoves()
	if len(moves) == 0 {
		return nil, nil
	}
	return &moves[0], nil
})

var passer = controllerFunc(func(context.Context, Turn) (*Move, error) {
	return nil, nil
})

var failing = controllerFunc(func(context.Context, Turn) (*Move, error) {
	return nil, errors.New("boom")
})

var panicking = controllerFunc(func(context.Context, Turn) (*Move, error) {
	panic("controller exploded")
})

// scripted replays moves in order and passes once they run out. Every turn is recorded.
type scripted struct {
	moves    []*Move
	turns    []Turn
	exchange []Card
	received []Card
}

func (s *scripted) PlayTurn(_ context.Context, turn Turn) (*Move, error) {
	s.turns = append(s.turns, turn)
	if len(s.moves) == 0 {
		return nil, nil
	}
	m := s.moves[0]
	s.moves = s.moves[1:]
	return m, nil
}

func (s *scripted) ChooseExchangeCards(_ context.Context, hand []Card, count int, highest bool) ([]Card, error) {
	if s.exchange != nil {
		return s.exchange, nil
	}
	return SelectCards(hand, count, highest), nil
}

func (s *scripted) ReceiveCards(cards []Card) {
	s.received = append(s.received, cards...)
}

// recorder captures observer notifications.
type recorder struct {
	NopObserver
	piles    [][]Card
	passes   []bool
	finished []string
	tricks   []TrickResult
	onPile   func(pile []Card)
}

func (r *recorder) PileChanged(pile []Card) {
	r.piles = append(r.piles, pile)
	if r.onPile != nil {
		r.onPile(pile)
	}
}

func (r *recorder) TurnPassed(_ *Player, forced bool) {
	r.passes = append(r.passes, forced)
}

func (r *recorder) PlayerFinished(p *Player, _ int) {
	r.finished = append(r.finished, p.ID)
}

func (r *recorder) TrickEnded(res TrickResult) {
	r.tricks = append(r.tricks, res)
}

func seat(ids []string, controllers []Controller, hands [][]Card) []*Player {
	players := make([]*Player, len(ids))
	for i, id := range ids {
		players[i] = NewPlayer(id, controllers[i])
		players[i].Hand = hands[i]
	}
	return players
}
