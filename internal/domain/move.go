package domain

import (
	"errors"
	"fmt"
)

// MoveType identifies a combination. Its value is the number of cards it holds.
type MoveType int

const (
	Single       MoveType = 1
	Pair         MoveType = 2
	ThreeOfAKind MoveType = 3
	FourOfAKind  MoveType = 4
)

func (t MoveType) String() string {
	switch t {
	case Single:
		return "single"
	case Pair:
		return "pair"
	case ThreeOfAKind:
		return "three of a kind"
	case FourOfAKind:
		return "four of a kind"
	default:
		return fmt.Sprintf("MoveType(%d)", int(t))
	}
}

// Size is the number of cards a move of this type contains.
func (t MoveType) Size() int {
	return int(t)
}

// ErrInvalidCombination is returned when cards do not form the requested move.
var ErrInvalidCombination = errors.New("invalid combination")

// Move is an immutable combination of same-rank cards.
// The zero value is not a valid move.
type Move struct {
	kind  MoveType
	cards []Card
}

// NewMove validates that cards form a move of the given type.
func NewMove(kind MoveType, cards ...Card) (Move, error) {
	if kind < Single || kind > FourOfAKind {
		return Move{}, fmt.Errorf("%w: unknown type %d", ErrInvalidCombination, int(kind))
	}
	if len(cards) != kind.Size() {
		return Move{}, fmt.Errorf("%w: %s needs %d cards, got %d", ErrInvalidCombination, kind, kind.Size(), len(cards))
	}
	for _, c := range cards {
		if !c.Valid() {
			return Move{}, fmt.Errorf("%w: bad card %v", ErrInvalidCombination, c)
		}
		if c.Rank != cards[0].Rank {
			return Move{}, fmt.Errorf("%w: mixed ranks %s and %s", ErrInvalidCombination, cards[0].Rank, c.Rank)
		}
	}
	return Move{kind: kind, cards: copyCards(cards)}, nil
}

// MoveFromCards infers the move type from the number of cards.
func MoveFromCards(cards []Card) (Move, error) {
	return NewMove(MoveType(len(cards)), cards...)
}

// MustMove is NewMove for fixed inputs; it panics on error.
func MustMove(kind MoveType, cards ...Card) Move {
	m, err := NewMove(kind, cards...)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Move) Type() MoveType {
	return m.kind
}

// Rank of every card in the move.
func (m Move) Rank() Rank {
	if len(m.cards) == 0 {
		return -1
	}
	return m.cards[0].Rank
}

// Cards returns a copy of the cards in the move.
func (m Move) Cards() []Card {
	return copyCards(m.cards)
}

// IsZero reports whether m is the zero Move.
func (m Move) IsZero() bool {
	return len(m.cards) == 0
}

func (m Move) ContainsRank(r Rank) bool {
	for _, c := range m.cards {
		if c.Rank == r {
			return true
		}
	}
	return false
}

// CanBePlayedOn reports whether m may follow top. Equal rank is allowed.
// Any valid move may open an empty pile.
func (m Move) CanBePlayedOn(top *Move) bool {
	if m.IsZero() {
		return false
	}
	if top == nil || top.IsZero() {
		return true
	}
	return m.kind == top.kind && m.Rank() >= top.Rank()
}

func (m Move) String() string {
	if m.IsZero() {
		return "<none>"
	}
	return fmt.Sprintf("%s [%s]", m.kind, FormatCards(m.cards))
}
