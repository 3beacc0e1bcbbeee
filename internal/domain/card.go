package domain

import (
	"fmt"
	"strings"
)

// Rank is the strength of a card. Lower values are weaker; Two is the strongest rank.
type Rank int32

const (
	RankThree Rank = iota
	RankFour
	RankFive
	RankSix
	RankSeven
	RankEight
	RankNine
	RankTen
	RankJack
	RankQueen
	RankKing
	RankAce
	RankTwo
)

// NumRanks is the number of distinct ranks in a deck.
const NumRanks = 13

var rankNames = [NumRanks]string{"3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", "2"}

// Valid reports whether r is one of the 13 playable ranks.
func (r Rank) Valid() bool {
	return r >= RankThree && r <= RankTwo
}

func (r Rank) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rank(%d)", int32(r))
	}
	return rankNames[r]
}

// Suit never affects legality or strength.
type Suit int32

const (
	SuitClubs Suit = iota
	SuitDiamonds
	SuitHearts
	SuitSpades
)

// NumSuits is the number of suits in a deck.
const NumSuits = 4

var suitNames = [NumSuits]string{"C", "D", "H", "S"}

func (s Suit) Valid() bool {
	return s >= SuitClubs && s <= SuitSpades
}

func (s Suit) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Suit(%d)", int32(s))
	}
	return suitNames[s]
}

// Card is a single playing card.
type Card struct {
	Rank Rank
	Suit Suit
}

func (c Card) Valid() bool {
	return c.Rank.Valid() && c.Suit.Valid()
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// ParseCard reads the notation produced by Card.String, e.g. "10H" or "2S".
func ParseCard(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	rankPart, suitPart := s[:len(s)-1], s[len(s)-1:]

	card := Card{Rank: -1, Suit: -1}
	for i, name := range rankNames {
		if name == rankPart {
			card.Rank = Rank(i)
			break
		}
	}
	for i, name := range suitNames {
		if name == suitPart {
			card.Suit = Suit(i)
			break
		}
	}
	if !card.Rank.Valid() || !card.Suit.Valid() {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	return card, nil
}

// FormatCards renders cards separated by spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
