package domain

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != DeckSize {
		t.Fatalf("deck size = %d, want %d", len(deck), DeckSize)
	}

	seen := make(map[Card]bool)
	for _, c := range deck {
		if seen[c] {
			t.Fatalf("duplicate card found: %s", c)
		}
		seen[c] = true
	}
}

func TestShuffleDeckKeepsCards(t *testing.T) {
	deck := NewDeck()
	shuffled := ShuffleDeck(rand.New(rand.NewSource(7)), deck)
	if reflect.DeepEqual(deck, shuffled) {
		t.Fatalf("expected shuffled order to differ")
	}
	if !ContainsCards(shuffled, deck) || len(shuffled) != len(deck) {
		t.Fatalf("shuffle lost cards")
	}
	if deck[0] != card(RankThree, SuitClubs) {
		t.Fatalf("input deck was modified")
	}
}

func TestSortHand(t *testing.T) {
	hand := []Card{card(RankTwo, SuitClubs), card(RankThree, SuitSpades), card(RankAce, SuitHearts), card(RankThree, SuitClubs)}
	SortHand(hand)
	want := []Card{card(RankThree, SuitClubs), card(RankThree, SuitSpades), card(RankAce, SuitHearts), card(RankTwo, SuitClubs)}
	if !reflect.DeepEqual(hand, want) {
		t.Fatalf("SortHand() = %v, want %v", hand, want)
	}
}

func TestRemoveCards(t *testing.T) {
	hand := []Card{card(RankFive, SuitClubs), card(RankFive, SuitHearts), card(RankKing, SuitSpades)}
	out := RemoveCards(hand, []Card{card(RankFive, SuitHearts), card(RankTwo, SuitHearts)})

	want := []Card{card(RankFive, SuitClubs), card(RankKing, SuitSpades)}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("RemoveCards() = %v, want %v", out, want)
	}
	if len(hand) != 3 {
		t.Fatalf("input hand was modified: %v", hand)
	}
}

func TestContainsCards(t *testing.T) {
	hand := []Card{card(RankFive, SuitClubs), card(RankKing, SuitSpades)}
	tests := []struct {
		name  string
		cards []Card
		want  bool
	}{
		{name: "empty", cards: nil, want: true},
		{name: "subset", cards: []Card{card(RankKing, SuitSpades)}, want: true},
		{name: "missing", cards: []Card{card(RankKing, SuitHearts)}, want: false},
		{name: "duplicate", cards: []Card{card(RankFive, SuitClubs), card(RankFive, SuitClubs)}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsCards(hand, tt.cards); got != tt.want {
				t.Fatalf("ContainsCards() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseCard(t *testing.T) {
	tests := []struct {
		in      string
		want    Card
		wantErr bool
	}{
		{in: "10H", want: card(RankTen, SuitHearts)},
		{in: "2s", want: card(RankTwo, SuitSpades)},
		{in: " qd ", want: card(RankQueen, SuitDiamonds)},
		{in: "1H", wantErr: true},
		{in: "AX", wantErr: true},
		{in: "H", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCard(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCard(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCard(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseCard(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if round, _ := ParseCard(got.String()); round != got {
				t.Fatalf("String() does not parse back: %s", got)
			}
		})
	}
}

func TestRankOrder(t *testing.T) {
	if !(RankAce > RankKing && RankTwo > RankAce && RankThree < RankFour) {
		t.Fatalf("unexpected rank order")
	}
	if RankTwo.String() != "2" || RankTen.String() != "10" {
		t.Fatalf("unexpected rank names %s %s", RankTwo, RankTen)
	}
}
