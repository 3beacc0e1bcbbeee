package domain

import (
	"errors"
	"testing"
)

func TestNewMove(t *testing.T) {
	tests := []struct {
		name    string
		kind    MoveType
		cards   []Card
		wantErr bool
	}{
		{name: "Single", kind: Single, cards: []Card{card(RankSix, SuitClubs)}},
		{name: "Pair", kind: Pair, cards: []Card{card(RankSix, SuitClubs), card(RankSix, SuitHearts)}},
		{name: "ThreeOfAKind", kind: ThreeOfAKind, cards: []Card{card(RankJack, SuitClubs), card(RankJack, SuitHearts), card(RankJack, SuitSpades)}},
		{name: "FourOfAKind", kind: FourOfAKind, cards: []Card{card(RankTwo, SuitClubs), card(RankTwo, SuitDiamonds), card(RankTwo, SuitHearts), card(RankTwo, SuitSpades)}},
		{name: "Invalid: size mismatch", kind: Pair, cards: []Card{card(RankSix, SuitClubs)}, wantErr: true},
		{name: "Invalid: mixed ranks", kind: Pair, cards: []Card{card(RankSix, SuitClubs), card(RankSeven, SuitClubs)}, wantErr: true},
		{name: "Invalid: empty", kind: Single, wantErr: true},
		{name: "Invalid: unknown type", kind: MoveType(5), cards: []Card{card(RankSix, SuitClubs)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMove(tt.kind, tt.cards...)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCombination) {
					t.Fatalf("NewMove() error = %v, want ErrInvalidCombination", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewMove() error: %v", err)
			}
			if m.Type() != tt.kind || m.Rank() != tt.cards[0].Rank {
				t.Fatalf("NewMove() = %v", m)
			}
		})
	}
}

func TestMoveCardsAreCopies(t *testing.T) {
	cards := []Card{card(RankSix, SuitClubs), card(RankSix, SuitHearts)}
	m := MustMove(Pair, cards...)
	cards[0] = card(RankTwo, SuitClubs)
	got := m.Cards()
	got[1] = card(RankTwo, SuitHearts)

	if m.Rank() != RankSix || m.Cards()[1] != card(RankSix, SuitHearts) {
		t.Fatalf("move was mutated through an alias: %v", m)
	}
}

func TestCanBePlayedOn(t *testing.T) {
	eight := MustMove(Single, card(RankEight, SuitClubs))
	pairEight := MustMove(Pair, card(RankEight, SuitClubs), card(RankEight, SuitHearts))

	tests := []struct {
		name string
		move Move
		top  *Move
		want bool
	}{
		{name: "empty pile", move: MustMove(Single, card(RankThree, SuitClubs)), top: nil, want: true},
		{name: "higher single", move: MustMove(Single, card(RankNine, SuitClubs)), top: &eight, want: true},
		{name: "equal rank", move: MustMove(Single, card(RankEight, SuitSpades)), top: &eight, want: true},
		{name: "lower rank", move: MustMove(Single, card(RankSeven, SuitSpades)), top: &eight, want: false},
		{name: "two beats ace", move: MustMove(Single, card(RankTwo, SuitSpades)), top: single(card(RankAce, SuitClubs)), want: true},
		{name: "type mismatch", move: MustMove(Single, card(RankAce, SuitSpades)), top: &pairEight, want: false},
		{name: "zero move", move: Move{}, top: nil, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.move.CanBePlayedOn(tt.top); got != tt.want {
				t.Fatalf("CanBePlayedOn() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsMagicSquare(t *testing.T) {
	four := []Card{card(RankNine, SuitClubs), card(RankEight, SuitClubs), card(RankEight, SuitDiamonds), card(RankEight, SuitHearts), card(RankEight, SuitSpades)}
	if !isMagicSquare(four) {
		t.Fatalf("expected last four eights to be a magic square")
	}
	if isMagicSquare(four[:4]) {
		t.Fatalf("nine and three eights is not a magic square")
	}
	if isMagicSquare(four[1:3]) {
		t.Fatalf("short pile is not a magic square")
	}
}

func TestParseDifficulty(t *testing.T) {
	for in, want := range map[string]Difficulty{"easy": DifficultyEasy, "MEDIUM": DifficultyMedium, "hard": DifficultyHard, "": DifficultyMedium} {
		got, err := ParseDifficulty(in)
		if err != nil || got != want {
			t.Fatalf("ParseDifficulty(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseDifficulty("god"); err == nil {
		t.Fatalf("expected error for unknown difficulty")
	}
}
