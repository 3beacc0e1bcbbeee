package domain

import (
	"reflect"
	"testing"
)

func TestPossibleMovesOpening(t *testing.T) {
	fourC, fourD, six := card(RankFour, SuitClubs), card(RankFour, SuitDiamonds), card(RankSix, SuitHearts)
	moves := PossibleMoves([]Card{fourC, six, fourD}, nil, nil)

	want := []Move{
		MustMove(Single, fourC),
		MustMove(Single, fourD),
		MustMove(Pair, fourC, fourD),
		MustMove(Single, six),
	}
	if !reflect.DeepEqual(moves, want) {
		t.Fatalf("PossibleMoves() = %v, want %v", moves, want)
	}
}

func TestPossibleMovesAfterSingle(t *testing.T) {
	hand := []Card{
		card(RankFive, SuitClubs),
		card(RankEight, SuitHearts),
		card(RankNine, SuitClubs), card(RankNine, SuitSpades),
		card(RankTwo, SuitDiamonds),
	}
	last := MustMove(Single, card(RankEight, SuitClubs))
	moves := PossibleMoves(hand, &last, nil)

	want := []Move{
		MustMove(Single, card(RankEight, SuitHearts)),
		MustMove(Single, card(RankNine, SuitClubs)),
		MustMove(Single, card(RankNine, SuitSpades)),
		MustMove(Single, card(RankTwo, SuitDiamonds)),
	}
	if !reflect.DeepEqual(moves, want) {
		t.Fatalf("PossibleMoves() = %v, want %v", moves, want)
	}
}

func TestPossibleMovesRankLock(t *testing.T) {
	hand := []Card{card(RankSeven, SuitClubs), card(RankSeven, SuitHearts), card(RankNine, SuitClubs)}

	tests := []struct {
		name string
		last *Move
		lock Rank
		want int
	}{
		{name: "lock without pile", lock: RankSeven, want: 3},
		{name: "lock and single", last: single(card(RankSeven, SuitSpades)), lock: RankSeven, want: 2},
		{name: "lock unreachable", last: single(card(RankSeven, SuitSpades)), lock: RankKing, want: 0},
		{name: "lock below pile", last: single(card(RankEight, SuitSpades)), lock: RankSeven, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lock := tt.lock
			moves := PossibleMoves(hand, tt.last, &lock)
			if len(moves) != tt.want {
				t.Fatalf("PossibleMoves() = %v, want %d moves", moves, tt.want)
			}
			for _, m := range moves {
				if m.Rank() != tt.lock {
					t.Fatalf("move %v ignores lock %s", m, tt.lock)
				}
			}
		})
	}
}

func TestPossibleMovesCombinations(t *testing.T) {
	var quad []Card
	for s := SuitClubs; s <= SuitSpades; s++ {
		quad = append(quad, card(RankQueen, s))
	}
	counts := make(map[MoveType]int)
	for _, m := range PossibleMoves(quad, nil, nil) {
		counts[m.Type()]++
	}
	want := map[MoveType]int{Single: 4, Pair: 6, ThreeOfAKind: 4, FourOfAKind: 1}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("combination counts = %v, want %v", counts, want)
	}

	pair := MustMove(Pair, card(RankJack, SuitClubs), card(RankJack, SuitHearts))
	for _, m := range PossibleMoves(quad, &pair, nil) {
		if m.Type() != Pair {
			t.Fatalf("expected only pairs on a pair, got %v", m)
		}
	}
}

func TestPossibleMovesIsPure(t *testing.T) {
	hand := []Card{card(RankSix, SuitHearts), card(RankFour, SuitClubs)}
	before := append([]Card(nil), hand...)
	_ = PossibleMoves(hand, nil, nil)
	if !reflect.DeepEqual(hand, before) {
		t.Fatalf("hand modified: %v", hand)
	}
	if got := PossibleMoves(nil, nil, nil); len(got) != 0 {
		t.Fatalf("empty hand produced moves: %v", got)
	}
}

func TestIsLegal(t *testing.T) {
	hand := []Card{card(RankSix, SuitHearts), card(RankFour, SuitClubs)}
	last := MustMove(Single, card(RankFive, SuitClubs))
	lock := RankFive

	if !IsLegal(MustMove(Single, card(RankSix, SuitHearts)), hand, &last, nil) {
		t.Fatalf("six on five should be legal")
	}
	if IsLegal(MustMove(Single, card(RankFour, SuitClubs)), hand, &last, nil) {
		t.Fatalf("four on five should be illegal")
	}
	if IsLegal(MustMove(Single, card(RankSeven, SuitHearts)), hand, &last, nil) {
		t.Fatalf("card not in hand should be illegal")
	}
	if IsLegal(MustMove(Single, card(RankSix, SuitHearts)), hand, &last, &lock) {
		t.Fatalf("lock on five should reject a six")
	}
}
