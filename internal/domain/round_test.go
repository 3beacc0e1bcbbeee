package domain

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
)

func totalCards(players []*Player) int {
	n := 0
	for _, p := range players {
		n += len(p.Hand)
	}
	return n
}

func TestPlayRoundConservesCardsAndRanksEveryone(t *testing.T) {
	rulesets := []Rules{{}, {MagicSquare: true}, {ForcePlay: true}, DefaultRules()}
	for _, rules := range rulesets {
		for _, n := range []int{2, 3, 4, 5} {
			for seed := int64(1); seed <= 5; seed++ {
				t.Run(fmt.Sprintf("%+v/%d players/seed %d", rules, n, seed), func(t *testing.T) {
					players := make([]*Player, n)
					for i := range players {
						players[i] = NewPlayer(fmt.Sprintf("p%d", i), weakest)
					}
					game, err := NewGame(GameParams{NumPlayers: n, Rules: rules}, players)
					if err != nil {
						t.Fatalf("NewGame() error: %v", err)
					}
					if err := game.Deal(rand.New(rand.NewSource(seed))); err != nil {
						t.Fatalf("Deal() error: %v", err)
					}

					table := NewTable(players, rules)
					rec := &recorder{}
					rec.onPile = func(pile []Card) {
						if got := totalCards(players) + len(pile) + len(table.Discard()); got != DeckSize {
							t.Fatalf("card count = %d, want %d", got, DeckSize)
						}
					}
					table.Observer = rec

					ranking, err := table.PlayRound(context.Background(), 0)
					if err != nil {
						t.Fatalf("PlayRound() error: %v", err)
					}
					if len(ranking) != n {
						t.Fatalf("ranking length = %d, want %d", len(ranking), n)
					}
					seen := make(map[*Player]bool)
					for _, p := range ranking {
						if seen[p] {
							t.Fatalf("player %s ranked twice", p.ID)
						}
						seen[p] = true
						if p.HasCards() {
							t.Fatalf("player %s still holds %v", p.ID, p.Hand)
						}
					}
					if len(table.Discard()) != DeckSize {
						t.Fatalf("discard = %d cards, want %d", len(table.Discard()), DeckSize)
					}
					if len(rec.finished) != n {
						t.Fatalf("finished notifications = %d, want %d", len(rec.finished), n)
					}
				})
			}
		}
	}
}

func TestPlayRoundFaultyPlayerFinishesLast(t *testing.T) {
	controllers := []Controller{weakest, panicking, weakest, failing}
	players := make([]*Player, len(controllers))
	for i, c := range controllers {
		players[i] = NewPlayer(fmt.Sprintf("p%d", i), c)
	}
	game, err := NewGame(GameParams{NumPlayers: 4, Rules: DefaultRules()}, players)
	if err != nil {
		t.Fatalf("NewGame() error: %v", err)
	}
	if err := game.Deal(rand.New(rand.NewSource(3))); err != nil {
		t.Fatalf("Deal() error: %v", err)
	}

	ranking, err := NewTable(players, DefaultRules()).PlayRound(context.Background(), 0)
	if err != nil {
		t.Fatalf("PlayRound() error: %v", err)
	}
	// Faulty players only move when the table stalls, after the others are out.
	for _, p := range ranking[:2] {
		if p != players[0] && p != players[2] {
			t.Fatalf("faulty player %s ranked ahead of a working one: %v", p.ID, ranking)
		}
	}
	if ranking[2] == ranking[3] || (ranking[2] != players[1] && ranking[2] != players[3]) {
		t.Fatalf("unexpected tail of ranking: %v", ranking)
	}
}

func TestPlayRoundOpensForIdleTable(t *testing.T) {
	players := seat([]string{"a", "b", "c"}, []Controller{passer, passer, passer}, [][]Card{
		{card(RankNine, SuitClubs), card(RankThree, SuitClubs)},
		{card(RankFour, SuitClubs)},
		{card(RankFive, SuitClubs)},
	})
	rec := &recorder{}
	table := NewTable(players, DefaultRules())
	table.Observer = rec

	ranking, err := table.PlayRound(context.Background(), 0)
	if err != nil {
		t.Fatalf("PlayRound() error: %v", err)
	}
	// Nobody ever plays, so after a full cycle of empty tricks the leader's
	// weakest card is played for them.
	want := []*Player{players[0], players[1], players[2]}
	for i := range want {
		if ranking[i] != want[i] {
			t.Fatalf("ranking[%d] = %s, want %s", i, ranking[i].ID, want[i].ID)
		}
	}
	opened := 0
	for _, tr := range rec.tricks {
		if tr.WinnerSeat >= 0 {
			opened++
		}
	}
	if opened != 3 {
		t.Fatalf("opened tricks = %d, want 3", opened)
	}
	if len(table.Discard()) != 4 {
		t.Fatalf("discard = %v", table.Discard())
	}
}

func TestPlayRoundChronologicalRanking(t *testing.T) {
	players := seat([]string{"a", "b", "c"}, []Controller{weakest, weakest, weakest}, [][]Card{
		{card(RankThree, SuitClubs), card(RankKing, SuitClubs)},
		{card(RankFour, SuitClubs)},
		{card(RankFive, SuitClubs), card(RankSix, SuitClubs)},
	})
	ranking, err := NewTable(players, Rules{}).PlayRound(context.Background(), 0)
	if err != nil {
		t.Fatalf("PlayRound() error: %v", err)
	}
	// a:3, b:4 (out), c:5, a:K. a led and went out, so c takes the trick and ranks last.
	want := []*Player{players[1], players[0], players[2]}
	for i := range want {
		if ranking[i] != want[i] {
			t.Fatalf("ranking[%d] = %s, want %s", i, ranking[i].ID, want[i].ID)
		}
	}
}

func TestPlayRoundRejectsSingleSeat(t *testing.T) {
	players := seat([]string{"a"}, []Controller{weakest}, [][]Card{{card(RankFive, SuitClubs)}})
	if _, err := NewTable(players, Rules{}).PlayRound(context.Background(), 0); err == nil {
		t.Fatalf("expected error for a single player")
	}
}
