package main

import (
	"context"
	"strings"

	"github.com/pterm/pterm"

	"president/internal/domain"
)

// terminalPlayer asks the person at the keyboard for every decision.
type terminalPlayer struct{}

func (terminalPlayer) PlayTurn(ctx context.Context, turn domain.Turn) (*domain.Move, error) {
	if len(turn.PossibleMoves()) == 0 {
		pterm.Info.Println("You have nothing to play.")
		return nil, nil
	}
	pterm.Info.Printfln("Pile: %s", domain.FormatCards(turn.Pile))
	if turn.RankLock != nil {
		pterm.Warning.Printfln("Play a %s or pass.", *turn.RankLock)
	}
	pterm.Info.Printfln("Your hand: %s", pterm.LightGreen(domain.FormatCards(turn.Hand)))

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		input, err := pterm.DefaultInteractiveTextInput.WithDefaultText("Cards to play (e.g. 7H 7S), empty to pass").Show()
		if err != nil {
			return nil, err
		}
		cards, err := parseCards(input)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if len(cards) == 0 {
			return nil, nil
		}
		m, err := domain.MoveFromCards(cards)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if !domain.IsLegal(m, turn.Hand, turn.LastMove, turn.RankLock) {
			pterm.Error.Printfln("%s cannot be played now", m)
			continue
		}
		return &m, nil
	}
}

// ChooseExchangeCards lets the player choose what to give back. The highest
// cards are taken automatically.
func (terminalPlayer) ChooseExchangeCards(ctx context.Context, hand []domain.Card, count int, highest bool) ([]domain.Card, error) {
	if highest {
		cards := domain.SelectCards(hand, count, true)
		pterm.Warning.Printfln("You must give your best cards: %s", domain.FormatCards(cards))
		return cards, nil
	}
	pterm.Info.Printfln("Your hand: %s", pterm.LightGreen(domain.FormatCards(hand)))
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		input, err := pterm.DefaultInteractiveTextInput.WithDefaultText(pterm.Sprintf("Choose %d card(s) to give", count)).Show()
		if err != nil {
			return nil, err
		}
		cards, err := parseCards(input)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if len(cards) != count || !holds(hand, cards) {
			pterm.Error.Printfln("Pick exactly %d card(s) from your hand", count)
			continue
		}
		return cards, nil
	}
}

func (terminalPlayer) ReceiveCards(cards []domain.Card) {
	pterm.Success.Printfln("You received %s", domain.FormatCards(cards))
}

func parseCards(input string) ([]domain.Card, error) {
	fields := strings.Fields(strings.ToUpper(input))
	cards := make([]domain.Card, 0, len(fields))
	for _, f := range fields {
		c, err := domain.ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func holds(hand, cards []domain.Card) bool {
	left := make(map[domain.Card]int, len(hand))
	for _, c := range hand {
		left[c]++
	}
	for _, c := range cards {
		if left[c] == 0 {
			return false
		}
		left[c]--
	}
	return true
}
