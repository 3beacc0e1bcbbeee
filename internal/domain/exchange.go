package domain

import (
	"context"
	"fmt"
	"sort"
)

// Exchange records cards handed from one player to another between rounds.
type Exchange struct {
	From  *Player
	To    *Player
	Cards []Card
}

// SelectCards picks count cards from hand by rank only: the highest ones when
// highest is set, the lowest ones otherwise. Equal ranks keep hand order.
func SelectCards(hand []Card, count int, highest bool) []Card {
	sorted := copyCards(hand)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })
	if count > len(sorted) {
		count = len(sorted)
	}
	if count <= 0 {
		return nil
	}
	if highest {
		return sorted[len(sorted)-count:]
	}
	return sorted[:count]
}

type exchangePair struct {
	better *Player
	worse  *Player
	count  int
}

// ExchangeCards runs the between-round exchange for the previous ranking.
// The best ranked player gives their highest cards to the worst ranked one,
// who gives back their lowest; vice roles swap one card when both exist and
// are distinct. All selections are made before any card moves.
func ExchangeCards(ctx context.Context, ranking []*Player, logger Logger) ([]Exchange, error) {
	if logger == nil {
		logger = NopLogger{}
	}
	n := len(ranking)
	if n < 2 {
		return nil, nil
	}

	pairs := []exchangePair{{better: ranking[0], worse: ranking[n-1], count: 2}}
	if n >= 4 && ranking[1] != ranking[n-2] {
		pairs = append(pairs, exchangePair{better: ranking[1], worse: ranking[n-2], count: 1})
	}

	var exchanges []Exchange
	for _, pair := range pairs {
		up, err := chooseForExchange(ctx, pair.better, pair.count, true, logger)
		if err != nil {
			return nil, err
		}
		down, err := chooseForExchange(ctx, pair.worse, pair.count, false, logger)
		if err != nil {
			return nil, err
		}
		exchanges = append(exchanges,
			Exchange{From: pair.better, To: pair.worse, Cards: up},
			Exchange{From: pair.worse, To: pair.better, Cards: down},
		)
	}

	for _, ex := range exchanges {
		ex.From.Hand = RemoveCards(ex.From.Hand, ex.Cards)
	}
	for _, ex := range exchanges {
		ex.To.Hand = append(ex.To.Hand, ex.Cards...)
		SortHand(ex.To.Hand)
		if r, ok := ex.To.Controller.(CardReceiver); ok {
			r.ReceiveCards(copyCards(ex.Cards))
		}
	}
	return exchanges, nil
}

// chooseForExchange asks the controller which cards to give and falls back to
// SelectCards when the answer is unusable. The chosen ranks must match the
// automatic selection; only the suits among tied ranks are free.
func chooseForExchange(ctx context.Context, p *Player, count int, highest bool, logger Logger) ([]Card, error) {
	auto := SelectCards(p.Hand, count, highest)
	if p.Controller == nil {
		return auto, nil
	}

	chosen, err := safeChoose(ctx, p, count, highest)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Warn("Exchange: %s failed to choose cards, using automatic selection: %v", p, err)
		return auto, nil
	}
	if !validExchange(p.Hand, chosen, auto) {
		logger.Debug("Exchange: %s chose invalid cards %v, using automatic selection", p, chosen)
		return auto, nil
	}
	return copyCards(chosen), nil
}

func safeChoose(ctx context.Context, p *Player, count int, highest bool) (cards []Card, err error) {
	defer func() {
		if r := recover(); r != nil {
			cards, err = nil, errPanicked(r)
		}
	}()
	return p.Controller.ChooseExchangeCards(ctx, copyCards(p.Hand), count, highest)
}

func validExchange(hand, chosen, auto []Card) bool {
	if len(chosen) != len(auto) || !ContainsCards(hand, chosen) {
		return false
	}
	want := make(map[Rank]int)
	for _, c := range auto {
		want[c.Rank]++
	}
	for _, c := range chosen {
		want[c.Rank]--
		if want[c.Rank] < 0 {
			return false
		}
	}
	return true
}

func errPanicked(v interface{}) error {
	return fmt.Errorf("controller panicked: %v", v)
}
