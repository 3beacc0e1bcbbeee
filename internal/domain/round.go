package domain

import (
	"context"
	"fmt"
)

// PlayRound plays tricks from leader until at most one player holds cards and
// returns the ranking: players in the order they emptied their hand, followed
// by the remaining players in seat order. Leftover cards go to the discard.
func (t *Table) PlayRound(ctx context.Context, leader int) ([]*Player, error) {
	if len(t.Players) < 2 {
		return nil, fmt.Errorf("%w: %d players seated", ErrPlayerCount, len(t.Players))
	}
	t.discard = nil
	t.finished = nil

	// Consecutive tricks nobody opened. Once every active player declined to
	// open, the next leader's weakest move is played for them.
	stalled := 0
	for CountPlayersWithCards(t.Players) > 1 {
		t.autoLead = stalled >= CountPlayersWithCards(t.Players)
		res, err := t.PlayTrick(ctx, leader)
		if err != nil {
			return nil, err
		}
		if res.WinnerSeat < 0 {
			stalled++
		} else {
			stalled = 0
		}
		t.Logger.Debug("Round: trick won by seat %d (%s), next leader %d", res.WinnerSeat, res.Reason, res.NextLeader)
		if res.NextLeader >= 0 {
			leader = res.NextLeader
		}
	}

	ranking := t.Finished()
	ranked := make(map[*Player]bool, len(ranking))
	for _, p := range ranking {
		ranked[p] = true
	}
	for _, p := range t.Players {
		if ranked[p] {
			continue
		}
		t.discard = append(t.discard, p.Hand...)
		p.Hand = nil
		t.finish(p)
		ranking = append(ranking, p)
	}
	return ranking, nil
}
