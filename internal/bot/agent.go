package bot

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"president/internal/domain"
)

// Agent represents an autonomous bot player. It satisfies domain.Controller.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// PlayTurn asks the strategy for a move. A seat with no legal move passes.
func (a *Agent) PlayTurn(ctx context.Context, turn domain.Turn) (*domain.Move, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	moves := turn.PossibleMoves()
	if len(moves) == 0 {
		return nil, nil
	}
	return a.Strategy.ChooseMove(turn, moves), nil
}

func (a *Agent) ChooseExchangeCards(ctx context.Context, hand []domain.Card, count int, highest bool) ([]domain.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return a.Strategy.ChooseExchange(hand, count, highest), nil
}

func (a *Agent) ReceiveCards(cards []domain.Card) {
	if r, ok := a.Strategy.(receiver); ok {
		r.ReceiveCards(cards)
	}
}

type delayed struct {
	inner  domain.Controller
	lo, hi time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// Delayed wraps a controller so that every decision takes between lo and hi.
// The wait ends early when ctx is cancelled.
func Delayed(inner domain.Controller, lo, hi time.Duration, rng *rand.Rand) domain.Controller {
	if hi < lo {
		hi = lo
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &delayed{inner: inner, lo: lo, hi: hi, rng: rng}
}

func (d *delayed) PlayTurn(ctx context.Context, turn domain.Turn) (*domain.Move, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	return d.inner.PlayTurn(ctx, turn)
}

func (d *delayed) ChooseExchangeCards(ctx context.Context, hand []domain.Card, count int, highest bool) ([]domain.Card, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	return d.inner.ChooseExchangeCards(ctx, hand, count, highest)
}

func (d *delayed) ReceiveCards(cards []domain.Card) {
	if r, ok := d.inner.(domain.CardReceiver); ok {
		r.ReceiveCards(cards)
	}
}

func (d *delayed) wait(ctx context.Context) error {
	pause := d.lo
	if span := d.hi - d.lo; span > 0 {
		d.mu.Lock()
		pause += time.Duration(d.rng.Int63n(int64(span) + 1))
		d.mu.Unlock()
	}
	if pause <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(pause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
