package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"president/internal/domain"
)

var (
	ErrNotYourTurn      = errors.New("not your turn")
	ErrTurnTimeout      = errors.New("turn timed out")
	ErrNoRequest        = errors.New("no exchange requested")
	ErrInvalidSelection = errors.New("invalid card selection")
	ErrIllegalMove      = errors.New("illegal move")
)

type requestKind int

const (
	requestTurn requestKind = iota + 1
	requestExchange
)

type request struct {
	kind    requestKind
	turn    domain.Turn
	hand    []domain.Card
	count   int
	highest bool
	reply   chan submission
}

type submission struct {
	move  *domain.Move
	cards []domain.Card
}

// RemotePlayer is a Controller driven by a human over the network. The engine
// blocks in PlayTurn or ChooseExchangeCards until the matching Submit call.
type RemotePlayer struct {
	UserID string
	// TurnTimeout ends an unanswered turn as a pass. Zero waits forever.
	TurnTimeout time.Duration
	// ExchangeTimeout falls back to the automatic selection. Zero waits forever.
	ExchangeTimeout time.Duration

	mu      sync.Mutex
	pending *request
}

func NewRemotePlayer(userID string, turnTimeout time.Duration) *RemotePlayer {
	return &RemotePlayer{UserID: userID, TurnTimeout: turnTimeout, ExchangeTimeout: turnTimeout}
}

func (r *RemotePlayer) PlayTurn(ctx context.Context, turn domain.Turn) (*domain.Move, error) {
	sub, err := r.wait(ctx, &request{kind: requestTurn, turn: turn}, r.TurnTimeout, ErrTurnTimeout)
	if err != nil {
		return nil, err
	}
	return sub.move, nil
}

func (r *RemotePlayer) ChooseExchangeCards(ctx context.Context, hand []domain.Card, count int, highest bool) ([]domain.Card, error) {
	req := &request{kind: requestExchange, hand: hand, count: count, highest: highest}
	sub, err := r.wait(ctx, req, r.ExchangeTimeout, ErrTurnTimeout)
	if err != nil {
		return nil, err
	}
	return sub.cards, nil
}

func (r *RemotePlayer) wait(ctx context.Context, req *request, timeout time.Duration, timeoutErr error) (submission, error) {
	req.reply = make(chan submission, 1)
	r.mu.Lock()
	r.pending = req
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		if r.pending == req {
			r.pending = nil
		}
		r.mu.Unlock()
	}()

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}
	select {
	case sub := <-req.reply:
		return sub, nil
	case <-ctx.Done():
		return submission{}, ctx.Err()
	case <-expired:
		return submission{}, timeoutErr
	}
}

// Waiting reports whether the player is expected to play or exchange.
func (r *RemotePlayer) Waiting() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending != nil
}

// SubmitMove plays cards for the pending turn. The move is checked here so the
// client gets an error instead of a silent pass.
func (r *RemotePlayer) SubmitMove(cards []domain.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req := r.pending
	if req == nil || req.kind != requestTurn {
		return ErrNotYourTurn
	}
	move, err := domain.MoveFromCards(cards)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}
	if !domain.IsLegal(move, req.turn.Hand, req.turn.LastMove, req.turn.RankLock) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, move)
	}
	r.answer(submission{move: &move})
	return nil
}

// SubmitPass passes the pending turn.
func (r *RemotePlayer) SubmitPass() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending == nil || r.pending.kind != requestTurn {
		return ErrNotYourTurn
	}
	r.answer(submission{})
	return nil
}

// SubmitExchange hands over cards for the pending exchange. Giving the highest
// cards must match their ranks; giving the lowest is a free choice.
func (r *RemotePlayer) SubmitExchange(cards []domain.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req := r.pending
	if req == nil || req.kind != requestExchange {
		return ErrNoRequest
	}
	need := min(req.count, len(req.hand))
	if len(cards) != need || !domain.ContainsCards(req.hand, cards) {
		return fmt.Errorf("%w: need %d cards from your hand", ErrInvalidSelection, need)
	}
	if !sameRanks(cards, domain.SelectCards(req.hand, need, req.highest)) {
		if req.highest {
			return fmt.Errorf("%w: must give your highest cards", ErrInvalidSelection)
		}
		return fmt.Errorf("%w: must give your lowest cards", ErrInvalidSelection)
	}
	r.answer(submission{cards: append([]domain.Card(nil), cards...)})
	return nil
}

// answer must be called with mu held.
func (r *RemotePlayer) answer(sub submission) {
	r.pending.reply <- sub
	r.pending = nil
}

func sameRanks(a, b []domain.Card) bool {
	counts := make(map[domain.Rank]int)
	for _, c := range a {
		counts[c.Rank]++
	}
	for _, c := range b {
		counts[c.Rank]--
	}
	for _, n := range counts {
		if n != 0 {
			return false
		}
	}
	return true
}
