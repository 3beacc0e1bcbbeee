package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"president/internal/domain"
)

var (
	ErrNotOwner      = errors.New("actor is not match owner")
	ErrNotInLobby    = errors.New("match not in lobby")
	ErrNotPlaying    = errors.New("match not in playing phase")
	ErrTooFewPlayers = errors.New("not enough players to start")
	ErrUnknownPlayer = errors.New("player not found")
)

// Service contains Président use-cases operating on domain state.
type Service struct {
	mu     sync.Mutex
	rng    *rand.Rand
	sink   EventSink
	logger domain.Logger
}

// NewService constructs a Service with provided rng or a time-seeded default.
// Events go to sink; a nil sink drops them.
func NewService(rng *rand.Rand, sink EventSink) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if sink == nil {
		sink = SinkFunc(func(Event) {})
	}
	return &Service{rng: rng, sink: sink, logger: domain.NopLogger{}}
}

// SetLogger routes engine logs to logger.
func (s *Service) SetLogger(logger domain.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Seat pairs a user with whatever decides for them.
type Seat struct {
	UserID     string
	Controller domain.Controller
}

// Session is one game: the same players over several rounds.
type Session struct {
	ID     string
	Game   *domain.Game
	Points domain.RolePoints

	svc     *Service
	roundID string
}

// RoundResult summarises a finished round.
type RoundResult struct {
	GameID    string
	RoundID   string
	Round     int
	Ranking   []*domain.Player
	Exchanges []domain.Exchange
	// Points holds the points earned by each user this round.
	Points map[string]int64
}

// CheckStart validates a start request from the seat at actorSeat.
func CheckStart(actorSeat, ownerSeat, occupied int, playing bool) error {
	switch {
	case playing:
		return ErrNotInLobby
	case actorSeat < 0:
		return ErrUnknownPlayer
	case actorSeat != ownerSeat:
		return ErrNotOwner
	case occupied < MinPlayersToStartGame:
		return ErrTooFewPlayers
	}
	return nil
}

// StartGame seats the players in order and announces the game.
func (s *Service) StartGame(seats []Seat, params domain.GameParams, points domain.RolePoints) (*Session, error) {
	if len(seats) < MinPlayersToStartGame {
		return nil, ErrTooFewPlayers
	}
	sess := &Session{ID: uuid.NewString(), Points: points, svc: s}

	params.NumPlayers = len(seats)
	players := make([]*domain.Player, len(seats))
	ids := make([]string, len(seats))
	for i, seat := range seats {
		ids[i] = seat.UserID
		players[i] = domain.NewPlayer(seat.UserID, &announcer{inner: seat.Controller, sess: sess, userID: seat.UserID})
	}
	game, err := domain.NewGame(params, players)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}
	game.Observer = &publisher{sess: sess}
	game.Logger = s.logger
	sess.Game = game

	sess.publish(Event{Kind: EventGameStarted, Payload: GameStartedPayload{Seats: ids}})
	return sess, nil
}

// PlayRound deals, exchanges, plays and settles one round of the session.
func (s *Service) PlayRound(ctx context.Context, sess *Session) (*RoundResult, error) {
	if sess == nil || sess.Game == nil {
		return nil, ErrNotPlaying
	}
	game := sess.Game
	sess.roundID = uuid.NewString()

	s.mu.Lock()
	err := game.Deal(s.rng)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	for _, p := range game.Players {
		sess.publishHand(p)
	}

	exchanges, err := game.Exchange(ctx)
	if err != nil {
		return nil, err
	}
	touched := make(map[*domain.Player]bool)
	for _, ex := range exchanges {
		sess.publish(Event{
			Kind:       EventCardsExchanged,
			Payload:    CardsExchangedPayload{FromUserID: ex.From.ID, ToUserID: ex.To.ID, Cards: ex.Cards},
			Recipients: []string{ex.From.ID, ex.To.ID},
		})
		touched[ex.From], touched[ex.To] = true, true
	}
	for _, p := range game.Players {
		if touched[p] {
			sess.publishHand(p)
		}
	}

	ranking, err := game.Play(ctx)
	if err != nil {
		return nil, err
	}

	points := domain.Settle(ranking, sess.Points)
	ended := RoundEndedPayload{Round: game.Round(), Ranking: make([]RankedPlayer, len(ranking))}
	for i, p := range ranking {
		ended.Ranking[i] = RankedPlayer{UserID: p.ID, Seat: p.Seat, Role: p.Role, Points: points[p.ID]}
	}
	sess.publish(Event{Kind: EventRoundEnded, Payload: ended})
	s.logger.Info("PlayRound: game %s round %d finished, president %s", sess.ID, game.Round(), ranking[0].ID)

	return &RoundResult{
		GameID:    sess.ID,
		RoundID:   sess.roundID,
		Round:     game.Round(),
		Ranking:   ranking,
		Exchanges: exchanges,
		Points:    points,
	}, nil
}

func (sess *Session) publish(ev Event) {
	ev.GameID = sess.ID
	ev.RoundID = sess.roundID
	sess.svc.sink.Publish(ev)
}

func (sess *Session) publishHand(p *domain.Player) {
	sess.publish(Event{
		Kind:       EventHandDealt,
		Payload:    HandDealtPayload{UserID: p.ID, Hand: append([]domain.Card(nil), p.Hand...)},
		Recipients: []string{p.ID},
	})
}

// announcer tells everyone whose decision the table is waiting for.
type announcer struct {
	inner  domain.Controller
	sess   *Session
	userID string
}

func (a *announcer) PlayTurn(ctx context.Context, turn domain.Turn) (*domain.Move, error) {
	payload := TurnRequestedPayload{UserID: a.userID, Seat: turn.Seat, RankLock: turn.RankLock}
	if turn.LastMove != nil {
		payload.LastMove = turn.LastMove.Cards()
	}
	a.sess.publish(Event{Kind: EventTurnRequested, Payload: payload})
	if a.inner == nil {
		return nil, nil
	}
	return a.inner.PlayTurn(ctx, turn)
}

func (a *announcer) ChooseExchangeCards(ctx context.Context, hand []domain.Card, count int, highest bool) ([]domain.Card, error) {
	a.sess.publish(Event{
		Kind:       EventExchangeRequested,
		Payload:    ExchangeRequestedPayload{UserID: a.userID, Count: count, Highest: highest},
		Recipients: []string{a.userID},
	})
	if a.inner == nil {
		return domain.SelectCards(hand, count, highest), nil
	}
	return a.inner.ChooseExchangeCards(ctx, hand, count, highest)
}

func (a *announcer) ReceiveCards(cards []domain.Card) {
	if r, ok := a.inner.(domain.CardReceiver); ok {
		r.ReceiveCards(cards)
	}
}

// publisher turns table notifications into events.
type publisher struct {
	sess *Session
}

func (p *publisher) PileChanged(pile []domain.Card) {
	p.sess.publish(Event{Kind: EventPileChanged, Payload: PileChangedPayload{Pile: pile}})
}

func (p *publisher) MovePlayed(pl *domain.Player, m domain.Move) {
	p.sess.publish(Event{Kind: EventCardPlayed, Payload: CardPlayedPayload{
		UserID:    pl.ID,
		Seat:      pl.Seat,
		Cards:     m.Cards(),
		CardsLeft: len(pl.Hand),
	}})
}

func (p *publisher) TurnPassed(pl *domain.Player, forced bool) {
	p.sess.publish(Event{Kind: EventTurnPassed, Payload: TurnPassedPayload{UserID: pl.ID, Seat: pl.Seat, Forced: forced}})
}

func (p *publisher) TrickEnded(r domain.TrickResult) {
	payload := TrickWonPayload{Reason: r.Reason.String(), Cards: r.Cards}
	if r.Winner != nil {
		payload.WinnerUserID = r.Winner.ID
	}
	if players := p.sess.Game.Players; r.NextLeader >= 0 && r.NextLeader < len(players) {
		payload.NextLeader = players[r.NextLeader].ID
	}
	p.sess.publish(Event{Kind: EventTrickWon, Payload: payload})
}

func (p *publisher) PlayerFinished(pl *domain.Player, position int) {
	p.sess.publish(Event{Kind: EventPlayerFinished, Payload: PlayerFinishedPayload{UserID: pl.ID, Seat: pl.Seat, Position: position}})
}
