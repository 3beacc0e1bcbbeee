package domain

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrPlayerCount is returned when the seated players do not match the configuration.
var ErrPlayerCount = errors.New("invalid player count")

// MinPlayers is the smallest table a round can be played at.
const MinPlayers = 2

// Game holds players across rounds and remembers the last ranking for the
// next exchange.
type Game struct {
	Params   GameParams
	Players  []*Player
	Observer Observer
	Logger   Logger

	round   int
	ranking []*Player
}

// NewGame validates the player list against params and seats the players.
func NewGame(params GameParams, players []*Player) (*Game, error) {
	g := &Game{
		Params:   params,
		Players:  players,
		Observer: NopObserver{},
		Logger:   NopLogger{},
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	for i, p := range players {
		p.Seat = i
		p.Role = RoleNeutral
	}
	return g, nil
}

func (g *Game) validate() error {
	n := g.Params.NumPlayers
	if n < MinPlayers || n > DeckSize {
		return fmt.Errorf("%w: configured for %d, need between %d and %d", ErrPlayerCount, n, MinPlayers, DeckSize)
	}
	if len(g.Players) != n {
		return fmt.Errorf("%w: configured for %d, got %d players", ErrPlayerCount, n, len(g.Players))
	}
	for i, p := range g.Players {
		if p == nil {
			return fmt.Errorf("%w: seat %d is empty", ErrPlayerCount, i)
		}
	}
	return nil
}

// Round is the number of rounds completed.
func (g *Game) Round() int {
	return g.round
}

// Ranking is the ranking of the last completed round, or nil.
func (g *Game) Ranking() []*Player {
	return append([]*Player(nil), g.ranking...)
}

// Leader is the seat that opens the next round: last place of the previous
// round, or seat 0 for the first round.
func (g *Game) Leader() int {
	if len(g.ranking) == 0 {
		return 0
	}
	return g.ranking[len(g.ranking)-1].Seat
}

// Deal shuffles a fresh deck and deals it round-robin from seat 0.
func (g *Game) Deal(rng *rand.Rand) error {
	if err := g.validate(); err != nil {
		return err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	for _, p := range g.Players {
		p.Hand = nil
	}
	deck := ShuffleDeck(rng, NewDeck())
	for i, c := range deck {
		p := g.Players[i%len(g.Players)]
		p.Hand = append(p.Hand, c)
	}
	for _, p := range g.Players {
		SortHand(p.Hand)
	}
	return nil
}

// Exchange swaps cards according to the previous ranking. It does nothing
// before the first round.
func (g *Game) Exchange(ctx context.Context) ([]Exchange, error) {
	if len(g.ranking) == 0 {
		return nil, nil
	}
	return ExchangeCards(ctx, g.ranking, g.Logger)
}

// Play runs the round on the dealt hands, assigns roles and stores the ranking.
func (g *Game) Play(ctx context.Context) ([]*Player, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	table := NewTable(g.Players, g.Params.Rules)
	table.Observer = g.Observer
	table.Logger = g.Logger

	ranking, err := table.PlayRound(ctx, g.Leader())
	if err != nil {
		return nil, err
	}
	AssignRoles(ranking)
	g.ranking = ranking
	g.round++
	return append([]*Player(nil), ranking...), nil
}

// PlayRound deals, exchanges and plays one full round.
func (g *Game) PlayRound(ctx context.Context, rng *rand.Rand) ([]*Player, error) {
	if err := g.Deal(rng); err != nil {
		return nil, err
	}
	if _, err := g.Exchange(ctx); err != nil {
		return nil, err
	}
	return g.Play(ctx)
}
