package domain

import (
	"context"
	"fmt"
)

// Role is the social rank a player earns at the end of a round.
type Role int

const (
	RoleNeutral Role = iota
	RolePresident
	RoleVicePresident
	RoleViceAsshole
	RoleAsshole
)

func (r Role) String() string {
	switch r {
	case RoleNeutral:
		return "Neutral"
	case RolePresident:
		return "President"
	case RoleVicePresident:
		return "Vice-President"
	case RoleViceAsshole:
		return "Vice-Asshole"
	case RoleAsshole:
		return "Asshole"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Turn is what a controller sees when asked to play. Every slice is a copy.
type Turn struct {
	Seat        int
	Hand        []Card
	Pile        []Card
	DiscardPile []Card
	LastMove    *Move
	RankLock    *Rank
	// HandSizes is the number of cards each seat holds.
	HandSizes []int
}

// PossibleMoves lists the legal moves for this turn.
func (t Turn) PossibleMoves() []Move {
	return PossibleMoves(t.Hand, t.LastMove, t.RankLock)
}

// Controller decides for a seat. A nil move from PlayTurn is a pass.
type Controller interface {
	PlayTurn(ctx context.Context, turn Turn) (*Move, error)
	ChooseExchangeCards(ctx context.Context, hand []Card, count int, highest bool) ([]Card, error)
}

// CardReceiver is implemented by controllers that want to know which cards
// they were given during an exchange.
type CardReceiver interface {
	ReceiveCards(cards []Card)
}

// Player is a seat at the table. Hand and Role are owned by the engine.
type Player struct {
	ID         string
	Seat       int
	Hand       []Card
	Role       Role
	Controller Controller
}

// NewPlayer creates a neutral player with an empty hand.
func NewPlayer(id string, controller Controller) *Player {
	return &Player{ID: id, Role: RoleNeutral, Controller: controller}
}

func (p *Player) HasCards() bool {
	return len(p.Hand) > 0
}

func (p *Player) String() string {
	return fmt.Sprintf("%s(seat %d)", p.ID, p.Seat)
}
