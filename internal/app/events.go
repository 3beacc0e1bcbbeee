package app

import "president/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventGameStarted       EventKind = "game_started"
	EventHandDealt         EventKind = "hand_dealt"
	EventExchangeRequested EventKind = "exchange_requested"
	EventCardsExchanged    EventKind = "cards_exchanged"
	EventTurnRequested     EventKind = "turn_requested"
	EventCardPlayed        EventKind = "card_played"
	EventTurnPassed        EventKind = "turn_passed"
	EventPileChanged       EventKind = "pile_changed"
	EventTrickWon          EventKind = "trick_won"
	EventPlayerFinished    EventKind = "player_finished"
	EventRoundEnded        EventKind = "round_ended"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	GameID     string
	RoundID    string
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

// EventSink receives events in the order they happen.
type EventSink interface {
	Publish(ev Event)
}

// SinkFunc adapts a function to an EventSink.
type SinkFunc func(ev Event)

func (f SinkFunc) Publish(ev Event) { f(ev) }

type GameStartedPayload struct {
	Seats []string
}

type HandDealtPayload struct {
	UserID string
	Hand   []domain.Card
}

type ExchangeRequestedPayload struct {
	UserID  string
	Count   int
	Highest bool
}

type CardsExchangedPayload struct {
	FromUserID string
	ToUserID   string
	Cards      []domain.Card
}

type TurnRequestedPayload struct {
	UserID   string
	Seat     int
	LastMove []domain.Card
	// RankLock is set when the player must follow the locked rank or pass.
	RankLock *domain.Rank
}

type CardPlayedPayload struct {
	UserID    string
	Seat      int
	Cards     []domain.Card
	CardsLeft int
}

type TurnPassedPayload struct {
	UserID string
	Seat   int
	Forced bool
}

type PileChangedPayload struct {
	Pile []domain.Card
}

type TrickWonPayload struct {
	// WinnerUserID is empty when everyone passed.
	WinnerUserID string
	Reason       string
	Cards        []domain.Card
	NextLeader   string
}

type PlayerFinishedPayload struct {
	UserID   string
	Seat     int
	Position int
}

type RankedPlayer struct {
	UserID string
	Seat   int
	Role   domain.Role
	Points int64
}

type RoundEndedPayload struct {
	Round   int
	Ranking []RankedPlayer
}
