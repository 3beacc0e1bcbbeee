package brain

import (
	"president/internal/domain"
)

// CardStatus represents what the bot knows about a specific card.
type CardStatus int

const (
	StatusUnknown  CardStatus = iota // We don't know who has it
	StatusMine                       // In the bot's hand
	StatusPlayed                     // On the pile or in the discard
	StatusOpponent                   // Known to be in an opponent's hand
)

// GameMemory stores the bot's private "view" of the round.
type GameMemory struct {
	// DeckStatus tracks all 52 cards. Index = Rank*4 + Suit.
	DeckStatus [domain.DeckSize]CardStatus
	// seen is how many cards were on the table at the last observation.
	seen int
}

// NewMemory initializes a fresh memory state.
func NewMemory() *GameMemory {
	return &GameMemory{}
}

// Reset clears the memory for a new round.
func (m *GameMemory) Reset() {
	for i := range m.DeckStatus {
		m.DeckStatus[i] = StatusUnknown
	}
	m.seen = 0
}

// MarkMine records the cards currently in the bot's hand.
func (m *GameMemory) MarkMine(cards []domain.Card) {
	m.mark(cards, StatusMine)
}

// MarkPlayed records cards that have been played on the table.
func (m *GameMemory) MarkPlayed(cards []domain.Card) {
	m.mark(cards, StatusPlayed)
}

// MarkOpponent records cards known to be with opponents, such as cards given away.
func (m *GameMemory) MarkOpponent(cards []domain.Card) {
	m.mark(cards, StatusOpponent)
}

// UpdateHand marks the hand as Mine and forgets cards that used to be Mine.
func (m *GameMemory) UpdateHand(hand []domain.Card) {
	for i, status := range m.DeckStatus {
		if status == StatusMine {
			m.DeckStatus[i] = StatusUnknown
		}
	}
	m.MarkMine(hand)
}

// Observe syncs the memory with a turn. Table cards only grow during a round,
// so fewer cards than last time means a new round started.
func (m *GameMemory) Observe(turn domain.Turn) {
	seen := len(turn.DiscardPile) + len(turn.Pile)
	if seen < m.seen {
		m.Reset()
	}
	m.seen = seen
	m.MarkPlayed(turn.DiscardPile)
	m.MarkPlayed(turn.Pile)
	m.UpdateHand(turn.Hand)
}

// Outstanding counts the cards of a rank that may still be played against us.
func (m *GameMemory) Outstanding(rank domain.Rank) int {
	n := 0
	for suit := domain.Suit(0); suit < domain.NumSuits; suit++ {
		switch m.DeckStatus[cardToIndex(domain.Card{Rank: rank, Suit: suit})] {
		case StatusUnknown, StatusOpponent:
			n++
		}
	}
	return n
}

// Beatable reports whether an opponent could still cover size cards of rank.
// Equal ranks cover, so the rank itself is included.
func (m *GameMemory) Beatable(rank domain.Rank, size int) bool {
	for r := rank; r < domain.NumRanks; r++ {
		if m.Outstanding(r) >= size {
			return true
		}
	}
	return false
}

// IsBoss returns true if no opponent can cover the card.
func (m *GameMemory) IsBoss(c domain.Card) bool {
	return !m.Beatable(c.Rank, 1)
}

// IsPlayed returns true if the card is already out of the game.
func (m *GameMemory) IsPlayed(c domain.Card) bool {
	return m.DeckStatus[cardToIndex(c)] == StatusPlayed
}

func (m *GameMemory) mark(cards []domain.Card, status CardStatus) {
	for _, c := range cards {
		if c.Valid() {
			m.DeckStatus[cardToIndex(c)] = status
		}
	}
}

// cardToIndex converts domain.Card to a 0-51 index.
// Rank: 0 (3) to 12 (2). Suit: 0 (Clubs) to 3 (Spades).
func cardToIndex(c domain.Card) int {
	return int(c.Rank)*domain.NumSuits + int(c.Suit)
}
