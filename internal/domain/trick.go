package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrInvalidSeat     = errors.New("invalid seat")
	ErrNoActivePlayers = errors.New("no player holds cards")
)

// WinReason explains why a trick ended.
type WinReason int

const (
	// WinNone means every player passed before anyone moved.
	WinNone WinReason = iota
	WinTwo
	WinMagicSquare
	// WinLeaderOut is awarded to the next player when the leader empties their hand.
	WinLeaderOut
	WinLastStanding
	WinAttrition
)

func (r WinReason) String() string {
	switch r {
	case WinNone:
		return "none"
	case WinTwo:
		return "two"
	case WinMagicSquare:
		return "magic square"
	case WinLeaderOut:
		return "leader out"
	case WinLastStanding:
		return "last standing"
	case WinAttrition:
		return "everyone passed"
	default:
		return fmt.Sprintf("WinReason(%d)", int(r))
	}
}

// TrickResult describes a resolved trick.
type TrickResult struct {
	Leader     int
	Winner     *Player // nil when nobody moved
	WinnerSeat int     // -1 when nobody moved
	NextLeader int     // -1 when nobody holds cards anymore
	Reason     WinReason
	Cards      []Card
}

// Table runs tricks and rounds for a fixed set of seated players.
type Table struct {
	Players  []*Player
	Rules    Rules
	Observer Observer
	Logger   Logger

	discard  []Card
	finished []*Player

	// autoLead makes the engine open the next trick with the leader's weakest move.
	autoLead bool
}

// NewTable seats players in slice order.
func NewTable(players []*Player, rules Rules) *Table {
	for i, p := range players {
		p.Seat = i
	}
	return &Table{
		Players:  players,
		Rules:    rules,
		Observer: NopObserver{},
		Logger:   NopLogger{},
	}
}

// Discard returns a copy of the discard pile.
func (t *Table) Discard() []Card {
	return copyCards(t.discard)
}

// Finished returns players that emptied their hand, in the order they did.
func (t *Table) Finished() []*Player {
	return append([]*Player(nil), t.finished...)
}

type trick struct {
	leader    int
	pile      []Card
	lastMove  *Move
	lastMover int
	passed    map[int]bool

	// lock applies to the next turn only.
	lock      *Rank
	streak    Rank
	streakLen int
}

// PlayTrick plays one trick starting at leader and returns how it ended.
// It only fails when ctx is done or no player holds cards; player faults are passes.
func (t *Table) PlayTrick(ctx context.Context, leader int) (TrickResult, error) {
	if leader < 0 || leader >= len(t.Players) {
		return TrickResult{}, fmt.Errorf("%w: leader %d", ErrInvalidSeat, leader)
	}
	if !t.Players[leader].HasCards() {
		leader = t.nextActive(leader)
		if leader < 0 {
			return TrickResult{}, ErrNoActivePlayers
		}
	}

	tr := &trick{leader: leader, lastMover: -1, passed: make(map[int]bool)}
	seat := leader
	for {
		if err := ctx.Err(); err != nil {
			return TrickResult{}, err
		}

		player := t.Players[seat]
		lock := tr.lock
		tr.lock = nil

		move, err := t.takeTurn(ctx, seat, tr, lock)
		if err != nil {
			return TrickResult{}, err
		}

		if move == nil {
			// A pass under the lock still leaves the trick; it only skips the turn for this trick.
			tr.streakLen = 0
			tr.passed[seat] = true
			t.Observer.TurnPassed(player, lock != nil)
			if winner, reason, done := t.checkPasses(tr); done {
				return t.resolve(tr, winner, reason), nil
			}
		} else {
			t.apply(tr, seat, *move, lock != nil)
			if winner, reason, done := t.checkInstantWin(tr, seat, *move); done {
				return t.resolve(tr, winner, reason), nil
			}
		}

		next := t.nextTurn(tr, seat)
		if next < 0 || next == tr.lastMover && tr.passedAllBut(t.Players, next) {
			if tr.lastMover < 0 {
				return t.resolve(tr, -1, WinNone), nil
			}
			return t.resolve(tr, tr.lastMover, WinAttrition), nil
		}
		seat = next
	}
}

// takeTurn asks the seat's controller for a move and returns nil for a pass.
func (t *Table) takeTurn(ctx context.Context, seat int, tr *trick, lock *Rank) (*Move, error) {
	player := t.Players[seat]
	if t.autoLead && seat == tr.leader && tr.lastMover < 0 {
		t.autoLead = false
		moves := PossibleMoves(player.Hand, nil, nil)
		t.Logger.Warn("Trick: table stalled, %s opens with %s", player, moves[0])
		return &moves[0], nil
	}
	if lock != nil && len(PossibleMoves(player.Hand, tr.lastMove, lock)) == 0 {
		t.Logger.Debug("Trick: %s cannot follow locked rank %s", player, *lock)
		return nil, nil
	}

	turn := Turn{
		Seat:        seat,
		Hand:        copyCards(player.Hand),
		Pile:        copyCards(tr.pile),
		DiscardPile: copyCards(t.discard),
		RankLock:    lock,
		HandSizes:   make([]int, len(t.Players)),
	}
	for i, p := range t.Players {
		turn.HandSizes[i] = len(p.Hand)
	}
	if tr.lastMove != nil {
		last := *tr.lastMove
		turn.LastMove = &last
	}

	move, err := t.askController(ctx, player, turn)
	if err != nil {
		return nil, err
	}
	if move == nil {
		return nil, nil
	}
	if !IsLegal(*move, player.Hand, tr.lastMove, lock) {
		t.Logger.Debug("Trick: %s played illegal move %s, counted as a pass", player, move)
		return nil, nil
	}
	return move, nil
}

// askController isolates the table from faulty controllers: errors and panics
// become passes. Only a done context is reported back.
func (t *Table) askController(ctx context.Context, player *Player, turn Turn) (move *Move, err error) {
	if player.Controller == nil {
		return nil, nil
	}
	defer func() {
		if r := recover(); r != nil {
			t.Logger.Warn("Trick: %s panicked while playing: %v", player, r)
			move, err = nil, nil
		}
	}()

	move, err = player.Controller.PlayTurn(ctx, turn)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		t.Logger.Warn("Trick: %s failed to play, counted as a pass: %v", player, err)
		return nil, nil
	}
	return move, nil
}

func (t *Table) apply(tr *trick, seat int, m Move, forced bool) {
	player := t.Players[seat]
	player.Hand = RemoveCards(player.Hand, m.cards)
	tr.pile = append(tr.pile, m.cards...)
	tr.lastMove = &m
	tr.lastMover = seat
	clear(tr.passed)

	switch {
	case forced:
		tr.streakLen = 0
	case tr.streakLen > 0 && tr.streak == m.Rank():
		tr.streakLen++
	default:
		tr.streak = m.Rank()
		tr.streakLen = 1
	}
	if t.Rules.ForcePlay && tr.streakLen >= 2 {
		rank := m.Rank()
		tr.lock = &rank
		tr.streakLen = 0
	}

	t.Observer.MovePlayed(player, m)
	t.Observer.PileChanged(copyCards(tr.pile))

	if !player.HasCards() {
		t.finish(player)
	}
}

func (t *Table) checkInstantWin(tr *trick, seat int, m Move) (int, WinReason, bool) {
	switch {
	case m.ContainsRank(RankTwo):
		return seat, WinTwo, true
	case t.Rules.MagicSquare && isMagicSquare(tr.pile):
		return seat, WinMagicSquare, true
	case seat == tr.leader && !t.Players[seat].HasCards():
		winner := t.nextActive(seat)
		if winner < 0 {
			winner = seat
		}
		return winner, WinLeaderOut, true
	case t.activeExcept(seat) == 0:
		return seat, WinLastStanding, true
	}
	return 0, WinNone, false
}

// checkPasses ends the trick once every card holder other than the last mover passed.
func (t *Table) checkPasses(tr *trick) (int, WinReason, bool) {
	if !tr.passedAllBut(t.Players, tr.lastMover) {
		return 0, WinNone, false
	}
	if tr.lastMover < 0 {
		return -1, WinNone, true
	}
	return tr.lastMover, WinAttrition, true
}

func (tr *trick) passedAllBut(players []*Player, seat int) bool {
	for s, p := range players {
		if s == seat || !p.HasCards() {
			continue
		}
		if !tr.passed[s] {
			return false
		}
	}
	return true
}

// resolve moves the pile to the discard and picks the next leader.
func (t *Table) resolve(tr *trick, winner int, reason WinReason) TrickResult {
	cards := tr.pile
	tr.pile = nil
	t.discard = append(t.discard, cards...)

	res := TrickResult{
		Leader:     tr.leader,
		WinnerSeat: winner,
		Reason:     reason,
		Cards:      cards,
	}
	if winner >= 0 {
		res.Winner = t.Players[winner]
		res.NextLeader = winner
		if !res.Winner.HasCards() {
			res.NextLeader = t.nextActive(winner)
		}
	} else {
		res.NextLeader = t.nextActive(tr.leader)
	}

	if len(cards) > 0 {
		t.Observer.PileChanged([]Card{})
	}
	t.Observer.TrickEnded(res)
	return res
}

func (t *Table) finish(p *Player) {
	t.finished = append(t.finished, p)
	t.Observer.PlayerFinished(p, len(t.finished))
}

// nextTurn returns the next seat after from that holds cards and has not passed.
func (t *Table) nextTurn(tr *trick, from int) int {
	n := len(t.Players)
	for i := 1; i <= n; i++ {
		s := (from + i) % n
		if t.Players[s].HasCards() && !tr.passed[s] {
			return s
		}
	}
	return -1
}

// nextActive returns the next seat after from that holds cards, possibly from itself.
func (t *Table) nextActive(from int) int {
	n := len(t.Players)
	for i := 1; i <= n; i++ {
		s := (from + i) % n
		if t.Players[s].HasCards() {
			return s
		}
	}
	return -1
}

func (t *Table) activeExcept(seat int) int {
	n := 0
	for s, p := range t.Players {
		if s != seat && p.HasCards() {
			n++
		}
	}
	return n
}
