package nakama

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"president/internal/app"
	"president/internal/bot"
	"president/internal/config"
	"president/internal/ports"
)

const (
	MatchLabelKey_OpenSeats = "open" // Key for the open seats in the match label

	tickRate              = 5
	eventBuffer           = 256
	nextRoundDelaySeconds = 4
)

type roundOutcome struct {
	result *app.RoundResult
	err    error
}

// eventSink hands events from the round goroutine to MatchLoop.
type eventSink struct {
	events chan<- app.Event
	done   <-chan struct{}
}

func (s eventSink) Publish(ev app.Event) {
	select {
	case s.events <- ev:
	case <-s.done:
	}
}

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats     []string                    `json:"seats"`      // User IDs, empty string means seat is empty
	OwnerSeat int                         `json:"owner_seat"` // Seat index of the match owner
	Tick      int64                       `json:"tick"`
	Presences map[string]runtime.Presence `json:"-"` // Map UserId -> Presence for targeted messaging
	App       *app.Service                `json:"-"`
	Config    *config.GameConfig          `json:"-"`
	Session   *app.Session                `json:"-"` // Current game (nil if in lobby)

	Remotes   map[string]*app.RemotePlayer `json:"-"`
	Bots      map[string]bool              `json:"-"` // Bot seats
	CardsLeft map[string]int               `json:"cards_left"`
	Totals    map[string]int64             `json:"totals"` // Points earned this game

	BotsEnabled          bool          `json:"bots_enabled"`
	BotAutoFillDelay     int           `json:"bot_auto_fill_delay"` // Seconds to wait before auto-filling with bots
	LastSinglePlayerTick int64         `json:"last_single_player_tick"`
	BotMinDelay          time.Duration `json:"-"`
	BotMaxDelay          time.Duration `json:"-"`
	TurnTimeout          time.Duration `json:"-"`
	NextRoundTick        int64         `json:"next_round_tick"` // 0 when no round is scheduled
	Round                int           `json:"round"`           // Rounds finished in the current game

	Economy  ports.EconomyPort `json:"-"`
	Registry *bot.Registry     `json:"-"`

	events   chan app.Event
	results  chan roundOutcome // nil while no round runs
	done     chan struct{}
	cancel   context.CancelFunc
	stopOnce sync.Once
}

func newMatchState(cfg *config.GameConfig, economy ports.EconomyPort, registry *bot.Registry) *MatchState {
	s := &MatchState{
		Seats:            make([]string, cfg.Players),
		OwnerSeat:        -1,
		Presences:        make(map[string]runtime.Presence),
		Config:           cfg,
		Remotes:          make(map[string]*app.RemotePlayer),
		Bots:             make(map[string]bool),
		CardsLeft:        make(map[string]int),
		Totals:           make(map[string]int64),
		BotAutoFillDelay: cfg.BotAutoFillDelaySeconds,
		BotMinDelay:      time.Duration(cfg.BotMinDelayMs) * time.Millisecond,
		BotMaxDelay:      time.Duration(cfg.BotMaxDelayMs) * time.Millisecond,
		TurnTimeout:      time.Duration(cfg.TurnDurationSeconds) * time.Second,
		Economy:          economy,
		Registry:         registry,
		events:           make(chan app.Event, eventBuffer),
		done:             make(chan struct{}),
	}
	s.App = app.NewService(nil, eventSink{events: s.events, done: s.done})
	return s
}

// applyEnv reads the runtime environment overrides.
func (s *MatchState) applyEnv(env map[string]string) {
	if val, ok := env["president_bots_enabled"]; ok {
		s.BotsEnabled = val == "true"
	}
	if i, ok := envInt(env, "president_turn_duration_sec"); ok {
		s.TurnTimeout = time.Duration(i) * time.Second
	}
	if i, ok := envInt(env, "president_bot_auto_fill_delay_sec"); ok {
		s.BotAutoFillDelay = i
	}
	if i, ok := envInt(env, "president_bot_min_delay_ms"); ok {
		s.BotMinDelay = time.Duration(i) * time.Millisecond
	}
	if i, ok := envInt(env, "president_bot_max_delay_ms"); ok {
		s.BotMaxDelay = time.Duration(i) * time.Millisecond
	}
}

func envInt(env map[string]string, key string) (int, bool) {
	val, ok := env[key]
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(val)
	return i, err == nil
}

// stop cancels the running round and releases a blocked publisher.
func (s *MatchState) stop() {
	s.stopOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		close(s.done)
	})
}

func (s *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range s.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (s *MatchState) GetOccupiedSeatCount() int {
	return len(s.Seats) - s.GetOpenSeatsCount()
}

func (s *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range s.Seats {
		if seat != "" && !s.isBot(seat) {
			count++
		}
	}
	return count
}

func (s *MatchState) isBot(userID string) bool {
	return s.Bots[userID] || (s.Registry != nil && s.Registry.IsBot(userID))
}

func (s *MatchState) seatOf(userID string) int {
	for i, seat := range s.Seats {
		if seat == userID {
			return i
		}
	}
	return -1
}

// isHumanSeat reports whether the seat index belongs to a human player.
func (s *MatchState) isHumanSeat(seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(s.Seats) {
		return false
	}
	userID := s.Seats[seatIndex]
	return userID != "" && !s.isBot(userID)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func (s *MatchState) findFirstHumanSeat() int {
	for i := range s.Seats {
		if s.isHumanSeat(i) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func (s *MatchState) shouldTerminateNoHumans() bool {
	return s.findFirstHumanSeat() == -1
}

func (s *MatchState) displayName(userID string) string {
	if p, ok := s.Presences[userID]; ok && p.GetUsername() != "" {
		return p.GetUsername()
	}
	if s.Registry != nil {
		if identity, ok := s.Registry.Lookup(userID); ok {
			return identity.Name()
		}
	}
	return userID
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return newMatchHandler(), nil
}

type matchHandler struct{}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config, using defaults: %v", err)
	}
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}

	state := newMatchState(config.GetGameConfig(), NewNakamaEconomyAdapter(nk), bot.Default())
	state.App.SetLogger(logger)

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	state.applyEnv(env)

	label, err := matchLabel(state.GetOpenSeatsCount(), "lobby")
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if matchState.seatOf(presence.GetUserId()) >= 0 {
		return state, true, ""
	}
	if matchState.Session != nil {
		return state, false, "Game in progress"
	}

	// Allow join if there is an empty seat OR a bot to replace.
	if matchState.GetOpenSeatsCount() <= 0 {
		for _, seat := range matchState.Seats {
			if matchState.isBot(seat) {
				return state, true, ""
			}
		}
		return state, false, "Match full"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p
		if !mh.assignSeat(matchState, logger, p.GetUserId()) {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
		}
	}

	// Ensure owner seat is assigned to a human player only.
	if !matchState.isHumanSeat(matchState.OwnerSeat) {
		matchState.OwnerSeat = matchState.findFirstHumanSeat()
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(ctx, matchState, dispatcher, logger)
	return matchState
}

// assignSeat seats a user in the first empty seat, or in place of a bot while in the lobby.
func (mh *matchHandler) assignSeat(s *MatchState, logger runtime.Logger, userID string) bool {
	if s.seatOf(userID) >= 0 {
		return true
	}
	for i, seat := range s.Seats {
		if seat == "" {
			s.Seats[i] = userID
			return true
		}
	}
	if s.Session != nil {
		return false
	}
	for i, seat := range s.Seats {
		if s.isBot(seat) {
			logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seat, userID, i)
			delete(s.Bots, seat)
			s.Seats[i] = userID
			return true
		}
	}
	return false
}

// MatchLeave is called when one or more players leave the match. Leaving
// during a game ends it.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)

		seat := matchState.seatOf(userID)
		if seat < 0 {
			continue
		}
		if matchState.Session != nil {
			logger.Info("MatchLeave: User %s left during a game, ending it.", userID)
			mh.endGame(ctx, matchState, dispatcher, logger, "player_left")
		}
		matchState.Seats[seat] = ""
		logger.Debug("MatchLeave: User %s left, seat %d freed.", userID, seat)
	}

	if newOwner := matchState.findFirstHumanSeat(); newOwner != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwner
		logger.Debug("MatchLeave: Owner set to seat %d.", newOwner)
	}

	if matchState.shouldTerminateNoHumans() {
		logger.Info("MatchLeave: Terminating match with no humans.")
		matchState.stop()
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(ctx, matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	matchState.Tick = tick

	for _, msg := range messages {
		mh.handleMessage(ctx, matchState, dispatcher, logger, msg.GetUserId(), msg.GetOpCode(), msg.GetData())
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	mh.drainEvents(matchState, dispatcher, logger)
	mh.checkRound(ctx, matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) handleMessage(ctx context.Context, s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, opCode int64, data []byte) {
	switch opCode {
	case OpStartGame:
		mh.handleStartGame(ctx, s, dispatcher, logger, senderID, data)
	case OpPlayCards:
		mh.handlePlayCards(s, dispatcher, logger, senderID, data)
	case OpPassTurn:
		mh.handlePassTurn(s, dispatcher, logger, senderID)
	case OpExchangeCards:
		mh.handleExchangeCards(s, dispatcher, logger, senderID, data)
	default:
		logger.Warn("MatchLoop: Unknown opcode received: %d", opCode)
	}
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// Auto-fill lobby with bots if there's only one human player after delay
	if state.Session != nil {
		return
	}
	if state.GetHumanPlayerCount() != 1 || state.GetOpenSeatsCount() == 0 {
		state.LastSinglePlayerTick = 0
		return
	}
	if state.LastSinglePlayerTick == 0 {
		state.LastSinglePlayerTick = state.Tick
		logger.Debug("processBots: Single player detected, starting auto-fill timer.")
	}
	if state.Tick-state.LastSinglePlayerTick < int64(state.BotAutoFillDelay)*tickRate {
		return
	}

	taken := make(map[string]bool)
	for _, seat := range state.Seats {
		if seat != "" {
			taken[seat] = true
		}
	}
	for i, seat := range state.Seats {
		if seat != "" {
			continue
		}
		identity := state.Registry.Pick(i, taken)
		state.Seats[i] = identity.UserID
		state.Bots[identity.UserID] = true
		taken[identity.UserID] = true
		logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Name(), identity.UserID, i)
	}
	state.LastSinglePlayerTick = 0
	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastMatchState(ctx, state, dispatcher, logger)
}

func (mh *matchHandler) newBotController(s *MatchState, userID string) (*bot.Agent, error) {
	if s.Registry != nil {
		if identity, ok := s.Registry.Lookup(userID); ok {
			return identity.NewAgent(nil)
		}
	}
	return bot.NewController(userID, s.Config.Params().Difficulty, nil)
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, data []byte) {
	senderSeat := state.seatOf(senderID)
	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if _, err := decode(data); err != nil {
		logger.Warn("StartGame: Invalid request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	if err := app.CheckStart(senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount(), state.Session != nil); err != nil {
		logger.Warn("StartGame: Rejected request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 403, err.Error())
		return
	}

	var seats []app.Seat
	remotes := make(map[string]*app.RemotePlayer)
	for _, userID := range state.Seats {
		if userID == "" {
			continue
		}
		if !state.isBot(userID) {
			remote := app.NewRemotePlayer(userID, state.TurnTimeout)
			remotes[userID] = remote
			seats = append(seats, app.Seat{UserID: userID, Controller: remote})
			continue
		}
		agent, err := mh.newBotController(state, userID)
		if err != nil {
			logger.Error("StartGame: Failed to create bot agent for %s: %v", userID, err)
			mh.sendError(state, dispatcher, logger, senderID, 500, err.Error())
			return
		}
		seats = append(seats, app.Seat{
			UserID:     userID,
			Controller: bot.Delayed(agent, state.BotMinDelay, state.BotMaxDelay, nil),
		})
	}

	sess, err := state.App.StartGame(seats, state.Config.Params(), state.Config.Points())
	if err != nil {
		logger.Error("StartGame: Failed to start game: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, 500, err.Error())
		return
	}
	state.Session = sess
	state.Remotes = remotes
	state.Totals = make(map[string]int64)
	state.CardsLeft = make(map[string]int)
	state.Round = 0

	mh.updateLabel(state, dispatcher, logger)
	mh.startRound(state, logger)
	logger.Info("StartGame: Game %s started with %d players.", sess.ID, len(seats))
}

// startRound runs the next round in its own goroutine. MatchLoop picks up the
// events and the outcome.
func (mh *matchHandler) startRound(state *MatchState, logger runtime.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	results := make(chan roundOutcome, 1)
	state.cancel = cancel
	state.results = results
	state.NextRoundTick = 0

	svc, sess := state.App, state.Session
	go func() {
		res, err := svc.PlayRound(ctx, sess)
		results <- roundOutcome{result: res, err: err}
	}()
	logger.Debug("StartRound: Round %d of game %s started.", state.Round+1, sess.ID)
}

func (mh *matchHandler) checkRound(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Session == nil {
		return
	}
	if state.results == nil {
		if state.NextRoundTick > 0 && state.Tick >= state.NextRoundTick {
			mh.startRound(state, logger)
		}
		return
	}

	var out roundOutcome
	select {
	case out = <-state.results:
	default:
		return
	}
	state.results = nil
	state.cancel()
	// The round published everything before returning.
	mh.drainEvents(state, dispatcher, logger)

	if out.err != nil {
		logger.Error("CheckRound: Round failed: %v", out.err)
		mh.endGame(ctx, state, dispatcher, logger, "error")
		return
	}
	state.Round = out.result.Round
	mh.settle(ctx, state, logger, out.result)

	if limit := state.Config.MaxRounds; limit > 0 && out.result.Round >= limit {
		mh.endGame(ctx, state, dispatcher, logger, "max_rounds")
		return
	}
	state.NextRoundTick = state.Tick + nextRoundDelaySeconds*tickRate
}

// settle credits the round points to the human players' wallets.
func (mh *matchHandler) settle(ctx context.Context, state *MatchState, logger runtime.Logger, res *app.RoundResult) {
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	updates := make([]ports.WalletUpdate, 0, len(res.Ranking))
	for _, p := range res.Ranking {
		amount := res.Points[p.ID]
		state.Totals[p.ID] += amount
		if state.isBot(p.ID) {
			continue
		}
		updates = append(updates, ports.WalletUpdate{
			UserID: p.ID,
			Amount: amount,
			Metadata: map[string]interface{}{
				"match_id": matchID,
				"game_id":  res.GameID,
				"round_id": res.RoundID,
				"round":    res.Round,
				"role":     p.Role.String(),
				"reason":   "round_settlement",
			},
		})
	}
	if state.Economy == nil {
		return
	}
	if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
		logger.Error("Settle: Failed to update balances: %v", err)
	}
}

// endGame stops the running round and returns the match to the lobby.
func (mh *matchHandler) endGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, reason string) {
	if state.Session == nil {
		return
	}
	if state.cancel != nil {
		state.cancel()
	}
	gameID := state.Session.ID
	rounds := state.Round

	totals := make([]interface{}, 0, len(state.Totals))
	for _, userID := range state.Seats {
		if points, ok := state.Totals[userID]; ok {
			totals = append(totals, map[string]interface{}{"user_id": userID, "points": points})
		}
	}

	state.Session = nil
	state.results = nil
	state.NextRoundTick = 0
	state.Remotes = make(map[string]*app.RemotePlayer)
	state.CardsLeft = make(map[string]int)

	payload, err := encode(map[string]interface{}{
		"game_id": gameID,
		"reason":  reason,
		"rounds":  rounds,
		"totals":  totals,
	})
	if err != nil {
		logger.Error("EndGame: Failed to marshal event: %v", err)
	} else if err := dispatcher.BroadcastMessage(OpGameEnded, payload, nil, nil, true); err != nil {
		logger.Error("EndGame: Failed to broadcast: %v", err)
	}
	mh.updateLabel(state, dispatcher, logger)
	logger.Info("EndGame: Game %s ended after %d rounds (%s).", gameID, rounds, reason)
}

func (mh *matchHandler) remoteFor(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string) *app.RemotePlayer {
	if state.Session == nil {
		mh.sendError(state, dispatcher, logger, senderID, 409, app.ErrNotPlaying.Error())
		return nil
	}
	remote, ok := state.Remotes[senderID]
	if !ok {
		mh.sendError(state, dispatcher, logger, senderID, 403, app.ErrUnknownPlayer.Error())
		return nil
	}
	return remote
}

func (mh *matchHandler) handlePlayCards(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, data []byte) {
	remote := mh.remoteFor(state, dispatcher, logger, senderID)
	if remote == nil {
		return
	}
	cards, err := cardsFromRequest(data)
	if err != nil {
		logger.Warn("handlePlayCards: Bad request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	if err := remote.SubmitMove(cards); err != nil {
		logger.Warn("handlePlayCards: User %s failed to play %v: %v", senderID, cards, err)
		mh.sendError(state, dispatcher, logger, senderID, errorCode(err), err.Error())
	}
}

func (mh *matchHandler) handlePassTurn(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string) {
	remote := mh.remoteFor(state, dispatcher, logger, senderID)
	if remote == nil {
		return
	}
	if err := remote.SubmitPass(); err != nil {
		logger.Warn("handlePassTurn: User %s failed to pass: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, errorCode(err), err.Error())
	}
}

func (mh *matchHandler) handleExchangeCards(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, data []byte) {
	remote := mh.remoteFor(state, dispatcher, logger, senderID)
	if remote == nil {
		return
	}
	cards, err := cardsFromRequest(data)
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	if err := remote.SubmitExchange(cards); err != nil {
		logger.Warn("handleExchangeCards: User %s failed to exchange %v: %v", senderID, cards, err)
		mh.sendError(state, dispatcher, logger, senderID, errorCode(err), err.Error())
	}
}

func errorCode(err error) int {
	switch {
	case errors.Is(err, app.ErrNotYourTurn), errors.Is(err, app.ErrNoRequest):
		return 409
	default:
		return 400
	}
}

// drainEvents broadcasts everything the round goroutine published so far.
// Events from a cancelled game are dropped.
func (mh *matchHandler) drainEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	for {
		select {
		case ev := <-state.events:
			if state.Session == nil || ev.GameID != state.Session.ID {
				continue
			}
			state.track(ev)
			mh.broadcastEvent(state, dispatcher, logger, ev)
		default:
			return
		}
	}
}

// track keeps the card counts shown in match snapshots.
func (s *MatchState) track(ev app.Event) {
	switch p := ev.Payload.(type) {
	case app.HandDealtPayload:
		s.CardsLeft[p.UserID] = len(p.Hand)
	case app.CardPlayedPayload:
		s.CardsLeft[p.UserID] = p.CardsLeft
	}
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, fields, err := eventMessage(ev)
	if err != nil {
		logger.Warn("Unknown event kind: %v", err)
		return
	}
	bytes, err := encode(fields)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		// Private events for bots must not fall back to a broadcast.
		if len(recipients) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true); err != nil {
		logger.Error("Failed to broadcast event %v: %v", ev.Kind, err)
	}
}

func (mh *matchHandler) broadcastMatchState(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	players := make([]interface{}, 0, len(state.Seats))
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}
		player := map[string]interface{}{
			"user_id":         userID,
			"seat":            i,
			"is_owner":        i == state.OwnerSeat,
			"is_bot":          state.isBot(userID),
			"display_name":    state.displayName(userID),
			"cards_remaining": state.CardsLeft[userID],
		}
		if state.Economy != nil {
			if balance, err := state.Economy.GetBalance(ctx, userID); err == nil {
				player["balance"] = balance
			} else {
				logger.Debug("broadcastMatchState: No balance for %s: %v", userID, err)
			}
		}
		players = append(players, player)
	}

	bytes, err := encode(map[string]interface{}{
		"seats":      stringsToValues(state.Seats),
		"owner_seat": state.OwnerSeat,
		"tick":       state.Tick,
		"playing":    state.Session != nil,
		"players":    players,
	})
	if err != nil {
		logger.Error("broadcastMatchState: Failed to marshal snapshot: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpMatchState, bytes, nil, nil, true); err != nil {
		logger.Error("broadcastMatchState: Failed to broadcast: %v", err)
	}
}

// sendError sends a game error to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	bytes, err := encode(map[string]interface{}{"code": code, "message": message})
	if err != nil {
		logger.Error("Failed to marshal game error: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}
	if err := dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("Failed to send game error to %s: %v", userID, err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := "lobby"
	if state.Session != nil {
		phase = "playing"
	}
	label, err := matchLabel(state.GetOpenSeatsCount(), phase)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d grace seconds", graceSeconds)
	if matchState, ok := state.(*MatchState); ok {
		matchState.stop()
	}
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
