package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"
	// RpcPointsBalance returns the caller's points.
	RpcPointsBalance = "points_balance"

	// MatchNamePresident is the authoritative match handler name registered with Nakama.
	MatchNamePresident = "president_match"

	// GameLabel is the value of the "game" key in match labels.
	GameLabel = "president"
)

// Op codes for client messages and server events. Payloads are
// google.protobuf.Struct messages.
const (
	// Client -> Server
	OpStartGame     int64 = 1
	OpPlayCards     int64 = 2
	OpPassTurn      int64 = 3
	OpExchangeCards int64 = 4

	// Server -> Client events
	OpMatchState        int64 = 100
	OpGameStarted       int64 = 101
	OpHandDealt         int64 = 102 // send privately
	OpExchangeRequested int64 = 103 // send privately
	OpCardsExchanged    int64 = 104 // send privately
	OpTurnRequested     int64 = 105
	OpCardPlayed        int64 = 106
	OpTurnPassed        int64 = 107
	OpPileChanged       int64 = 108
	OpTrickWon          int64 = 109
	OpPlayerFinished    int64 = 110
	OpRoundEnded        int64 = 111
	OpGameEnded         int64 = 112
	OpGameError         int64 = 199
)
