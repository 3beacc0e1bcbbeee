package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/heroiclabs/nakama-common/runtime"
)

// PointsBalanceResponse is returned by the points_balance RPC.
type PointsBalanceResponse struct {
	Points int64 `json:"points"`
}

// rpcPointsBalance returns the caller's points wallet balance.
//
// Payload: unused.
func rpcPointsBalance(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if !ok || userID == "" {
		return "", runtime.NewError("no user ID in context", 16) // UNAUTHENTICATED
	}

	balance, err := NewNakamaEconomyAdapter(nk).GetBalance(ctx, userID)
	if err != nil {
		logger.Error("rpcPointsBalance [User:%s]: %v", userID, err)
		return "", errors.New("failed to read points balance")
	}

	b, err := json.Marshal(PointsBalanceResponse{Points: balance})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
