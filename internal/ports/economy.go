package ports

import "context"

// PointsWallet is the Nakama wallet key that holds Président points.
const PointsWallet = "points"

// WalletUpdate represents a single points change for a user.
type WalletUpdate struct {
	UserID   string
	Amount   int64
	Metadata map[string]interface{}
}

// EconomyPort defines the interface for managing player points.
type EconomyPort interface {
	// GetBalance retrieves the current points balance for a user.
	GetBalance(ctx context.Context, userID string) (int64, error)

	// UpdateBalances applies multiple wallet changes.
	// This is used at the end of a round to settle the roles.
	UpdateBalances(ctx context.Context, updates []WalletUpdate) error
}
