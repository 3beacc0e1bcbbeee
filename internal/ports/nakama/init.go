package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"

	"president/internal/bot"
	"president/internal/config"
)

// InitModule wires RPCs and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("Game config not loaded, using defaults: %v", err)
	}
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("Bot identities not loaded: %v", err)
	}
	bot.ProvisionBots(ctx, nk, logger)

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}
	if err := initializer.RegisterMatch(MatchNamePresident, NewMatch); err != nil {
		return err
	}

	logger.Info("President Go module loaded.")
	return nil
}
