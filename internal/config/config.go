package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"president/internal/domain"
)

// RolePoints maps a role name ("president", "vice_president", "neutral",
// "vice_asshole", "asshole") to the points it earns at the end of a round.
type RolePoints map[string]int64

type GameConfig struct {
	Players      int    `json:"players"`
	MagicSquare  bool   `json:"magic_square"`
	ForcePlay    bool   `json:"force_play"`
	AIDifficulty string `json:"ai_difficulty"`
	// MaxRounds stops a match after that many rounds; 0 means play until the owner stops.
	MaxRounds           int `json:"max_rounds"`
	TurnDurationSeconds int `json:"turn_duration_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before filling a solo human lobby with bots.
	BotAutoFillDelaySeconds int        `json:"bot_auto_fill_delay_seconds"`
	BotMinDelayMs           int        `json:"bot_min_delay_ms"`
	BotMaxDelayMs           int        `json:"bot_max_delay_ms"`
	RolePoints              RolePoints `json:"role_points"`
}

var roleKeys = map[string]domain.Role{
	"president":      domain.RolePresident,
	"vice_president": domain.RoleVicePresident,
	"neutral":        domain.RoleNeutral,
	"vice_asshole":   domain.RoleViceAsshole,
	"asshole":        domain.RoleAsshole,
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// Default returns the configuration used when no file is loaded.
func Default() *GameConfig {
	return &GameConfig{
		Players:                 4,
		MagicSquare:             true,
		ForcePlay:               true,
		AIDifficulty:            "medium",
		TurnDurationSeconds:     30,
		BotAutoFillDelaySeconds: 5,
		BotMinDelayMs:           500,
		BotMaxDelayMs:           1500,
		RolePoints: RolePoints{
			"president":      2,
			"vice_president": 1,
			"neutral":        0,
			"vice_asshole":   -1,
			"asshole":        -2,
		},
	}
}

// Parse decodes a configuration on top of the defaults and validates it.
func Parse(data []byte) (*GameConfig, error) {
	c := Default()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks values that would prevent a game from starting.
func (c *GameConfig) Validate() error {
	if c.Players < domain.MinPlayers || c.Players > domain.DeckSize {
		return fmt.Errorf("invalid game config: players must be between %d and %d, got %d", domain.MinPlayers, domain.DeckSize, c.Players)
	}
	if _, err := domain.ParseDifficulty(c.AIDifficulty); err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}
	if c.BotMinDelayMs < 0 || c.BotMaxDelayMs < c.BotMinDelayMs {
		return fmt.Errorf("invalid game config: bot delay range %d..%d", c.BotMinDelayMs, c.BotMaxDelayMs)
	}
	for key := range c.RolePoints {
		if _, ok := roleKeys[key]; !ok {
			return fmt.Errorf("invalid game config: unknown role %q", key)
		}
	}
	return nil
}

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c, err := Parse(data)
		if err != nil {
			loadErr = err
			return
		}
		cfg = c
	})
	return loadErr
}

// GetGameConfig returns the loaded configuration, or the defaults.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return Default()
	}
	return cfg
}

// Params converts the configuration into engine parameters.
func (c *GameConfig) Params() domain.GameParams {
	difficulty, err := domain.ParseDifficulty(c.AIDifficulty)
	if err != nil {
		difficulty = domain.DifficultyMedium
	}
	return domain.GameParams{
		NumPlayers: c.Players,
		Rules: domain.Rules{
			MagicSquare: c.MagicSquare,
			ForcePlay:   c.ForcePlay,
		},
		Difficulty: difficulty,
	}
}

// Points converts the role point table for settlement.
func (c *GameConfig) Points() domain.RolePoints {
	points := domain.DefaultRolePoints()
	for key, v := range c.RolePoints {
		if role, ok := roleKeys[key]; ok {
			points[role] = v
		}
	}
	return points
}
