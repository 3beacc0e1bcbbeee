package bot

import (
	"fmt"
	"math/rand"
	"time"

	"president/internal/bot/brain"
	"president/internal/domain"
)

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level domain.Difficulty, rng *rand.Rand) (Brain, error) {
	switch level {
	case domain.DifficultyEasy:
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		return &RandomBot{rng: rng}, nil
	case domain.DifficultyMedium:
		return &LowestBot{}, nil
	case domain.DifficultyHard:
		return &CountingBot{Memory: brain.NewMemory(), Tuning: DefaultTuning}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// NewController builds a bot seat for the given level.
func NewController(id string, level domain.Difficulty, rng *rand.Rand) (*Agent, error) {
	strategy, err := NewBrain(level, rng)
	if err != nil {
		return nil, err
	}
	return &Agent{ID: id, Name: id, Strategy: strategy}, nil
}
