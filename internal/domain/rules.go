package domain

import (
	"fmt"
	"strings"
)

// Rules toggles the optional house rules.
type Rules struct {
	// MagicSquare ends the trick when the last four cards on the pile share a rank.
	MagicSquare bool
	// ForcePlay ("ta gueule") makes the player after two equal-rank moves follow that rank or pass.
	ForcePlay bool
}

// DefaultRules enables both house rules.
func DefaultRules() Rules {
	return Rules{MagicSquare: true, ForcePlay: true}
}

// Difficulty selects the AI used for computer seats.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// ParseDifficulty accepts "easy", "medium" or "hard" in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium", "":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q", s)
	}
}

// GameParams configures a game.
type GameParams struct {
	NumPlayers int
	Rules      Rules
	Difficulty Difficulty
}

// DefaultParams is a four player game with every house rule.
func DefaultParams() GameParams {
	return GameParams{NumPlayers: 4, Rules: DefaultRules(), Difficulty: DifficultyMedium}
}

// isMagicSquare reports whether the last four cards of the pile share a rank.
func isMagicSquare(pile []Card) bool {
	if len(pile) < 4 {
		return false
	}
	top := pile[len(pile)-4:]
	for _, c := range top[1:] {
		if c.Rank != top[0].Rank {
			return false
		}
	}
	return true
}
