package bot

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"president/internal/domain"
)

func TestRegistryPick(t *testing.T) {
	r := NewRegistry([]BotIdentity{
		{UserID: "u1", Username: "ace", Difficulty: "hard"},
		{UserID: "u2", Username: "bob", DisplayName: "Bob"},
	})

	if got := r.Pick(0, nil); got.UserID != "u1" {
		t.Fatalf("Pick(0) = %s, want u1", got.UserID)
	}
	if got := r.Pick(0, map[string]bool{"u1": true}); got.UserID != "u2" {
		t.Fatalf("Pick skipping u1 = %s, want u2", got.UserID)
	}
	got := r.Pick(0, map[string]bool{"u1": true, "u2": true, "bot-0": true})
	if got.UserID != "bot-1" {
		t.Fatalf("synthetic bot = %s, want bot-1", got.UserID)
	}

	if !r.IsBot("u2") || r.IsBot("human") {
		t.Fatalf("IsBot() mismatch")
	}
	if ids := r.IDs(); !reflect.DeepEqual(ids, []string{"u1", "u2"}) {
		t.Fatalf("IDs() = %v", ids)
	}
}

func TestBotIdentity(t *testing.T) {
	hard := BotIdentity{UserID: "u1", Username: "ace", Difficulty: "HARD"}
	if hard.Level() != domain.DifficultyHard || hard.Name() != "ace" {
		t.Fatalf("unexpected identity: %s %s", hard.Level(), hard.Name())
	}
	if (BotIdentity{Difficulty: "god"}).Level() != domain.DifficultyMedium {
		t.Fatalf("unknown difficulty should fall back to medium")
	}

	agent, err := BotIdentity{UserID: "u2", DisplayName: "Bob", Difficulty: "easy"}.NewAgent(nil)
	if err != nil {
		t.Fatalf("NewAgent() error: %v", err)
	}
	if agent.ID != "u2" || agent.Name != "Bob" {
		t.Fatalf("agent = %+v", agent)
	}
	if _, ok := agent.Strategy.(*RandomBot); !ok {
		t.Fatalf("easy identity should play randomly")
	}
}

func TestLoadIdentities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bots.json")
	data := `[{"user_id": "b1", "username": "bot_one", "difficulty": "medium"}]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write identities: %v", err)
	}
	if err := LoadIdentities(path); err != nil {
		t.Fatalf("LoadIdentities() error: %v", err)
	}
	if _, ok := Default().Lookup("b1"); !ok {
		t.Fatalf("loaded bot not found")
	}
}
