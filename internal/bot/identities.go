package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"

	"president/internal/domain"
)

type BotIdentity struct {
	DeviceID    string `json:"device_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "easy", "medium", "hard"
	AvatarIndex int    `json:"avatar_index"`
}

// Level parses the identity difficulty, defaulting to medium.
func (b BotIdentity) Level() domain.Difficulty {
	level, err := domain.ParseDifficulty(b.Difficulty)
	if err != nil {
		return domain.DifficultyMedium
	}
	return level
}

// Name is what other players see.
func (b BotIdentity) Name() string {
	if b.DisplayName != "" {
		return b.DisplayName
	}
	return b.Username
}

// NewAgent seats this identity as a bot of its own difficulty.
func (b BotIdentity) NewAgent(rng *rand.Rand) (*Agent, error) {
	agent, err := NewController(b.UserID, b.Level(), rng)
	if err != nil {
		return nil, err
	}
	agent.Name = b.Name()
	return agent, nil
}

// Registry is the pool of bot accounts known to the server.
type Registry struct {
	mu         sync.RWMutex
	identities []BotIdentity
	byID       map[string]BotIdentity
}

func NewRegistry(identities []BotIdentity) *Registry {
	r := &Registry{identities: identities, byID: make(map[string]BotIdentity)}
	for _, identity := range identities {
		if identity.UserID != "" {
			r.byID[identity.UserID] = identity
		}
	}
	return r
}

var (
	defaultRegistry = NewRegistry(nil)
	loadOnce        sync.Once
	provisionOnce   sync.Once
	loadErr         error
)

// LoadIdentities loads the bot profiles from the given path into the default registry.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}

		var identities []BotIdentity
		if err := json.Unmarshal(data, &identities); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}
		defaultRegistry = NewRegistry(identities)
	})
	return loadErr
}

// Default returns the registry filled by LoadIdentities.
func Default() *Registry {
	return defaultRegistry
}

// ProvisionBots ensures that bot accounts exist in the Nakama database and have the is_bot metadata.
func ProvisionBots(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) {
	provisionOnce.Do(func() {
		defaultRegistry.Provision(ctx, nk, logger)
	})
}

func (r *Registry) Provision(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.identities {
		identity := &r.identities[i]
		if identity.DeviceID == "" {
			continue
		}

		userID, username, _, err := nk.AuthenticateDevice(ctx, identity.DeviceID, identity.Username, true)
		if err != nil {
			logger.Error("ProvisionBots: Failed to authenticate bot %s: %v", identity.Username, err)
			continue
		}
		identity.UserID = userID
		identity.Username = username

		metadata := map[string]interface{}{
			"is_bot":       true,
			"difficulty":   identity.Level().String(),
			"avatar_index": identity.AvatarIndex,
		}
		if err := nk.AccountUpdateId(ctx, userID, identity.Username, metadata, identity.DisplayName, "", "", "", ""); err != nil {
			logger.Warn("ProvisionBots: Failed to update bot account %s: %v", userID, err)
		}

		r.byID[userID] = *identity
		logger.Info("ProvisionBots: Bot %s (%s) is ready. Difficulty: %s", identity.Name(), userID, identity.Level())
	}
}

// Lookup returns the identity for a bot user ID.
func (r *Registry) Lookup(userID string) (BotIdentity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	identity, ok := r.byID[userID]
	return identity, ok
}

// IsBot reports whether the given user ID belongs to the bot pool.
func (r *Registry) IsBot(userID string) bool {
	_, ok := r.Lookup(userID)
	return ok
}

// Pick returns an identity by index (mod pool size), skipping taken user IDs.
// An empty pool yields synthetic bots.
func (r *Registry) Pick(index int, taken map[string]bool) BotIdentity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := 0; i < len(r.identities); i++ {
		identity := r.identities[(index+i)%len(r.identities)]
		if identity.UserID != "" && !taken[identity.UserID] {
			return identity
		}
	}
	for n := index; ; n++ {
		id := fmt.Sprintf("bot-%d", n)
		if !taken[id] {
			return BotIdentity{UserID: id, DisplayName: fmt.Sprintf("AI Player %d", n+1)}
		}
	}
}

// IDs returns all known bot user IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
