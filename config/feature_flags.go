package config

import (
	"sync"
)

// FeatureFlags manages runtime feature toggles. Flags are read from the
// environment at startup and can be flipped at runtime through Set,
// which tests and admin tooling use.
type FeatureFlags struct {
	mu       sync.RWMutex
	features map[string]bool
}

// Predefined feature flag names.
const (
	// FeatureIdempotentCompletion makes task completion award XP only on
	// the first transition to completed. With the flag off, repeating
	// the completion awards XP again (the historical behavior).
	FeatureIdempotentCompletion = "focus.idempotent_completion"

	// FeatureLeaderboardCache serves the leaderboard from Redis with a
	// short TTL, falling back to Postgres on miss.
	FeatureLeaderboardCache = "focus.leaderboard_cache"
)

// featureDefaults maps each flag to its default and its env key.
var featureDefaults = []struct {
	name       string
	envKey     string
	defaultVal bool
}{
	{FeatureIdempotentCompletion, "APEX_FEATURE_IDEMPOTENT_COMPLETION", false},
	{FeatureLeaderboardCache, "APEX_FEATURE_LEADERBOARD_CACHE", true},
}

// LoadFeatureFlags reads flag states from the environment.
func LoadFeatureFlags() *FeatureFlags {
	ff := &FeatureFlags{
		features: make(map[string]bool),
	}

	for _, f := range featureDefaults {
		ff.features[f.name] = getEnvBool(f.envKey, f.defaultVal)
	}

	return ff
}

// IsEnabled reports whether a feature is on. Unknown flags are off.
func (ff *FeatureFlags) IsEnabled(name string) bool {
	ff.mu.RLock()
	defer ff.mu.RUnlock()
	return ff.features[name]
}

// Set flips a feature at runtime.
func (ff *FeatureFlags) Set(name string, enabled bool) {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	ff.features[name] = enabled
}

// All returns a snapshot of every flag and its state.
func (ff *FeatureFlags) All() map[string]bool {
	ff.mu.RLock()
	defer ff.mu.RUnlock()

	snapshot := make(map[string]bool, len(ff.features))
	for name, enabled := range ff.features {
		snapshot[name] = enabled
	}
	return snapshot
}
