package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadFeatureFlags_Defaults(t *testing.T) {
	ff := LoadFeatureFlags()

	assert.False(t, ff.IsEnabled(FeatureIdempotentCompletion), "repeat completions award by default")
	assert.True(t, ff.IsEnabled(FeatureLeaderboardCache))
	assert.False(t, ff.IsEnabled("no.such.flag"), "unknown flags are off")
}

func TestFeatureFlags_EnvOverride(t *testing.T) {
	t.Setenv("APEX_FEATURE_IDEMPOTENT_COMPLETION", "true")
	t.Setenv("APEX_FEATURE_LEADERBOARD_CACHE", "false")

	ff := LoadFeatureFlags()

	assert.True(t, ff.IsEnabled(FeatureIdempotentCompletion))
	assert.False(t, ff.IsEnabled(FeatureLeaderboardCache))
}

func TestFeatureFlags_Set(t *testing.T) {
	ff := LoadFeatureFlags()

	ff.Set(FeatureIdempotentCompletion, true)
	assert.True(t, ff.IsEnabled(FeatureIdempotentCompletion))

	all := ff.All()
	assert.True(t, all[FeatureIdempotentCompletion])
	assert.Len(t, all, 2)
}
