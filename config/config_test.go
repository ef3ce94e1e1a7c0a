package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.App.Environment)
	assert.False(t, cfg.App.IsProduction())
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 24*time.Hour, cfg.Focus.SessionTTL)
	assert.Zero(t, cfg.Focus.LeaderboardWarmInterval, "warm job is off by default")
	require.NotNil(t, cfg.Features)
	assert.True(t, cfg.Features.IsEnabled(FeatureLeaderboardCache))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APEX_DB_HOST", "db.internal")
	t.Setenv("APEX_HTTP_PORT", "9090")
	t.Setenv("APEX_SESSION_TTL", "30m")
	t.Setenv("APEX_ADMIN_EMAILS", "dean@apex.edu, rector@apex.edu")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 30*time.Minute, cfg.Focus.SessionTTL)
	assert.Equal(t, []string{"dean@apex.edu", "rector@apex.edu"}, cfg.Focus.AdminEmails)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("APEX_ENV", "sandbox")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APEX_ENV", "production")

	_, err := Load()
	require.Error(t, err, "production without a database password must not boot")

	t.Setenv("APEX_DB_PASSWORD", "s3cret")
	_, err = Load()
	require.Error(t, err, "production without secure cookies must not boot")

	t.Setenv("APEX_HTTP_SECURE_COOKIES", "true")
	_, err = Load()
	assert.NoError(t, err)
}

func TestIsAdminEmail(t *testing.T) {
	cfg := FocusConfig{AdminEmails: []string{"Dean@apex.edu"}}

	assert.True(t, cfg.IsAdminEmail("dean@apex.edu"))
	assert.True(t, cfg.IsAdminEmail("  DEAN@APEX.EDU "))
	assert.False(t, cfg.IsAdminEmail("student@apex.edu"))
	assert.False(t, FocusConfig{}.IsAdminEmail("anyone@apex.edu"))
}
