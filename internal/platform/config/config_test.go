package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, ":8080", cfg.HTTP.Addr())
	assert.Equal(t, 10*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, "shelter:revalidate", cfg.Cache.Channel)
	assert.Equal(t, 30, cfg.RateLimit.ApplicantWritesPerMin)
	assert.False(t, cfg.Notify.Enabled)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SHELTER_HTTP_PORT", "9090")
	t.Setenv("SHELTER_LOG_LEVEL", "debug")
	t.Setenv("SHELTER_DATABASE_DSN", "postgres://localhost/shelter")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "postgres://localhost/shelter", cfg.Database.DSN)
}

func TestLoad_RejectsNotifyWithoutSender(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SHELTER_NOTIFY_ENABLED", "true")

	_, err := Load()
	assert.Error(t, err)
}
