package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Equal(t, 120, cfg.HTTPTimeoutSeconds)
	assert.Equal(t, 30, cfg.HealthPollSeconds)
	assert.Equal(t, "audio/wav", cfg.RecorderMIME)
	assert.False(t, cfg.AutoSpeak)
	assert.False(t, cfg.ReadScreen)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.RecorderCmd)
	assert.NotEmpty(t, cfg.PlayerCmd)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://assistant.local:9000")
	t.Setenv("HEALTH_POLL_SECONDS", "5")
	t.Setenv("AUTO_SPEAK", "true")
	t.Setenv("PLAYER_CMD", "afplay")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://assistant.local:9000", cfg.BackendURL)
	assert.Equal(t, 5, cfg.HealthPollSeconds)
	assert.True(t, cfg.AutoSpeak)
	assert.Equal(t, "afplay", cfg.PlayerCmd)
}

func TestInvalidBackendURLRejected(t *testing.T) {
	t.Setenv("BACKEND_URL", "not a url")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BACKEND_URL")
}

func TestNonPositiveIntervalsRejected(t *testing.T) {
	t.Setenv("HEALTH_POLL_SECONDS", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HEALTH_POLL_SECONDS")
}

func TestMalformedIntFallsBackToDefault(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.HTTPTimeoutSeconds)
}
