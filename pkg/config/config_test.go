package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TIMEHUB_AUDIO_CACHE_DIR", "/tmp/timehub-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "io.timehub.desktop", cfg.AppID)
	assert.Equal(t, "/tmp/timehub-test", cfg.AudioCacheDir)
	assert.Equal(t, 3, cfg.FetchRetries)
	assert.Equal(t, 20*time.Second, cfg.FetchTimeout)
	assert.Equal(t, time.Second, cfg.TickInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TIMEHUB_LOG_LEVEL", "debug")
	t.Setenv("TIMEHUB_FETCH_RETRIES", "0")
	t.Setenv("TIMEHUB_TICK_INTERVAL", "500ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 1, cfg.FetchRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.TickInterval)
	assert.NotEmpty(t, cfg.AudioCacheDir)
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("TIMEHUB_FETCH_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}
