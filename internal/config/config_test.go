package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anshul/litmus/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 6, cfg.TotalQuestions)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	require.NoError(t, cfg.Validate())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("LITMUS_ADDR", ":9090")
	t.Setenv("LITMUS_TOTAL_QUESTIONS", "8")
	t.Setenv("LITMUS_SESSION_IDLE_TIMEOUT", "10m")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 8, cfg.TotalQuestions)
	assert.Equal(t, 10*time.Minute, cfg.SessionIdleTimeout)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("LITMUS_TOTAL_QUESTIONS", "eight")
	t.Setenv("LITMUS_JANITOR_INTERVAL", "soon")

	cfg := config.Load()

	assert.Equal(t, 6, cfg.TotalQuestions)
	assert.Equal(t, 5*time.Minute, cfg.JanitorInterval)
}

func TestValidate(t *testing.T) {
	cfg := config.Load()
	cfg.Addr = ""
	cfg.TotalQuestions = 1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LITMUS_ADDR")
	assert.Contains(t, err.Error(), "LITMUS_TOTAL_QUESTIONS")
}
