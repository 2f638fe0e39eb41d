package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiryu-dev/tic-tac-toe-bot/internal/config"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestNew_FullFile(t *testing.T) {
	path := writeConfig(t, `
difficulty: harder
opponent_first: true
thinking_delay: 250ms
log_level: debug
`)
	cfg, err := config.New(path)
	require.NoError(t, err)
	assert.Equal(t, config.Config{
		Difficulty:    domain.Harder,
		OpponentFirst: true,
		ThinkingDelay: 250 * time.Millisecond,
		LogLevel:      "debug",
	}, cfg)
}

func TestNew_Defaults(t *testing.T) {
	cfg, err := config.New(writeConfig(t, "opponent_first: true\n"))
	require.NoError(t, err)
	assert.Equal(t, domain.Expert, cfg.Difficulty)
	assert.True(t, cfg.OpponentFirst)
	assert.Equal(t, 500*time.Millisecond, cfg.ThinkingDelay)
	assert.Equal(t, "warn", cfg.LogLevel)

	cfg, err = config.New("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestNew_Errors(t *testing.T) {
	_, err := config.New(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	_, err = config.New(writeConfig(t, "difficulty: nightmare\n"))
	assert.Error(t, err)

	_, err = config.New(writeConfig(t, "thinking_delay: -1s\n"))
	assert.ErrorIs(t, err, config.ErrNegativeDelay)
}
