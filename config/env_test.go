package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_Defaults(t *testing.T) {
	t.Setenv("POTENAD_CONFIG_DIR", "")
	t.Setenv("POTENAD_DEBUG", "")
	t.Setenv("POTENAD_LOG_FILE", "")

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Empty(t, env.ConfigDir)
	assert.False(t, env.Debug)
	assert.Empty(t, env.LogFile)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("POTENAD_CONFIG_DIR", "/tmp/potenad-config")
	t.Setenv("POTENAD_DEBUG", "true")
	t.Setenv("POTENAD_LOG_FILE", "/tmp/potenad.log")

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/potenad-config", env.ConfigDir)
	assert.True(t, env.Debug)
	assert.Equal(t, "/tmp/potenad.log", env.LogFile)
}

func TestLoadEnv_InvalidBool(t *testing.T) {
	t.Setenv("POTENAD_DEBUG", "sometimes")

	_, err := LoadEnv()
	assert.Error(t, err)
}
