package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "taskflow.db", c.DatabasePath)
	assert.Equal(t, 60*time.Second, c.ReconcileInterval)
	assert.Equal(t, 30*24*time.Hour, c.SessionTokenValidityDuration)
	assert.NotEmpty(t, c.SessionSecret)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "taskflow.db", cfg.DatabasePath)
	assert.Equal(t, 60*time.Second, cfg.ReconcileInterval)
}
