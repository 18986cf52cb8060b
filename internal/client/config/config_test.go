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

	assert.Equal(t, "http://127.0.0.1:8080", c.RemoteBaseURL)
	assert.Equal(t, "sitereport.db", c.DatabaseDSN)
	assert.Equal(t, "sitereport_state.json", c.StateFilePath)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 30*time.Second, c.SyncSweepInterval)
	assert.Equal(t, 20, c.ArchiveLimit)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8080", cfg.RemoteBaseURL)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}
