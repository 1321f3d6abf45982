package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "2024-06-14", cfg.Session.SimulatedDate)
	assert.True(t, cfg.Features.StreamingEnabled)
	assert.NotEmpty(t, cfg.Stream.BarSchedule)
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Server.Port = -1
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsBadSimulatedDate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Session.SimulatedDate = "14/06/2024"
	require.Error(t, cfg.Validate())
}

func TestValidateRequiresNATSWhenStreaming(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Features.StreamingEnabled = true
	cfg.NATS.URL = ""
	require.Error(t, cfg.Validate())
}

func TestGetAddrs(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
	assert.Contains(t, cfg.GetRedisAddr(), ":6379")
}
