package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, 8080, cfg.HTTP.Port)
	require.Equal(t, int64(5*1024*1024), cfg.Upload.MaxBytes)
	require.Equal(t, "uploads", cfg.Upload.Dir)
	require.Equal(t, "droneport_session", cfg.Session.CookieName)
	require.Equal(t, "droneport:tasks", cfg.Tasks.Stream)
	require.NotEmpty(t, cfg.Drone.Command)
	require.Positive(t, cfg.Session.TTL)
	require.Positive(t, cfg.Tasks.ClaimInterval)
}
