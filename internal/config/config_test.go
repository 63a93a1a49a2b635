package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/events")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "Bangalore", cfg.IngestLocation)
	assert.Equal(t, 20, cfg.IngestMaxEvents)
	assert.True(t, cfg.IngestOnStartup)
	assert.Equal(t, "@every 6h", cfg.IngestSchedule)
	assert.InDelta(t, 12.97, cfg.MapCenterLat, 1e-9)
	assert.Empty(t, cfg.APIKeys)
}

func TestLoad_MissingDBURL(t *testing.T) {
	t.Setenv("DB_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestParseAPIKeys(t *testing.T) {
	keys, err := ParseAPIKeys(" ops:key-1, ,cron:key-2")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"key-1": "ops", "key-2": "cron"}, keys)

	_, err = ParseAPIKeys("no-colon")
	assert.Error(t, err)

	_, err = ParseAPIKeys("ops:")
	assert.Error(t, err)
}
