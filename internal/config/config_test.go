package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "DB_PATH", "DATABASE_URL", "SEED_PATH", "ROUTE_ID",
	"POLL_INTERVAL", "FETCH_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT", "ENGINE_CONFIG_PATH",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data/app.db", cfg.DBPath)
	assert.Equal(t, 1, cfg.RouteID)
	assert.Equal(t, 60*time.Second, cfg.PollInterval)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)

	ec := cfg.EngineConfig()
	assert.Equal(t, 12, ec.Zones.GroupSize)
	assert.Equal(t, 2, ec.Zones.MinZones)
	assert.Equal(t, 8, ec.Zones.MaxZones)
	assert.Equal(t, 5, ec.Zones.Iterations)
	assert.True(t, ec.Bounds.IsZero())
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ROUTE_ID", "7")
	t.Setenv("POLL_INTERVAL", "45s")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 7, cfg.RouteID)
	assert.Equal(t, 45*time.Second, cfg.PollInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"interval too short": {"POLL_INTERVAL", "5s"},
		"interval too long":  {"POLL_INTERVAL", "10m"},
		"interval garbage":   {"POLL_INTERVAL", "soon"},
		"route not a number": {"ROUTE_ID", "abc"},
		"route not positive": {"ROUTE_ID", "0"},
		"port not numeric":   {"PORT", "http"},
		"unknown log level":  {"LOG_LEVEL", "verbose"},
		"unknown log format": {"LOG_FORMAT", "xml"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadEngineFile(t *testing.T) {
	path := writeFile(t, "engine.yaml", `
group_size: 10
max_zones: 6
stable_seeding: true
bounds:
  min_lat: -34.0
  max_lat: 6.0
  min_lon: -74.5
  max_lon: -32.0
`)

	ef, err := LoadEngineFile(path)
	require.NoError(t, err)

	ec := ef.EngineConfig()
	assert.Equal(t, 10, ec.Zones.GroupSize)
	assert.Equal(t, 2, ec.Zones.MinZones, "omitted keys keep defaults")
	assert.Equal(t, 6, ec.Zones.MaxZones)
	assert.True(t, ec.Zones.StableSeeding)
	assert.Len(t, ec.Zones.Palette, 8)
	assert.Equal(t, -34.0, ec.Bounds.MinLat)
	assert.Equal(t, -32.0, ec.Bounds.MaxLon)
}

func TestLoadEngineFileRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"max below min":   "min_zones: 4\nmax_zones: 3\n",
		"bad color":       "palette: [\"red\"]\n",
		"empty palette":   "palette: []\n",
		"inverted bounds": "bounds: {min_lat: 5, max_lat: -5, min_lon: -50, max_lon: -40}\n",
		"not yaml":        "group_size: [\n",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadEngineFile(writeFile(t, "engine.yaml", body))
			assert.Error(t, err)
		})
	}
}

func TestLoadReadsEngineConfigPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENGINE_CONFIG_PATH", writeFile(t, "engine.yaml", "group_size: 20\n"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Engine.GroupSize)

	t.Setenv("ENGINE_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = Load()
	assert.Error(t, err)
}
