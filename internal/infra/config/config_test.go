package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	require.Error(t, err)

	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, 50, cfg.Chart.MaxBatch)
	require.False(t, cfg.Export.Enabled())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
http:
  address: ":9090"
chart:
  maxBatch: 10
  batchWorkers: 2
cache:
  enabled: true
  addr: "localhost:6379"
  ttl: 1h
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("CHART_BATCH_WORKERS", "8")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, 10, cfg.Chart.MaxBatch)
	require.Equal(t, 8, cfg.Chart.BatchWorkers)
	require.True(t, cfg.Cache.Enabled)
	require.Equal(t, time.Hour, cfg.Cache.TTL)
	require.Equal(t, "vedic", cfg.Cache.Prefix)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"empty address":       func(c *Config) { c.HTTP.Address = "" },
		"zero batch":          func(c *Config) { c.Chart.MaxBatch = 0 },
		"cache without addr":  func(c *Config) { c.Cache.Enabled = true },
		"export without keys": func(c *Config) { c.Export.Endpoint = "https://r2.example" },
		"min above max":       func(c *Config) { c.Postgres.MinConns = 10 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig()
			mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
