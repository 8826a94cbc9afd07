package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chtemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chtemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dir", cfg.Data.Driver)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, "freezethaw.db", cfg.Data.SQLitePath)
	assert.InDelta(t, 50.0, cfg.Query.MaxRadiusKM, 0.001)
	assert.Equal(t, 5, cfg.Query.RecentWindow)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.InDelta(t, 10.0, cfg.Server.RateLimit, 0.001)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chtemp(t)

	yaml := `
data:
  driver: sqlite
  sqlite_path: /var/lib/freezethaw/snapshots.db
query:
  max_radius_km: 75
  recent_window: 20
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Data.Driver)
	assert.Equal(t, "/var/lib/freezethaw/snapshots.db", cfg.Data.SQLitePath)
	assert.InDelta(t, 75.0, cfg.Query.MaxRadiusKM, 0.001)
	assert.Equal(t, 20, cfg.Query.RecentWindow)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		concern string
		wantErr string
	}{
		{"dir driver ok", func(c *Config) {}, "query", ""},
		{"dir driver missing dir", func(c *Config) { c.Data.Dir = "" }, "data", "data.dir"},
		{"sqlite missing path", func(c *Config) { c.Data.Driver = "sqlite"; c.Data.SQLitePath = "" }, "data", "sqlite_path"},
		{"postgres missing url", func(c *Config) { c.Data.Driver = "postgres" }, "data", "database_url"},
		{"unknown driver", func(c *Config) { c.Data.Driver = "oracle" }, "data", "unknown data driver"},
		{"bad radius", func(c *Config) { c.Query.MaxRadiusKM = 0 }, "query", "max_radius_km"},
		{"bad window", func(c *Config) { c.Query.RecentWindow = -1 }, "query", "recent_window"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Data:  DataConfig{Driver: "dir", Dir: "data", SQLitePath: "db"},
				Query: QueryConfig{MaxRadiusKM: 50, RecentWindow: 5},
			}
			tt.mutate(cfg)
			err := cfg.Validate(tt.concern)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "notalevel", Format: "json"})
	require.Error(t, err)
}
