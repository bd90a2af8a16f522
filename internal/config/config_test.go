package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAutoLoadFallsBackToDefaultsWhenNoFileFound(t *testing.T) {
	loader := NewLoader().SetSearchPaths([]string{filepath.Join(t.TempDir(), "missing.yaml")})

	cfg, err := loader.AutoLoad()
	require.NoError(t, err)
	require.Equal(t, "nowhered", cfg.App.Name)
	require.Equal(t, "./nowhere.db", cfg.Persistence.DatabaseFile)
	require.Contains(t, cfg.RateLimits, "llm")
	require.Contains(t, cfg.RateLimits, "search")
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nowhere.yaml")
	contents := `
app:
  name: field-agent
persistence:
  database_file: /data/nowhere.db
llm:
  base_url: https://llm.example.com
  model: gpt-custom
rate_limits:
  search:
    qps: 2
    burst: 5
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	loader := NewLoader().SetSearchPaths([]string{path})
	cfg, err := loader.LoadFile(path)
	require.NoError(t, err)

	require.Equal(t, "field-agent", cfg.App.Name)
	require.Equal(t, "/data/nowhere.db", cfg.Persistence.DatabaseFile)
	require.Equal(t, "https://llm.example.com", cfg.LLM.BaseURL)
	require.Equal(t, "gpt-custom", cfg.LLM.Model)

	// Untouched defaults survive the merge.
	require.Equal(t, LogLevelInfo, cfg.Log.Level)
	require.Equal(t, 30, int(cfg.Twitter.Timeout.Seconds()))

	// rate_limits overlays per-key, keeping "llm" at its default.
	require.Equal(t, RateLimitConfig{QPS: 1, Burst: 3}, cfg.RateLimits["llm"])
	require.Equal(t, RateLimitConfig{QPS: 2, Burst: 5}, cfg.RateLimits["search"])
}

func TestAutoLoadFindsFirstMatchingSearchPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nowhere.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  name: discovered\n"), 0o600))

	loader := NewLoader().SetSearchPaths([]string{
		filepath.Join(dir, "missing.yaml"),
		path,
	})
	cfg, err := loader.AutoLoad()
	require.NoError(t, err)
	require.Equal(t, "discovered", cfg.App.Name)
}

func TestEnvOverridesWinOverFileAndDefaults(t *testing.T) {
	t.Setenv("NOWHERE_DATABASE_FILE", "/env/nowhere.db")
	t.Setenv("NOWHERE_LOG_LEVEL", "debug")

	loader := NewLoader().SetSearchPaths([]string{filepath.Join(t.TempDir(), "missing.yaml")})
	cfg, err := loader.AutoLoad()
	require.NoError(t, err)
	require.Equal(t, "/env/nowhere.db", cfg.Persistence.DatabaseFile)
	require.Equal(t, LogLevel("debug"), cfg.Log.Level)
}

func TestValidateRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.Level = "nonsense"
	require.ErrorIs(t, cfg.Validate(), ErrInvalidLogLevel)

	cfg = DefaultConfig()
	cfg.Persistence.DatabaseFile = ""
	require.ErrorIs(t, cfg.Validate(), ErrMissingDatabaseFile)

	cfg = DefaultConfig()
	cfg.Actor.DefaultMailboxSize = 0
	require.ErrorIs(t, cfg.Validate(), ErrInvalidMailboxSize)

	cfg = DefaultConfig()
	cfg.RateLimits["llm"] = RateLimitConfig{QPS: 0, Burst: 3}
	require.ErrorIs(t, cfg.Validate(), ErrInvalidRateLimit)
}
