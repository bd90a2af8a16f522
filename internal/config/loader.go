// Package config loads the daemon's YAML configuration file, merges it
// over defaults, and applies NOWHERE_-prefixed environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader discovers and parses daemon configuration.
type Loader struct {
	searchPaths   []string
	envPrefix     string
	defaultConfig *Config
}

// NewLoader returns a Loader with the standard search paths and env
// prefix.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		searchPaths: []string{
			"./nowhere.yaml",
			filepath.Join(home, ".nowhere", "config.yaml"),
			"/etc/nowhere/config.yaml",
		},
		envPrefix:     "NOWHERE",
		defaultConfig: DefaultConfig(),
	}
}

// SetSearchPaths overrides the default discovery paths.
func (l *Loader) SetSearchPaths(paths []string) *Loader {
	l.searchPaths = paths
	return l
}

// AutoLoad discovers a config file on the search path, merges it over
// defaults, applies environment overrides, and validates the result. If
// no file is found, defaults plus environment overrides are used.
func (l *Loader) AutoLoad() (*Config, error) {
	path, err := l.findConfigFile()
	if err != nil {
		if err == ErrConfigFileNotFound {
			cfg := l.defaultConfig
			l.applyEnv(cfg)
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("validating default configuration: %w", err)
			}
			return cfg, nil
		}
		return nil, err
	}
	return l.LoadFile(path)
}

// LoadFile loads, merges, and validates configuration from an explicit
// file path.
func (l *Loader) LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	fileConfig := &Config{}
	if err := yaml.Unmarshal(data, fileConfig); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	merged := mergeConfig(l.defaultConfig, fileConfig)
	l.applyEnv(merged)

	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file %s: %w", path, err)
	}
	return merged, nil
}

func (l *Loader) findConfigFile() (string, error) {
	for _, path := range l.searchPaths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrConfigFileNotFound
}

// applyEnv overrides merged with any NOWHERE_-prefixed environment
// variables that are set.
func (l *Loader) applyEnv(cfg *Config) {
	if v := os.Getenv(l.envPrefix + "_APP_DEBUG"); v != "" {
		cfg.App.Debug = strings.EqualFold(v, "true")
	}
	if v := os.Getenv(l.envPrefix + "_LOG_LEVEL"); v != "" {
		cfg.Log.Level = LogLevel(v)
	}
	if v := os.Getenv(l.envPrefix + "_LOG_DIR"); v != "" {
		cfg.Log.Dir = v
	}
	if v := os.Getenv(l.envPrefix + "_DATABASE_FILE"); v != "" {
		cfg.Persistence.DatabaseFile = v
	}
	if v := os.Getenv(l.envPrefix + "_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv(l.envPrefix + "_LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv(l.envPrefix + "_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv(l.envPrefix + "_TWITTER_BASE_URL"); v != "" {
		cfg.Twitter.BaseURL = v
	}
	if v := os.Getenv(l.envPrefix + "_TWITTER_BEARER_TOKEN"); v != "" {
		cfg.Twitter.BearerToken = v
	}
	if v := os.Getenv(l.envPrefix + "_MAILBOX_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Actor.DefaultMailboxSize = n
		}
	}
}

// mergeConfig overlays the non-zero fields of user onto a copy of
// defaultConfig. Zero-valued fields in user keep the default.
func mergeConfig(defaultConfig, user *Config) *Config {
	merged := *defaultConfig

	if user.App.Name != "" {
		merged.App.Name = user.App.Name
	}
	merged.App.Debug = merged.App.Debug || user.App.Debug

	if user.Log.Level != "" {
		merged.Log.Level = user.Log.Level
	}
	if user.Log.Dir != "" {
		merged.Log.Dir = user.Log.Dir
	}
	if user.Log.Rotation.MaxFiles != 0 {
		merged.Log.Rotation.MaxFiles = user.Log.Rotation.MaxFiles
	}
	if user.Log.Rotation.MaxSizeMB != 0 {
		merged.Log.Rotation.MaxSizeMB = user.Log.Rotation.MaxSizeMB
	}

	if user.Persistence.DatabaseFile != "" {
		merged.Persistence.DatabaseFile = user.Persistence.DatabaseFile
	}
	merged.Persistence.SkipMigrations = merged.Persistence.SkipMigrations ||
		user.Persistence.SkipMigrations

	if user.Actor.DefaultMailboxSize != 0 {
		merged.Actor.DefaultMailboxSize = user.Actor.DefaultMailboxSize
	}
	if user.Actor.ShutdownGrace != 0 {
		merged.Actor.ShutdownGrace = user.Actor.ShutdownGrace
	}

	if user.LLM.BaseURL != "" {
		merged.LLM.BaseURL = user.LLM.BaseURL
	}
	if user.LLM.APIKey != "" {
		merged.LLM.APIKey = user.LLM.APIKey
	}
	if user.LLM.Model != "" {
		merged.LLM.Model = user.LLM.Model
	}
	if user.LLM.Timeout != 0 {
		merged.LLM.Timeout = user.LLM.Timeout
	}

	if user.Twitter.BaseURL != "" {
		merged.Twitter.BaseURL = user.Twitter.BaseURL
	}
	if user.Twitter.BearerToken != "" {
		merged.Twitter.BearerToken = user.Twitter.BearerToken
	}
	if user.Twitter.MaxResults != 0 {
		merged.Twitter.MaxResults = user.Twitter.MaxResults
	}
	if user.Twitter.Timeout != 0 {
		merged.Twitter.Timeout = user.Twitter.Timeout
	}

	if len(user.RateLimits) > 0 {
		merged.RateLimits = make(map[string]RateLimitConfig, len(user.RateLimits))
		for k, v := range defaultConfig.RateLimits {
			merged.RateLimits[k] = v
		}
		for k, v := range user.RateLimits {
			merged.RateLimits[k] = v
		}
	}

	return &merged
}
