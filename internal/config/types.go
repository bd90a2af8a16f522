package config

import "time"

// LogLevel is a btclog-compatible level name.
type LogLevel string

const (
	LogLevelTrace LogLevel = "trace"
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	default:
		return false
	}
}

// Config is the full daemon configuration.
type Config struct {
	App         AppConfig                 `yaml:"app"`
	Log         LogConfig                 `yaml:"log"`
	Persistence PersistenceConfig         `yaml:"persistence"`
	Actor       ActorConfig               `yaml:"actor"`
	LLM         LLMConfig                 `yaml:"llm"`
	Twitter     TwitterConfig             `yaml:"twitter"`
	RateLimits  map[string]RateLimitConfig `yaml:"rate_limits"`
}

// AppConfig holds process-identity settings.
type AppConfig struct {
	Name  string `yaml:"name"`
	Debug bool   `yaml:"debug"`
}

// LogConfig controls the dual console/file log handler set.
type LogConfig struct {
	Level    LogLevel        `yaml:"level"`
	Dir      string          `yaml:"dir"`
	Rotation LogRotationConfig `yaml:"rotation"`
}

// LogRotationConfig mirrors internal/log.RotatorConfig's rotation knobs.
type LogRotationConfig struct {
	MaxFiles   int `yaml:"max_files"`
	MaxSizeMB  int `yaml:"max_size_mb"`
}

// PersistenceConfig configures the SQLite store.
type PersistenceConfig struct {
	DatabaseFile   string `yaml:"database_file"`
	SkipMigrations bool   `yaml:"skip_migrations"`
}

// ActorConfig configures the actor runtime's defaults.
type ActorConfig struct {
	DefaultMailboxSize int           `yaml:"default_mailbox_size"`
	ShutdownGrace      time.Duration `yaml:"shutdown_grace"`
}

// LLMConfig configures the LLM adapter.
type LLMConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// TwitterConfig configures the Twitter/X search adapter.
type TwitterConfig struct {
	BaseURL     string        `yaml:"base_url"`
	BearerToken string        `yaml:"bearer_token"`
	MaxResults  int           `yaml:"max_results"`
	Timeout     time.Duration `yaml:"timeout"`
}

// RateLimitConfig is one named bucket's initial Upsert parameters.
type RateLimitConfig struct {
	QPS   float64 `yaml:"qps"`
	Burst int     `yaml:"burst"`
}

// DefaultConfig returns the configuration applied before any file or
// environment override is read.
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name: "nowhered",
		},
		Log: LogConfig{
			Level: LogLevelInfo,
			Dir:   "./logs",
			Rotation: LogRotationConfig{
				MaxFiles:  10,
				MaxSizeMB: 20,
			},
		},
		Persistence: PersistenceConfig{
			DatabaseFile: "./nowhere.db",
		},
		Actor: ActorConfig{
			DefaultMailboxSize: 64,
			ShutdownGrace:      30 * time.Second,
		},
		LLM: LLMConfig{
			Model:   "gpt-4o-mini",
			Timeout: 30 * time.Second,
		},
		Twitter: TwitterConfig{
			MaxResults: 100,
			Timeout:    30 * time.Second,
		},
		RateLimits: map[string]RateLimitConfig{
			"llm":    {QPS: 1, Burst: 3},
			"search": {QPS: 0.5, Burst: 2},
		},
	}
}

// Validate rejects a configuration that the daemon cannot start with.
func (c *Config) Validate() error {
	if !c.Log.Level.IsValid() {
		return ErrInvalidLogLevel
	}
	if c.Persistence.DatabaseFile == "" {
		return ErrMissingDatabaseFile
	}
	if c.Actor.DefaultMailboxSize <= 0 {
		return ErrInvalidMailboxSize
	}
	for _, rl := range c.RateLimits {
		if rl.QPS <= 0 || rl.Burst <= 0 {
			return ErrInvalidRateLimit
		}
	}
	return nil
}
