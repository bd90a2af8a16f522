package config

import "errors"

// Validation errors.
var (
	ErrInvalidLogLevel    = errors.New("invalid log level")
	ErrMissingDatabaseFile = errors.New("database file path is required")
	ErrInvalidRateLimit   = errors.New("rate limit qps and burst must be positive")
	ErrInvalidMailboxSize = errors.New("default mailbox size must be positive")
)

// Loading errors.
var ErrConfigFileNotFound = errors.New("configuration file not found")
