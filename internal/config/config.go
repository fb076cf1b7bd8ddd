// Package config holds process configuration for the autocomplete
// service. Values come from flags or environment variables; the core
// packages never read the environment themselves.
package config

import (
	"errors"
	"time"
)

// Environment variables understood by the binary.
const (
	EnvServerAddr = "AUTOCOMPLETED_SERVER_ADDR"
	EnvDBPath     = "AUTOCOMPLETED_DB_PATH"
	EnvCacheSize  = "AUTOCOMPLETED_CACHE_SIZE"
	EnvCacheTTL   = "AUTOCOMPLETED_CACHE_TTL"
)

// Defaults for everything except the database path, which has no sane
// default and must be supplied.
const (
	DefaultServerAddr = "127.0.0.1:8080"
	DefaultCacheSize  = 15000
	DefaultCacheTTL   = 6 * time.Hour
)

// Config is the resolved process configuration.
type Config struct {
	ServerAddr string
	DBPath     string
	CacheSize  int
	CacheTTL   time.Duration
}

// Default returns a Config with every defaultable field populated.
func Default() Config {
	return Config{
		ServerAddr: DefaultServerAddr,
		CacheSize:  DefaultCacheSize,
		CacheTTL:   DefaultCacheTTL,
	}
}

// Validate reports the first problem with the configuration.
func (c Config) Validate() error {
	if c.ServerAddr == "" {
		return errors.New("server address must not be empty")
	}
	if c.DBPath == "" {
		return errors.New("database path must not be empty")
	}
	if c.CacheSize < 0 {
		return errors.New("cache size must not be negative")
	}
	if c.CacheTTL < 0 {
		return errors.New("cache TTL must not be negative")
	}
	return nil
}
