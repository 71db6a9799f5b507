// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and GHOSTBOARD_* env vars.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone database for hosts without one
)

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches log output to JSON lines.
	LogJSON bool `koanf:"log_json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// CohortSize is the number of ghosts generated per board.
	CohortSize int `koanf:"cohort_size"`

	// DefaultPackID is used when the user's pack cannot be resolved.
	DefaultPackID int `koanf:"default_pack_id"`

	// Timezone names the IANA zone for hour-of-day, dates and ISO weeks.
	Timezone string `koanf:"timezone"`

	// WindowStartHour and WindowHours describe the daily activity window.
	WindowStartHour float64 `koanf:"window_start_hour"`
	WindowHours     float64 `koanf:"window_hours"`

	// ProfileBaseURL is the upstream user-profile API; empty disables lookups.
	ProfileBaseURL string `koanf:"profile_base_url"`

	// ProfileTimeoutMS bounds a single upstream request.
	ProfileTimeoutMS int `koanf:"profile_timeout_ms"`

	// ProfileMaxAttempts caps upstream attempts per lookup.
	ProfileMaxAttempts int `koanf:"profile_max_attempts"`

	// CacheBackend selects the profile cache: memory or redis.
	CacheBackend string `koanf:"cache_backend"`

	// CacheSize bounds the in-memory profile cache.
	CacheSize int `koanf:"cache_size"`

	// CacheTTLSeconds is how long a cached profile stays valid.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// Redis connection, used when CacheBackend is redis.
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	// RateLimitRPS and RateLimitBurst bound requests per client IP.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		CohortSize:          49,
		DefaultPackID:       10,
		Timezone:            "Asia/Kolkata",
		WindowStartHour:     8,
		WindowHours:         14,
		ProfileTimeoutMS:    2000,
		ProfileMaxAttempts:  3,
		CacheBackend:        CacheMemory,
		CacheSize:           10_000,
		CacheTTLSeconds:     300,
		RedisAddr:           "localhost:6379",
		RateLimitRPS:        20,
		RateLimitBurst:      40,
		MaxLeaderboardLimit: 100,
	}
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.CohortSize <= 0:
		return fmt.Errorf("%w: cohort_size must be positive", ErrInvalidConfig)
	case c.WindowStartHour < 0 || c.WindowStartHour >= 24:
		return fmt.Errorf("%w: window_start_hour must be in [0, 24)", ErrInvalidConfig)
	case c.WindowHours <= 0 || c.WindowHours > 24:
		return fmt.Errorf("%w: window_hours must be in (0, 24]", ErrInvalidConfig)
	case c.WindowStartHour+c.WindowHours > 24:
		return fmt.Errorf("%w: activity window must end by midnight", ErrInvalidConfig)
	case c.CacheBackend != CacheMemory && c.CacheBackend != CacheRedis:
		return fmt.Errorf("%w: unknown cache_backend %q", ErrInvalidConfig, c.CacheBackend)
	case c.MaxLeaderboardLimit <= 0:
		return fmt.Errorf("%w: max_leaderboard_limit must be positive", ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// ProfileTimeout returns ProfileTimeoutMS as a duration.
func (c *Config) ProfileTimeout() time.Duration {
	return time.Duration(c.ProfileTimeoutMS) * time.Millisecond
}

// CacheTTL returns CacheTTLSeconds as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
