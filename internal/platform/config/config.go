// Package config loads application configuration from environment variables.
// All variables use the STUDY_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	API            APIConfig
	Database       DatabaseConfig
	Cache          CacheConfig
	Session        SessionConfig
	Log            LogConfig
	CurriculumPath string
}

// APIConfig holds the remote learning platform settings.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DatabaseConfig holds PostgreSQL connection settings. An empty URL disables
// persistence; attempts then live in memory only.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// CacheConfig holds Redis connection settings. An empty URL disables the
// dashboard read cache.
type CacheConfig struct {
	URL string
	TTL time.Duration
}

// SessionConfig holds the learner's default quiz settings.
type SessionConfig struct {
	StudentID     string
	Subject       string
	Topic         string
	LearningStyle string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with STUDY_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			BaseURL: envStr("STUDY_API_BASE_URL", "http://localhost:8000"),
			Timeout: envDuration("STUDY_API_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			URL:      envStr("STUDY_DATABASE_URL", ""),
			MaxConns: envInt("STUDY_DATABASE_MAX_CONNS", 25),
			MinConns: envInt("STUDY_DATABASE_MIN_CONNS", 5),
		},
		Cache: CacheConfig{
			URL: envStr("STUDY_CACHE_URL", ""),
			TTL: envDuration("STUDY_CACHE_TTL", 5*time.Minute),
		},
		Session: SessionConfig{
			StudentID:     envStr("STUDY_STUDENT_ID", ""),
			Subject:       envStr("STUDY_SUBJECT", "Mathematics"),
			Topic:         envStr("STUDY_TOPIC", ""),
			LearningStyle: envStr("STUDY_LEARNING_STYLE", "visual"),
		},
		Log: LogConfig{
			Level:  envStr("STUDY_LOG_LEVEL", "info"),
			Format: envStr("STUDY_LOG_FORMAT", "json"),
		},
		CurriculumPath: envStr("STUDY_CURRICULUM_PATH", "./curriculum"),
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("STUDY_API_BASE_URL is required")
	}
	if c.Session.StudentID == "" {
		return fmt.Errorf("STUDY_STUDENT_ID is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("STUDY_API_TIMEOUT must be positive, got %s", c.API.Timeout)
	}
	if c.Cache.URL != "" && c.Cache.TTL <= 0 {
		return fmt.Errorf("STUDY_CACHE_TTL must be positive when the cache is enabled, got %s", c.Cache.TTL)
	}
	return nil
}

// Persistent reports whether a database is configured.
func (c *Config) Persistent() bool {
	return c.Database.URL != ""
}

// Cached reports whether the dashboard read cache is configured.
func (c *Config) Cached() bool {
	return c.Cache.URL != ""
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
