// Package config provides configuration loading and structs for the Basho
// server.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/basho/internal/ranking"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Directory DirectoryConfig `yaml:"directory"`
	Cache     CacheConfig     `yaml:"cache"`
	Search    SearchConfig    `yaml:"search"`
	Ranking   ranking.Config  `yaml:"ranking"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DirectoryConfig holds settings for the upstream space directory API.
type DirectoryConfig struct {
	BaseURL  string `yaml:"base_url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	TimeoutSeconds   int     `yaml:"timeout_seconds"`
	MaxRetries       int     `yaml:"max_retries"`
	RetryDelayMillis int     `yaml:"retry_delay_millis"`
	RetryBackoff     bool    `yaml:"retry_backoff"`
	RateLimitPerSec  float64 `yaml:"rate_limit_per_sec"`
	RateBurst        int     `yaml:"rate_burst"`
	CacheTTLSeconds  int     `yaml:"cache_ttl_seconds"`
}

// Timeout returns the request timeout as a duration.
func (d *DirectoryConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}

// RetryDelay returns the base retry delay as a duration.
func (d *DirectoryConfig) RetryDelay() time.Duration {
	return time.Duration(d.RetryDelayMillis) * time.Millisecond
}

// CacheTTL returns the response cache TTL as a duration.
func (d *DirectoryConfig) CacheTTL() time.Duration {
	return time.Duration(d.CacheTTLSeconds) * time.Second
}

// Cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// CacheConfig selects and sizes the directory response cache.
type CacheConfig struct {
	Backend   string `yaml:"backend"`
	Size      int    `yaml:"size"`
	RedisAddr string `yaml:"redis_addr"`
}

// SearchConfig holds search pipeline settings.
type SearchConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
	// MaxAvailabilityChecks bounds per-request availability lookups. It
	// bounds latency, not correctness: candidates past the cap are
	// scored without the availability component.
	MaxAvailabilityChecks int `yaml:"max_availability_checks"`
}

// Load reads and parses the config file at path and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	return &cfg, nil
}
