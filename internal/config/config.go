// Package config loads relay configuration from SCRAWL_* environment
// variables with development-friendly defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all relay configuration loaded from environment variables.
type Config struct {
	Server ServerConfig
	Redis  RedisConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

// RedisConfig holds optional Redis pub/sub settings. An empty Addr means the
// relay runs standalone and rooms live only on this node.
type RedisConfig struct {
	Addr     string
	Password string //nolint:gosec // G117: Redis connection config
	DB       int
}

// Bridged reports whether cross-node room bridging is configured.
func (c *RedisConfig) Bridged() bool {
	return c.Addr != ""
}

// Load reads configuration from environment variables.
// Defaults suit a single-node local relay; production deployments set the
// address, timeouts and CORS origins explicitly.
func Load() (*Config, error) {
	readTimeout, err := getEnvDuration("SCRAWL_SERVER_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	writeTimeout, err := getEnvDuration("SCRAWL_SERVER_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	redisDB, err := getEnvInt("SCRAWL_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:         getEnv("SCRAWL_SERVER_ADDR", ":8080"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			CORSOrigins:  getEnvList("SCRAWL_CORS_ORIGINS", []string{"http://localhost:5173"}),
		},
		Redis: RedisConfig{
			Addr:     getEnv("SCRAWL_REDIS_ADDR", ""),
			Password: getEnv("SCRAWL_REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// validate checks value bounds.
func (c *Config) validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("SCRAWL_SERVER_ADDR must not be empty")
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SCRAWL_SERVER_READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SCRAWL_SERVER_WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("SCRAWL_REDIS_DB must be >= 0, got %d", c.Redis.DB)
	}
	if len(c.Server.CORSOrigins) == 0 {
		return fmt.Errorf("SCRAWL_CORS_ORIGINS must list at least one origin")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
