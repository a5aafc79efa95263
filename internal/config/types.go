// Package config loads settings for the client CLI and the catalog server.
//
// Sources are layered, later ones winning: built-in defaults, an optional
// aerohub.yaml file, AEROHUB_ environment variables and explicitly set flags.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dharmasatrya/aerohub/internal/models"
	"github.com/dharmasatrya/aerohub/internal/ratelimit"
)

type Config struct {
	API    APIConfig    `koanf:"api"`
	UI     UIConfig     `koanf:"ui"`
	Server ServerConfig `koanf:"server"`
	Log    LogConfig    `koanf:"log"`
}

type APIConfig struct {
	BaseURL   string          `koanf:"base_url"`
	Timeout   time.Duration   `koanf:"timeout"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

// RateLimitConfig throttles the catalog client. Creates draw from their own bucket.
type RateLimitConfig struct {
	RPS    float64            `koanf:"rps"`
	Burst  int                `koanf:"burst"`
	Create EndpointRateConfig `koanf:"create"`
}

type EndpointRateConfig struct {
	RPS   float64 `koanf:"rps"`
	Burst int     `koanf:"burst"`
}

// Limits converts the settings into per-endpoint buckets.
func (c RateLimitConfig) Limits() ratelimit.Config {
	return ratelimit.Config{
		Default: ratelimit.Rate{RequestsPerSecond: c.RPS, BurstSize: c.Burst},
		PerEndpoint: map[string]ratelimit.Rate{
			ratelimit.EndpointCreate: {RequestsPerSecond: c.Create.RPS, BurstSize: c.Create.Burst},
		},
	}
}

type UIConfig struct {
	PageSize         int           `koanf:"page_size"`
	MinSubmitDisplay time.Duration `koanf:"min_submit_display"`
	SuccessHold      time.Duration `koanf:"success_hold"`
}

type ServerConfig struct {
	Port        string      `koanf:"port"`
	Store       string      `koanf:"store"`
	DatabaseURL string      `koanf:"database_url"`
	Cache       CacheConfig `koanf:"cache"`
}

type CacheConfig struct {
	Enabled   bool          `koanf:"enabled"`
	RedisAddr string        `koanf:"redis_addr"`
	TTL       time.Duration `koanf:"ttl"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

func defaults() map[string]any {
	return map[string]any{
		"api.base_url":                "http://localhost:8080/api/v1",
		"api.timeout":                 10 * time.Second,
		"api.rate_limit.rps":          10.0,
		"api.rate_limit.burst":        20,
		"api.rate_limit.create.rps":   2.0,
		"api.rate_limit.create.burst": 5,
		"ui.page_size":                models.DefaultPageSize,
		"ui.min_submit_display":       3 * time.Second,
		"ui.success_hold":             1500 * time.Millisecond,
		"server.port":                 "8080",
		"server.store":                StoreMemory,
		"server.database_url":         "",
		"server.cache.enabled":        false,
		"server.cache.redis_addr":     "localhost:6379",
		"server.cache.ttl":            5 * time.Minute,
		"log.level":                   "info",
		"log.format":                  "text",
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if err := c.API.RateLimit.Limits().Validate(); err != nil {
		return fmt.Errorf("api.rate_limit: %w", err)
	}
	if !models.IsAllowedPageSize(c.UI.PageSize) {
		return fmt.Errorf("ui.page_size: %w", models.ErrInvalidPageSize)
	}
	if c.UI.MinSubmitDisplay < 0 || c.UI.SuccessHold < 0 {
		return fmt.Errorf("ui delays must not be negative")
	}
	switch c.Server.Store {
	case StoreMemory:
	case StorePostgres:
		if c.Server.DatabaseURL == "" {
			return fmt.Errorf("server.database_url is required for the postgres store")
		}
	default:
		return fmt.Errorf("server.store must be %q or %q, got %q", StoreMemory, StorePostgres, c.Server.Store)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// NewLogger builds the process logger described by c.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
